package statements

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"kampomido/internal/api"
	"kampomido/internal/session"
	dErrors "kampomido/pkg/domain-errors"
)

type StatementsSuite struct {
	suite.Suite
}

func TestStatementsSuite(t *testing.T) {
	suite.Run(t, new(StatementsSuite))
}

func (s *StatementsSuite) newService(handler http.Handler) (*Service, *httptest.Server) {
	srv := httptest.NewServer(handler)
	sess := session.NewStore(filepath.Join(s.T().TempDir(), "session.json"))
	return NewService(api.New(srv.URL, sess), slog.Default()), srv
}

func (s *StatementsSuite) TestGetAll() {
	svc, srv := s.newService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/customer/statements", r.URL.Path)
		w.Write([]byte(`{"data": {"statements": [
			{"id": "st1", "period": "2026-07", "openingGold": 10.2, "closingGold": 12.5},
			{"id": "st2", "month": "2026-08"}
		]}}`))
	}))
	defer srv.Close()

	items, err := svc.GetAll(context.Background())
	s.Require().NoError(err)
	s.Require().Len(items, 2)
	s.Equal("2026-07", items[0].Period)
	s.Equal("2026-08", items[1].Period, "month key must back the period field")
	s.Equal("N/A", items[1].GeneratedAt)
}

func (s *StatementsSuite) TestDownloadRejectsUnknownFormat() {
	var requests int
	svc, srv := s.newService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	_, err := svc.Download(context.Background(), "st1", "csv")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	s.Zero(requests)
}

func (s *StatementsSuite) TestDownloadSendsFormatQuery() {
	svc, srv := s.newService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/customer/statements/st1/download", r.URL.Path)
		s.Equal("excel", r.URL.Query().Get("format"))
		w.Header().Set("Content-Disposition", `attachment; filename="statement-2026-07.xlsx"`)
		w.Write([]byte("xlsx-bytes"))
	}))
	defer srv.Close()

	dl, err := svc.Download(context.Background(), "st1", " Excel ")
	s.Require().NoError(err)
	s.Equal("statement-2026-07.xlsx", dl.Filename)
	s.Equal([]byte("xlsx-bytes"), dl.Data)
}
