package deposits

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"kampomido/internal/api"
	"kampomido/internal/session"
	dErrors "kampomido/pkg/domain-errors"
)

type DepositsSuite struct {
	suite.Suite
}

func TestDepositsSuite(t *testing.T) {
	suite.Run(t, new(DepositsSuite))
}

func (s *DepositsSuite) newService(handler http.Handler) (*Service, *httptest.Server) {
	srv := httptest.NewServer(handler)
	sess := session.NewStore(filepath.Join(s.T().TempDir(), "session.json"))
	return NewService(api.New(srv.URL, sess)), srv
}

// Deleting a converted deposit must be refused locally, with no request
// reaching the backend at all.
func (s *DepositsSuite) TestDeleteConvertedNeverHitsNetwork() {
	var requests int
	svc, srv := s.newService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	err := svc.Delete(context.Background(), "77", "Converted")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeBusinessRule))
	s.Zero(requests, "no DELETE may be issued for a converted deposit")
}

func (s *DepositsSuite) TestDeletePendingIssuesRequest() {
	var gotMethod, gotPath string
	svc, srv := s.newService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	s.Require().NoError(svc.Delete(context.Background(), "77", "pending"))
	s.Equal(http.MethodDelete, gotMethod)
	s.Equal("/admin/deposits/delete/77", gotPath)
}

// A sparse backend record flattens to a fully populated view model: gold
// defaults to zero and the status label is title-cased.
func (s *DepositsSuite) TestSparseRecordNormalizes() {
	svc, srv := s.newService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": [{"id": 1, "amount": 1000, "status": "pending", "rateUsed": 6000}]}`))
	}))
	defer srv.Close()

	records, err := svc.GetAll(context.Background(), ListFilters{})
	s.Require().NoError(err)
	s.Require().Len(records, 1)

	vm := records[0].ViewModel()
	s.Equal("1", vm.ID)
	s.Equal(float64(1000), vm.Amount)
	s.Zero(vm.Gold)
	s.Equal("pending", vm.Status)
	s.Equal("Pending", vm.StatusLabel)
	s.False(vm.IsConverted())
}

func (s *DepositsSuite) TestGetAllSendsOnlySetFilters() {
	var gotQuery string
	svc, srv := s.newService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	_, err := svc.GetAll(context.Background(), ListFilters{Status: "approved", Limit: 10})
	s.Require().NoError(err)
	s.Equal("limit=10&status=approved", gotQuery)
}

func (s *DepositsSuite) TestRejectSendsReasonWhenGiven() {
	var gotBody []byte
	svc, srv := s.newService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"data": {"deposit": {"id": "9", "status": "rejected"}}}`))
	}))
	defer srv.Close()

	record, err := svc.Reject(context.Background(), "9", "  duplicate entry ")
	s.Require().NoError(err)
	s.JSONEq(`{"reason": "duplicate entry"}`, string(gotBody))
	s.Equal("rejected", record.Status)
}
