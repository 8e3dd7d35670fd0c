package dashboard

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"kampomido/internal/api"
	"kampomido/internal/session"
)

type DashboardSuite struct {
	suite.Suite
}

func TestDashboardSuite(t *testing.T) {
	suite.Run(t, new(DashboardSuite))
}

func (s *DashboardSuite) newService(handler http.Handler) (*Service, *httptest.Server) {
	srv := httptest.NewServer(handler)
	sess := session.NewStore(filepath.Join(s.T().TempDir(), "session.json"))
	return NewService(api.New(srv.URL, sess), slog.Default()), srv
}

const summaryBody = `{"success": true, "data": {"summary": {
	"totalCustomers": 12, "pendingDeposits": 3, "goldRate": 6250
}}}`

func (s *DashboardSuite) TestSummaryFetchesAndCaches() {
	svc, srv := s.newService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/admin/dashboard/summary", r.URL.Path)
		w.Write([]byte(summaryBody))
	}))
	defer srv.Close()

	snap, err := svc.Summary(context.Background())
	s.Require().NoError(err)
	s.False(snap.Stale)
	s.Equal(12, snap.Summary.TotalCustomers)
	s.Equal(float64(6250), snap.Summary.GoldRate)
}

// Once a snapshot exists, backend failures degrade to stale data instead of
// surfacing an error.
func (s *DashboardSuite) TestFailureServesStaleSnapshot() {
	var fail atomic.Bool
	svc, srv := s.newService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(summaryBody))
	}))
	defer srv.Close()

	_, err := svc.Summary(context.Background())
	s.Require().NoError(err)

	fail.Store(true)
	snap, err := svc.Summary(context.Background())
	s.Require().NoError(err)
	s.True(snap.Stale)
	s.Equal(12, snap.Summary.TotalCustomers)
}

func (s *DashboardSuite) TestFailureWithNoCacheSurfacesError() {
	svc, srv := s.newService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := svc.Summary(context.Background())
	s.Require().Error(err)
}

// An expired session on the summary endpoint must not clear the session; the
// carve-out in the request pipeline covers dashboard paths.
func (s *DashboardSuite) TestUnauthorizedLeavesSessionIntact() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	sess := session.NewStore(filepath.Join(s.T().TempDir(), "session.json"))
	s.Require().NoError(sess.Set("tok-abc", session.User{ID: "u1", Role: "admin"}))
	svc := NewService(api.New(srv.URL, sess), slog.Default())

	_, err := svc.Summary(context.Background())
	s.Require().Error(err)
	s.Equal("tok-abc", sess.Token())
}

// Concurrent refreshes collapse into a single backend request.
func (s *DashboardSuite) TestConcurrentSummariesShareOneRequest() {
	var requests atomic.Int32
	release := make(chan struct{})
	svc, srv := s.newService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		<-release
		w.Write([]byte(summaryBody))
	}))
	defer srv.Close()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap, err := svc.Summary(context.Background())
			s.NoError(err)
			s.Equal(12, snap.Summary.TotalCustomers)
		}()
	}
	// Let every caller join the in-flight request before the handler responds.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	s.Equal(int32(1), requests.Load())
}
