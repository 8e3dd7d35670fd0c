package goldrate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"kampomido/internal/api"
	"kampomido/internal/session"
	dErrors "kampomido/pkg/domain-errors"
)

func newService(t *testing.T, handler http.Handler) (*Service, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	sess := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	return NewService(api.New(srv.URL, sess)), srv
}

func TestCurrentResolvesEitherRateKey(t *testing.T) {
	svc, _ := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"goldRate": {"rate": 6100, "updatedAt": "2026-08-30T10:00:00Z"}}}`))
	}))

	rate, err := svc.Current(context.Background())
	require.NoError(t, err)
	require.Equal(t, float64(6100), rate.PerGram())
}

func TestUpdateRejectsNonPositiveRate(t *testing.T) {
	var requests int
	svc, _ := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))

	_, err := svc.Update(context.Background(), 0)
	require.Error(t, err)
	require.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	require.Zero(t, requests)
}

func TestUpdateSendsRate(t *testing.T) {
	svc, _ := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/admin/gold-rate", r.URL.Path)
		w.Write([]byte(`{"data": {"goldRate": {"ratePerGram": 6400}}}`))
	}))

	rate, err := svc.Update(context.Background(), 6400)
	require.NoError(t, err)
	require.Equal(t, float64(6400), rate.PerGram())
}
