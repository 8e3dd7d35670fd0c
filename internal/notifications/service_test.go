package notifications

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"kampomido/internal/api"
	"kampomido/internal/session"
)

func newService(t *testing.T, audience Audience, handler http.Handler) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	sess := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	return NewService(api.New(srv.URL, sess), audience, slog.Default())
}

func TestAudienceSelectsBasePath(t *testing.T) {
	for audience, wantPath := range map[Audience]string{
		AudienceAdmin:    "/admin/notifications",
		AudienceCustomer: "/notifications",
	} {
		var gotPath string
		svc := newService(t, audience, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			w.Write([]byte(`{"data": []}`))
		}))

		_, err := svc.GetAll(context.Background())
		require.NoError(t, err)
		require.Equal(t, wantPath, gotPath)
	}
}

func TestGetAllNormalizesRecords(t *testing.T) {
	svc := newService(t, AudienceCustomer, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": [
			{"id": 1, "title": "Deposit received", "body": "Pending review", "isRead": true},
			{"_id": "n2", "message": "KYC approved"}
		]}`))
	}))

	items, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	require.Equal(t, "1", items[0].ID)
	require.Equal(t, "Pending review", items[0].Message, "body key must back the message field")
	require.True(t, items[0].Read)

	require.Equal(t, "n2", items[1].ID)
	require.Equal(t, "N/A", items[1].Title)
	require.Equal(t, "info", items[1].Type)
	require.False(t, items[1].Read)
}

func TestMarkAsReadTargetsRecord(t *testing.T) {
	var gotMethod, gotPath string
	svc := newService(t, AudienceAdmin, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.Write([]byte(`{"success": true}`))
	}))

	require.NoError(t, svc.MarkAsRead(context.Background(), "n2"))
	require.Equal(t, http.MethodPatch, gotMethod)
	require.Equal(t, "/admin/notifications/n2/read", gotPath)
}

func TestUnreadCount(t *testing.T) {
	svc := newService(t, AudienceCustomer, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": [
			{"id": 1, "read": true},
			{"id": 2},
			{"id": 3}
		]}`))
	}))

	count, err := svc.UnreadCount(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, count)
}
