package users

import (
	"context"
	"encoding/json"
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

type UsersSuite struct {
	suite.Suite
}

func TestUsersSuite(t *testing.T) {
	suite.Run(t, new(UsersSuite))
}

func (s *UsersSuite) newService(handler http.Handler) (*Service, *httptest.Server) {
	srv := httptest.NewServer(handler)
	sess := session.NewStore(filepath.Join(s.T().TempDir(), "session.json"))
	return NewService(api.New(srv.URL, sess)), srv
}

// The users list arrives double-nested: the outer data wrapper holds
// another data key with the actual array.
func (s *UsersSuite) TestGetAllResolvesDoubleNestedEnvelope() {
	svc, srv := s.newService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/admin/users", r.URL.Path)
		w.Write([]byte(`{"success": true, "data": {"data": [
			{"id": "u1", "name": "Asha Pillai", "email": "asha@x.test", "role": "admin", "status": "active"},
			{"_id": "u2", "firstname": "Ravi", "lastname": "Menon", "phone": "9876543210"}
		]}}`))
	}))
	defer srv.Close()

	records, err := svc.GetAll(context.Background())
	s.Require().NoError(err)
	s.Require().Len(records, 2)

	vms := ViewModels(records)
	s.Equal("u1", vms[0].ID)
	s.Equal("Asha Pillai", vms[0].Name)
	s.Equal("admin", vms[0].Role)
	s.Equal("Active", vms[0].Status)
	s.Equal("u2", vms[1].ID)
	s.Equal("Ravi Menon", vms[1].Name)
	s.Equal("N/A", vms[1].Email)
	s.Equal("customer", vms[1].Role)
	s.Equal("Pending", vms[1].Status)
}

// An invalid form must be rejected locally before any request is issued.
func (s *UsersSuite) TestRegisterInvalidFormNeverHitsNetwork() {
	var requests int
	svc, srv := s.newService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	_, err := svc.Register(context.Background(), RegisterForm{
		Name:     "  ",
		Email:    "not-an-email",
		Password: "short",
		Role:     "superuser",
	})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	fields := dErrors.FieldsOf(err)
	s.NotEmpty(fields["name"])
	s.NotEmpty(fields["email"])
	s.NotEmpty(fields["password"])
	s.NotEmpty(fields["role"])
	s.Zero(requests)
}

func (s *UsersSuite) TestRegisterTrimsAndPostsForm() {
	svc, srv := s.newService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodPost, r.Method)
		s.Equal("/admin/users/register", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		s.Require().NoError(err)
		var form RegisterForm
		s.Require().NoError(json.Unmarshal(body, &form))
		s.Equal("Asha Pillai", form.Name)
		s.Equal("asha@x.test", form.Email)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"success": true, "data": {"user":
			{"id": "u9", "name": "Asha Pillai", "email": "asha@x.test", "role": "admin", "status": "active"}}}`))
	}))
	defer srv.Close()

	created, err := svc.Register(context.Background(), RegisterForm{
		Name:     "  Asha Pillai  ",
		Email:    " asha@x.test ",
		Password: "sufficiently-long",
		Role:     "admin",
	})
	s.Require().NoError(err)
	s.Equal("u9", created.ViewModel().ID)
	s.Equal("admin", created.Role)
}
