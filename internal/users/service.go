// Package users wraps the admin user endpoints.
package users

import (
	"context"

	"kampomido/internal/api"
	"kampomido/internal/envelope"
	str "kampomido/pkg/string"
	"kampomido/pkg/validation"
)

// Service is the users façade. Methods map 1:1 to REST endpoints and
// propagate errors unchanged for page-level handling.
type Service struct {
	client *api.Client
}

// NewService creates the users façade.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// GetAll lists all users.
func (s *Service) GetAll(ctx context.Context) ([]User, error) {
	resp, err := s.client.Get(ctx, "/admin/users", nil)
	if err != nil {
		return nil, err
	}
	return envelope.List[User](resp.Body, "users")
}

// Register creates a user. Validation failures block the call before any
// request is made.
func (s *Service) Register(ctx context.Context, form RegisterForm) (User, error) {
	str.TrimStrings(&form.Name, &form.Email, &form.Phone, &form.Role)
	if err := validation.Validate(form); err != nil {
		return User{}, err
	}

	resp, err := s.client.Post(ctx, "/admin/users/register", form)
	if err != nil {
		return User{}, err
	}
	return envelope.One[User](resp.Body, "user")
}
