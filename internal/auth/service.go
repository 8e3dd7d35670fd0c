// Package auth signs the user in and out. It is the only façade allowed to
// write the session.
package auth

import (
	"context"
	"log/slog"

	"kampomido/internal/api"
	"kampomido/internal/envelope"
	"kampomido/internal/session"
	dErrors "kampomido/pkg/domain-errors"
	str "kampomido/pkg/string"
	"kampomido/pkg/validation"
)

// Service wraps the login/logout endpoints.
type Service struct {
	client  *api.Client
	session *session.Store
	logger  *slog.Logger
}

// NewService creates the auth façade.
func NewService(client *api.Client, sess *session.Store, logger *slog.Logger) *Service {
	return &Service{client: client, session: sess, logger: logger}
}

// Login authenticates and stores the session. Token and user are written in a
// single session write.
func (s *Service) Login(ctx context.Context, creds Credentials) (session.User, error) {
	str.TrimStrings(&creds.Email, &creds.Phone, &creds.Password)

	if err := validation.Validate(creds); err != nil {
		return session.User{}, err
	}

	resp, err := s.client.Post(ctx, "/auth/login", loginRequest{
		Email:    creds.Email,
		Phone:    creds.Phone,
		Password: creds.Password,
	})
	if err != nil {
		return session.User{}, err
	}

	payload, err := envelope.One[loginPayload](resp.Body, "login")
	if err != nil {
		return session.User{}, err
	}
	if payload.Token == "" {
		return session.User{}, dErrors.New(dErrors.CodeDecode, "login response missing token")
	}

	user := payload.User.sessionUser()
	if err := s.session.Set(payload.Token, user); err != nil {
		return session.User{}, err
	}

	s.logger.InfoContext(ctx, "signed in", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Logout clears the session. The server call is best-effort: a dead backend
// must never trap the user in a signed-in client.
func (s *Service) Logout(ctx context.Context) error {
	if _, err := s.client.Post(ctx, "/auth/logout", nil); err != nil {
		s.logger.WarnContext(ctx, "logout request failed", "error", err)
	}
	return s.session.Clear()
}
