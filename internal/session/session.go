// Package session holds the signed-in user and bearer token. It is the only
// cross-page mutable shared state: the API client reads it at request time,
// and only login, logout, and the forced-401 path write it.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	dErrors "kampomido/pkg/domain-errors"
)

// User is the session-scoped view of the signed-in account.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"` // "admin" or "customer"
}

// Session pairs the bearer token with its user. Token and user are always
// written and cleared together.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
	Theme string `json:"theme,omitempty"`
}

// Store persists the session to a JSON file and serializes access. Writes only
// happen on explicit user-initiated transitions (login, logout, forced 401),
// so a plain RWMutex is enough.
type Store struct {
	mu      sync.RWMutex
	path    string
	current *Session
	theme   string
}

// NewStore creates a store backed by the given file, loading any persisted
// session. A missing or unreadable file just means signed-out.
func NewStore(path string) *Store {
	s := &Store{path: path, theme: "light"}
	raw, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return s
	}
	if sess.Theme != "" {
		s.theme = sess.Theme
	}
	if sess.Token != "" {
		s.current = &sess
	}
	return s
}

// Set stores a new session. Token and user land in one write.
func (s *Store) Set(token string, user User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &Session{Token: token, User: user, Theme: s.theme}
	return s.persist()
}

// Clear drops the session. Theme survives a logout.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	return s.persist()
}

// Token returns the stored bearer token, or "" when signed out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// User returns the signed-in user and whether a session exists.
func (s *Store) User() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return User{}, false
	}
	return s.current.User, true
}

// Theme returns the persisted UI theme.
func (s *Store) Theme() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// SetTheme persists the UI theme without touching the session.
func (s *Store) SetTheme(theme string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if theme != "light" && theme != "dark" {
		return dErrors.New(dErrors.CodeInternal, "unknown theme: "+theme)
	}
	s.theme = theme
	return s.persist()
}

// TokenExpiry reads the exp claim from the stored token without verifying the
// signature (the client never holds the signing key). Used for display and
// telemetry only; the server remains the authority on token validity.
func (s *Store) TokenExpiry() (time.Time, bool) {
	token := s.Token()
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// persist writes the current state under the lock. Theme is kept in the same
// file so a signed-out client still remembers it.
func (s *Store) persist() error {
	payload := Session{Theme: s.theme}
	if s.current != nil {
		payload = *s.current
		payload.Theme = s.theme
	}
	raw, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "encode session")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "create session dir")
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "write session file")
	}
	return nil
}
