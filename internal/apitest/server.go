// Package apitest is an in-process stand-in for the Kampo Mido backend. It
// serves the same routes with the same mixed envelope shapes the real API
// produces, so the façades and the response resolver can be exercised against
// realistic traffic without a deployed backend. Magic record IDs force error
// statuses on demand, the same way the registry mocks use magic national IDs.
package apitest

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mssola/useragent"
)

// TokenTTL is the lifetime of issued bearer tokens.
const TokenTTL = time.Hour

// Server is the fake backend. It implements http.Handler and is safe for
// concurrent use.
type Server struct {
	router *chi.Mux
	store  *store
	secret []byte
	logger *slog.Logger
}

// New builds a seeded fake backend.
func New(logger *slog.Logger) *Server {
	s := &Server{
		router: chi.NewRouter(),
		store:  seedStore(),
		secret: []byte(uuid.NewString()),
		logger: logger,
	}
	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(s.logRequest)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Post("/auth/logout", s.handleLogout)

			r.Get("/admin/users", s.handleListUsers)
			r.Post("/admin/users/register", s.handleRegisterUser)

			r.Get("/admin/customers/get-all-customers", s.handleListCustomers)
			r.Get("/admin/customers/view-customer/{id}", s.handleGetCustomer)
			r.Post("/admin/customers/add-customer", s.handleAddCustomer)
			r.Put("/admin/customers/update-customer/{id}", s.handleUpdateCustomer)
			r.Delete("/admin/customers/delete-customer/{id}", s.handleDeleteCustomer)
			r.Get("/admin/customers/check/{userId}", s.handleCustomerExists)

			r.Get("/admin/deposits/get-all", s.handleListDeposits)
			r.Get("/admin/deposits/view/{id}", s.handleGetDeposit)
			r.Put("/admin/deposits/update/{id}", s.handleUpdateDeposit)
			r.Put("/admin/deposits/approve/{id}", s.handleApproveDeposit)
			r.Put("/admin/deposits/reject/{id}", s.handleRejectDeposit)
			r.Delete("/admin/deposits/delete/{id}", s.handleDeleteDeposit)

			r.Get("/admin/withdrawals/get-all", s.handleListWithdrawals)
			r.Get("/admin/withdrawals/view/{id}", s.handleGetWithdrawal)
			r.Put("/admin/withdrawals/approve/{id}", s.handleApproveWithdrawal)
			r.Put("/admin/withdrawals/reject/{id}", s.handleRejectWithdrawal)
			r.Delete("/admin/withdrawals/delete/{id}", s.handleDeleteWithdrawal)

			r.Get("/admin/kyc/get-all", s.handleListKYC)
			r.Get("/admin/kyc/view/{id}", s.handleGetKYC)
			r.Put("/admin/kyc/update-status/{id}", s.handleUpdateKYCStatus)
			r.Post("/admin/kyc/request-reupload/{id}", s.handleKYCReupload)

			r.Get("/admin/gold-rate", s.handleGetGoldRate)
			r.Put("/admin/gold-rate", s.handleUpdateGoldRate)

			r.Get("/admin/notifications", s.handleListNotifications)
			r.Patch("/admin/notifications/{id}/read", s.handleMarkRead)
			r.Patch("/admin/notifications/read-all", s.handleMarkAllRead)
			r.Get("/notifications", s.handleListNotifications)
			r.Patch("/notifications/{id}/read", s.handleMarkRead)
			r.Patch("/notifications/read-all", s.handleMarkAllRead)

			r.Get("/customer/statements", s.handleListStatements)
			r.Get("/customer/statements/{id}/download", s.handleDownloadStatement)

			r.Get("/admin/reports/ledger", s.handleLedger)
			r.Get("/admin/dashboard/summary", s.handleDashboardSummary)
		})
	})
}

// logRequest records each call with its parsed device, the way the audit
// trail on the real backend does.
func (s *Server) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua := useragent.New(r.UserAgent())
		browser, _ := ua.Browser()
		s.logger.Debug("fake api request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("os", ua.OS()),
			slog.String("browser", browser),
		)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			s.writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		_, err := jwt.Parse(raw, func(*jwt.Token) (any, error) {
			return s.secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			s.writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// IssueToken mints a valid bearer token directly, for tests that want to skip
// the login round trip.
func (s *Server) IssueToken(role string) string {
	claims := jwt.MapClaims{
		"sub":  uuid.NewString(),
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(TokenTTL).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		panic(err)
	}
	return signed
}

// forced maps magic path IDs to a canned error response. Returns true when it
// wrote one.
func (s *Server) forced(w http.ResponseWriter, id string) bool {
	switch id {
	case IDNotFound:
		s.writeError(w, http.StatusNotFound, "record not found")
	case IDUnauthorized:
		s.writeError(w, http.StatusUnauthorized, "session expired")
	case IDBusinessRule:
		s.writeError(w, http.StatusUnprocessableEntity, "operation not allowed in current state")
	case IDServerError:
		s.writeError(w, http.StatusInternalServerError, "internal error")
	default:
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]any{
		"success": false,
		"message": message,
	})
}

func (s *Server) writeValidationError(w http.ResponseWriter, fields map[string]string) {
	s.writeJSON(w, http.StatusBadRequest, map[string]any{
		"success": false,
		"message": "validation failed",
		"errors":  fields,
	})
}

func decodeBody[T any](r *http.Request) (T, error) {
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		return v, fmt.Errorf("decode request body: %w", err)
	}
	return v, nil
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
