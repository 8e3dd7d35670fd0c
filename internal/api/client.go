// Package api provides the single configured request pipeline every resource
// façade uses to talk to the Kampo Mido backend. It attaches the bearer token
// from the session store, stamps request IDs, and centrally intercepts 401
// responses to force a logout.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"kampomido/internal/platform/metrics"
	"kampomido/internal/session"
	dErrors "kampomido/pkg/domain-errors"
)

// Client is the HTTP client wrapper shared by all façades. It does not retry;
// network and timeout failures propagate to the caller unchanged.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	session        *session.Store
	logger         *slog.Logger
	metrics        *metrics.Metrics
	tracer         trace.Tracer
	onUnauthorized func()
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the overall per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithMetrics wires client-side request metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithOnUnauthorized sets the hook run after a forced logout, typically the
// navigate-to-login action. It runs exactly once per offending response.
func WithOnUnauthorized(fn func()) Option {
	return func(c *Client) {
		c.onUnauthorized = fn
	}
}

// WithTracer injects a pre-configured tracer, useful for testing.
func WithTracer(t trace.Tracer) Option {
	return func(c *Client) {
		c.tracer = t
	}
}

// New creates the client wrapper around baseURL, reading the bearer token from
// sess at request time.
func New(baseURL string, sess *session.Store, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		session:    sess,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tracer == nil {
		c.tracer = otel.Tracer("kampomido/api")
	}
	return c
}

// Response is the decoded-enough result of a successful call. Façades hand the
// raw body to the envelope resolver rather than trusting any one shape.
type Response struct {
	StatusCode int
	Body       []byte
	Header     http.Header
}

// JSON unmarshals the response body into v.
func (r *Response) JSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return dErrors.Wrap(err, dErrors.CodeDecode, "decode response body")
	}
	return nil
}

// Get issues a GET. Query values are built with Filters to keep falsy filter
// values out of the request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, query, nil)
}

// Post issues a POST with a JSON body (nil for no body).
func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, nil, body)
}

// Put issues a PUT with a JSON body (nil for no body).
func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPut, path, nil, body)
}

// Patch issues a PATCH with a JSON body (nil for no body).
func (c *Client) Patch(ctx context.Context, path string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPatch, path, nil, body)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (*Response, error) {
	start := time.Now()
	resource := resourceOf(path)

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "encode request body")
		}
		reader = bytes.NewReader(raw)
	}

	ctx, span := c.tracer.Start(ctx, method+" "+path, trace.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("kampo.resource", resource),
	))

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		span.End()
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "create request")
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(resource, "network_error", start)
		failure := c.transportError(err)
		span.RecordError(failure)
		span.SetStatus(otelcodes.Error, failure.Error())
		span.End()
		c.logger.WarnContext(ctx, "api request failed",
			"method", method, "path", path, "request_id", requestID, "error", err)
		return nil, failure
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe(resource, "read_error", start)
		span.End()
		return nil, dErrors.Wrap(err, dErrors.CodeNetwork, "read response body")
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	span.End()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, c.handleUnauthorized(ctx, path, resource, requestID, raw, start)
	}

	if resp.StatusCode >= 400 {
		c.observe(resource, "error", start)
		return nil, statusError(resp.StatusCode, raw)
	}

	c.observe(resource, "success", start)
	return &Response{StatusCode: resp.StatusCode, Body: raw, Header: resp.Header}, nil
}

// handleUnauthorized implements the global 401 contract: clear the session and
// run the logout hook, except for dashboard summary endpoints, which poll
// optional data that may legitimately 401 without invalidating the session.
func (c *Client) handleUnauthorized(ctx context.Context, path, resource, requestID string, raw []byte, start time.Time) error {
	if isDashboardPath(path) {
		c.observe(resource, "unauthorized_silent", start)
		return statusError(http.StatusUnauthorized, raw)
	}

	c.observe(resource, "unauthorized", start)
	if err := c.session.Clear(); err != nil {
		c.logger.ErrorContext(ctx, "failed to clear session after 401",
			"request_id", requestID, "error", err)
	}
	if c.metrics != nil {
		c.metrics.IncrementForcedLogout()
	}
	c.logger.InfoContext(ctx, "session cleared after 401",
		"path", path, "request_id", requestID)
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
	return statusError(http.StatusUnauthorized, raw)
}

func (c *Client) transportError(err error) error {
	// Covers both caller deadlines and the client's own Timeout, which
	// net/http reports as a wrapped context.DeadlineExceeded.
	if errors.Is(err, context.DeadlineExceeded) {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "request timed out")
	}
	return dErrors.Wrap(err, dErrors.CodeNetwork, "request failed")
}

func (c *Client) observe(resource, outcome string, start time.Time) {
	if c.metrics != nil {
		c.metrics.ObserveRequest(resource, outcome, start)
	}
}

// errorBody is the backend's error envelope. Validation failures additionally
// carry a field -> message map under "errors".
type errorBody struct {
	Message string            `json:"message"`
	Error   string            `json:"error"`
	Errors  map[string]string `json:"errors"`
}

// statusError maps an HTTP failure status to a coded error, mining the body
// for the server's message and any field-level validation map.
func statusError(status int, raw []byte) error {
	var body errorBody
	_ = json.Unmarshal(raw, &body)

	msg := body.Message
	if msg == "" {
		msg = body.Error
	}

	switch {
	case status == http.StatusUnauthorized:
		return &dErrors.Error{Code: dErrors.CodeUnauthorized, Message: msg}
	case status == http.StatusForbidden:
		return &dErrors.Error{Code: dErrors.CodeForbidden, Message: msg}
	case status == http.StatusNotFound:
		return &dErrors.Error{Code: dErrors.CodeNotFound, Message: msg}
	case status == http.StatusTooManyRequests:
		return &dErrors.Error{Code: dErrors.CodeRateLimited, Message: msg}
	case len(body.Errors) > 0:
		return &dErrors.Error{Code: dErrors.CodeValidation, Message: msg, Fields: body.Errors}
	case status == http.StatusConflict || status == http.StatusUnprocessableEntity:
		return &dErrors.Error{Code: dErrors.CodeBusinessRule, Message: msg}
	case status >= 500:
		return &dErrors.Error{Code: dErrors.CodeServer, Message: msg}
	default:
		return &dErrors.Error{Code: dErrors.CodeBusinessRule, Message: msg}
	}
}

// isDashboardPath marks the summary endpoints allowed to fail silently on 401.
func isDashboardPath(path string) bool {
	return strings.HasPrefix(path, "/admin/dashboard") ||
		strings.HasPrefix(path, "/customer/dashboard")
}

// resourceOf derives a stable metrics label from the request path.
func resourceOf(path string) string {
	for _, segment := range strings.Split(strings.TrimPrefix(path, "/"), "/") {
		if segment == "" || segment == "admin" || segment == "customer" {
			continue
		}
		return segment
	}
	return "unknown"
}
