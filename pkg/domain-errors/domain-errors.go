package domainerrors

import "errors"

// Code represents a client-observed failure category independent of transport.
// These codes describe what went wrong from the caller's point of view, not
// which HTTP status the backend happened to return.
type Code string

const (
	CodeNetwork      Code = "network_error"   // request never reached/returned from the server
	CodeTimeout      Code = "timeout"         // request exceeded the client deadline
	CodeUnauthorized Code = "unauthorized"    // 401 - handled globally by the API client
	CodeForbidden    Code = "forbidden"       // 403
	CodeNotFound     Code = "not_found"       // 404
	CodeValidation   Code = "validation_failed" // 4xx with a field-level error map
	CodeBusinessRule Code = "business_rule"   // server or local guard rejected the operation
	CodeRateLimited  Code = "rate_limited"    // 429
	CodeDecode       Code = "decode_error"    // response body did not match any known envelope
	CodeServer       Code = "server_error"    // 5xx
	CodeInternal     Code = "internal_error"  // client-side bug or unexpected condition
)

// Error wraps API or client-side failures with a stable code. Service façades
// return it untouched; page-level callers turn it into a single toast message.
type Error struct {
	Code    Code
	Message string
	// Fields carries a server-supplied field-level validation map
	// (field name -> message) for CodeValidation errors.
	Fields map[string]string
	Err    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Code)
}

// Unwrap implements error unwrapping for error chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is enables errors.Is() to match errors by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new error with the given code and message.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// NewValidation creates a validation error carrying a field-error map.
func NewValidation(msg string, fields map[string]string) error {
	return &Error{Code: CodeValidation, Message: msg, Fields: fields}
}

// Wrap creates an error wrapping an existing one. If the wrapped error is
// already a coded error, the original code and field map are preserved.
func Wrap(err error, code Code, msg string) error {
	var existing *Error
	if errors.As(err, &existing) {
		return &Error{Code: existing.Code, Message: msg, Fields: existing.Fields, Err: err}
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// HasCode checks if an error is a coded error with the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// FieldsOf returns the field-error map from a validation error, or nil.
func FieldsOf(err error) map[string]string {
	var e *Error
	if errors.As(err, &e) {
		return e.Fields
	}
	return nil
}

// UserMessage resolves the text shown to the user for err, preferring the
// server-supplied message, then the error's own text, then fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
