package opendota

import (
	"errors"
	"fmt"
)

// Code classifies request failures so callers can branch on the kind of
// failure rather than on message text.
type Code string

// Error codes for the failure kinds the client distinguishes.
const (
	// CodeNotFound means the requested resource does not exist (HTTP 404).
	CodeNotFound Code = "NOT_FOUND"

	// CodeRateLimited means the service rejected the call over quota (HTTP 429).
	CodeRateLimited Code = "RATE_LIMITED"

	// CodeAPI covers every other unexpected status. The response body text
	// is carried on the error.
	CodeAPI Code = "API_ERROR"

	// CodeTransport covers failures before any status line was received:
	// connection errors, timeouts, interrupted waits.
	CodeTransport Code = "TRANSPORT_ERROR"

	// CodeConfig marks invalid client construction options.
	CodeConfig Code = "INVALID_CONFIG"
)

// Error is a structured request error with a code and optional cause.
type Error struct {
	Code       Code   // machine-readable failure kind
	StatusCode int    // HTTP status, 0 when no response was received
	Message    string // human-readable message
	Body       string // response body text, set for CodeAPI
	Cause      error  // underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// newError creates an Error with the given code and formatted message.
func newError(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// wrapError creates an Error wrapping an existing error.
func wrapError(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// HasCode reports whether err carries the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsNotFound reports whether err means the resource does not exist.
func IsNotFound(err error) bool {
	return HasCode(err, CodeNotFound)
}

// IsRateLimited reports whether err means the service rejected the call
// over quota.
func IsRateLimited(err error) bool {
	return HasCode(err, CodeRateLimited)
}

// IsTransport reports whether err means the call never produced a response.
func IsTransport(err error) bool {
	return HasCode(err, CodeTransport)
}
