package errors

import (
	"errors"
	"fmt"
)

// ErrorCode is a stable, machine-readable failure code.
type ErrorCode string

const (
	// InvalidInput indicates the caller sent a malformed or out-of-range request
	InvalidInput ErrorCode = "INVALID_INPUT"
	// NotFound indicates the requested record does not exist
	NotFound ErrorCode = "NOT_FOUND"
	// Conflict indicates the request clashes with existing state
	Conflict ErrorCode = "CONFLICT"
	// Unavailable indicates a dependency such as the LLM provider is down
	Unavailable ErrorCode = "UNAVAILABLE"
	// InternalError indicates an unexpected failure
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FieldError describes one invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a coded error carrying optional details and an underlying cause.
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details any       `json:"details,omitempty"`
	cause   error     // not exported to JSON
}

// New creates an Error.
func New(code ErrorCode, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// WithDetails attaches details and returns e.
func (e *Error) WithDetails(details any) *Error {
	e.Details = details
	return e
}

// Invalid returns an InvalidInput error with per-field details.
func Invalid(message string, fields ...FieldError) *Error {
	e := New(InvalidInput, message, nil)
	if len(fields) > 0 {
		e.Details = fields
	}
	return e
}

// NotFoundf returns a NotFound error with a formatted message.
func NotFoundf(format string, args ...any) *Error {
	return New(NotFound, fmt.Sprintf(format, args...), nil)
}

// Internal wraps cause as an InternalError.
func Internal(message string, cause error) *Error {
	return New(InternalError, message, cause)
}

// CodeOf returns the code of the first *Error in err's chain, or
// InternalError when there is none.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return InternalError
}

// IsNotFound reports whether err carries the NotFound code.
func IsNotFound(err error) bool {
	return err != nil && CodeOf(err) == NotFound
}
