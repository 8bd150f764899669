// Package apperrors defines the error taxonomy shared by the service and
// handler layers. Services return *Error values; only handlers translate
// them into HTTP status codes via HTTPStatus.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error category.
type Code string

const (
	CodeUnauthenticated  Code = "UNAUTHENTICATED"
	CodeUnauthorized     Code = "UNAUTHORIZED"
	CodeValidation       Code = "VALIDATION"
	CodeNotFound         Code = "NOT_FOUND"
	CodeMethodNotAllowed Code = "METHOD_NOT_ALLOWED"
	CodeInternal         Code = "INTERNAL"
)

// HTTPStatus maps a code to its HTTP status.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeUnauthorized:
		return http.StatusForbidden
	case CodeValidation:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// Error is a categorized error. Message is safe to show to clients; Detail
// is an optional short description rendered as the "error" field.
type Error struct {
	Code    Code
	Message string
	Detail  string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches any *Error carrying the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

func (e *Error) HTTPStatus() int { return e.Code.HTTPStatus() }

// WithDetail returns a copy with the client-visible detail set.
func (e *Error) WithDetail(detail string) *Error {
	return &Error{Code: e.Code, Message: e.Message, Detail: detail, cause: e.cause}
}

// WithCause returns a copy wrapping err. The cause is never rendered to clients.
func (e *Error) WithCause(err error) *Error {
	return &Error{Code: e.Code, Message: e.Message, Detail: e.Detail, cause: err}
}

// Sentinels for errors.Is.
var (
	ErrUnauthenticated  = &Error{Code: CodeUnauthenticated, Message: "No token provided"}
	ErrUnauthorized     = &Error{Code: CodeUnauthorized, Message: "Access denied"}
	ErrValidation       = &Error{Code: CodeValidation, Message: "validation error"}
	ErrNotFound         = &Error{Code: CodeNotFound, Message: "not found"}
	ErrMethodNotAllowed = &Error{Code: CodeMethodNotAllowed, Message: "Method not allowed"}
	ErrInternal         = &Error{Code: CodeInternal, Message: "Server error"}
)

func Unauthenticated(msg string) *Error { return &Error{Code: CodeUnauthenticated, Message: msg} }
func Unauthorized(msg string) *Error    { return &Error{Code: CodeUnauthorized, Message: msg} }
func Validation(msg string) *Error      { return &Error{Code: CodeValidation, Message: msg} }
func NotFound(msg string) *Error        { return &Error{Code: CodeNotFound, Message: msg} }
func MethodNotAllowed() *Error          { return ErrMethodNotAllowed }

// Internal wraps an unexpected failure. detail should be a short,
// non-sensitive description such as "storage unavailable".
func Internal(detail string, cause error) *Error {
	return &Error{Code: CodeInternal, Message: "Server error", Detail: detail, cause: cause}
}

// From returns err as an *Error, classifying unknown errors as internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal("unexpected failure", err)
}
