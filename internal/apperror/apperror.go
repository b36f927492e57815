package apperror

import (
	"errors"
	"fmt"
)

// Sentinel errors for the four failure classes the API distinguishes.
// Handlers map them to HTTP status codes; everything else is a 500.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrRemote     = errors.New("remote service failed")
)

// AppError carries a sentinel plus a human-readable message. errors.Is
// matching works through Unwrap.
type AppError struct {
	Err     error
	Message string
	Field   string // optional, the input field that failed validation
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ValidationFailed reports malformed input before any store call is made.
func ValidationFailed(field, message string) *AppError {
	return &AppError{Err: ErrValidation, Message: message, Field: field}
}

// NotFound reports that the store holds no matching row. When a query is
// scoped to the acting user this also covers rows owned by someone else.
func NotFound(resource string, id any) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s %v not found", resource, id),
	}
}

// Conflict reports a unique-constraint violation, e.g. a duplicate follow edge.
func Conflict(message string) *AppError {
	return &AppError{Err: ErrConflict, Message: message}
}

// Remote wraps a network or provider failure. State prior to the call is
// unchanged and the caller may simply retry the action.
func Remote(service string, err error) *AppError {
	return &AppError{
		Err:     ErrRemote,
		Message: fmt.Sprintf("%s request failed: %v", service, err),
	}
}
