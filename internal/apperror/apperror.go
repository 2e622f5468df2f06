package apperror

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Handlers map these to HTTP status codes with
// errors.Is, so repositories and handlers never deal in status codes
// directly.
var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation error")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrStore              = errors.New("store error")
)

// AppError carries a typed error kind together with a message safe to
// return to the client.
type AppError struct {
	Err     error  // one of the sentinel kinds above
	Message string // human-readable, client-facing
	Field   string // optional: field causing a validation failure
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports that a record does not exist for an operation that
// requires it to.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

// ValidationFailed reports a request body or form field violating a
// required-field or whitelist constraint.
func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// InvalidCredentials is returned for both an unknown email and a wrong
// password so a caller cannot probe which accounts exist.
func InvalidCredentials() *AppError {
	return &AppError{
		Err:     ErrInvalidCredentials,
		Message: "Invalid Credentials!",
	}
}

// Unauthenticated reports a missing, malformed, expired or otherwise
// unverifiable bearer token.
func Unauthenticated(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthenticated,
		Message: message,
	}
}

// Store wraps an underlying document-store failure. The original cause
// stays reachable through the chain for logging; the client only ever
// sees the generic message.
func Store(err error) *AppError {
	return &AppError{
		Err:     fmt.Errorf("%w: %w", ErrStore, err),
		Message: "Please try again later!",
	}
}
