// Package apperr defines the error kinds the service layer is allowed to
// surface. Handlers translate each kind into a status code; anything the
// storage layer throws that is not one of these gets wrapped into a
// ProcessingError so internals never leak to clients.
package apperr

import (
	"errors"
	"fmt"
)

// NotFoundError means the entity is absent or not owned by the caller. The
// two cases are deliberately indistinguishable.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// UnauthorizedError covers bad credentials and bad or missing token subjects.
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string { return e.Message }

// ValidationError aggregates every violated rule keyed by field. Rules never
// short-circuit; the caller sees the complete set at once.
type ValidationError struct {
	Errors map[string][]string
}

func (e *ValidationError) Error() string { return "validation failed" }

// ConflictError signals a concurrent modification detected by the storage
// layer's version check. Retry policy belongs to the caller.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// ProcessingError hides an unexpected storage failure behind a generic
// message. The underlying cause is kept for logging only.
type ProcessingError struct {
	Message string
	Cause   error
}

func (e *ProcessingError) Error() string { return e.Message }

func (e *ProcessingError) Unwrap() error { return e.Cause }

func NotFound(format string, args ...any) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(message string) error {
	return &UnauthorizedError{Message: message}
}

func Validation(errs map[string][]string) error {
	return &ValidationError{Errors: errs}
}

func Conflict(message string) error {
	return &ConflictError{Message: message}
}

func Processing(message string, cause error) error {
	return &ProcessingError{Message: message, Cause: cause}
}

func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

func IsUnauthorized(err error) bool {
	var e *UnauthorizedError
	return errors.As(err, &e)
}

func IsConflict(err error) bool {
	var e *ConflictError
	return errors.As(err, &e)
}

// AsValidation returns the field map when err is a ValidationError.
func AsValidation(err error) (map[string][]string, bool) {
	var e *ValidationError
	if errors.As(err, &e) {
		return e.Errors, true
	}
	return nil, false
}
