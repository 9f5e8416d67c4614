package models

import (
	"errors"
	"fmt"
)

// Error taxonomy roots. Every error returned by services wraps exactly one of them.
var (
	ErrValidation      = errors.New("validation error")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("resource not found")
	ErrConflict        = errors.New("conflict")
	ErrUpstream        = errors.New("upstream failure")
	ErrTimeout         = errors.New("operation timed out")
)

// Specific errors.
var (
	// NotFound
	ErrUserNotFound    = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrProductNotFound = fmt.Errorf("%w: product not found", ErrNotFound)
	ErrImageNotFound   = fmt.Errorf("%w: image not found", ErrNotFound)
	ErrTagNotFound     = fmt.Errorf("%w: tag not found", ErrNotFound)
	ErrEntryNotFound   = fmt.Errorf("%w: entry not found", ErrNotFound)

	// Conflict
	ErrEmailAlreadyInUse = fmt.Errorf("%w: email already in use", ErrConflict)
	ErrNoFieldsProvided  = fmt.Errorf("%w: no fields to update", ErrConflict)

	// Unauthenticated
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", ErrUnauthenticated)
	ErrTokenInvalid       = fmt.Errorf("%w: token is invalid", ErrUnauthenticated)
	ErrTokenMalformed     = fmt.Errorf("%w: token is malformed", ErrUnauthenticated)
	ErrTokenExpired       = fmt.Errorf("%w: token has expired", ErrUnauthenticated)
	ErrTokenRevoked       = fmt.Errorf("%w: token has been revoked", ErrUnauthenticated)

	// Upstream
	ErrUploadFailed = fmt.Errorf("%w: upload failed", ErrUpstream)
)

// NewValidationError returns an ErrValidation carrying a client-facing message.
func NewValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
