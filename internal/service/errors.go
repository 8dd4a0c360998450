package service

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the services. Handlers map these onto HTTP
// status codes; everything else surfaces as a 500.
var (
	// ErrNotFound covers both a missing row and an owner mismatch, so a
	// non-owner cannot learn that a row exists.
	ErrNotFound = errors.New("not found")

	// ErrValidation marks input rejected before any write.
	ErrValidation = errors.New("validation failed")

	// ErrEmailTaken is returned when registering or changing to an email
	// that already belongs to another account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is deliberately identical for unknown email
	// and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
