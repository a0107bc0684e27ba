package model

import (
	"errors"
	"fmt"
)

// Common errors used across the application
var (
	// Lookup errors
	ErrUserNotFound = errors.New("user not found")
	ErrPostNotFound = errors.New("post not found")
	ErrGameNotFound = errors.New("game not found")

	// Authorization errors
	ErrForbidden = errors.New("forbidden")

	// Auth errors
	ErrUsernameTaken     = errors.New("username already registered")
	ErrIncorrectUsername = errors.New("incorrect username")
	ErrIncorrectPassword = errors.New("incorrect password")

	// Game errors
	ErrGameResolved = errors.New("game has already been resolved")
)

// ValidationError carries a message meant to be shown to the user
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Invalid creates a ValidationError with the given user-facing message
func Invalid(message string) error {
	return &ValidationError{Message: message}
}

// PersistenceError wraps a failure from the storage layer
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Persistence wraps err as a PersistenceError unless it is nil or already
// one of the domain errors above
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	var pe *PersistenceError
	if errors.As(err, &pe) || IsDomainError(err) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}

// IsDomainError reports whether err is one of the expected, user-facing
// error conditions rather than an infrastructure failure
func IsDomainError(err error) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return true
	}
	for _, target := range []error{
		ErrUserNotFound, ErrPostNotFound, ErrGameNotFound, ErrForbidden,
		ErrUsernameTaken, ErrIncorrectUsername, ErrIncorrectPassword, ErrGameResolved,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err is any of the lookup errors
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrPostNotFound) || errors.Is(err, ErrGameNotFound)
}
