package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidState  = errors.New("invalid state")
	ErrValidation    = errors.New("invalid input")
	ErrDuplicateName = errors.New("duplicate name")
	ErrNotFound      = errors.New("not found")
	ErrPersistence   = errors.New("persistence failure")

	ErrNoActiveSession     = fmt.Errorf("%w: no active session", ErrInvalidState)
	ErrActiveSessionExists = fmt.Errorf("%w: active session already exists", ErrInvalidState)
	ErrSubjectInUse        = fmt.Errorf("%w: subject has recorded sessions", ErrValidation)
)

// Validation builds an error matching ErrValidation.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// InvalidState builds an error matching ErrInvalidState.
func InvalidState(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidState, fmt.Sprintf(format, args...))
}

// NotFound builds an error matching ErrNotFound for the given kind and key.
func NotFound(kind, key string) error {
	return fmt.Errorf("%s %q: %w", kind, key, ErrNotFound)
}

// PersistenceError wraps a storage failure with the operation that hit it.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

// Persistence wraps err as a PersistenceError, or returns nil.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}
