package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrAlreadyExists is returned when a resource already exists
	ErrAlreadyExists = errors.New("resource already exists")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when a unique field collides or a referenced
	// record blocks the requested state change
	ErrConflict = errors.New("conflict occurred")

	// ErrInternal is returned when an internal error occurs
	ErrInternal = errors.New("internal error")
)

// Error is a domain error with a message meant for the API caller.
// It matches its Kind with errors.Is.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Message)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// NewError creates a domain error of the given kind
func NewError(kind error, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// NotFound is shorthand for NewError(ErrNotFound, ...)
func NotFound(format string, args ...interface{}) *Error {
	return NewError(ErrNotFound, format, args...)
}

// Conflict is shorthand for NewError(ErrConflict, ...)
func Conflict(format string, args ...interface{}) *Error {
	return NewError(ErrConflict, format, args...)
}

// Invalid is shorthand for NewError(ErrInvalidInput, ...)
func Invalid(format string, args ...interface{}) *Error {
	return NewError(ErrInvalidInput, format, args...)
}

// Message returns the caller-facing message of err, or fallback when err
// carries none.
func Message(err error, fallback string) string {
	var domainErr *Error
	if errors.As(err, &domainErr) && domainErr.Message != "" {
		return domainErr.Message
	}
	return fallback
}

// NotFoundAs replaces a bare ErrNotFound with a NotFound error carrying a
// message. Any other error is returned unchanged.
func NotFoundAs(err error, format string, args ...interface{}) error {
	if errors.Is(err, ErrNotFound) {
		var domainErr *Error
		if errors.As(err, &domainErr) {
			return err
		}
		return NotFound(format, args...)
	}
	return err
}
