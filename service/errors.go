package service

import "errors"

// Error classes checked at the handler boundary with errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrValidation = errors.New("validation failed")
)

// Error pairs an error class with a caller-facing message.
type Error struct {
	class   error
	message string
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) Unwrap() error {
	return e.class
}

func notFound(message string) error {
	return &Error{class: ErrNotFound, message: message}
}

func forbidden(message string) error {
	return &Error{class: ErrForbidden, message: message}
}

func invalid(message string) error {
	return &Error{class: ErrValidation, message: message}
}
