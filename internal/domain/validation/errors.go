package validation

import (
	"errors"
)

// Sentinel kinds for participant validation failures. Every *Error unwraps to one of them.
var (
	ErrInvalidScore = errors.New("invalid personality score")
	ErrInvalidRole  = errors.New("invalid role")
	ErrInvalidAge   = errors.New("invalid age")
	ErrInvalidSkill = errors.New("invalid skill level")
	ErrInvalidEmail = errors.New("invalid email")
	ErrInvalidName  = errors.New("invalid name")
	ErrInvalidGame  = errors.New("invalid game")
)

// Error describes a single rejected field.
type Error struct {
	Field   string
	Message string
	kind    error
}

func (e *Error) Error() string { return e.Field + ": " + e.Message }

// Unwrap exposes the sentinel kind for errors.Is.
func (e *Error) Unwrap() error { return e.kind }

func newError(kind error, field, message string) *Error {
	return &Error{Field: field, Message: message, kind: kind}
}
