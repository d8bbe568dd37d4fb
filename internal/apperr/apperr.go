package apperr

import (
	"errors"
	"net/http"
)

// Error kinds. Handlers wrap user-facing messages around one of these so
// the HTTP layer can pick a status code without string matching.
var (
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
	ErrAuth       = errors.New("unauthorized")
	ErrNotFound   = errors.New("not found")
)

type Error struct {
	kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Is(target error) bool { return e.kind == target }

func (e *Error) Status() int {
	switch e.kind {
	case ErrValidation, ErrConflict:
		return http.StatusBadRequest
	case ErrAuth:
		return http.StatusUnauthorized
	case ErrNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func Validation(msg string) *Error { return &Error{kind: ErrValidation, Message: msg} }
func Conflict(msg string) *Error   { return &Error{kind: ErrConflict, Message: msg} }
func Auth(msg string) *Error       { return &Error{kind: ErrAuth, Message: msg} }
func NotFound(msg string) *Error   { return &Error{kind: ErrNotFound, Message: msg} }
