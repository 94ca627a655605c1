package services

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrAccessDenied = errors.New("access denied")
	ErrBadRequest   = errors.New("bad request")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)

// AppError carries a client-facing message; Kind decides the HTTP status.
type AppError struct {
	Kind    error
	Message string
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Kind }

func NotFound(msg string) error     { return &AppError{Kind: ErrNotFound, Message: msg} }
func AccessDenied(msg string) error { return &AppError{Kind: ErrAccessDenied, Message: msg} }
func BadRequest(msg string) error   { return &AppError{Kind: ErrBadRequest, Message: msg} }
func Conflict(msg string) error     { return &AppError{Kind: ErrConflict, Message: msg} }
func Unauthorized(msg string) error { return &AppError{Kind: ErrUnauthorized, Message: msg} }

// Emitter is the publishing half of events.Bus.
type Emitter interface {
	Emit(name string, payload any)
}
