package domain

import "errors"

var (
	ErrValidation        = errors.New("validation failed")
	ErrInvalidSession    = errors.New("session requires both a user and a token")
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrUnauthorized      = errors.New("credential rejected by server")
	ErrOperationInFlight = errors.New("operation already in progress")
	ErrNoteNotFound      = errors.New("note not found")
	ErrSessionChanged    = errors.New("session changed while the request was in flight")
	ErrSecretNotFound    = errors.New("secret not found")
	ErrUnknownSetting    = errors.New("unknown setting")
)

// ValidationError is a local precondition failure detected before any
// request is issued. Message is meant for the end user.
type ValidationError struct {
	Message string
}

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
