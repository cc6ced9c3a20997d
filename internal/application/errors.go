package application

import (
	"errors"
	"fmt"

	"github.com/bnema/notevault-cli/internal/domain"
	"github.com/bnema/notevault-cli/internal/ports"
)

// OperationError is what every failed user-level operation returns. Message
// is safe to show to the user: the server's message when it sent one,
// otherwise a fixed fallback for the operation.
type OperationError struct {
	Op      string
	Message string
	Err     error
}

func (e *OperationError) Error() string {
	return e.Message
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

func newOperationError(op, fallback string, err error) *OperationError {
	return &OperationError{Op: op, Message: userMessage(fallback, err), Err: err}
}

func userMessage(fallback string, err error) string {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}
	if errors.Is(err, domain.ErrOperationInFlight) {
		return msgInFlight
	}
	if errors.Is(err, domain.ErrNotAuthenticated) {
		return msgNotAuthenticated
	}

	var apiErr ports.APIError
	if errors.As(err, &apiErr) && apiErr.ServerMessage() != "" {
		return apiErr.ServerMessage()
	}

	return fallback
}

// ReconcileError reports that a write was accepted by the server but the
// follow-up list failed, so the local collection still holds the previous
// snapshot.
type ReconcileError struct {
	Op  string
	Err error
}

func (e *ReconcileError) Error() string {
	return fmt.Sprintf("%s succeeded but refreshing notes failed: %v", e.Op, e.Err)
}

func (e *ReconcileError) Unwrap() error {
	return e.Err
}
