package ports

import (
	"context"

	"github.com/bnema/notevault-cli/internal/domain"
)

// TokenSource yields the bearer token to attach to the next request. It is
// consulted on every call and never cached by callers.
type TokenSource interface {
	Token() string
}

// APIError is implemented by errors carrying a server response.
type APIError interface {
	error
	StatusCode() int
	ServerMessage() string
}

type AuthAPI interface {
	Login(ctx context.Context, email, password string) (domain.Session, error)
	Register(ctx context.Context, registration domain.Registration) error
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, resetToken, password string) (string, error)
	UpdateProfile(ctx context.Context, name, email string) (domain.User, error)
}

type NotesAPI interface {
	ListNotes(ctx context.Context) ([]domain.Note, error)
	CreateNote(ctx context.Context, input domain.NoteInput) error
	UpdateNote(ctx context.Context, id domain.NoteID, input domain.NoteInput) error
	DeleteNote(ctx context.Context, id domain.NoteID) error
}
