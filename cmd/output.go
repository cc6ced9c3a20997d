package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bnema/notevault-cli/internal/application"
	"github.com/bnema/notevault-cli/internal/domain"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
)

const (
	opRequireSession = "require session"
	msgNotLoggedIn   = "You are not logged in. Run `nv login` first."
)

// busy runs work behind a spinner on interactive terminals and directly
// otherwise.
func busy(cmd *cobra.Command, app *app, label string, work func(cmd *cobra.Command) error) error {
	if !app.spinner {
		return work(cmd)
	}

	return runBusySpinner(cmd.Context(), cmd.ErrOrStderr(), label, func(context.Context) error {
		return work(cmd)
	})
}

// requireSession restores the persisted session if no restore has run yet
// and fails when nobody is logged in.
func requireSession(ctx context.Context, app *app) error {
	if !app.session.Restored() {
		app.session.Restore(ctx)
	}
	if !app.session.Authenticated() {
		return &application.OperationError{Op: opRequireSession, Message: msgNotLoggedIn, Err: domain.ErrNotAuthenticated}
	}
	return nil
}

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func printLine(cmd *cobra.Command, message string) error {
	_, err := fmt.Fprintln(cmd.OutOrStdout(), message)
	return err
}

// reportWrite prints the success message of a note write. A failed refresh
// after an accepted write is a warning, not a failure.
func reportWrite(cmd *cobra.Command, message string, err error) error {
	var reconcileErr *application.ReconcileError
	if err != nil && !errors.As(err, &reconcileErr) {
		return err
	}

	if printErr := printLine(cmd, message); printErr != nil {
		return printErr
	}
	if reconcileErr != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", reconcileErr.Err)
	}

	return nil
}

type noteJSON struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

func notesToJSON(notes []domain.Note) []noteJSON {
	out := make([]noteJSON, 0, len(notes))
	for _, note := range notes {
		entry := noteJSON{ID: string(note.ID), Title: note.Title, Content: note.Content}
		if !note.CreatedAt.IsZero() {
			createdAt := note.CreatedAt
			entry.CreatedAt = &createdAt
		}
		if !note.UpdatedAt.IsZero() {
			updatedAt := note.UpdatedAt
			entry.UpdatedAt = &updatedAt
		}
		out = append(out, entry)
	}
	return out
}

type userJSON struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func userToJSON(user domain.User) userJSON {
	return userJSON{ID: string(user.ID), Name: user.Name, Email: user.Email}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(f.Fd())
}

// readSecret resolves a password from the flag, a line on stdin, or an
// interactive no-echo prompt, in that order.
func readSecret(cmd *cobra.Command, flagValue string, fromStdin bool, prompt string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && !fromStdin && term.IsTerminal(f.Fd()) {
		_, _ = fmt.Fprint(cmd.ErrOrStderr(), prompt)
		secret, err := term.ReadPassword(f.Fd())
		_, _ = fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(secret), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password from stdin: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
