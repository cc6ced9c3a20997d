package application

import (
	"time"

	"github.com/bnema/notevault-cli/internal/domain"
)

// NotesSnapshot is a consistent read of NotesManager state.
type NotesSnapshot struct {
	Notes        []domain.Note
	Loaded       bool
	LastSyncedAt time.Time
	Busy         map[Action]bool
}
