package domain

import (
	"strings"
	"time"
)

type NoteID string

// Note is a record as last confirmed by the server. The client never carries
// an owner field; ownership is implied by the token.
type Note struct {
	ID        NoteID
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NoteInput is a validated title/content pair ready to be sent.
type NoteInput struct {
	Title   string
	Content string
}

const msgNoteFieldsRequired = "Please fill in both title and content."

func NewNoteInput(title, content string) (NoteInput, error) {
	input := NoteInput{
		Title:   strings.TrimSpace(title),
		Content: strings.TrimSpace(content),
	}
	if input.Title == "" || input.Content == "" {
		return NoteInput{}, NewValidationError(msgNoteFieldsRequired)
	}

	return input, nil
}

func FindNote(notes []Note, id NoteID) (Note, bool) {
	for _, note := range notes {
		if note.ID == id {
			return note, true
		}
	}
	return Note{}, false
}

// WithoutNote returns a copy of notes minus every entry whose ID equals id.
func WithoutNote(notes []Note, id NoteID) []Note {
	kept := make([]Note, 0, len(notes))
	for _, note := range notes {
		if note.ID == id {
			continue
		}
		kept = append(kept, note)
	}
	return kept
}
