package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/notevault-cli/internal/domain"
)

// flexibleID accepts identifiers sent either as JSON strings or numbers.
type flexibleID string

func (id *flexibleID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*id = ""
		return nil
	}

	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*id = flexibleID(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("identifier must be a string or number: %w", err)
	}
	*id = flexibleID(n.String())
	return nil
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type passwordRequest struct {
	Password string `json:"password"`
}

type profileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type noteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type userPayload struct {
	MongoID flexibleID `json:"_id"`
	ID      flexibleID `json:"id"`
	Name    string     `json:"name"`
	Email   string     `json:"email"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *userPayload `json:"user"`
}

type profileResponse struct {
	User *userPayload `json:"user"`
}

type notePayload struct {
	MongoID   flexibleID `json:"_id"`
	ID        flexibleID `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

func (u userPayload) toDomain() domain.User {
	return domain.User{
		ID:    domain.UserID(preferredID(u.MongoID, u.ID)),
		Name:  u.Name,
		Email: u.Email,
	}
}

func (n notePayload) toDomain() domain.Note {
	note := domain.Note{
		ID:      domain.NoteID(preferredID(n.MongoID, n.ID)),
		Title:   n.Title,
		Content: n.Content,
	}
	if n.CreatedAt != nil {
		note.CreatedAt = *n.CreatedAt
	}
	if n.UpdatedAt != nil {
		note.UpdatedAt = *n.UpdatedAt
	}

	return note
}

func preferredID(mongoID, id flexibleID) string {
	if mongoID != "" {
		return string(mongoID)
	}
	return string(id)
}

// decodeNoteList accepts both `{"notes":[...]}` and a bare `[...]`.
func decodeNoteList(raw json.RawMessage) ([]domain.Note, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, errors.New("notes response is empty")
	}

	var payloads []notePayload
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &payloads); err != nil {
			return nil, fmt.Errorf("decode notes list: %w", err)
		}
	case '{':
		var wrapped map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return nil, fmt.Errorf("decode notes object: %w", err)
		}
		field, ok := wrapped["notes"]
		if !ok {
			return nil, errors.New("notes response has no notes field")
		}
		if err := json.Unmarshal(field, &payloads); err != nil {
			return nil, fmt.Errorf("decode notes field: %w", err)
		}
	default:
		return nil, fmt.Errorf("notes response must be a list or an object, got %q", trimmed[:1])
	}

	notes := make([]domain.Note, 0, len(payloads))
	for i, payload := range payloads {
		note := payload.toDomain()
		if note.ID == "" {
			return nil, fmt.Errorf("note at index %d has no id", i)
		}
		notes = append(notes, note)
	}

	return notes, nil
}
