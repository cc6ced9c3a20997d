package notes

import (
	"strings"
	"testing"
	"time"

	"github.com/bnema/notevault-cli/internal/application"
	"github.com/bnema/notevault-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderNotesCollection(t *testing.T) {
	now := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)

	output, err := Render(application.NotesSnapshot{
		Notes: []domain.Note{
			{ID: "n1", Title: "Groceries", Content: "milk\neggs", UpdatedAt: now.Add(-3 * time.Hour)},
			{ID: "n2", Title: "Ideas", Content: "write a cli", CreatedAt: now.Add(-2 * 24 * time.Hour)},
		},
		Loaded:       true,
		LastSyncedAt: now.Add(-30 * time.Second),
	}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "notes: 2")
	assert.Contains(t, output, "synced just now")
	assert.Contains(t, output, "Groceries")
	assert.Contains(t, output, "(n1)")
	assert.Contains(t, output, "milk eggs")
	assert.Contains(t, output, "updated 3 hours ago")
	assert.Contains(t, output, "created 2 days ago")
}

func TestRenderEmptyCollection(t *testing.T) {
	output, err := Render(application.NotesSnapshot{Loaded: true}, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "notes: 0")
	assert.Contains(t, output, "No notes yet.")
	assert.NotContains(t, output, "synced")
}

func TestRenderFullContentKeepsLineBreaks(t *testing.T) {
	output, err := Render(application.NotesSnapshot{
		Notes: []domain.Note{{ID: "n1", Title: "T", Content: "line one\nline two"}},
	}, RenderOptions{Full: true})

	require.NoError(t, err)
	assert.Contains(t, output, "line one")
	assert.Contains(t, output, "line two")
	assert.NotContains(t, output, "line one line two")
}

func TestPreviewTruncates(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", preview("  short ", 10))
	assert.Equal(t, "abcd…", preview("abcdefgh", 5))
	assert.Equal(t, strings.Repeat("é", 3)+"…", preview(strings.Repeat("é", 10), 4))
}

func TestFormatRelative(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)
	tests := []struct {
		at   time.Time
		want string
	}{
		{at: now.Add(-10 * time.Second), want: "just now"},
		{at: now.Add(-1 * time.Minute), want: "1 minute ago"},
		{at: now.Add(-45 * time.Minute), want: "45 minutes ago"},
		{at: now.Add(-25 * time.Hour), want: "1 day ago"},
		{at: now.Add(-60 * 24 * time.Hour), want: "16 Dec 2025"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, formatRelative(tc.at, now))
	}
}

func TestRenderSession(t *testing.T) {
	t.Parallel()

	assert.Contains(t, RenderSession(domain.Session{}), "Not logged in.")

	output := RenderSession(domain.Session{
		User:  domain.User{ID: "u1", Email: "a@x.com"},
		Token: "T",
	})
	assert.Contains(t, output, "a@x.com")
	assert.Contains(t, output, "id: u1")
}

func TestRenderSettings(t *testing.T) {
	t.Parallel()

	output := RenderSettings(domain.DefaultSettings("/home/ann").Values(), "/home/ann/.notevault/config.toml")
	assert.Contains(t, output, "api.base_url: http://localhost:5000/api")
	assert.Contains(t, output, "session.backend: chain")
	assert.Contains(t, output, "config.toml")
}
