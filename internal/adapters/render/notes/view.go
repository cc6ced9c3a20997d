package notes

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/notevault-cli/internal/application"
	"github.com/bnema/notevault-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const defaultPreviewWidth = 72

type RenderOptions struct {
	Now time.Time
	// Full prints whole note bodies instead of a one-line preview.
	Full         bool
	PreviewWidth int
}

func renderNotes(snapshot application.NotesSnapshot, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Notes"),
		s.header.Render(notesHeader(snapshot, opts.Now)),
	}

	if len(snapshot.Notes) == 0 {
		lines = append(lines, s.empty.Render("No notes yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, note := range snapshot.Notes {
		lines = append(lines, s.section.Render(renderNote(note, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func notesHeader(snapshot application.NotesSnapshot, now time.Time) string {
	header := fmt.Sprintf("notes: %d", len(snapshot.Notes))
	if !snapshot.LastSyncedAt.IsZero() && !now.IsZero() {
		header += " · synced " + formatRelative(snapshot.LastSyncedAt, now)
	}
	return header
}

func renderNote(note domain.Note, opts RenderOptions, s styles) string {
	title := lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.heading.Render(note.Title),
		" ",
		s.noteID.Render(fmt.Sprintf("(%s)", note.ID)),
	)

	parts := []string{title, s.content.Render(noteBody(note.Content, opts))}
	if meta := noteMeta(note, opts.Now); meta != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(ageColor(note.UpdatedAt, opts.Now)).Render(meta))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func noteBody(content string, opts RenderOptions) string {
	if opts.Full {
		return content
	}

	width := opts.PreviewWidth
	if width <= 0 {
		width = defaultPreviewWidth
	}
	return preview(content, width)
}

// preview collapses whitespace and cuts to width runes.
func preview(content string, width int) string {
	flat := strings.Join(strings.Fields(content), " ")
	runes := []rune(flat)
	if len(runes) <= width {
		return flat
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}

func noteMeta(note domain.Note, now time.Time) string {
	switch {
	case !note.UpdatedAt.IsZero():
		return "updated " + formatRelative(note.UpdatedAt, now)
	case !note.CreatedAt.IsZero():
		return "created " + formatRelative(note.CreatedAt, now)
	default:
		return ""
	}
}

func formatRelative(at, now time.Time) string {
	if now.IsZero() {
		return at.Format("15:04 on 02 Jan 2006")
	}

	elapsed := now.Sub(at)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return plural(int(elapsed.Minutes()), "minute") + " ago"
	case elapsed < 24*time.Hour:
		return plural(int(elapsed.Hours()), "hour") + " ago"
	case elapsed < 30*24*time.Hour:
		return plural(int(math.Floor(elapsed.Hours()/24)), "day") + " ago"
	default:
		return at.Format("02 Jan 2006")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// ageColor fades from bright white for fresh notes to grey after a week.
func ageColor(at, now time.Time) lipgloss.Color {
	if at.IsZero() || now.IsZero() {
		return lipgloss.Color("245")
	}

	week := 7 * 24 * time.Hour
	inverted := week.Seconds() - now.Sub(at).Seconds()
	return interpolateColor(inverted, 0, week.Seconds())
}

func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	// 240..255 is the upper half of the ANSI greyscale ramp.
	colorCode := int(240.0 + 15.0*normalized)

	return lipgloss.Color(fmt.Sprintf("%d", colorCode))
}

// RenderSession describes who is signed in.
func RenderSession(session domain.Session) string {
	s := newStyles()
	if !session.Authenticated() {
		return s.warning.Render("Not logged in.")
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		s.title.Render(session.User.DisplayName()),
		keyValue(s, "email", session.User.Email),
		keyValue(s, "id", string(session.User.ID)),
	)
}

func RenderSettings(values []domain.SettingValue, source string) string {
	s := newStyles()
	lines := []string{s.title.Render("Settings")}
	if source != "" {
		lines = append(lines, s.header.Render(source))
	}
	for _, v := range values {
		lines = append(lines, keyValue(s, v.Key, v.Value))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func keyValue(s styles, key, value string) string {
	if strings.TrimSpace(value) == "" {
		value = "-"
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, s.key.Render(key+":"), " ", s.value.Render(value))
}
