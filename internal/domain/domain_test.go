package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNoteInputTrimsAndValidates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		title   string
		content string
		want    NoteInput
		wantErr bool
	}{
		{name: "valid", title: "A", content: "B", want: NoteInput{Title: "A", Content: "B"}},
		{name: "trims surrounding whitespace", title: "  A ", content: "\tB\n", want: NoteInput{Title: "A", Content: "B"}},
		{name: "empty title", title: "", content: "x", wantErr: true},
		{name: "empty content", title: "x", content: "", wantErr: true},
		{name: "both empty", title: "", content: "", wantErr: true},
		{name: "whitespace title", title: "  ", content: "text", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := NewNoteInput(tc.title, tc.content)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrValidation)
				assert.EqualError(t, err, "Please fill in both title and content.")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNewSessionRequiresUserAndToken(t *testing.T) {
	t.Parallel()

	user := User{ID: "1", Name: "Ann", Email: "a@x.com"}

	session, err := NewSession(user, "T")
	require.NoError(t, err)
	assert.True(t, session.Authenticated())

	_, err = NewSession(User{}, "T")
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = NewSession(user, "  ")
	assert.ErrorIs(t, err, ErrInvalidSession)

	assert.False(t, Session{}.Authenticated())
}

func TestWithoutNoteRemovesOnlyMatchingEntry(t *testing.T) {
	t.Parallel()

	notes := []Note{{ID: "n1", Title: "A"}, {ID: "n2", Title: "B"}, {ID: "n3", Title: "C"}}

	got := WithoutNote(notes, "n2")

	assert.Equal(t, []Note{{ID: "n1", Title: "A"}, {ID: "n3", Title: "C"}}, got)
	assert.Len(t, notes, 3, "input slice must not be modified")
	assert.Equal(t, notes, WithoutNote(notes, "missing"))
}

func TestUserDisplayNameFallsBackToEmail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Ann", User{Name: " Ann ", Email: "a@x.com"}.DisplayName())
	assert.Equal(t, "a@x.com", User{Email: "a@x.com"}.DisplayName())
}

func TestSettingsSet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		key     string
		value   string
		check   func(t *testing.T, s Settings)
		wantErr string
	}{
		{
			name:  "base url",
			key:   SettingAPIBaseURL,
			value: "https://notes.example.com/api",
			check: func(t *testing.T, s Settings) { assert.Equal(t, "https://notes.example.com/api", s.APIBaseURL) },
		},
		{
			name:  "timeout",
			key:   SettingAPITimeout,
			value: "5s",
			check: func(t *testing.T, s Settings) { assert.Equal(t, 5*time.Second, s.APITimeout) },
		},
		{
			name:  "logout on unauthorized",
			key:   SettingLogoutOnUnauthorized,
			value: "true",
			check: func(t *testing.T, s Settings) { assert.True(t, s.LogoutOnUnauthorized) },
		},
		{name: "bad scheme", key: SettingAPIBaseURL, value: "ftp://x", wantErr: "must use http or https"},
		{name: "negative timeout", key: SettingAPITimeout, value: "-1s", wantErr: "must be positive"},
		{name: "bad backend", key: SettingSessionBackend, value: "vault", wantErr: "unsupported session.backend"},
		{name: "unknown key", key: "api.retries", value: "3", wantErr: "unknown setting"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			settings := DefaultSettings("/home/ann")
			err := settings.Set(tc.key, tc.value)
			if tc.wantErr != "" {
				assert.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			tc.check(t, settings)
		})
	}
}

func TestSettingsValuesCoverEveryKey(t *testing.T) {
	t.Parallel()

	values := DefaultSettings("/home/ann").Values()
	keys := make([]string, 0, len(values))
	for _, v := range values {
		keys = append(keys, v.Key)
	}

	assert.Equal(t, SettingKeys(), keys)
}
