package pass

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/notevault-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sessionKey = "notevault/session"

func TestStorePutUsesPassInsert(t *testing.T) {
	t.Parallel()

	called := false
	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			called = true
			assert.Equal(t, []string{"insert", "--multiline", "--force", sessionKey}, args)
			assert.Equal(t, "{\"token\":\"T\"}\n", input)
			return "", "", nil
		},
	}

	err := store.Put(context.Background(), sessionKey, `{"token":"T"}`)
	require.NoError(t, err)
	assert.True(t, called)
}

func TestStoreGetUsesPassShowAndTrimsTrailingNewline(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			assert.Equal(t, []string{"show", sessionKey}, args)
			assert.Empty(t, input)
			return "{\"token\":\"T\"}\r\n", "", nil
		},
	}

	value, err := store.Get(context.Background(), sessionKey)
	require.NoError(t, err)
	assert.Equal(t, `{"token":"T"}`, value)
}

func TestStoreGetMapsMissingEntryToSecretNotFound(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "Error: notevault/session is not in the password store.", errors.New("exit status 1")
		},
	}

	_, err := store.Get(context.Background(), sessionKey)
	assert.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreGetReturnsClearError(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "gpg: decryption failed", errors.New("exit status 2")
		},
	}

	_, err := store.Get(context.Background(), sessionKey)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSecretNotFound)
	assert.ErrorContains(t, err, "pass get")
	assert.ErrorContains(t, err, sessionKey)
	assert.ErrorContains(t, err, "gpg: decryption failed")
}

func TestStoreDeleteUsesPassRemoveAndToleratesMissingEntry(t *testing.T) {
	t.Parallel()

	calls := 0
	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			calls++
			assert.Equal(t, []string{"rm", "--force", sessionKey}, args)
			if calls == 2 {
				return "", "Error: notevault/session is not in the password store.", errors.New("exit status 1")
			}
			return "", "", nil
		},
	}

	require.NoError(t, store.Delete(context.Background(), sessionKey))
	require.NoError(t, store.Delete(context.Background(), sessionKey))
	assert.Equal(t, 2, calls)
}

func TestStoreSkipsCommandWhenContextCanceled(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			t.Fatal("pass must not run with a canceled context")
			return "", "", nil
		},
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Put(ctx, sessionKey, "x"), context.Canceled)
}

func TestStoreMapsUninitializedStoreToUnavailable(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "Error: password store is empty. Try \"pass init\".", errors.New("exit status 1")
		},
	}

	_, err := store.Get(context.Background(), sessionKey)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, store.Delete(context.Background(), sessionKey), ErrUnavailable)
}

func TestStoreRejectsInvalidEntryNames(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			t.Fatal("pass must not run for an invalid entry name")
			return "", "", nil
		},
	}

	for _, key := range []string{"", "  ", "../escape", "notevault/../../x", "a//b"} {
		_, err := store.Get(context.Background(), key)
		assert.ErrorIs(t, err, errInvalidKey, "key %q", key)
	}
}

func TestStoreTrimsSurroundingSlashes(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			assert.Equal(t, []string{"show", sessionKey}, args)
			return "v\n", "", nil
		},
	}

	value, err := store.Get(context.Background(), "/"+sessionKey+"/")
	require.NoError(t, err)
	assert.Equal(t, "v", value)
}
