package application

import (
	"context"
	"errors"
	"sync"
	"testing"

	filestore "github.com/bnema/notevault-cli/internal/adapters/secrets/file"
	"github.com/bnema/notevault-cli/internal/domain"
	"github.com/bnema/notevault-cli/internal/ports/mocks"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testUser = domain.User{ID: "u1", Name: "Ann", Email: "a@x.com"}

func mockAnyContext() interface{} {
	return mock.Anything
}

func TestSessionStorePersistenceRoundTrip(t *testing.T) {
	root := t.TempDir()
	ctx := context.Background()

	first := NewSessionStore(filestore.NewStore(root), zerolog.Nop())
	require.NoError(t, first.Login(ctx, testUser, "T"))

	second := NewSessionStore(filestore.NewStore(root), zerolog.Nop())
	restored := second.Restore(ctx)

	assert.Equal(t, domain.Session{User: testUser, Token: "T"}, restored)
	assert.Equal(t, "T", second.Token())
	assert.True(t, second.Authenticated())
	assert.True(t, second.Restored())
	assert.False(t, second.Loading())
}

func TestSessionStoreLogoutThenRestoreIsEmpty(t *testing.T) {
	root := t.TempDir()
	ctx := context.Background()

	first := NewSessionStore(filestore.NewStore(root), zerolog.Nop())
	require.NoError(t, first.Login(ctx, testUser, "T"))
	require.NoError(t, first.Logout(ctx))
	assert.Equal(t, domain.Session{}, first.Current())

	second := NewSessionStore(filestore.NewStore(root), zerolog.Nop())
	assert.Equal(t, domain.Session{}, second.Restore(ctx))
	assert.False(t, second.Authenticated())
	assert.Empty(t, second.Token())
}

func TestSessionStoreRestoreTreatsBadSlotsAsEmpty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		err  error
	}{
		{name: "missing", err: domain.ErrSecretNotFound},
		{name: "unreadable", err: errors.New("permission denied")},
		{name: "malformed", raw: `{"user":`},
		{name: "token without user", raw: `{"token":"T"}`},
		{name: "user without token", raw: `{"user":{"id":"u1","email":"a@x.com"}}`},
		{name: "empty user", raw: `{"user":{},"token":"T"}`},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			store := mocks.NewMockSecretStore(t)
			store.EXPECT().Get(mockAnyContext(), SessionKey).Return(tc.raw, tc.err)

			session := NewSessionStore(store, zerolog.Nop())
			assert.Equal(t, domain.Session{}, session.Restore(context.Background()))
			assert.False(t, session.Authenticated())
			assert.True(t, session.Restored())
		})
	}
}

func TestSessionStoreLoadingOnlyDuringRestore(t *testing.T) {
	t.Parallel()

	store := mocks.NewMockSecretStore(t)
	session := NewSessionStore(store, zerolog.Nop())

	var loadingDuringGet bool
	store.EXPECT().Get(mockAnyContext(), SessionKey).
		Run(func(context.Context, string) { loadingDuringGet = session.Loading() }).
		Return("", domain.ErrSecretNotFound)

	assert.False(t, session.Loading())
	session.Restore(context.Background())

	assert.True(t, loadingDuringGet)
	assert.False(t, session.Loading())
}

func TestSessionStoreLoginRejectsPartialSession(t *testing.T) {
	t.Parallel()

	store := mocks.NewMockSecretStore(t)
	session := NewSessionStore(store, zerolog.Nop())

	assert.ErrorIs(t, session.Login(context.Background(), domain.User{}, "T"), domain.ErrInvalidSession)
	assert.ErrorIs(t, session.Login(context.Background(), testUser, ""), domain.ErrInvalidSession)
	assert.False(t, session.Authenticated())
}

func TestSessionStoreLoginPersistFailureKeepsMemoryUnchanged(t *testing.T) {
	t.Parallel()

	store := mocks.NewMockSecretStore(t)
	store.EXPECT().Put(mockAnyContext(), SessionKey, mock.Anything).Return(errors.New("disk full"))

	session := NewSessionStore(store, zerolog.Nop())
	var signals int
	session.Subscribe(func(domain.Session) { signals++ })

	err := session.Login(context.Background(), testUser, "T")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, domain.Session{}, session.Current())
	assert.Zero(t, signals)
}

func TestSessionStoreLogoutIsIdempotent(t *testing.T) {
	t.Parallel()

	store := mocks.NewMockSecretStore(t)
	store.EXPECT().Delete(mockAnyContext(), SessionKey).Return(nil).Twice()

	session := NewSessionStore(store, zerolog.Nop())
	var signals int
	session.Subscribe(func(domain.Session) { signals++ })

	require.NoError(t, session.Logout(context.Background()))
	require.NoError(t, session.Logout(context.Background()))
	assert.Zero(t, signals)
}

func TestSessionStoreUpdateUserKeepsToken(t *testing.T) {
	root := t.TempDir()
	ctx := context.Background()

	session := NewSessionStore(filestore.NewStore(root), zerolog.Nop())
	assert.ErrorIs(t, session.UpdateUser(ctx, testUser), domain.ErrNotAuthenticated)

	require.NoError(t, session.Login(ctx, testUser, "T"))
	renamed := domain.User{ID: "u1", Name: "Ann B", Email: "b@x.com"}
	require.NoError(t, session.UpdateUser(ctx, renamed))
	assert.Equal(t, domain.Session{User: renamed, Token: "T"}, session.Current())

	reloaded := NewSessionStore(filestore.NewStore(root), zerolog.Nop())
	assert.Equal(t, domain.Session{User: renamed, Token: "T"}, reloaded.Restore(ctx))
}

func TestSessionStoreSubscribeAndUnsubscribe(t *testing.T) {
	ctx := context.Background()
	session := NewSessionStore(filestore.NewStore(t.TempDir()), zerolog.Nop())

	var seen []domain.Session
	unsubscribe := session.Subscribe(func(s domain.Session) { seen = append(seen, s) })

	require.NoError(t, session.Login(ctx, testUser, "T"))
	require.NoError(t, session.Logout(ctx))
	unsubscribe()
	unsubscribe()
	require.NoError(t, session.Login(ctx, testUser, "T2"))

	assert.Equal(t, []domain.Session{{User: testUser, Token: "T"}, {}}, seen)
}

func TestSessionStoreNeverExposesHalfSetSession(t *testing.T) {
	ctx := context.Background()
	session := NewSessionStore(filestore.NewStore(t.TempDir()), zerolog.Nop())

	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			current := session.Current()
			if current.Token == "" {
				assert.True(t, current.User.IsZero())
			} else {
				assert.False(t, current.User.IsZero())
			}
		}
	}()

	for i := 0; i < 20; i++ {
		require.NoError(t, session.Login(ctx, testUser, "T"))
		require.NoError(t, session.Logout(ctx))
	}
	close(stop)
	wg.Wait()
}

func TestSessionGuardLogsOutOnlyOnUnauthorizedWhenEnabled(t *testing.T) {
	ctx := context.Background()
	unauthorized := errors.Join(errors.New("GET /notes: status 401"), domain.ErrUnauthorized)

	t.Run("enabled", func(t *testing.T) {
		session := NewSessionStore(filestore.NewStore(t.TempDir()), zerolog.Nop())
		require.NoError(t, session.Login(ctx, testUser, "T"))

		guard := NewSessionGuard(session, true, zerolog.Nop())
		assert.Same(t, unauthorized, guard.Check(ctx, unauthorized))
		assert.False(t, session.Authenticated())
	})

	t.Run("enabled ignores other failures", func(t *testing.T) {
		session := NewSessionStore(filestore.NewStore(t.TempDir()), zerolog.Nop())
		require.NoError(t, session.Login(ctx, testUser, "T"))

		guard := NewSessionGuard(session, true, zerolog.Nop())
		guard.Check(ctx, errors.New("status 500"))
		assert.True(t, session.Authenticated())
	})

	t.Run("disabled", func(t *testing.T) {
		session := NewSessionStore(filestore.NewStore(t.TempDir()), zerolog.Nop())
		require.NoError(t, session.Login(ctx, testUser, "T"))

		guard := NewSessionGuard(session, false, zerolog.Nop())
		guard.Check(ctx, unauthorized)
		assert.True(t, session.Authenticated())
	})

	t.Run("nil guard", func(t *testing.T) {
		var guard *SessionGuard
		assert.Same(t, unauthorized, guard.Check(ctx, unauthorized))
	})
}
