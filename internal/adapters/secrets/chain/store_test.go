package chain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	passstore "github.com/bnema/notevault-cli/internal/adapters/secrets/pass"
	"github.com/bnema/notevault-cli/internal/domain"
	"github.com/rs/zerolog"
	portmocks "github.com/bnema/notevault-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const sessionKey = "notevault/session"

func TestStoreGetUsesPrimaryWhenItSucceeds(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, sessionKey).Return("from-pass", nil).Once()

	value, err := store.Get(context.Background(), sessionKey)
	require.NoError(t, err)
	assert.Equal(t, "from-pass", value)
}

func TestStoreGetFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, sessionKey).Return("", passstore.ErrUnavailable).Once()
	fallback.EXPECT().Get(mock.Anything, sessionKey).Return("from-file", nil).Once()

	value, err := store.Get(context.Background(), sessionKey)
	require.NoError(t, err)
	assert.Equal(t, "from-file", value)
}

func TestStoreGetReturnsCombinedErrorWhenBothBackendsFail(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, sessionKey).Return("", errors.New("pass failed")).Once()
	fallback.EXPECT().Get(mock.Anything, sessionKey).Return("", fmt.Errorf("file secret: %w", domain.ErrSecretNotFound)).Once()

	_, err := store.Get(context.Background(), sessionKey)
	require.Error(t, err)
	assert.ErrorContains(t, err, "primary: pass failed")
	assert.ErrorContains(t, err, "fallback: file secret")
	assert.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreGetDoesNotFallbackOnCanceledContextError(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, sessionKey).Return("", context.Canceled).Once()

	_, err := store.Get(context.Background(), sessionKey)
	require.ErrorIs(t, err, context.Canceled)
}

func TestStorePutFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Put(mock.Anything, sessionKey, "payload").Return(errors.New("pass failed")).Once()
	fallback.EXPECT().Put(mock.Anything, sessionKey, "payload").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), sessionKey, "payload"))
}

func TestStorePutDoesNotCallFallbackWhenPrimarySucceeds(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Put(mock.Anything, sessionKey, "payload").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), sessionKey, "payload"))
}

func TestStoreDeleteClearsBothBackends(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Delete(mock.Anything, sessionKey).Return(nil).Once()
	fallback.EXPECT().Delete(mock.Anything, sessionKey).Return(nil).Once()

	require.NoError(t, store.Delete(context.Background(), sessionKey))
}

func TestStoreDeleteIgnoresUnavailablePrimary(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Delete(mock.Anything, sessionKey).Return(passstore.ErrUnavailable).Once()
	fallback.EXPECT().Delete(mock.Anything, sessionKey).Return(nil).Once()

	require.NoError(t, store.Delete(context.Background(), sessionKey))
}

func TestStoreDeleteReportsPrimaryFailureAfterClearingFallback(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Delete(mock.Anything, sessionKey).Return(errors.New("gpg agent locked")).Once()
	fallback.EXPECT().Delete(mock.Anything, sessionKey).Return(nil).Once()

	err := store.Delete(context.Background(), sessionKey)
	assert.ErrorContains(t, err, `delete "notevault/session": primary`)
	assert.ErrorContains(t, err, "gpg agent locked")
}

func TestNewStoreCheckedRejectsNilBackends(t *testing.T) {
	t.Parallel()

	_, err := NewStoreChecked(nil, portmocks.NewMockSecretStore(t))
	assert.ErrorIs(t, err, errNilPrimaryStore)

	_, err = NewStoreChecked(portmocks.NewMockSecretStore(t), nil)
	assert.ErrorIs(t, err, errNilFallbackStore)
}

func TestStoreLogsFallbackWithoutSecretValue(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback, WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))

	primary.EXPECT().Put(mock.Anything, sessionKey, "tok-secret").Return(passstore.ErrUnavailable).Once()
	fallback.EXPECT().Put(mock.Anything, sessionKey, "tok-secret").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), sessionKey, "tok-secret"))
	assert.Contains(t, buf.String(), "using fallback")
	assert.Contains(t, buf.String(), sessionKey)
	assert.NotContains(t, buf.String(), "tok-secret")
}
