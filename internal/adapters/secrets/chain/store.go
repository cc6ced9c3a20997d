// Package chain combines two secret backends: reads and writes go to the
// primary and fall back to the secondary when it fails.
package chain

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	filestore "github.com/bnema/notevault-cli/internal/adapters/secrets/file"
	passstore "github.com/bnema/notevault-cli/internal/adapters/secrets/pass"
	"github.com/bnema/notevault-cli/internal/ports"
)

// Store deletes from both backends so a session written to the fallback
// while the primary was down cannot be restored after logout.
type Store struct {
	primary  ports.SecretStore
	fallback ports.SecretStore
	log      zerolog.Logger
}

var _ ports.SecretStore = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary secret store is nil")
	errNilFallbackStore = errors.New("fallback secret store is nil")
)

type Option func(*Store)

// WithLogger reports fallbacks at debug level.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.log = logger
	}
}

func NewStore(primary ports.SecretStore, fallback ports.SecretStore, opts ...Option) *Store {
	store, err := NewStoreChecked(primary, fallback, opts...)
	if err != nil {
		panic(err)
	}

	return store
}

func NewStoreChecked(primary ports.SecretStore, fallback ports.SecretStore, opts ...Option) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}

	store := &Store{primary: primary, fallback: fallback, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(store)
	}
	return store, nil
}

// NewPassFirstWithFileFallback keeps the session in pass when it is usable
// and in files under fileRoot otherwise.
func NewPassFirstWithFileFallback(fileRoot string, opts ...Option) (*Store, error) {
	return NewStoreChecked(passstore.NewStore(), filestore.NewStore(fileRoot), opts...)
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	primaryErr := s.primary.Put(ctx, key, value)
	if primaryErr == nil || isContextError(primaryErr) {
		return primaryErr
	}

	s.logFallback("put", key, primaryErr)
	if err := s.fallback.Put(ctx, key, value); err != nil {
		return fmt.Errorf("put %q: primary: %w; fallback: %w", key, primaryErr, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, primaryErr := s.primary.Get(ctx, key)
	if primaryErr == nil || isContextError(primaryErr) {
		return value, primaryErr
	}

	s.logFallback("get", key, primaryErr)
	value, err := s.fallback.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("get %q: primary: %w; fallback: %w", key, primaryErr, err)
	}
	return value, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	primaryErr := s.primary.Delete(ctx, key)
	if isContextError(primaryErr) {
		return primaryErr
	}
	if errors.Is(primaryErr, passstore.ErrUnavailable) {
		primaryErr = nil
	}

	fallbackErr := s.fallback.Delete(ctx, key)
	switch {
	case primaryErr == nil && fallbackErr == nil:
		return nil
	case primaryErr == nil:
		return fmt.Errorf("delete %q: fallback: %w", key, fallbackErr)
	case fallbackErr == nil:
		return fmt.Errorf("delete %q: primary: %w", key, primaryErr)
	default:
		return fmt.Errorf("delete %q: primary: %w; fallback: %w", key, primaryErr, fallbackErr)
	}
}

func (s *Store) logFallback(op, key string, err error) {
	s.log.Debug().Str("op", op).Str("key", key).Err(err).Msg("primary secret backend failed, using fallback")
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
