package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/notevault-cli/internal/domain"
	"github.com/bnema/notevault-cli/internal/ports"
	"github.com/rs/zerolog"
)

// SessionKey is the single durable slot holding the persisted session.
const SessionKey = "notevault/session"

type persistedUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type persistedSession struct {
	User  *persistedUser `json:"user"`
	Token string         `json:"token"`
}

// SessionStore owns the active identity and bearer token. Readers always see
// either a complete session or none.
type SessionStore struct {
	store ports.SecretStore
	log   zerolog.Logger

	// writeMu orders persist+commit pairs so the durable slot and memory
	// agree on which mutation came last.
	writeMu sync.Mutex

	mu        sync.RWMutex
	session   domain.Session
	loading   bool
	restored  bool
	listeners map[int]func(domain.Session)
	nextID    int
}

var _ ports.TokenSource = (*SessionStore)(nil)

func NewSessionStore(store ports.SecretStore, logger zerolog.Logger) *SessionStore {
	return &SessionStore{
		store:     store,
		log:       logger,
		listeners: map[int]func(domain.Session){},
	}
}

// Restore loads the persisted session, if any. Anything missing, unreadable
// or half-populated yields an empty session; the cause is only logged.
func (s *SessionStore) Restore(ctx context.Context) domain.Session {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	session, err := s.readSlot(ctx)
	if err != nil {
		event := s.log.Debug()
		if !errors.Is(err, domain.ErrSecretNotFound) {
			event = s.log.Warn()
		}
		event.Err(err).Msg("no session restored")
		session = domain.Session{}
	}

	s.mu.Lock()
	s.session = session
	s.loading = false
	s.restored = true
	s.mu.Unlock()

	if session.Authenticated() {
		s.log.Debug().Str("user_id", string(session.User.ID)).Msg("session restored")
		s.notify(session)
	}

	return session
}

func (s *SessionStore) readSlot(ctx context.Context) (domain.Session, error) {
	raw, err := s.store.Get(ctx, SessionKey)
	if err != nil {
		return domain.Session{}, fmt.Errorf("read session slot: %w", err)
	}

	var persisted persistedSession
	if err := json.Unmarshal([]byte(raw), &persisted); err != nil {
		return domain.Session{}, fmt.Errorf("decode session slot: %w", err)
	}
	if persisted.User == nil {
		return domain.Session{}, fmt.Errorf("session slot: %w", domain.ErrInvalidSession)
	}

	return domain.NewSession(domain.User{
		ID:    domain.UserID(persisted.User.ID),
		Name:  persisted.User.Name,
		Email: persisted.User.Email,
	}, persisted.Token)
}

func (s *SessionStore) writeSlot(ctx context.Context, session domain.Session) error {
	encoded, err := json.Marshal(persistedSession{
		User: &persistedUser{
			ID:    string(session.User.ID),
			Name:  session.User.Name,
			Email: session.User.Email,
		},
		Token: session.Token,
	})
	if err != nil {
		return fmt.Errorf("encode session slot: %w", err)
	}
	if err := s.store.Put(ctx, SessionKey, string(encoded)); err != nil {
		return fmt.Errorf("write session slot: %w", err)
	}

	return nil
}

// Login persists and then activates user and token together.
func (s *SessionStore) Login(ctx context.Context, user domain.User, token string) error {
	session, err := domain.NewSession(user, token)
	if err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.writeSlot(ctx, session); err != nil {
		return err
	}
	s.commit(session)
	s.log.Debug().Str("user_id", string(user.ID)).Msg("session started")

	return nil
}

// Logout clears the durable slot and the in-memory session. Listeners are
// only signalled when a session was actually active.
func (s *SessionStore) Logout(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.store.Delete(ctx, SessionKey); err != nil {
		return fmt.Errorf("delete session slot: %w", err)
	}

	if !s.Current().Authenticated() {
		return nil
	}
	s.commit(domain.Session{})
	s.log.Debug().Msg("session ended")

	return nil
}

// UpdateUser replaces the user of the active session and keeps its token.
func (s *SessionStore) UpdateUser(ctx context.Context, user domain.User) error {
	if user.IsZero() {
		return domain.ErrInvalidSession
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	current := s.Current()
	if !current.Authenticated() {
		return domain.ErrNotAuthenticated
	}

	updated := domain.Session{User: user, Token: current.Token}
	if err := s.writeSlot(ctx, updated); err != nil {
		return err
	}
	s.commit(updated)

	return nil
}

func (s *SessionStore) commit(session domain.Session) {
	s.mu.Lock()
	s.session = session
	s.mu.Unlock()

	s.notify(session)
}

func (s *SessionStore) notify(session domain.Session) {
	s.mu.RLock()
	listeners := make([]func(domain.Session), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn(session)
	}
}

// Subscribe registers fn for every session change. The returned func
// removes it again.
func (s *SessionStore) Subscribe(fn func(domain.Session)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

func (s *SessionStore) Current() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Token
}

func (s *SessionStore) Authenticated() bool {
	return s.Current().Authenticated()
}

func (s *SessionStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *SessionStore) Restored() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.restored
}

// SessionGuard ends the session when the server rejects the credential, if
// the policy is enabled. It never retries.
type SessionGuard struct {
	session *SessionStore
	enabled bool
	log     zerolog.Logger
}

func NewSessionGuard(session *SessionStore, logoutOnUnauthorized bool, logger zerolog.Logger) *SessionGuard {
	return &SessionGuard{session: session, enabled: logoutOnUnauthorized, log: logger}
}

// Check returns err unchanged after applying the policy.
func (g *SessionGuard) Check(ctx context.Context, err error) error {
	if g == nil || !g.enabled || g.session == nil || !errors.Is(err, domain.ErrUnauthorized) {
		return err
	}

	if logoutErr := g.session.Logout(ctx); logoutErr != nil {
		g.log.Warn().Err(logoutErr).Msg("logout after rejected credential failed")
		return err
	}
	g.log.Info().Msg("session ended after the server rejected the credential")

	return err
}
