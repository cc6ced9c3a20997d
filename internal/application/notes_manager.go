package application

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/bnema/notevault-cli/internal/domain"
	"github.com/bnema/notevault-cli/internal/ports"
	"github.com/rs/zerolog"
)

const createTarget = "create"

// NotesManager mirrors the user's notes as last confirmed by the server.
//
// The collection only changes on a successful list (replaced wholesale) or a
// successful delete (one entry removed). Creates and updates reconcile by
// listing again. The lock is never held across a request.
//
// Reset starts a new generation; a response to a request issued in an
// earlier generation is never applied.
type NotesManager struct {
	api   ports.NotesAPI
	clock ports.Clock
	guard *SessionGuard
	log   zerolog.Logger

	mu           sync.Mutex
	notes        []domain.Note
	loaded       bool
	lastSyncedAt time.Time
	busy         map[Action]int
	inFlight     map[string]struct{}
	generation   uint64
	owner        domain.UserID
}

func NewNotesManager(api ports.NotesAPI, clock ports.Clock, guard *SessionGuard, logger zerolog.Logger) *NotesManager {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &NotesManager{
		api:      api,
		clock:    clock,
		guard:    guard,
		log:      logger,
		notes:    []domain.Note{},
		busy:     map[Action]int{},
		inFlight: map[string]struct{}{},
	}
}

func (m *NotesManager) List(ctx context.Context) ([]domain.Note, error) {
	done := m.begin(ActionList)
	defer done()
	generation := m.currentGeneration()

	notes, err := m.api.ListNotes(ctx)
	if err != nil {
		m.log.Debug().Err(err).Msg("list notes failed")
		return nil, newOperationError(OpListNotes, msgLoadNotesFailed, m.guard.Check(ctx, err))
	}

	m.mu.Lock()
	if m.generation != generation {
		m.mu.Unlock()
		m.log.Debug().Msg("dropping notes listed for a previous session")
		return nil, newOperationError(OpListNotes, msgLoadNotesFailed, domain.ErrSessionChanged)
	}
	m.notes = append([]domain.Note(nil), notes...)
	m.loaded = true
	m.lastSyncedAt = m.clock.Now()
	m.mu.Unlock()

	return append([]domain.Note(nil), notes...), nil
}

// Create sends a new note and then refreshes the collection. A refresh
// failure is returned as *ReconcileError alongside the success message.
func (m *NotesManager) Create(ctx context.Context, title, content string) (string, error) {
	input, err := domain.NewNoteInput(title, content)
	if err != nil {
		return "", newOperationError(OpCreateNote, msgSaveNoteFailed, err)
	}

	release, err := m.claim(createTarget)
	if err != nil {
		return "", newOperationError(OpCreateNote, msgSaveNoteFailed, err)
	}
	defer release()

	done := m.begin(ActionCreate)
	defer done()

	if err := m.api.CreateNote(ctx, input); err != nil {
		return "", newOperationError(OpCreateNote, msgSaveNoteFailed, m.guard.Check(ctx, err))
	}

	return MsgNoteCreated, m.reconcile(ctx, OpCreateNote)
}

func (m *NotesManager) Update(ctx context.Context, id domain.NoteID, title, content string) (string, error) {
	if strings.TrimSpace(string(id)) == "" {
		return "", newOperationError(OpUpdateNote, msgSaveNoteFailed, domain.NewValidationError(msgNoteIDRequired))
	}
	input, err := domain.NewNoteInput(title, content)
	if err != nil {
		return "", newOperationError(OpUpdateNote, msgSaveNoteFailed, err)
	}

	release, err := m.claim(string(id))
	if err != nil {
		return "", newOperationError(OpUpdateNote, msgSaveNoteFailed, err)
	}
	defer release()

	done := m.begin(ActionUpdate)
	defer done()

	if err := m.api.UpdateNote(ctx, id, input); err != nil {
		return "", newOperationError(OpUpdateNote, msgSaveNoteFailed, m.guard.Check(ctx, err))
	}

	return MsgNoteUpdated, m.reconcile(ctx, OpUpdateNote)
}

// Delete removes the note server-side and then drops exactly that entry
// locally without listing again.
func (m *NotesManager) Delete(ctx context.Context, id domain.NoteID) (string, error) {
	if strings.TrimSpace(string(id)) == "" {
		return "", newOperationError(OpDeleteNote, msgDeleteNoteFailed, domain.NewValidationError(msgNoteIDRequired))
	}

	release, err := m.claim(string(id))
	if err != nil {
		return "", newOperationError(OpDeleteNote, msgDeleteNoteFailed, err)
	}
	defer release()

	done := m.begin(ActionDelete)
	defer done()
	generation := m.currentGeneration()

	if err := m.api.DeleteNote(ctx, id); err != nil {
		return "", newOperationError(OpDeleteNote, msgDeleteNoteFailed, m.guard.Check(ctx, err))
	}

	m.mu.Lock()
	if m.generation == generation {
		m.notes = domain.WithoutNote(m.notes, id)
	}
	m.mu.Unlock()

	return MsgNoteDeleted, nil
}

func (m *NotesManager) reconcile(ctx context.Context, op string) error {
	if _, err := m.List(ctx); err != nil {
		m.log.Warn().Err(err).Str("op", op).Msg("write accepted but refresh failed")
		return &ReconcileError{Op: op, Err: err}
	}
	return nil
}

// claim reserves a write target (a note id or "create") for one call.
func (m *NotesManager) claim(target string) (func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, busy := m.inFlight[target]; busy {
		return nil, domain.ErrOperationInFlight
	}
	m.inFlight[target] = struct{}{}

	return func() {
		m.mu.Lock()
		delete(m.inFlight, target)
		m.mu.Unlock()
	}, nil
}

func (m *NotesManager) begin(action Action) func() {
	m.mu.Lock()
	m.busy[action]++
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		m.busy[action]--
		m.mu.Unlock()
	}
}

func (m *NotesManager) currentGeneration() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generation
}

// Reset drops the local collection, e.g. after the session ended.
func (m *NotesManager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetLocked()
}

func (m *NotesManager) resetLocked() {
	m.notes = []domain.Note{}
	m.loaded = false
	m.lastSyncedAt = time.Time{}
	m.generation++
}

// Follow resets the collection whenever the session ends or changes hands,
// so one user's notes never show up for another. Profile updates keep the
// collection.
func (m *NotesManager) Follow(session *SessionStore) (unsubscribe func()) {
	m.mu.Lock()
	m.owner = session.Current().User.ID
	m.mu.Unlock()

	return session.Subscribe(func(current domain.Session) {
		m.mu.Lock()
		defer m.mu.Unlock()

		if !current.Authenticated() || current.User.ID != m.owner {
			m.resetLocked()
		}
		m.owner = current.User.ID
	})
}

func (m *NotesManager) Notes() []domain.Note {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Note(nil), m.notes...)
}

// Busy reports false for unknown actions.
func (m *NotesManager) Busy(action Action) bool {
	if !action.Valid() {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.busy[action] > 0
}

func (m *NotesManager) Loaded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loaded
}

func (m *NotesManager) LastSyncedAt() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastSyncedAt
}

func (m *NotesManager) Snapshot() NotesSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	busy := make(map[Action]bool, len(m.busy))
	for action, count := range m.busy {
		busy[action] = count > 0
	}

	return NotesSnapshot{
		Notes:        append([]domain.Note(nil), m.notes...),
		Loaded:       m.loaded,
		LastSyncedAt: m.lastSyncedAt,
		Busy:         busy,
	}
}
