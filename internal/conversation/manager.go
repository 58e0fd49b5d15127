package conversation

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/calab/jobscout/internal/logger"
)

// session is one user's in-memory conversation. The mutex serializes events
// for that user; different users dispatch concurrently.
type session struct {
	mu    sync.Mutex
	id    string
	state State
}

// Manager owns the active sessions and routes inbound events to the machine.
// Sessions are ephemeral: they are created on the first event from a user and
// destroyed when the conversation reaches a terminal state.
type Manager struct {
	mu       sync.Mutex
	machine  *Machine
	sessions map[int64]*session
	logger   *zap.Logger
}

func NewManager(machine *Machine, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		machine:  machine,
		sessions: make(map[int64]*session),
		logger:   log,
	}
}

// Dispatch handles one inbound event for the user and returns the effects to
// render. Events for the same user are processed strictly one at a time.
func (m *Manager) Dispatch(ctx context.Context, userID int64, ev Event) []Effect {
	s := m.acquire(userID)

	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.WithSession(m.logger, s.id, userID)
	log.Debug("dispatch event", zap.String("event", eventName(ev)), zap.String("state", stateName(s.state)))

	next, effects := m.machine.Handle(ctx, userID, s.state, ev)
	s.state = next

	if Terminal(next) {
		m.release(userID, s)
		log.Debug("session closed", zap.String("state", stateName(next)))
	}

	return effects
}

// ActiveSessions reports how many conversations are currently in flight.
func (m *Manager) ActiveSessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) acquire(userID int64) *session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[userID]; ok {
		return s
	}

	s := &session{id: uuid.NewString(), state: Idle{}}
	m.sessions[userID] = s
	return s
}

func (m *Manager) release(userID int64, s *session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Only remove the session we actually handled; a racing dispatch may
	// have created a fresh one under the same user id.
	if current, ok := m.sessions[userID]; ok && current == s {
		delete(m.sessions, userID)
	}
}

func stateName(s State) string {
	switch s.(type) {
	case Idle:
		return "idle"
	case ChoosingAction:
		return "choosing_action"
	case AwaitingName:
		return "awaiting_name"
	case AwaitingSurname:
		return "awaiting_surname"
	case AwaitingPhone:
		return "awaiting_phone"
	case AwaitingLocation:
		return "awaiting_location"
	case Done:
		return "done"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

func eventName(ev Event) string {
	switch ev.(type) {
	case Start:
		return "start"
	case DocumentReceived:
		return "document_received"
	case TextMessage:
		return "text_message"
	case ActionChosen:
		return "action_chosen"
	case SkipPhone:
		return "skip_phone"
	case Cancel:
		return "cancel"
	default:
		return "unknown"
	}
}
