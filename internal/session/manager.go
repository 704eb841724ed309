package session

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/flashdeck/flashdeck-api/internal/collection"
	"github.com/flashdeck/flashdeck-api/internal/domain"
)

// ErrSessionNotFound is returned when no live session has the given ID.
var ErrSessionNotFound = errors.New("session not found")

// Action is a navigation operation applied to a live session.
type Action string

// Supported session actions.
const (
	ActionFlip     Action = "flip"
	ActionNext     Action = "next"
	ActionPrevious Action = "previous"
	ActionShuffle  Action = "shuffle"
	ActionRestart  Action = "restart"
)

// ParseAction maps an action name to an Action.
// The second result is false for unknown names.
func ParseAction(s string) (Action, bool) {
	switch Action(s) {
	case ActionFlip, ActionNext, ActionPrevious, ActionShuffle, ActionRestart:
		return Action(s), true
	default:
		return "", false
	}
}

// View is the immutable read model of a session returned to callers.
type View struct {
	ID          string       `json:"id"`
	SetID       string       `json:"setId"`
	CurrentCard *domain.Card `json:"currentCard,omitempty"`
	Cursor      int          `json:"cursor"`
	TotalCards  int          `json:"totalCards"`
	IsFlipped   bool         `json:"isFlipped"`
	Progress    float64      `json:"progress"`
	IsFirstCard bool         `json:"isFirstCard"`
	IsLastCard  bool         `json:"isLastCard"`
}

type playSession struct {
	id     string
	setID  string
	engine *Engine
}

// Manager tracks live play sessions. It subscribes to the collection
// store so every session is re-reconciled from each new snapshot: cards
// deleted or edited mid-session never leave a session pointing at stale
// state. Sessions for a deleted set simply reconcile to empty.
type Manager struct {
	mu       sync.Mutex
	logger   *slog.Logger
	sessions map[string]*playSession
}

// NewManager creates an empty session manager.
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for session.Manager")
	}

	return &Manager{
		logger:   logger.With(slog.String("component", "session_manager")),
		sessions: make(map[string]*playSession),
	}
}

// Start opens a new session over the given set's cards and returns its
// initial view. Starting a session over an empty set is allowed; the
// session just reports no current card.
func (m *Manager) Start(setID string, cards []domain.Card) View {
	s := &playSession{
		id:     uuid.NewString(),
		setID:  setID,
		engine: NewEngine(cards),
	}

	m.mu.Lock()
	m.sessions[s.id] = s
	v := m.view(s)
	m.mu.Unlock()

	m.logger.Debug("session started",
		slog.String("session_id", s.id),
		slog.String("set_id", setID),
		slog.Int("cards", len(cards)))
	return v
}

// Get returns the current view of a session.
// Returns ErrSessionNotFound for unknown IDs.
func (m *Manager) Get(id string) (View, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return View{}, ErrSessionNotFound
	}
	return m.view(s), nil
}

// Apply runs one navigation action against a session and returns the
// resulting view. Returns ErrSessionNotFound for unknown IDs.
func (m *Manager) Apply(id string, action Action) (View, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return View{}, ErrSessionNotFound
	}

	switch action {
	case ActionFlip:
		s.engine.Flip()
	case ActionNext:
		s.engine.Next()
	case ActionPrevious:
		s.engine.Previous()
	case ActionShuffle:
		s.engine.Shuffle()
	case ActionRestart:
		s.engine.Restart()
	}

	return m.view(s), nil
}

// End discards a session. Ending an unknown session is a no-op: the
// desired end state already holds.
func (m *Manager) End(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// HandleSnapshot reconciles every live session against a fresh collection
// snapshot. Registered as a collection store subscriber.
func (m *Manager) HandleSnapshot(snap collection.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.sessions {
		cards := []domain.Card{}
		for _, card := range snap.Cards {
			if card.SetID == s.setID {
				cards = append(cards, card)
			}
		}
		s.engine.Reconcile(cards)
	}
}

// view builds the read model for a session. Callers must hold m.mu.
func (m *Manager) view(s *playSession) View {
	v := View{
		ID:          s.id,
		SetID:       s.setID,
		Cursor:      s.engine.Cursor(),
		TotalCards:  s.engine.TotalCards(),
		IsFlipped:   s.engine.IsFlipped(),
		Progress:    s.engine.Progress(),
		IsFirstCard: s.engine.IsFirstCard(),
		IsLastCard:  s.engine.IsLastCard(),
	}
	if card, ok := s.engine.CurrentCard(); ok {
		v.CurrentCard = &card
	}
	return v
}
