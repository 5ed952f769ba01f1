package dialogue

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/voyago/travelbot/backend/internal/model/booking"
)

var (
	ErrDomainUnknown   = errors.New("unknown booking domain")
	ErrSessionNotFound = errors.New("session not found")
)

// Service manages conversation sessions across all booking domains.
// Sessions live in memory for the process lifetime; nothing is
// persisted.
type Service struct {
	mu       sync.RWMutex
	engines  map[string]*Engine
	sessions map[string]*sessionState
	log      *zap.Logger
}

// sessionState pairs a session's wire data with its machine state. The
// mutex serializes turns: it is held for the whole turn, including
// across the offer-fetch suspension point, so a session never has two
// in-flight turns.
type sessionState struct {
	mu      sync.Mutex
	info    booking.Session
	engine  *Engine
	state   *State
	history []booking.Message
}

// NewService bootstraps the in-memory dialogue service with one engine
// per booking domain.
func NewService(log *zap.Logger, engines ...*Engine) *Service {
	byName := make(map[string]*Engine, len(engines))
	for _, e := range engines {
		byName[e.Name()] = e
	}
	return &Service{
		engines:  byName,
		sessions: make(map[string]*sessionState),
		log:      log,
	}
}

// CreateSession provisions a session for the named domain, seeded with
// the domain greeting as the first bot message.
func (s *Service) CreateSession(_ context.Context, domain string) (booking.Session, error) {
	engine, ok := s.engines[domain]
	if !ok {
		return booking.Session{}, ErrDomainUnknown
	}

	session := booking.Session{
		ID:        uuid.NewString(),
		Domain:    domain,
		CreatedAt: time.Now().UTC(),
	}

	st := &sessionState{
		info:    session,
		engine:  engine,
		state:   NewState(),
		history: make([]booking.Message, 0, 16),
	}
	st.history = append(st.history, newMessage(session.ID, engine.Greeting(), true))

	s.mu.Lock()
	s.sessions[session.ID] = st
	s.mu.Unlock()

	s.log.Info("session created", zap.String("session_id", session.ID), zap.String("domain", domain))
	return session, nil
}

// GetSession retrieves a session by identifier.
func (s *Service) GetSession(_ context.Context, sessionID string) (booking.Session, error) {
	st, err := s.lookup(sessionID)
	if err != nil {
		return booking.Session{}, err
	}
	return st.info, nil
}

// Transcript returns the full message history in display order.
func (s *Service) Transcript(_ context.Context, sessionID string) ([]booking.Message, error) {
	st, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	copied := make([]booking.Message, len(st.history))
	copy(copied, st.history)
	return copied, nil
}

// HandleText processes one typed utterance and returns the bot
// messages it produced, in emission order.
func (s *Service) HandleText(ctx context.Context, sessionID, text string) ([]booking.Message, error) {
	return s.handleInput(ctx, sessionID, booking.FreeText(text))
}

// HandleChoice processes one structured selection, e.g. a ride option
// picked from the catalog.
func (s *Service) HandleChoice(ctx context.Context, sessionID, optionID string) ([]booking.Message, error) {
	return s.handleInput(ctx, sessionID, booking.StructuredChoice{ID: optionID})
}

func (s *Service) handleInput(ctx context.Context, sessionID string, input booking.Input) ([]booking.Message, error) {
	st, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if text, ok := input.(booking.FreeText); ok {
		st.history = append(st.history, newMessage(sessionID, string(text), false))
	}

	replies := st.engine.Handle(ctx, st.state, input)

	emitted := make([]booking.Message, 0, len(replies))
	for _, reply := range replies {
		msg := newMessage(sessionID, reply, true)
		st.history = append(st.history, msg)
		emitted = append(emitted, msg)
	}
	return emitted, nil
}

func (s *Service) lookup(sessionID string) (*sessionState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return st, nil
}

func newMessage(sessionID, text string, fromBot bool) booking.Message {
	return booking.Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Text:      text,
		FromBot:   fromBot,
		CreatedAt: time.Now().UTC(),
	}
}
