package reservation

import (
	"context"
	"fmt"
	"time"

	"github.com/reservehq/concierge/internal/conversation"
	"github.com/reservehq/concierge/internal/metrics"
	"github.com/reservehq/concierge/internal/model/reservation"
	"github.com/reservehq/concierge/internal/store"
)

// ErrSessionNotFound is surfaced when a turn references an unknown session.
var ErrSessionNotFound = store.ErrNotFound

// Service orchestrates reservation conversations: it owns session lookup
// and persistence and delegates every turn to the conversation processor.
type Service struct {
	sessions store.Store
	proc     *conversation.Processor
}

// NewService wires the service to a session store and booking rules.
func NewService(sessions store.Store, rules conversation.Rules) *Service {
	return &Service{
		sessions: sessions,
		proc:     conversation.NewProcessor(rules),
	}
}

// StartSession provisions a fresh session and returns the opening prompt.
func (s *Service) StartSession(ctx context.Context) (reservation.Session, string, error) {
	sess := reservation.NewSession()
	if err := s.sessions.Save(ctx, sess); err != nil {
		return reservation.Session{}, "", fmt.Errorf("save session: %w", err)
	}
	metrics.SessionsStarted.Inc()
	return sess, conversation.Greeting(), nil
}

// HandleInput runs one turn for the session. The fieldHint is accepted for
// transport compatibility but never consulted by step logic.
func (s *Service) HandleInput(ctx context.Context, sessionID, input, fieldHint string) (reservation.Session, string, error) {
	_ = fieldHint

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return reservation.Session{}, "", err
	}

	next, response := s.proc.ProcessTurn(sess, input)
	next.UpdatedAt = time.Now().UTC()

	if err := s.sessions.Save(ctx, next); err != nil {
		return reservation.Session{}, "", fmt.Errorf("save session %s: %w", sessionID, err)
	}

	metrics.TurnsProcessed.WithLabelValues(string(next.CurrentStep)).Inc()
	return next, response, nil
}

// GetSession retrieves a session by identifier.
func (s *Service) GetSession(ctx context.Context, sessionID string) (reservation.Session, error) {
	return s.sessions.Get(ctx, sessionID)
}
