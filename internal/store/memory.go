package store

import (
	"context"
	"sync"

	"github.com/reservehq/concierge/internal/model/reservation"
)

// MemoryStore keeps sessions in process memory. Suitable for development
// and tests; sessions vanish on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]reservation.Session
}

// NewMemoryStore bootstraps an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]reservation.Session)}
}

// Get retrieves a session by identifier.
func (m *MemoryStore) Get(_ context.Context, id string) (reservation.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[id]
	if !ok {
		return reservation.Session{}, ErrNotFound
	}
	return sess, nil
}

// Save stores the session, overwriting any previous version.
func (m *MemoryStore) Save(_ context.Context, sess reservation.Session) error {
	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()
	return nil
}
