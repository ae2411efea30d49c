// Package store persists reservation sessions. The conversation core never
// touches it; the service layer loads a session, runs a turn, and saves the
// result back.
package store

import (
	"context"
	"errors"

	"github.com/reservehq/concierge/internal/model/reservation"
)

// ErrNotFound signals an unknown session identifier. It is the only store
// condition surfaced to clients as a hard failure.
var ErrNotFound = errors.New("session not found")

// Store abstracts session persistence.
type Store interface {
	// Get returns the session for the identifier, or ErrNotFound.
	Get(ctx context.Context, id string) (reservation.Session, error)
	// Save persists the session, creating or overwriting.
	Save(ctx context.Context, sess reservation.Session) error
}
