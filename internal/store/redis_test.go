package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"

	"github.com/reservehq/concierge/internal/model/reservation"
	"github.com/reservehq/concierge/internal/store"
)

func newTestRedis(t *testing.T, opts ...store.RedisOption) (*store.RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	return store.NewRedisStoreFromClient(client, opts...), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	s, _ := newTestRedis(t)
	ctx := context.Background()

	sess := reservation.NewSession()
	sess.PartySize = 4
	sess.Date = "2026-04-01"
	sess.CurrentStep = reservation.StepTime

	if err := s.Save(ctx, sess); err != nil {
		t.Fatalf("Save err: %v", err)
	}

	got, err := s.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if got.PartySize != 4 || got.Date != "2026-04-01" || got.CurrentStep != reservation.StepTime {
		t.Fatalf("unexpected session: %+v", got)
	}
}

func TestRedisStoreNotFound(t *testing.T) {
	s, _ := newTestRedis(t)

	_, err := s.Get(context.Background(), "missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRedisStoreTTLExpiry(t *testing.T) {
	s, mr := newTestRedis(t, store.WithTTL(time.Minute))
	ctx := context.Background()

	sess := reservation.NewSession()
	if err := s.Save(ctx, sess); err != nil {
		t.Fatalf("Save err: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	_, err := s.Get(ctx, sess.ID)
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected expired session to be gone, got %v", err)
	}
}
