package reservation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/reservehq/concierge/internal/conversation"
	model "github.com/reservehq/concierge/internal/model/reservation"
	reservationservice "github.com/reservehq/concierge/internal/service/reservation"
	"github.com/reservehq/concierge/internal/store"
)

func newTestService() *reservationservice.Service {
	return reservationservice.NewService(store.NewMemoryStore(), conversation.DefaultRules())
}

func TestStartSession(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	sess, greeting, err := svc.StartSession(ctx)
	if err != nil {
		t.Fatalf("StartSession err: %v", err)
	}
	if sess.ID == "" {
		t.Fatal("expected session ID")
	}
	if sess.CurrentStep != model.StepGreeting {
		t.Fatalf("expected greeting step, got %s", sess.CurrentStep)
	}
	if greeting == "" || len([]rune(greeting)) > 120 {
		t.Fatalf("unexpected greeting %q", greeting)
	}

	got, err := svc.GetSession(ctx, sess.ID)
	if err != nil {
		t.Fatalf("GetSession err: %v", err)
	}
	if got.ID != sess.ID {
		t.Fatalf("expected persisted session, got %+v", got)
	}
}

func TestHandleInputPersistsTurn(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	sess, _, err := svc.StartSession(ctx)
	if err != nil {
		t.Fatalf("StartSession err: %v", err)
	}

	next, response, err := svc.HandleInput(ctx, sess.ID, "hello", "")
	if err != nil {
		t.Fatalf("HandleInput err: %v", err)
	}
	if next.CurrentStep != model.StepPartySize {
		t.Fatalf("expected party_size step, got %s", next.CurrentStep)
	}
	if response != "How many guests? (1-20)" {
		t.Fatalf("unexpected response %q", response)
	}

	stored, err := svc.GetSession(ctx, sess.ID)
	if err != nil {
		t.Fatalf("GetSession err: %v", err)
	}
	if stored.CurrentStep != model.StepPartySize {
		t.Fatalf("expected turn persisted, stored step %s", stored.CurrentStep)
	}
	if !stored.UpdatedAt.After(stored.CreatedAt) && !stored.UpdatedAt.Equal(stored.CreatedAt) {
		t.Fatalf("expected UpdatedAt stamped, got %v", stored.UpdatedAt)
	}
}

func TestHandleInputIgnoresFieldHint(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	sess, _, _ := svc.StartSession(ctx)

	// The hint names a different field; step logic must not care.
	next, _, err := svc.HandleInput(ctx, sess.ID, "hello", "phone")
	if err != nil {
		t.Fatalf("HandleInput err: %v", err)
	}
	if next.CurrentStep != model.StepPartySize {
		t.Fatalf("expected party_size step regardless of hint, got %s", next.CurrentStep)
	}
}

func TestHandleInputUnknownSession(t *testing.T) {
	svc := newTestService()

	_, _, err := svc.HandleInput(context.Background(), "missing", "hello", "")
	if !errors.Is(err, reservationservice.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}
