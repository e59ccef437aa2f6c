package payments

import (
	"context"
	"errors"
	"testing"

	"humanizer-backend/internal/profiles"
)

func TestCheckoutAppliesPlanAndRecordsPayment(t *testing.T) {
	store := profiles.NewMemoryStore()
	store.Put(profiles.Profile{ID: "user-1", Plan: profiles.PlanFree, CreditsTotal: 10, CreditsUsed: 9})
	repo := NewMemoryRepo()
	svc := NewService(profiles.NewService(store), repo)

	rec, profile, err := svc.Checkout(context.Background(), "user-1", Checkout{
		PlanID:     "enterprise",
		CardName:   "Ada",
		CardNumber: "4242424242424242",
		CardExpiry: "01/30",
		CardCVC:    "9999",
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if rec.PlanName != "Enterprise" || rec.Amount != "$49/month" {
		t.Fatalf("unexpected record %+v", rec)
	}
	if profile.CreditsTotal != 500 || profile.CreditsUsed != 0 {
		t.Fatalf("unexpected profile %+v", profile)
	}
	history, _ := svc.History(context.Background(), "user-1")
	if len(history) != 1 || history[0].ID != rec.ID {
		t.Fatalf("unexpected history %+v", history)
	}
}

func TestCheckoutRejectsBeforeApplying(t *testing.T) {
	store := profiles.NewMemoryStore()
	store.Put(profiles.Profile{ID: "user-1", Plan: profiles.PlanFree, CreditsTotal: 10, CreditsUsed: 9})
	repo := NewMemoryRepo()
	svc := NewService(profiles.NewService(store), repo)

	_, _, err := svc.Checkout(context.Background(), "user-1", Checkout{PlanID: "pro"})
	var cardErr *CardError
	if !errors.As(err, &cardErr) {
		t.Fatalf("expected CardError, got %v", err)
	}
	_, _, err = svc.Checkout(context.Background(), "user-1", Checkout{
		PlanID: "gold", CardName: "Ada", CardNumber: "4242424242424242", CardExpiry: "01/30", CardCVC: "123",
	})
	if !errors.Is(err, profiles.ErrUnknownPlan) {
		t.Fatalf("expected ErrUnknownPlan, got %v", err)
	}

	p, _ := store.Get(context.Background(), "user-1")
	history, _ := repo.ListByUser(context.Background(), "user-1")
	if p.CreditsUsed != 9 || len(history) != 0 {
		t.Fatalf("rejected checkout must not change state")
	}
}
