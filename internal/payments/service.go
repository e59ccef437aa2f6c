package payments

import (
	"context"
	"time"

	"github.com/google/uuid"

	"humanizer-backend/internal/profiles"
	"humanizer-backend/internal/shared/telemetry"
)

// PlanApplier switches a user's plan.
type PlanApplier interface {
	ApplyPlan(ctx context.Context, userID, planID string) (profiles.Profile, profiles.Plan, error)
}

// Service runs simulated checkouts.
type Service struct {
	plans PlanApplier
	repo  Repo
	now   func() time.Time
}

func NewService(plans PlanApplier, repo Repo) *Service {
	return &Service{
		plans: plans,
		repo:  repo,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Checkout validates the card, applies the plan and records the payment. No
// charge is made.
func (s *Service) Checkout(ctx context.Context, userID string, req Checkout) (Record, profiles.Profile, error) {
	if err := ValidateCard(req); err != nil {
		return Record{}, profiles.Profile{}, err
	}
	if _, ok := profiles.LookupPlan(req.PlanID); !ok {
		return Record{}, profiles.Profile{}, profiles.ErrUnknownPlan
	}

	profile, plan, err := s.plans.ApplyPlan(ctx, userID, req.PlanID)
	if err != nil {
		return Record{}, profiles.Profile{}, err
	}

	rec := Record{
		ID:        uuid.NewString(),
		UserID:    userID,
		PlanID:    string(plan.ID),
		PlanName:  plan.Name,
		Amount:    plan.Price,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return Record{}, profile, err
	}
	telemetry.Info("payment.recorded", map[string]any{
		"user_id":    userID,
		"payment_id": rec.ID,
		"plan":       rec.PlanID,
	})
	return rec, profile, nil
}

// History lists the user's payments, newest first.
func (s *Service) History(ctx context.Context, userID string) ([]Record, error) {
	return s.repo.ListByUser(ctx, userID)
}
