package profiles

import (
	"context"
	"errors"

	"humanizer-backend/internal/shared/metrics"
	"humanizer-backend/internal/shared/telemetry"
)

// Service manages profiles and credit accounting.
type Service struct {
	store Store
}

// NewService constructs a Service over store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// NewMemoryService constructs a Service with an in-memory store.
func NewMemoryService() *Service {
	return &Service{store: NewMemoryStore()}
}

// Ensure creates the signup profile for a user if none exists.
func (s *Service) Ensure(ctx context.Context, userID, username string) (Profile, error) {
	return s.store.Ensure(ctx, userID, username)
}

// Get returns the user's profile, creating the signup profile on first access.
func (s *Service) Get(ctx context.Context, userID string) (Profile, error) {
	p, err := s.store.Get(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return s.store.Ensure(ctx, userID, "")
	}
	return p, err
}

// Consume charges one credit. It returns ErrLimitReached when none remain.
func (s *Service) Consume(ctx context.Context, userID string) (Profile, error) {
	p, err := s.store.Consume(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	metrics.IncCreditsConsumed()
	return p, nil
}

// ApplyPlan switches the user to planID and starts a fresh credit allowance.
func (s *Service) ApplyPlan(ctx context.Context, userID, planID string) (Profile, Plan, error) {
	plan, ok := LookupPlan(planID)
	if !ok {
		return Profile{}, Plan{}, ErrUnknownPlan
	}
	if _, err := s.Get(ctx, userID); err != nil {
		return Profile{}, Plan{}, err
	}
	p, err := s.store.SetPlan(ctx, userID, plan)
	if err != nil {
		return Profile{}, Plan{}, err
	}
	telemetry.Info("profile.plan_applied", map[string]any{
		"user_id":       userID,
		"plan":          string(plan.ID),
		"credits_total": plan.Credits,
	})
	return p, plan, nil
}

// Reset zeroes credits used.
func (s *Service) Reset(ctx context.Context, userID string) (Profile, error) {
	if _, err := s.Get(ctx, userID); err != nil {
		return Profile{}, err
	}
	return s.store.ResetUsed(ctx, userID)
}
