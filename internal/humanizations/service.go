package humanizations

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"humanizer-backend/internal/humanize"
	"humanizer-backend/internal/profiles"
	"humanizer-backend/internal/shared/metrics"
	"humanizer-backend/internal/shared/telemetry"
)

// Credits is the slice of profile accounting the orchestrator needs.
type Credits interface {
	Get(ctx context.Context, userID string) (profiles.Profile, error)
	Consume(ctx context.Context, userID string) (profiles.Profile, error)
}

// Outcome is the result of a successful humanization. Record is nil when the
// rewrite succeeded but could not be saved.
type Outcome struct {
	HumanizedText string
	Strategy      string
	Record        *Record
	Usage         profiles.Usage
}

// Service coordinates the credit check, the rewrite, persistence and charging.
type Service struct {
	rewriter humanize.Humanizer
	credits  Credits
	repo     Repo
	now      func() time.Time
	newID    func() string
}

func NewService(rewriter humanize.Humanizer, credits Credits, repo Repo) *Service {
	return &Service{
		rewriter: rewriter,
		credits:  credits,
		repo:     repo,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
}

// Humanize rewrites req.Text for userID. Input and identity are checked before any
// credit lookup; credits before the rewriter runs. A successful rewrite is saved
// and then charged one credit. When saving fails the charge is skipped, and a
// failed charge is only logged; the text is returned either way.
func (s *Service) Humanize(ctx context.Context, userID string, req humanize.Request) (Outcome, error) {
	if err := humanize.ValidateText(req.Text); err != nil {
		metrics.IncHumanizeRequest("invalid")
		return Outcome{}, err
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		metrics.IncHumanizeRequest("unauthenticated")
		return Outcome{}, ErrUnauthenticated
	}

	profile, err := s.credits.Get(ctx, userID)
	if err != nil {
		metrics.IncHumanizeRequest("error")
		return Outcome{}, err
	}
	if profile.Exhausted() {
		metrics.IncHumanizeRequest("no_credits")
		return Outcome{}, ErrNoCredits
	}

	opts := req.Options.Normalize()
	out, err := s.rewriter.Humanize(ctx, humanize.Request{Text: req.Text, Options: opts})
	if err != nil {
		if humanize.IsValidation(err) {
			metrics.IncHumanizeRequest("invalid")
			return Outcome{}, err
		}
		metrics.IncHumanizeRequest("failed")
		telemetry.Error("humanize.failed", map[string]any{
			"user_id": userID,
			"error":   err,
		})
		return Outcome{}, &RewriteError{Err: err}
	}

	outcome := Outcome{
		HumanizedText: out.HumanizedText,
		Strategy:      out.Strategy,
		Usage:         profiles.UsageOf(profile),
	}

	rec := Record{
		ID:            s.newID(),
		UserID:        userID,
		OriginalText:  req.Text,
		HumanizedText: out.HumanizedText,
		Strategy:      out.Strategy,
		Readability:   string(opts.Readability),
		Purpose:       string(opts.Purpose),
		Strength:      opts.Strength,
		CreatedAt:     s.now(),
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		metrics.IncHumanizeRequest("unsaved")
		telemetry.Error("humanization.save_failed", map[string]any{
			"user_id":  userID,
			"strategy": out.Strategy,
			"error":    err,
		})
		return outcome, nil
	}
	outcome.Record = &rec

	updated, err := s.credits.Consume(ctx, userID)
	if err != nil {
		telemetry.Error("humanization.charge_failed", map[string]any{
			"user_id":         userID,
			"humanization_id": rec.ID,
			"error":           err,
		})
	} else {
		outcome.Usage = profiles.UsageOf(updated)
	}

	metrics.IncHumanizeRequest("success")
	telemetry.Info("humanization.completed", map[string]any{
		"user_id":           userID,
		"humanization_id":   rec.ID,
		"strategy":          out.Strategy,
		"credits_used":      outcome.Usage.CreditsUsed,
		"credits_remaining": outcome.Usage.CreditsRemaining,
	})
	return outcome, nil
}

// List returns the user's history, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Record, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUnauthenticated
	}
	return s.repo.ListByUser(ctx, userID, limit, offset)
}
