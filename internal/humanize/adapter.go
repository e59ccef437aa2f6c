package humanize

import (
	"context"
	"errors"
	"strings"
	"time"

	"humanizer-backend/internal/humanize/undetectable"
	"humanizer-backend/internal/shared/metrics"
	"humanizer-backend/internal/shared/resilience"
	"humanizer-backend/internal/shared/telemetry"
)

// Adapter runs an ordered chain of strategies and returns the first usable rewrite.
type Adapter struct {
	strategies []Strategy
}

// NewAdapter builds a chain from strategies in priority order. Callers normally
// end the chain with a *Fallback so a rewrite is always produced.
func NewAdapter(strategies ...Strategy) *Adapter {
	out := make([]Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	return &Adapter{strategies: out}
}

// Strategies lists the chain by name, in order.
func (a *Adapter) Strategies() []string {
	names := make([]string, 0, len(a.strategies))
	for _, s := range a.strategies {
		names = append(names, s.Name())
	}
	return names
}

// Humanize validates the request, normalizes options and walks the chain.
// Recoverable strategy failures are logged and skipped.
func (a *Adapter) Humanize(ctx context.Context, req Request) (Output, error) {
	if err := ValidateText(req.Text); err != nil {
		return Output{}, err
	}
	opts := req.Options.Normalize()

	for _, s := range a.strategies {
		name := s.Name()
		start := time.Now()
		out, err := s.Attempt(ctx, req.Text, opts)
		if err == nil {
			err = checkOutput(req.Text, out)
		}
		elapsed := time.Since(start)

		if err == nil {
			metrics.ObserveStrategy(name, "success", elapsed)
			telemetry.Info("humanize.strategy_succeeded", map[string]any{
				"strategy":    name,
				"duration_ms": float64(elapsed.Microseconds()) / 1000.0,
				"input_len":   len(req.Text),
				"output_len":  len(out),
			})
			return Output{HumanizedText: strings.TrimSpace(out), Strategy: name}, nil
		}

		metrics.ObserveStrategy(name, failureKind(err), elapsed)
		if IsFatal(err) || errors.Is(ctx.Err(), context.Canceled) {
			return Output{}, err
		}
		telemetry.Warn("humanize.strategy_failed", map[string]any{
			"strategy":    name,
			"kind":        failureKind(err),
			"error":       err,
			"duration_ms": float64(elapsed.Microseconds()) / 1000.0,
		})
	}
	return Output{}, ErrAllStrategiesFailed
}

func checkOutput(input, output string) error {
	trimmed := strings.TrimSpace(output)
	if trimmed == "" {
		return ErrEmptyOutput
	}
	if trimmed == strings.TrimSpace(input) {
		return ErrIdenticalOutput
	}
	return nil
}

func failureKind(err error) string {
	var statusErr *resilience.HTTPStatusError
	switch {
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, undetectable.ErrInsufficientCredits):
		return "insufficient_credits"
	case errors.Is(err, undetectable.ErrPollTimeout):
		return "poll_timeout"
	case resilience.IsCircuitOpen(err):
		return "circuit_open"
	case errors.Is(err, ErrIdenticalOutput):
		return "identical_output"
	case errors.Is(err, ErrEmptyOutput):
		return "empty_output"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &statusErr):
		return "http_status"
	default:
		return "provider_error"
	}
}

var _ Humanizer = (*Adapter)(nil)
