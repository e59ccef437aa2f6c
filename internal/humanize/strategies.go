package humanize

import (
	"context"
	"strings"

	"humanizer-backend/internal/humanize/undetectable"
	"humanizer-backend/internal/llm"
)

// JobClient is the submit/poll provider surface used by AsyncStrategy.
type JobClient interface {
	Humanize(ctx context.Context, req undetectable.SubmitRequest) (string, error)
}

// AsyncStrategy rewrites through the submit/poll document API.
type AsyncStrategy struct {
	Client JobClient
}

func (s *AsyncStrategy) Name() string { return "undetectable" }

func (s *AsyncStrategy) Attempt(ctx context.Context, text string, opts Options) (string, error) {
	return s.Client.Humanize(ctx, undetectable.SubmitRequest{
		Content:     text,
		Readability: string(opts.Readability),
		Purpose:     providerPurpose(opts.Purpose),
		Strength:    providerStrength(opts.Strength),
	})
}

// providerPurpose maps our purposes onto the provider's document categories.
func providerPurpose(p Purpose) string {
	switch p {
	case PurposeAcademic:
		return "Essay"
	case PurposeBusiness:
		return "Business Material"
	case PurposeCreative:
		return "Story"
	case PurposeTechnical:
		return "Report"
	default:
		return "General Writing"
	}
}

func providerStrength(strength float64) string {
	switch BandFor(strength) {
	case BandLow:
		return "Quality"
	case BandMedium:
		return "Balanced"
	default:
		return "More Human"
	}
}

// ChatStrategy rewrites with a single chat-completion call.
type ChatStrategy struct {
	Client llm.Completer
}

func (s *ChatStrategy) Name() string { return "chat" }

func (s *ChatStrategy) Attempt(ctx context.Context, text string, opts Options) (string, error) {
	out, err := s.Client.Complete(ctx, llm.SystemUser(BuildSystemPrompt(opts), text))
	if err != nil {
		return "", err
	}
	return strings.Trim(strings.TrimSpace(out), `"`), nil
}
