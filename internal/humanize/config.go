package humanize

import (
	"strings"

	"humanizer-backend/internal/humanize/undetectable"
	"humanizer-backend/internal/llm/openai"
	"humanizer-backend/internal/shared/resilience"
	"humanizer-backend/internal/shared/telemetry"
)

// Config carries provider credentials into the adapter. A provider whose API key is
// empty is left out of the chain; the local fallback is always last.
type Config struct {
	Undetectable undetectable.Config
	OpenAI       openai.Config
	Fallback     FallbackOptions
	// Executor wraps provider calls with retry and circuit breaking. Optional.
	Executor *resilience.Executor
}

// New assembles the strategy chain: async provider, chat provider, local fallback.
func New(cfg Config) (*Adapter, error) {
	var chain []Strategy

	if strings.TrimSpace(cfg.Undetectable.APIKey) != "" {
		client, err := undetectable.NewClient(cfg.Undetectable, cfg.Executor)
		if err != nil {
			return nil, err
		}
		chain = append(chain, &AsyncStrategy{Client: client})
	}

	if strings.TrimSpace(cfg.OpenAI.APIKey) != "" {
		client, err := openai.NewClient(cfg.OpenAI, cfg.Executor)
		if err != nil {
			return nil, err
		}
		chain = append(chain, &ChatStrategy{Client: client})
	}

	fallback, err := NewFallback(cfg.Fallback)
	if err != nil {
		return nil, err
	}
	chain = append(chain, fallback)

	adapter := NewAdapter(chain...)
	telemetry.Info("humanize.chain_ready", map[string]any{
		"strategies": strings.Join(adapter.Strategies(), ","),
	})
	return adapter, nil
}
