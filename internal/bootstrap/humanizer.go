package bootstrap

import (
	"strings"
	"time"

	"humanizer-backend/internal/humanize"
	"humanizer-backend/internal/humanize/undetectable"
	"humanizer-backend/internal/llm/openai"
	"humanizer-backend/internal/shared/config"
	"humanizer-backend/internal/shared/resilience"
	"humanizer-backend/internal/shared/telemetry"
)

// BuildHumanizer returns the rewrite service configured by cfg and the names of
// the strategies it will try. A configured function URL replaces the in-process
// chain with a remote call.
func BuildHumanizer(cfg config.Config) (humanize.Humanizer, []string, error) {
	hc := cfg.Humanize
	if url := strings.TrimSpace(hc.FunctionURL); url != "" {
		telemetry.Info("humanize.remote", map[string]any{"url": url})
		return humanize.NewRemoteClient(url, hc.FunctionAPIKey, 0), []string{"remote"}, nil
	}

	fallback := humanize.FallbackOptions{FillerRate: hc.FillerRate}
	if hc.Fillers {
		seed := hc.FillerSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		fallback.Rand = humanize.NewSeededRand(seed)
	}

	adapter, err := humanize.New(humanize.Config{
		Undetectable: undetectable.Config{
			APIKey:       hc.UndetectableAPIKey,
			UserID:       hc.UndetectableUserID,
			BaseURL:      hc.UndetectableBaseURL,
			PollInterval: hc.PollInterval,
			PollAttempts: hc.PollAttempts,
		},
		OpenAI:   openAIConfig(hc),
		Fallback: fallback,
		Executor: resilience.NewExecutor(cfg.Resilience),
	})
	if err != nil {
		return nil, nil, err
	}
	return adapter, adapter.Strategies(), nil
}

func openAIConfig(hc config.HumanizeConfig) openai.Config {
	return openai.Config{
		APIKey:              hc.OpenAIAPIKey,
		Model:               hc.OpenAIModel,
		Timeout:             hc.OpenAITimeout,
		Temperature:         hc.OpenAITemperature,
		NoTemperatureModels: hc.OpenAINoTemperatureModels,
	}
}
