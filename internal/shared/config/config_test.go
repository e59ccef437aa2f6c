package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("UNDETECTABLE_API_KEY", "")
	t.Setenv("UNDETECTABLE_POLL_INTERVAL", "")
	t.Setenv("UNDETECTABLE_POLL_ATTEMPTS", "")
	t.Setenv("OPENAI_TEMPERATURE", "")
	t.Setenv("OPENAI_NO_TEMPERATURE_MODELS", "")

	cfg := Load()
	if cfg.Env != "dev" {
		t.Fatalf("expected dev env, got %q", cfg.Env)
	}
	if cfg.Humanize.PollInterval != 5*time.Second {
		t.Fatalf("expected 5s poll interval, got %s", cfg.Humanize.PollInterval)
	}
	if cfg.Humanize.PollAttempts != 20 {
		t.Fatalf("expected 20 poll attempts, got %d", cfg.Humanize.PollAttempts)
	}
	if cfg.Humanize.UndetectableAPIKey != "" {
		t.Fatalf("expected no provider key by default")
	}
	if cfg.Humanize.OpenAITemperature != 0.7 {
		t.Fatalf("expected 0.7 temperature, got %v", cfg.Humanize.OpenAITemperature)
	}
	if len(cfg.Humanize.OpenAINoTemperatureModels) == 0 {
		t.Fatalf("expected default no-temperature models")
	}
}

func TestLoadOpenAITemperature(t *testing.T) {
	t.Setenv("OPENAI_TEMPERATURE", "1.1")
	t.Setenv("OPENAI_NO_TEMPERATURE_MODELS", " o1 , custom-reasoner ")

	cfg := Load()
	if cfg.Humanize.OpenAITemperature != 1.1 {
		t.Fatalf("expected 1.1 temperature, got %v", cfg.Humanize.OpenAITemperature)
	}
	models := cfg.Humanize.OpenAINoTemperatureModels
	if len(models) != 2 || models[0] != "o1" || models[1] != "custom-reasoner" {
		t.Fatalf("unexpected no-temperature models %v", models)
	}
}

func TestGetEnvDurationAcceptsSeconds(t *testing.T) {
	t.Setenv("TEST_DURATION", "7")
	if got := getEnvDuration("TEST_DURATION", time.Second); got != 7*time.Second {
		t.Fatalf("expected 7s, got %s", got)
	}
	t.Setenv("TEST_DURATION", "250ms")
	if got := getEnvDuration("TEST_DURATION", time.Second); got != 250*time.Millisecond {
		t.Fatalf("expected 250ms, got %s", got)
	}
}

func TestLoadEnvFilesDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("HUMANIZER_TEST_A=file\nHUMANIZER_TEST_B=\"quoted\"\n"), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv("HUMANIZER_TEST_A", "process")
	os.Unsetenv("HUMANIZER_TEST_B")
	t.Cleanup(func() { os.Unsetenv("HUMANIZER_TEST_B") })

	loadEnvFiles(path, filepath.Join(dir, "missing.env"))

	if got := os.Getenv("HUMANIZER_TEST_A"); got != "process" {
		t.Fatalf("expected process value to win, got %q", got)
	}
	if got := os.Getenv("HUMANIZER_TEST_B"); got != "quoted" {
		t.Fatalf("expected quoted value, got %q", got)
	}
}

func TestNormalizeEnv(t *testing.T) {
	cases := map[string]string{"prod": "production", "Staging": "staging", "": "dev", "local": "local"}
	for in, want := range cases {
		if got := normalizeEnv(in); got != want {
			t.Fatalf("normalizeEnv(%q) = %q, want %q", in, got, want)
		}
	}
}
