package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"humanizer-backend/internal/shared/resilience"
)

// Config holds application configuration.
type Config struct {
	Port               string
	Env                string
	LogLevel           string
	CORSAllowOrigin    []string
	PublicBaseURL      string
	ObjectStoreType    string
	LocalStoreDir      string
	AWSRegion          string
	S3Bucket           string
	S3Prefix           string
	SSEKMSKeyID        string
	S3PublicURL        string
	DatabaseURL        string
	AutoMigrate        bool
	JWTSecret          string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	UIRedirectURL      string
	ExtractQueueURL    string

	Humanize   HumanizeConfig
	Resilience resilience.Config
	RateLimit  RateLimitConfig
}

// HumanizeConfig carries rewrite provider credentials and tuning.
// Empty keys disable the corresponding provider.
type HumanizeConfig struct {
	UndetectableAPIKey  string
	UndetectableUserID  string
	UndetectableBaseURL string
	PollInterval        time.Duration
	PollAttempts        int

	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAITimeout time.Duration

	// OpenAITemperature is ignored for models listed in OpenAINoTemperatureModels.
	OpenAITemperature         float32
	OpenAINoTemperatureModels []string

	// FunctionURL points the orchestrator at a remote humanize function instead of
	// running the strategy chain in-process.
	FunctionURL    string
	FunctionAPIKey string

	Fillers    bool
	FillerSeed int64
	FillerRate float64
}

// RateLimitConfig holds token bucket settings per route group.
type RateLimitConfig struct {
	HumanizeRate  float64
	HumanizeBurst int
	DefaultRate   float64
	DefaultBurst  int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	res := resilience.DefaultConfig()
	res.RetryMaxAttempts = getEnvInt("PROVIDER_RETRY_ATTEMPTS", res.RetryMaxAttempts)
	res.BreakerEnabled = getEnvBool("PROVIDER_BREAKER_ENABLED", res.BreakerEnabled)
	res.BreakerOpenTimeout = getEnvDuration("PROVIDER_BREAKER_OPEN_TIMEOUT", res.BreakerOpenTimeout)

	return Config{
		Port:               getEnv("PORT", "8080"),
		Env:                env,
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowOrigin:    splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		PublicBaseURL:      strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
		ObjectStoreType:    normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:      getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:          getEnv("AWS_REGION", ""),
		S3Bucket:           getEnv("S3_BUCKET", ""),
		S3Prefix:           getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:        getEnv("SSE_KMS_KEY_ID", ""),
		S3PublicURL:        strings.TrimRight(getEnv("S3_PUBLIC_URL", ""), "/"),
		DatabaseURL:        dbURL,
		AutoMigrate:        getEnvBool("DB_AUTO_MIGRATE", false),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
		UIRedirectURL:      getEnv("UI_REDIRECT_URL", ""),
		ExtractQueueURL:    getEnv("EXTRACT_QUEUE_URL", ""),
		Humanize: HumanizeConfig{
			UndetectableAPIKey:        getEnv("UNDETECTABLE_API_KEY", ""),
			UndetectableUserID:        getEnv("UNDETECTABLE_USER_ID", ""),
			UndetectableBaseURL:       getEnv("UNDETECTABLE_BASE_URL", "https://humanize.undetectable.ai"),
			PollInterval:              getEnvDuration("UNDETECTABLE_POLL_INTERVAL", 5*time.Second),
			PollAttempts:              getEnvInt("UNDETECTABLE_POLL_ATTEMPTS", 20),
			OpenAIAPIKey:              getEnv("OPENAI_API_KEY", ""),
			OpenAIModel:               getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			OpenAITimeout:             time.Duration(getEnvInt("OPENAI_TIMEOUT_SECONDS", 60)) * time.Second,
			OpenAITemperature:         float32(getEnvFloat("OPENAI_TEMPERATURE", 0.7)),
			OpenAINoTemperatureModels: splitAndTrim(getEnv("OPENAI_NO_TEMPERATURE_MODELS", "o1,o1-mini,o3,o3-mini,o4-mini")),
			FunctionURL:               getEnv("HUMANIZE_FUNCTION_URL", ""),
			FunctionAPIKey:            getEnv("HUMANIZE_FUNCTION_API_KEY", ""),
			Fillers:                   getEnvBool("HUMANIZE_FILLERS", false),
			FillerSeed:                int64(getEnvInt("HUMANIZE_FILLER_SEED", 0)),
			FillerRate:                getEnvFloat("HUMANIZE_FILLER_RATE", 0.3),
		},
		Resilience: res,
		RateLimit: RateLimitConfig{
			HumanizeRate:  getEnvFloat("RATE_LIMIT_HUMANIZE_RPS", 0.5),
			HumanizeBurst: getEnvInt("RATE_LIMIT_HUMANIZE_BURST", 5),
			DefaultRate:   getEnvFloat("RATE_LIMIT_DEFAULT_RPS", 5),
			DefaultBurst:  getEnvInt("RATE_LIMIT_DEFAULT_BURST", 20),
		},
	}
}

// IsDevLike reports whether env allows in-memory fallbacks and dev-only routes.
func IsDevLike(env string) bool {
	return env == "dev" || env == "local" || env == ""
}

func getEnv(key, def string) string {
	if val, ok := os.LookupEnv(key); ok && strings.TrimSpace(val) != "" {
		return strings.TrimSpace(val)
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, raw, def)
		return def
	}
	return n
}

func getEnvFloat(key string, def float64) float64 {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("invalid %s=%q, using %v", key, raw, def)
		return def
	}
	return f
}

func getEnvBool(key string, def bool) bool {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return b
}

// getEnvDuration accepts Go durations ("5s") or bare seconds ("5").
func getEnvDuration(key string, def time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
