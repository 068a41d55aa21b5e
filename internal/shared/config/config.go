package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"summary-backend/internal/shared/telemetry"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	defaultPort        = "5000"
	defaultSMTPHost    = "smtp.gmail.com"
	defaultSMTPPort    = 587
	defaultLLMTimeout  = 120 * time.Second
	defaultGeminiModel = "gemini-2.5-flash"
	defaultOpenAIModel = "gpt-4o-mini"
)

// Config holds application configuration. It is built once at process start
// and passed by value to everything that needs it.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	DatabaseURL     string

	LLMProvider   string
	LLMModel      string
	LLMEndpoint   string
	LLMTimeout    time.Duration
	GeminiAPIKey  string
	OpenAIAPIKey  string
	OpenAIBaseURL string

	Mail MailConfig
}

// MailConfig configures the share-by-email transport.
type MailConfig struct {
	SMTPHost string
	SMTPPort int
	Username string
	Password string
	From     string
	FromName string
}

// Enabled reports whether enough credentials are present for real delivery.
func (m MailConfig) Enabled() bool {
	return strings.TrimSpace(m.Username) != "" && strings.TrimSpace(m.Password) != ""
}

// APIKey returns the key for the configured provider.
func (c Config) APIKey() string {
	if c.LLMProvider == ProviderOpenAI {
		return c.OpenAIAPIKey
	}
	return c.GeminiAPIKey
}

// IsDevLike reports whether missing infrastructure should degrade to in-process fallbacks.
func (c Config) IsDevLike() bool {
	switch c.Env {
	case "dev", "local":
		return true
	default:
		return false
	}
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := databaseURL()
	provider := normalizeProvider(getEnv("LLM_PROVIDER", ProviderGemini))

	if env == "production" && dbURL == "" {
		telemetry.Warn("config.missing", map[string]any{"key": "DATABASE_URL", "env": env})
	}

	user := getEnv("EMAIL_USER", "")
	return Config{
		Port:            getEnv("PORT", defaultPort),
		Env:             env,
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173,http://localhost:3000")),
		DatabaseURL:     dbURL,
		LLMProvider:     provider,
		LLMModel:        getEnv("LLM_MODEL", defaultModel(provider)),
		LLMEndpoint:     getEnv("LLM_ENDPOINT", ""),
		LLMTimeout:      getEnvSeconds("LLM_TIMEOUT_SECONDS", defaultLLMTimeout),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:   getEnv("OPENAI_BASE_URL", ""),
		Mail: MailConfig{
			SMTPHost: getEnv("SMTP_HOST", defaultSMTPHost),
			SMTPPort: getEnvInt("SMTP_PORT", defaultSMTPPort),
			Username: user,
			Password: getEnv("EMAIL_PASS", ""),
			From:     getEnv("MAIL_FROM", user),
			FromName: getEnv("MAIL_FROM_NAME", ""),
		},
	}
}

// databaseURL prefers DATABASE_URL and accepts MONGODB_URI as a legacy name
// when it carries a postgres connection string.
func databaseURL() string {
	if v := strings.TrimSpace(os.Getenv("DATABASE_URL")); v != "" {
		return v
	}
	legacy := strings.TrimSpace(os.Getenv("MONGODB_URI"))
	if strings.HasPrefix(legacy, "postgres://") || strings.HasPrefix(legacy, "postgresql://") {
		return legacy
	}
	return ""
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		telemetry.Warn("config.invalid_int", map[string]any{"key": key, "error": err.Error()})
		return def
	}
	return v
}

func getEnvSeconds(key string, def time.Duration) time.Duration {
	secs := getEnvInt(key, 0)
	if secs <= 0 {
		return def
	}
	return time.Duration(secs) * time.Second
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
	case "test":
		return "test"
	default:
		return "dev"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case ProviderOpenAI:
		return ProviderOpenAI
	default:
		return ProviderGemini
	}
}

func defaultModel(provider string) string {
	if provider == ProviderOpenAI {
		return defaultOpenAIModel
	}
	return defaultGeminiModel
}
