// Package config loads client configuration from the environment.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Azizsaidi66/CoffreFort/session"
)

// Config aggregates runtime configuration for the client.
type Config struct {
	// BaseURL is the fixed base address of the CoffreFort service.
	BaseURL string

	// Timeout bounds each HTTP request.
	Timeout time.Duration

	// CheckTTL controls local caching of check-access answers.
	CheckTTL time.Duration

	// SessionPath is the session file location.
	SessionPath string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// MetricsEnabled registers Prometheus metrics when true.
	MetricsEnabled bool

	// AuditStdout emits audit events as JSON lines on stdout when true.
	AuditStdout bool
}

// Load reads configuration from environment variables, applying defaults
// where possible. A .env file in the working directory is honored.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		BaseURL:        getEnv("COFFREFORT_API_URL", "http://localhost:8001/api"),
		Timeout:        time.Duration(getEnvAsInt("COFFREFORT_TIMEOUT_SECONDS", 10)) * time.Second,
		CheckTTL:       time.Duration(getEnvAsInt("COFFREFORT_CHECK_TTL_SECONDS", 30)) * time.Second,
		SessionPath:    getEnv("COFFREFORT_SESSION_FILE", session.DefaultPath()),
		LogLevel:       getEnv("COFFREFORT_LOG_LEVEL", "info"),
		MetricsEnabled: getEnvAsBool("COFFREFORT_METRICS", false),
		AuditStdout:    getEnvAsBool("COFFREFORT_AUDIT_STDOUT", false),
	}
	return cfg, nil
}

// NewLogger creates a structured slog.Logger at the configured level.
func NewLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
