package Models

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the console settings. Values come from the process
// environment, optionally seeded from .env files.
type Config struct {
	BackendURL         string        `env:"SPEEDWATCH_BACKEND_URL" validate:"required,url"`
	ListenAddr         string        `env:"SPEEDWATCH_LISTEN" validate:"required"`
	StatsSchedule      string        `env:"SPEEDWATCH_STATS_SCHEDULE" validate:"required"`
	UnknownPlaceholder string        `env:"SPEEDWATCH_UNKNOWN" validate:"required"`
	JournalDSN         string        `env:"SPEEDWATCH_JOURNAL_DSN" validate:"required"`
	LogLevel           string        `env:"SPEEDWATCH_LOG_LEVEL" validate:"oneof=debug info warn error"`
	FCMCredentialsFile string        `env:"SPEEDWATCH_FCM_CREDENTIALS" validate:"required_with=FCMToken"`
	FCMToken           string        `env:"SPEEDWATCH_FCM_TOKEN" validate:"required_with=FCMCredentialsFile"`
	SlackToken         string        `env:"SPEEDWATCH_SLACK_TOKEN" validate:"required_with=SlackChannel"`
	SlackChannel       string        `env:"SPEEDWATCH_SLACK_CHANNEL" validate:"required_with=SlackToken"`
	StreamMaxBackoff   time.Duration `env:"SPEEDWATCH_STREAM_MAX_BACKOFF" validate:"gt=0"`
}

// DefaultConfig matches the backend's development setup.
func DefaultConfig() Config {
	return Config{
		BackendURL:         "http://127.0.0.1:5000",
		ListenAddr:         ":3001",
		StatsSchedule:      "@every 2s",
		UnknownPlaceholder: "Không rõ",
		JournalDSN:         "file:speedwatch?mode=memory&cache=shared",
		LogLevel:           "info",
		StreamMaxBackoff:   30 * time.Second,
	}
}

// LoadConfig loads the given .env files (".env" when none are given), then
// overlays the environment on the defaults. Missing files are skipped.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("error loading %s: %w", file, err)
		}
	}

	cfg := DefaultConfig()
	overlay(&cfg.BackendURL, "SPEEDWATCH_BACKEND_URL")
	overlay(&cfg.ListenAddr, "SPEEDWATCH_LISTEN")
	overlay(&cfg.StatsSchedule, "SPEEDWATCH_STATS_SCHEDULE")
	overlay(&cfg.UnknownPlaceholder, "SPEEDWATCH_UNKNOWN")
	overlay(&cfg.JournalDSN, "SPEEDWATCH_JOURNAL_DSN")
	overlay(&cfg.LogLevel, "SPEEDWATCH_LOG_LEVEL")
	overlay(&cfg.FCMCredentialsFile, "SPEEDWATCH_FCM_CREDENTIALS")
	overlay(&cfg.FCMToken, "SPEEDWATCH_FCM_TOKEN")
	overlay(&cfg.SlackToken, "SPEEDWATCH_SLACK_TOKEN")
	overlay(&cfg.SlackChannel, "SPEEDWATCH_SLACK_CHANNEL")
	if raw := os.Getenv("SPEEDWATCH_STREAM_MAX_BACKOFF"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("SPEEDWATCH_STREAM_MAX_BACKOFF: %w", err)
		}
		cfg.StreamMaxBackoff = d
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := Validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %s", ValidationMessage(err))
	}
	return cfg, nil
}

func overlay(field *string, key string) {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		*field = strings.TrimSpace(value)
	}
}

// SlogLevel maps LogLevel onto slog.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
