package Models

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearConfigEnv(t *testing.T) {
	for _, key := range []string{
		"SPEEDWATCH_BACKEND_URL", "SPEEDWATCH_LISTEN", "SPEEDWATCH_STATS_SCHEDULE",
		"SPEEDWATCH_UNKNOWN", "SPEEDWATCH_JOURNAL_DSN", "SPEEDWATCH_LOG_LEVEL",
		"SPEEDWATCH_FCM_CREDENTIALS", "SPEEDWATCH_FCM_TOKEN", "SPEEDWATCH_STREAM_MAX_BACKOFF",
		"SPEEDWATCH_SLACK_TOKEN", "SPEEDWATCH_SLACK_CHANNEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoadConfig_EnvFile(t *testing.T) {
	clearConfigEnv(t)
	// godotenv never overrides variables that are already set
	for _, key := range []string{"SPEEDWATCH_BACKEND_URL", "SPEEDWATCH_LOG_LEVEL", "SPEEDWATCH_STREAM_MAX_BACKOFF"} {
		require.NoError(t, os.Unsetenv(key))
	}

	file := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(file, []byte(
		"SPEEDWATCH_BACKEND_URL=http://detector:5000\nSPEEDWATCH_LOG_LEVEL=DEBUG\nSPEEDWATCH_STREAM_MAX_BACKOFF=5s\n",
	), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("SPEEDWATCH_BACKEND_URL")
		os.Unsetenv("SPEEDWATCH_LOG_LEVEL")
		os.Unsetenv("SPEEDWATCH_STREAM_MAX_BACKOFF")
	})

	cfg, err := LoadConfig(file)
	require.NoError(t, err)
	assert.Equal(t, "http://detector:5000", cfg.BackendURL)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, 5*time.Second, cfg.StreamMaxBackoff)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{key: "SPEEDWATCH_BACKEND_URL", value: "not a url"},
		{key: "SPEEDWATCH_LOG_LEVEL", value: "chatty"},
		{key: "SPEEDWATCH_STREAM_MAX_BACKOFF", value: "soon"},
		{key: "SPEEDWATCH_FCM_TOKEN", value: "device-token"},
		{key: "SPEEDWATCH_SLACK_CHANNEL", value: "#speedwatch"},
	}

	for _, test := range tests {
		t.Run(test.key, func(t *testing.T) {
			clearConfigEnv(t)
			t.Setenv(test.key, test.value)

			_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
			assert.Error(t, err)
		})
	}
}
