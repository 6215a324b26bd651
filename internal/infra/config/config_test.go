package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	// Run from a directory without a .env file so godotenv finds nothing.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	for _, key := range []string{
		"TELEGRAM_TOKEN", "TELEGRAM_API_URL", "TELEGRAM_CHAT_ID", "DATABASE_URL",
		"LOG_LEVEL", "ENVIRONMENT", "CRON_SPEC", "HTTP_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.TelegramToken)
	assert.Equal(t, "https://api.telegram.org/bot", cfg.TelegramAPIURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Empty(t, cfg.CronSpec)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_API_URL", "http://proxy.local/bot")
	t.Setenv("TELEGRAM_CHAT_ID", "-1001")
	t.Setenv("DATABASE_URL", "postgres://localhost/notify")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("ENVIRONMENT", "Production")
	t.Setenv("CRON_SPEC", "0 9 * * *")
	t.Setenv("HTTP_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, &AppConfig{
		TelegramToken:  "123:abc",
		TelegramAPIURL: "http://proxy.local/bot",
		DefaultChatID:  "-1001",
		DatabaseURL:    "postgres://localhost/notify",
		LogLevel:       "debug",
		Environment:    "production",
		CronSpec:       "0 9 * * *",
		HTTPTimeout:    5 * time.Second,
	}, cfg)
}

func TestLoadInvalidTimeout(t *testing.T) {
	clearEnv(t)

	t.Setenv("HTTP_TIMEOUT", "soon")
	_, err := Load()
	assert.ErrorContains(t, err, "invalid HTTP_TIMEOUT")

	t.Setenv("HTTP_TIMEOUT", "-1s")
	_, err = Load()
	assert.ErrorContains(t, err, "negative")
}
