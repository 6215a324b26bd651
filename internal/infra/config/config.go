package config

import (
	"fmt"
	"os"
	"strings" // For LogLevel normalization
	"time"

	"github.com/maxbond/telegram/pkg/telegram"

	"github.com/joho/godotenv"
)

const defaultHTTPTimeout = 30 * time.Second

// AppConfig holds all configuration for the notifier
type AppConfig struct {
	TelegramToken  string // May be empty; sends then fail with a missing token error
	TelegramAPIURL string
	DefaultChatID  string
	DatabaseURL    string // Optional, enables the delivery journal
	LogLevel       string
	Environment    string
	CronSpec       string // Optional, repeats the notification on this schedule
	HTTPTimeout    time.Duration
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")

	cfg.TelegramAPIURL = os.Getenv("TELEGRAM_API_URL")
	if cfg.TelegramAPIURL == "" {
		cfg.TelegramAPIURL = telegram.DefaultAPIURL
	}

	cfg.DefaultChatID = os.Getenv("TELEGRAM_CHAT_ID")
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.CronSpec = os.Getenv("CRON_SPEC")

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	cfg.HTTPTimeout = defaultHTTPTimeout
	if raw := os.Getenv("HTTP_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
		}
		if timeout < 0 {
			return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %s is negative", raw)
		}
		cfg.HTTPTimeout = timeout
	}

	return cfg, nil
}
