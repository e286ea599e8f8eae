// Package config loads and validates environment-based configuration.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Run modes for the bot transport.
const (
	ModeWebhook = "webhook"
	ModePolling = "polling"
)

type Config struct {
	// HTTP server (webhook mode)
	Port string

	// Telegram
	BotToken      string
	TelegramAPI   string
	Mode          string
	WebhookURL    string
	WebhookSecret string

	// Domain
	DefaultCurrency string

	// Persistence
	DataBackend  string
	SQLiteDBPath string

	// AMQP (empty URL disables event publishing)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets export (empty spreadsheet ID disables it)
	GoogleSpreadsheetID string
	GoogleSheetName     string
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8081"),

		BotToken:      getEnv("BOT_TOKEN", ""),
		TelegramAPI:   getEnv("TELEGRAM_API_URL", "https://api.telegram.org"),
		Mode:          getEnv("MODE", ModePolling),
		WebhookURL:    getEnv("WEBHOOK_URL", ""),
		WebhookSecret: getEnv("WEBHOOK_SECRET", ""),

		DefaultCurrency: getEnv("DEFAULT_CURRENCY", "USD"),

		DataBackend:  getEnv("DATA_BACKEND", "memory"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/matheo.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "matheo"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "expense_events"),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", "Expenses"),
	}
}

// Validate returns an error listing every invalid setting.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.BotToken == "" {
		errors = append(errors, "BOT_TOKEN cannot be empty")
	}

	if c.Mode != ModeWebhook && c.Mode != ModePolling {
		errors = append(errors, fmt.Sprintf("invalid mode '%s': must be '%s' or '%s'", c.Mode, ModeWebhook, ModePolling))
	}

	// Telegram only delivers webhooks over HTTPS.
	if c.WebhookURL != "" {
		if parsedURL, err := url.Parse(c.WebhookURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid webhook URL '%s': %v", c.WebhookURL, err))
		} else if parsedURL.Scheme != "https" {
			errors = append(errors, fmt.Sprintf("invalid webhook URL scheme '%s': must be 'https'", parsedURL.Scheme))
		}
	}

	if c.DefaultCurrency == "" {
		errors = append(errors, "DEFAULT_CURRENCY cannot be empty")
	}

	validBackends := []string{"memory", "sqlite"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
