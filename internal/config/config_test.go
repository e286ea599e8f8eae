package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")

	cfg := Load()

	if cfg.Port != "8081" {
		t.Errorf("expected default port 8081, got %s", cfg.Port)
	}
	if cfg.Mode != ModePolling {
		t.Errorf("expected default mode polling, got %s", cfg.Mode)
	}
	if cfg.DefaultCurrency != "USD" {
		t.Errorf("expected default currency USD, got %s", cfg.DefaultCurrency)
	}
	if cfg.DataBackend != "memory" {
		t.Errorf("expected default backend memory, got %s", cfg.DataBackend)
	}
	if cfg.GoogleSheetName != "Expenses" {
		t.Errorf("expected default sheet name Expenses, got %s", cfg.GoogleSheetName)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected default config to validate, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Port:            "8081",
			BotToken:        "123:abc",
			Mode:            ModeWebhook,
			DefaultCurrency: "EUR",
			DataBackend:     "memory",
			AMQPExchange:    "matheo",
			AMQPQueue:       "expense_events",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"bad port", func(c *Config) { c.Port = "abc" }, "invalid port"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "between 1 and 65535"},
		{"missing token", func(c *Config) { c.BotToken = "" }, "BOT_TOKEN cannot be empty"},
		{"bad mode", func(c *Config) { c.Mode = "tui" }, "invalid mode"},
		{"webhook url over http", func(c *Config) { c.WebhookURL = "http://bot.example.com/webhook" }, "must be 'https'"},
		{"webhook url valid", func(c *Config) { c.WebhookURL = "https://bot.example.com/webhook" }, ""},
		{"missing currency", func(c *Config) { c.DefaultCurrency = "" }, "DEFAULT_CURRENCY cannot be empty"},
		{"bad backend", func(c *Config) { c.DataBackend = "postgres" }, "invalid data backend"},
		{"bad amqp scheme", func(c *Config) { c.AMQPURL = "http://localhost" }, "must be 'amqp' or 'amqps'"},
		{"amqp without queue", func(c *Config) { c.AMQPURL = "amqp://guest@localhost"; c.AMQPQueue = "" }, "queue name cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
