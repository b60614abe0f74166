package conf

import (
	"os"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.TelegramBotToken != "test-token" {
		t.Errorf("Unexpected token: %q", cfg.TelegramBotToken)
	}
	if cfg.DBPath != "data/chatlog.db" {
		t.Errorf("Unexpected default db path: %q", cfg.DBPath)
	}
	if cfg.ListenAddr != ":8443" {
		t.Errorf("Unexpected default listen addr: %q", cfg.ListenAddr)
	}
	if cfg.WebhookEnabled() {
		t.Error("Expected long polling mode without PUBLIC_URL")
	}
}

func TestLoad_WebhookMode(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("PUBLIC_URL", "https://bot.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.WebhookEnabled() {
		t.Error("Expected webhook mode with PUBLIC_URL set")
	}
}

func TestLoad_MissingToken(t *testing.T) {
	// t.Setenv registers the restore; the variable itself must be absent
	// for the required tag to trip.
	t.Setenv("TELEGRAM_BOT_TOKEN", "x")
	os.Unsetenv("TELEGRAM_BOT_TOKEN")

	if _, err := Load(); err == nil {
		t.Error("Expected error without TELEGRAM_BOT_TOKEN")
	}
}
