package conf

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

// Config represents application configuration, loaded from the environment.
type Config struct {
	// Telegram configuration
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN,required"`

	// Chat log storage
	DBPath string `env:"CHATLOG_DB_PATH" envDefault:"data/chatlog.db"`

	// Webhook delivery. When PublicURL is set the bot registers
	// <PublicURL>/<token> as its webhook and serves it on ListenAddr;
	// otherwise it long-polls.
	PublicURL  string `env:"PUBLIC_URL"`
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8443"`

	// Debug enables verbose Telegram API logging
	Debug bool `env:"DEBUG"`
}

// Load parses configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}
	return cfg, nil
}

// WebhookEnabled reports whether updates arrive over HTTP instead of long
// polling.
func (c *Config) WebhookEnabled() bool {
	return c.PublicURL != ""
}
