// Package config reads the bot configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration.
type Config struct {
	TelegramToken string `env:"TELEGRAM_BOT_TOKEN"`
	AdminUserID   int64  `env:"ADMIN_USER_ID"`

	// Bot mode: polling by default, webhook when WEBHOOK_MODE is set.
	WebhookMode bool   `env:"WEBHOOK_MODE"`
	WebhookURL  string `env:"WEBHOOK_URL"`
	HTTPPort    string `env:"PORT" envDefault:"8080"`

	ContentDir string `env:"CONTENT_DIR" envDefault:"content"`
	BackupDir  string `env:"BACKUP_DIR" envDefault:"backups"`

	// ReferralBonus is credited to the referrer per invited user.
	ReferralBonus int `env:"REFERRAL_BONUS" envDefault:"100"`

	// BackupKeep is how many archives survive a cleanup.
	BackupKeep int `env:"BACKUP_KEEP" envDefault:"10"`
}

// LoadFromEnv parses and validates the configuration.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if cfg.AdminUserID == 0 {
		return nil, fmt.Errorf("ADMIN_USER_ID is required")
	}
	if cfg.WebhookMode && cfg.WebhookURL == "" {
		return nil, fmt.Errorf("WEBHOOK_URL is required when WEBHOOK_MODE is true")
	}

	return cfg, nil
}
