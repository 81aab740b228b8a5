package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port string `envconfig:"PORT" default:"8000"`

	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`
	GeminiModel  string `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`
	OpenAIAPIKey string `envconfig:"OPENAI_API_KEY"`
	OpenAIModel  string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`

	TelegramBotToken string `envconfig:"TELEGRAM_BOT_TOKEN"`
	WebhookURL       string `envconfig:"WEBHOOK_URL"`

	// DatabaseURL enables the Postgres transcript cache when set.
	DatabaseURL string `envconfig:"DATABASE_URL"`
}

// Load reads configuration from the environment, after loading a local
// .env file if one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.Port = strings.TrimSpace(cfg.Port)
	return &cfg, nil
}

// RequireScorer checks that at least the default scoring engine is usable.
func (c *Config) RequireScorer() error {
	if strings.TrimSpace(c.GeminiAPIKey) == "" && strings.TrimSpace(c.OpenAIAPIKey) == "" {
		return fmt.Errorf("config: GEMINI_API_KEY or OPENAI_API_KEY must be set")
	}
	return nil
}

// RequireBot checks the keys the Telegram host cannot run without.
func (c *Config) RequireBot() error {
	if strings.TrimSpace(c.TelegramBotToken) == "" {
		return fmt.Errorf("config: TELEGRAM_BOT_TOKEN must be set")
	}
	return c.RequireScorer()
}
