package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store kinds.
const (
	StoreYAML   = "yaml"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Config holds the application configuration.
type Config struct {
	// GeminiAPIKey enables real portraits. Without it the offline sketcher is used.
	GeminiAPIKey string        `env:"GEMINI_API_KEY"`
	ImageModel   string        `env:"BEAST_IMAGE_MODEL" envDefault:"gemini-2.5-flash-image"`
	Store        string        `env:"BEAST_STORE" envDefault:"yaml"`
	SaveDir      string        `env:"BEAST_SAVE_DIR" envDefault:".saves"`
	SQLitePath   string        `env:"BEAST_SQLITE_PATH" envDefault:".saves/beasts.db"`
	TickInterval time.Duration `env:"BEAST_TICK_INTERVAL" envDefault:"12s"`
	LogLevel     string        `env:"BEAST_LOG_LEVEL" envDefault:"info"`
	LogFile      string        `env:"BEAST_LOG_FILE" envDefault:".saves/beast.log"`
	SpectateAddr string        `env:"BEAST_SPECTATE_ADDR"`
	// Seed fixes the random sequence. Zero picks a random seed.
	Seed uint64 `env:"BEAST_SEED" envDefault:"0"`
}

// LoadConfig loads the configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreYAML, StoreSQLite, StoreMemory:
	default:
		return fmt.Errorf("BEAST_STORE must be one of %s, %s or %s, got %q", StoreYAML, StoreSQLite, StoreMemory, c.Store)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("BEAST_TICK_INTERVAL must be positive, got %s", c.TickInterval)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("BEAST_LOG_LEVEL: %w", err)
	}
	return level, nil
}

// HasGemini reports whether portraits come from Gemini.
func (c *Config) HasGemini() bool {
	return c.GeminiAPIKey != ""
}
