// Package config loads application settings from the environment, with an
// optional .env file for development.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the process-level settings. Game rules are fixed and are not
// configurable; these knobs only cover reproducibility, logging, and session
// housekeeping.
type Config struct {
	// Seed drives all board randomness when non-zero. Zero means time-seeded
	// games.
	Seed int64 `env:"GLASS2048_SEED"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"GLASS2048_LOG_LEVEL" envDefault:"info"`

	// SessionRetention is how long an untouched session survives cleanup.
	SessionRetention time.Duration `env:"GLASS2048_SESSION_RETENTION" envDefault:"24h"`
}

// Load reads a .env file when present, then parses GLASS2048_* variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &cfg, nil
}
