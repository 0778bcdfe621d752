// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/shopspring/decimal"
)

type Config struct {
	// Server
	Port        int      `env:"PORT" envDefault:"8080"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`

	// Storage
	DatabasePath string `env:"DB_PATH" envDefault:"./data/trustvault.db"`

	// Auth. The secret is always supplied per deployment; there is no
	// baked-in default.
	JWTSecret string        `env:"JWT_SECRET,required,notEmpty"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	// StartingBalance seeds new accounts so they can fund deposits.
	StartingBalance string `env:"STARTING_BALANCE" envDefault:"1000"`
}

// Load parses the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if _, err := cfg.StartingBalanceDecimal(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// StartingBalanceDecimal parses the configured starting balance.
func (c *Config) StartingBalanceDecimal() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(c.StartingBalance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse STARTING_BALANCE: %w", err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("STARTING_BALANCE must not be negative")
	}
	return d, nil
}
