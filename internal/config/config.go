package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config aggregates the service configuration, loaded from the
// environment.
type Config struct {
	Port        int    `env:"PORT" envDefault:"3000"`
	Environment string `env:"APP_ENV" envDefault:"development"`

	// External providers consumed by the offer assembly pipeline.
	OpenSkyBaseURL  string `env:"OPENSKY_BASE_URL" envDefault:"https://opensky-network.org/api"`
	ExchangeRateURL string `env:"EXCHANGE_RATE_URL" envDefault:"https://api.exchangerate-api.com/v4/latest/USD"`

	// UpstreamTimeout bounds each individual provider call.
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"15s"`
	// SearchTimeout bounds the whole offer search triggered from a
	// dialogue turn; an expired search behaves like an upstream failure.
	SearchTimeout time.Duration `env:"SEARCH_TIMEOUT" envDefault:"10s"`
}

// Load parses the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Addr is the listen address derived from the configured port.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// IsProduction reports whether production logging should be used.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
