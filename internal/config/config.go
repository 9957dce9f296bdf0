// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"8080"`

	// GA4 Measurement Protocol credentials
	GA4MeasurementID string `env:"GA4_MEASUREMENT_ID,required"`
	GA4APISecret     string `env:"GA4_API_SECRET,required"`

	// GA4Debug selects the validation endpoint when set to "1".
	GA4Debug string `env:"GA4_DEBUG" envDefault:"0"`

	// Shopify webhook shared secret. Empty disables HMAC verification:
	// stores that have not provisioned app credentials yet can still
	// forward events, at the cost of accepting unauthenticated calls.
	ShopifyWebhookSecret string `env:"SHOPIFY_WEBHOOK_SECRET" envDefault:""`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts. WriteTimeout covers the synchronous wait on the
	// GA4 collector, so it is sized above the collector client timeout.
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Request body size limit in bytes (default 1MB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// GA4DebugMode reports whether events go to the debug/validation
// endpoint instead of the live collector.
func (c *Config) GA4DebugMode() bool {
	return c.GA4Debug == "1"
}

// Load parses environment variables and returns a Config.
// Returns an error if required variables are missing.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
