package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Config holds the configuration for the intake service.
// Environment variables are parsed from the SYMPTOM_INTAKE_ prefix.
//
// Interview protocol constants (question counts, session TTL) are fixed in
// the model package and deliberately not configurable here.
type Config struct {
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Session store: memory (default) or sqlite
	SessionStore string `envconfig:"SESSION_STORE" default:"memory"`
	SQLitePath   string `envconfig:"SQLITE_PATH" default:"./data/sessions.db"`

	// Oracle provider: ollama (default) or anthropic
	OracleProvider string `envconfig:"ORACLE_PROVIDER" default:"ollama"`
	OracleModel    string `envconfig:"ORACLE_MODEL" default:"llama3.2"`
	OracleURL      string `envconfig:"ORACLE_URL" default:"http://localhost:11434"`
	OracleTimeout  int    `envconfig:"ORACLE_TIMEOUT_SECONDS" default:"60"`

	// Recommendation archive; empty DSN disables archiving entirely.
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	// Expired-session sweep cadence.
	SweepIntervalSeconds int `envconfig:"SWEEP_INTERVAL_SECONDS" default:"300"`

	// Development auth tokens, "token:actor,token:actor". Production
	// deployments replace the static verifier entirely.
	AuthTokens string `envconfig:"AUTH_TOKENS" default:""`
}

// ResolveDefaults validates driver and provider selections.
func (c *Config) ResolveDefaults() error {
	allowedStore := map[string]bool{"memory": true, "sqlite": true}
	if !allowedStore[c.SessionStore] {
		return fmt.Errorf("unsupported SESSION_STORE: %s", c.SessionStore)
	}
	allowedOracle := map[string]bool{"ollama": true, "anthropic": true}
	if !allowedOracle[c.OracleProvider] {
		return fmt.Errorf("unsupported ORACLE_PROVIDER: %s", c.OracleProvider)
	}
	if c.OracleTimeout <= 0 {
		return fmt.Errorf("ORACLE_TIMEOUT_SECONDS must be positive")
	}
	if c.SweepIntervalSeconds <= 0 {
		return fmt.Errorf("SWEEP_INTERVAL_SECONDS must be positive")
	}
	return nil
}

// New creates a Config from environment variables prefixed SYMPTOM_INTAKE_.
// Example: SYMPTOM_INTAKE_HTTP_PORT, SYMPTOM_INTAKE_ORACLE_PROVIDER.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("SYMPTOM_INTAKE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("environment", string(cfg.Environment)).
		Int("port", cfg.HTTPPort).
		Str("session_store", cfg.SessionStore).
		Str("oracle_provider", cfg.OracleProvider).
		Str("oracle_model", cfg.OracleModel).
		Bool("archive_enabled", cfg.PostgresDSN != "").
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config suitable for unit tests.
func NewForTesting() *Config {
	return &Config{
		Environment:          EnvTesting,
		HTTPPort:             8080,
		SessionStore:         "memory",
		OracleProvider:       "ollama",
		OracleModel:          "llama3.2",
		OracleURL:            "http://localhost:11434",
		OracleTimeout:        5,
		SweepIntervalSeconds: 60,
	}
}

// IsProduction returns true if the environment is set to production.
func (c *Config) IsProduction() bool { return c.Environment == EnvProduction }

// GetHTTPAddr returns the HTTP server address.
func (c *Config) GetHTTPAddr() string { return fmt.Sprintf(":%d", c.HTTPPort) }

// OracleTimeoutDuration returns the oracle call timeout.
func (c *Config) OracleTimeoutDuration() time.Duration {
	return time.Duration(c.OracleTimeout) * time.Second
}

// SweepInterval returns the expired-session sweep cadence.
func (c *Config) SweepInterval() time.Duration {
	return time.Duration(c.SweepIntervalSeconds) * time.Second
}
