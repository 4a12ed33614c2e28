package infra

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration parsed from environment variables.
type Config struct {
	// Hosted backend
	BackendURL       string `env:"BACKEND_URL" envDefault:"http://localhost:54321"`
	BackendAnonKey   string `env:"BACKEND_ANON_KEY"`
	BackendJWTSecret string `env:"BACKEND_JWT_SECRET" envDefault:"change-me-in-production"`
	SignupRedirectTo string `env:"SIGNUP_REDIRECT_TO" envDefault:"http://localhost:3000"`

	// Direct database access (loader and settler only)
	DatabaseURL string `env:"DATABASE_URL"`
	PGHost      string `env:"PGHOST" envDefault:"localhost"`
	PGPort      int    `env:"PGPORT" envDefault:"5432"`
	PGUser      string `env:"PGUSER" envDefault:"fourplay"`
	PGPassword  string `env:"PGPASSWORD" envDefault:"fourplay"`
	PGDatabase  string `env:"PGDATABASE" envDefault:"fourplay"`

	// Server
	APIPort    int           `env:"API_PORT" envDefault:"4100"`
	CORSOrigin string        `env:"CORS_ORIGIN" envDefault:"*"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"4h"`

	// Kafka
	KafkaBrokers string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	KafkaEnabled bool   `env:"KAFKA_ENABLED" envDefault:"false"`

	// Dev
	AllowInsecureDefaults bool `env:"ALLOW_INSECURE_DEFAULTS" envDefault:"false"`
}

// LoadConfig parses environment variables into a Config struct.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks for insecure configuration that must not run in production.
// Set ALLOW_INSECURE_DEFAULTS=true to bypass (local dev only).
func (c *Config) Validate() error {
	if c.AllowInsecureDefaults {
		return nil
	}
	if c.BackendJWTSecret == "change-me-in-production" {
		return fmt.Errorf("BACKEND_JWT_SECRET is set to the insecure default; set the backend's JWT secret or set ALLOW_INSECURE_DEFAULTS=true for local dev")
	}
	if len(c.BackendJWTSecret) < 32 {
		return fmt.Errorf("BACKEND_JWT_SECRET is too short (%d chars); minimum 32 characters required", len(c.BackendJWTSecret))
	}
	if c.BackendAnonKey == "" {
		return fmt.Errorf("BACKEND_ANON_KEY is required")
	}
	return nil
}

// DSN returns the PostgreSQL connection string, preferring DATABASE_URL if set.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.PGUser, c.PGPassword, c.PGHost, c.PGPort, c.PGDatabase)
}
