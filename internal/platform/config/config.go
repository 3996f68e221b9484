// Copyright (c) 2026 Shopfront. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. A local '.env' file is
read first when present, which keeps development setups out of the shell profile.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (stores, clients) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// # Backend Selectors

const (
	// SessionStoreMemory keeps sessions in process memory.
	SessionStoreMemory = "memory"
	// SessionStoreRedis keeps sessions in Redis so several gateway replicas share them.
	SessionStoreRedis = "redis"

	// ProfileSourceBackend fetches profile details from the REST backend.
	ProfileSourceBackend = "backend"
	// ProfileSourcePostgres reads profile details from the shared database.
	ProfileSourcePostgres = "postgres"
)

// # Configuration Schema

// Config holds all runtime configuration for the gateway.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// REST backend (login, register, OTP, profile)
	BackendBaseURL string        `env:"BACKEND_BASE_URL,required,notEmpty"`
	BackendTimeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"10s"`

	// Session storage
	SessionStore        string        `env:"SESSION_STORE"         envDefault:"memory"`
	SessionTTL          time.Duration `env:"SESSION_TTL"           envDefault:"24h"`
	SessionCookieSecure bool          `env:"SESSION_COOKIE_SECURE" envDefault:"true"`

	// Key-Value Cache (Redis), required when SessionStore is "redis"
	RedisURL string `env:"REDIS_URL"`

	// Profile details
	ProfileSource       string        `env:"PROFILE_SOURCE"        envDefault:"backend"`
	ProfileFetchTimeout time.Duration `env:"PROFILE_FETCH_TIMEOUT" envDefault:"5s"`
	ProfileMaxAttempts  int           `env:"PROFILE_MAX_ATTEMPTS"  envDefault:"3"`

	// Relational Database (PostgreSQL), required when ProfileSource is "postgres"
	DatabaseURL   string `env:"DATABASE_URL"`
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Optional RSA public key. When set, bearer tokens must carry a valid RS256 signature.
	JWTPubKeyPath string `env:"JWT_PUBLIC_KEY_PATH"`

	// Session audit stream (Kafka). Empty brokers log audit events instead.
	KafkaBrokers    []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaAuditTopic string   `env:"KAFKA_AUDIT_TOPIC" envDefault:"shopfront.session.audit"`

	// Cross-Origin Resource Sharing
	AllowedOriginSuffix string `env:"ALLOWED_ORIGIN_SUFFIX" envDefault:"shopfront.app"`
}

// # Configuration Loading

// Load reads an optional .env file, then parses environment variables into a [Config].
func Load() (*Config, error) {

	// Variables already present in the environment win over the file.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to read .env file: %w", err)
	}

	return Parse()
}

// Parse maps the current environment into a [Config] and validates it.
func Parse() (*Config, error) {
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks rules that span several fields.
func (c *Config) Validate() error {
	var problems []string

	switch c.SessionStore {
	case SessionStoreMemory:
	case SessionStoreRedis:
		if c.RedisURL == "" {
			problems = append(problems, "REDIS_URL is required when SESSION_STORE=redis")
		}
	default:
		problems = append(problems, fmt.Sprintf("SESSION_STORE must be %q or %q", SessionStoreMemory, SessionStoreRedis))
	}

	switch c.ProfileSource {
	case ProfileSourceBackend:
	case ProfileSourcePostgres:
		if c.DatabaseURL == "" {
			problems = append(problems, "DATABASE_URL is required when PROFILE_SOURCE=postgres")
		}
	default:
		problems = append(problems, fmt.Sprintf("PROFILE_SOURCE must be %q or %q", ProfileSourceBackend, ProfileSourcePostgres))
	}

	if c.ProfileMaxAttempts < 1 {
		problems = append(problems, "PROFILE_MAX_ATTEMPTS must be at least 1")
	}

	if c.SessionTTL <= 0 {
		problems = append(problems, "SESSION_TTL must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("config: %s", strings.Join(problems, "; "))
	}

	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// OriginAllowed reports whether a CORS origin belongs to the configured domain.
func (c *Config) OriginAllowed(origin string) bool {
	return c.AllowedOriginSuffix != "" && strings.HasSuffix(origin, c.AllowedOriginSuffix)
}
