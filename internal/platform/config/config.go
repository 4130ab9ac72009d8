// Copyright (c) 2026 ElQasr. All rights reserved.
// Author: mohamed.magdy@elqasr-dev.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (backend client, cache) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the ElQasr web service.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Backend REST API (the external service owning all persistence)
	BackendBaseURL string        `env:"BACKEND_BASE_URL,required"`
	BackendTimeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"15s"`

	// Session provider public key used to verify bearer tokens.
	// Sessions are issued externally; this service only verifies them.
	SessionPubKeyPath string `env:"SESSION_PUBLIC_KEY_PATH,required"`

	// Query cache staleness window. Entries older than this trigger a
	// background refetch on the next read.
	CacheStaleAfter time.Duration `env:"CACHE_STALE_AFTER" envDefault:"60s"`

	// WarmCacheOnStart prefetches the landing-page queries at startup.
	WarmCacheOnStart bool `env:"WARM_CACHE_ON_START" envDefault:"true"`

	// ExtraOrigins is a comma-separated list of exact origins allowed by
	// CORS in addition to the elqasr.dev domains (e.g. a preview deploy).
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// AllowedOrigins returns the extra CORS origins parsed from EXTRA_ORIGINS.
func (c *Config) AllowedOrigins() []string {
	if strings.TrimSpace(c.ExtraOrigins) == "" {
		return nil
	}

	parts := strings.Split(c.ExtraOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
