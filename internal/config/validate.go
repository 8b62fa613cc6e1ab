// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/tomtom215/reliefmap/internal/logging"
)

var validEnvironments = []string{"development", "staging", "production"}

// Validate checks every section. Errors name the environment variable where
// one exists.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateSecurity,
		c.validateLogging,
		c.validateStore,
		c.validateCache,
		c.validateEvents,
		c.validateSupervisor,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}

	if err := c.CoverageEngineConfig().Validate(); err != nil {
		return fmt.Errorf("invalid coverage settings: %w", err)
	}
	if err := c.RecommendEngineConfig().Validate(); err != nil {
		return fmt.Errorf("invalid recommend settings: %w", err)
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout < time.Second {
		return fmt.Errorf("SERVER_TIMEOUT must be at least 1s, got %v", c.Server.Timeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %v", c.Server.ShutdownTimeout)
	}
	if !slices.Contains(validEnvironments, c.Server.Environment) {
		return fmt.Errorf("ENVIRONMENT must be one of %s, got %q",
			strings.Join(validEnvironments, ", "), c.Server.Environment)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQS must be at least 1, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow < time.Second {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be at least 1s, got %v", c.Security.RateLimitWindow)
	}
	if c.IsProduction() && slices.Contains(c.Security.CORSOrigins, "*") {
		return fmt.Errorf("CORS_ORIGINS must not contain * in production")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !slices.Contains(logging.Levels, strings.ToLower(c.Logging.Level)) {
		return fmt.Errorf("LOG_LEVEL must be one of %s, got %q",
			strings.Join(logging.Levels, ", "), c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
}

func (c *Config) validateStore() error {
	if !c.Store.InMemory && c.Store.Path == "" {
		return fmt.Errorf("STORE_PATH is required unless STORE_IN_MEMORY=true")
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive when the cache is enabled, got %v", c.Cache.TTL)
	}
	return nil
}

func (c *Config) validateEvents() error {
	if c.Events.BufferSize < 0 {
		return fmt.Errorf("EVENTS_BUFFER_SIZE must not be negative, got %d", c.Events.BufferSize)
	}
	if c.Events.CloseTimeout <= 0 {
		return fmt.Errorf("events.close_timeout must be positive, got %v", c.Events.CloseTimeout)
	}
	return nil
}

func (c *Config) validateSupervisor() error {
	s := c.Supervisor
	if s.FailureThreshold <= 0 || s.FailureDecay <= 0 || s.FailureBackoff <= 0 {
		return fmt.Errorf("supervisor failure threshold, decay and backoff must be positive")
	}
	return nil
}
