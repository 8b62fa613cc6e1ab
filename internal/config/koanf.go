// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/reliefmap/internal/coverage"
	"github.com/tomtom215/reliefmap/internal/recommend"
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/reliefmap/config.yaml",
	"/etc/reliefmap/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns the built-in defaults. The coverage and recommend
// sections are derived from the core packages so the two never drift.
func defaultConfig() *Config {
	cov := coverage.DefaultConfig()
	rec := recommend.DefaultConfig()

	return &Config{
		Server: ServerConfig{
			Port:            3858,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Security: SecurityConfig{
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Store: StoreConfig{
			Path:      "/data/reliefmap",
			SeedValue: 42,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     5 * time.Minute,
		},
		Events: EventsConfig{
			BufferSize:   64,
			CloseTimeout: 10 * time.Second,
		},
		Supervisor: SupervisorConfig{
			FailureThreshold: 5,
			FailureDecay:     30,
			FailureBackoff:   15 * time.Second,
		},
		Coverage: CoverageConfig{
			WeightFood:           cov.Weights.Food,
			WeightMedical:        cov.Weights.Medical,
			WeightInfrastructure: cov.Weights.Infrastructure,
			NeedFactorLow:        cov.NeedFactors.Low,
			NeedFactorMedium:     cov.NeedFactors.Medium,
			NeedFactorHigh:       cov.NeedFactors.High,
			MinPopulation:        cov.MinPopulation,
			MinCoverageIndex:     cov.MinCoverageIndex,
			MaxCoverageIndex:     cov.MaxCoverageIndex,
			OutlierPercentile:    cov.OutlierPercentile,
			TopOrgs:              cov.TopOrgs,
		},
		Recommend: RecommendConfig{
			UrgencyMaxResults:  rec.Urgency.MaxResults,
			UrgencyNormalizer:  rec.Plan.UrgencyNormalizer,
			UrgencyFloor:       rec.Plan.UrgencyFloor,
			MaxBudget:          rec.Plan.MaxBudget,
			SourceOverlapRatio: rec.Coordination.SourceOverlapRatio,
			SourceMinCoverage:  rec.Coordination.SourceMinCoverage,
			SourceMaxCoverage:  rec.Coordination.SourceMaxCoverage,
			TargetMaxCoverage:  rec.Coordination.TargetMaxCoverage,
			TargetMinUrgency:   rec.Coordination.TargetMinUrgency,
			MaxSources:         rec.Coordination.MaxSources,
			MaxTargets:         rec.Coordination.MaxTargets,
			TransferUnits:      rec.Coordination.TransferUnits,
			MaxSuggestions:     rec.Coordination.MaxSuggestions,
		},
	}
}

// Load builds the configuration from three layers, later layers winning:
//
//  1. built-in defaults
//  2. the first YAML file found (CONFIG_PATH, then DefaultConfigPaths)
//  3. mapped environment variables (see envMappings)
//
// The result is validated before it is returned.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// sliceConfigPaths arrive from the environment as comma-separated strings.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok || s == "" {
			continue
		}

		parts := strings.Split(s, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to koanf paths.
// Variables not listed are ignored.
var envMappings = map[string]string{
	"http_port":        "server.port",
	"http_host":        "server.host",
	"server_timeout":   "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	"cors_origins":       "security.cors_origins",
	"rate_limit_reqs":    "security.rate_limit_reqs",
	"rate_limit_window":  "security.rate_limit_window",
	"disable_rate_limit": "security.rate_limit_disabled",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"store_path":          "store.path",
	"store_in_memory":     "store.in_memory",
	"import_dir":          "store.import_dir",
	"seed_synthetic_data": "store.seed_synthetic",
	"seed_value":          "store.seed_value",
	"strict_integrity":    "store.strict_integrity",

	"cache_enabled": "cache.enabled",
	"cache_ttl":     "cache.ttl",

	"events_buffer_size": "events.buffer_size",

	"coverage_weight_food":           "coverage.weight_food",
	"coverage_weight_medical":        "coverage.weight_medical",
	"coverage_weight_infrastructure": "coverage.weight_infrastructure",
	"coverage_need_factor_low":       "coverage.need_factor_low",
	"coverage_need_factor_medium":    "coverage.need_factor_medium",
	"coverage_need_factor_high":      "coverage.need_factor_high",
	"coverage_min_population":        "coverage.min_population",
	"coverage_outlier_percentile":    "coverage.outlier_percentile",
	"coverage_top_orgs":              "coverage.top_orgs",

	"recommend_max_results":        "recommend.urgency_max_results",
	"recommend_max_budget":         "recommend.max_budget",
	"recommend_urgency_floor":      "recommend.urgency_floor",
	"recommend_target_min_urgency": "recommend.target_min_urgency",
	"recommend_transfer_units":     "recommend.transfer_units",
	"recommend_max_suggestions":    "recommend.max_suggestions",
}

// envTransformFunc maps HTTP_PORT to server.port and drops unmapped variables.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
