// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package config

import (
	"time"

	"github.com/tomtom215/reliefmap/internal/coverage"
	"github.com/tomtom215/reliefmap/internal/recommend"
)

// Config is the complete server configuration.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Security   SecurityConfig   `koanf:"security"`
	Logging    LoggingConfig    `koanf:"logging"`
	Store      StoreConfig      `koanf:"store"`
	Cache      CacheConfig      `koanf:"cache"`
	Events     EventsConfig     `koanf:"events"`
	Supervisor SupervisorConfig `koanf:"supervisor"`
	Coverage   CoverageConfig   `koanf:"coverage"`
	Recommend  RecommendConfig  `koanf:"recommend"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging or production
}

// SecurityConfig holds CORS and rate limiting. The API is read-mostly and
// unauthenticated; writes are expected behind a trusted proxy.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// StoreConfig controls where the dataset lives and how it is initially filled.
type StoreConfig struct {
	// Path is the Badger directory. Ignored when InMemory is set.
	Path     string `koanf:"path"`
	InMemory bool   `koanf:"in_memory"`

	// ImportDir, when set, is loaded into the store at startup (countries.json,
	// regions.json, orgs.json, aid_edges.json).
	ImportDir string `koanf:"import_dir"`

	// SeedSynthetic fills an empty store with the generated demo dataset.
	SeedSynthetic bool  `koanf:"seed_synthetic"`
	SeedValue     int64 `koanf:"seed_value"`

	// StrictIntegrity rejects snapshots that fail the integrity check instead of
	// serving them with warnings.
	StrictIntegrity bool `koanf:"strict_integrity"`
}

// CacheConfig controls the score cache.
type CacheConfig struct {
	Enabled bool          `koanf:"enabled"`
	TTL     time.Duration `koanf:"ttl"`
}

// EventsConfig controls the in-process change event bus.
type EventsConfig struct {
	BufferSize   int64         `koanf:"buffer_size"`
	CloseTimeout time.Duration `koanf:"close_timeout"`
}

// SupervisorConfig mirrors supervisor.TreeConfig.
type SupervisorConfig struct {
	FailureThreshold float64       `koanf:"failure_threshold"`
	FailureDecay     float64       `koanf:"failure_decay"`
	FailureBackoff   time.Duration `koanf:"failure_backoff"`
}

// CoverageConfig is the file/env form of coverage.Config.
type CoverageConfig struct {
	WeightFood           float64 `koanf:"weight_food"`
	WeightMedical        float64 `koanf:"weight_medical"`
	WeightInfrastructure float64 `koanf:"weight_infrastructure"`
	NeedFactorLow        float64 `koanf:"need_factor_low"`
	NeedFactorMedium     float64 `koanf:"need_factor_medium"`
	NeedFactorHigh       float64 `koanf:"need_factor_high"`
	MinPopulation        float64 `koanf:"min_population"`
	MinCoverageIndex     float64 `koanf:"min_coverage_index"`
	MaxCoverageIndex     float64 `koanf:"max_coverage_index"`
	OutlierPercentile    float64 `koanf:"outlier_percentile"`
	TopOrgs              int     `koanf:"top_orgs"`
}

// RecommendConfig is the file/env form of recommend.Config.
type RecommendConfig struct {
	UrgencyMaxResults  int     `koanf:"urgency_max_results"`
	UrgencyNormalizer  float64 `koanf:"urgency_normalizer"`
	UrgencyFloor       float64 `koanf:"urgency_floor"`
	MaxBudget          int     `koanf:"max_budget"`
	SourceOverlapRatio float64 `koanf:"source_overlap_ratio"`
	SourceMinCoverage  float64 `koanf:"source_min_coverage"`
	SourceMaxCoverage  float64 `koanf:"source_max_coverage"`
	TargetMaxCoverage  float64 `koanf:"target_max_coverage"`
	TargetMinUrgency   float64 `koanf:"target_min_urgency"`
	MaxSources         int     `koanf:"max_sources"`
	MaxTargets         int     `koanf:"max_targets"`
	TransferUnits      int     `koanf:"transfer_units"`
	MaxSuggestions     int     `koanf:"max_suggestions"`
}

// CoverageEngineConfig converts the coverage section for coverage.NewCalculator.
func (c *Config) CoverageEngineConfig() *coverage.Config {
	cc := c.Coverage
	return &coverage.Config{
		Weights: coverage.AidTypeWeights{
			Food:           cc.WeightFood,
			Medical:        cc.WeightMedical,
			Infrastructure: cc.WeightInfrastructure,
		},
		NeedFactors: coverage.NeedFactors{
			Low:    cc.NeedFactorLow,
			Medium: cc.NeedFactorMedium,
			High:   cc.NeedFactorHigh,
		},
		MinPopulation:     cc.MinPopulation,
		MinCoverageIndex:  cc.MinCoverageIndex,
		MaxCoverageIndex:  cc.MaxCoverageIndex,
		OutlierPercentile: cc.OutlierPercentile,
		TopOrgs:           cc.TopOrgs,
	}
}

// RecommendEngineConfig converts the recommend section for recommend.NewEngine.
func (c *Config) RecommendEngineConfig() *recommend.Config {
	rc := c.Recommend
	return &recommend.Config{
		Urgency: recommend.UrgencyConfig{MaxResults: rc.UrgencyMaxResults},
		Plan: recommend.PlanConfig{
			UrgencyNormalizer: rc.UrgencyNormalizer,
			UrgencyFloor:      rc.UrgencyFloor,
			MaxBudget:         rc.MaxBudget,
		},
		Coordination: recommend.CoordinationConfig{
			SourceOverlapRatio: rc.SourceOverlapRatio,
			SourceMinCoverage:  rc.SourceMinCoverage,
			SourceMaxCoverage:  rc.SourceMaxCoverage,
			TargetMaxCoverage:  rc.TargetMaxCoverage,
			TargetMinUrgency:   rc.TargetMinUrgency,
			MaxSources:         rc.MaxSources,
			MaxTargets:         rc.MaxTargets,
			TransferUnits:      rc.TransferUnits,
			MaxSuggestions:     rc.MaxSuggestions,
		},
	}
}

// IsProduction reports whether the server runs with Environment=production.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
