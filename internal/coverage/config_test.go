// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package coverage

import (
	"math"
	"testing"

	"github.com/tomtom215/reliefmap/internal/models"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}

	weights := map[models.AidType]float64{
		models.AidFood:           1.0,
		models.AidMedical:        1.2,
		models.AidInfrastructure: 0.8,
	}
	for aidType, want := range weights {
		if got := cfg.Weights.Weight(aidType); got != want {
			t.Errorf("Weight(%s) = %f, want %f", aidType, got, want)
		}
	}

	factors := map[models.NeedLevel]float64{
		models.NeedLow:    0.8,
		models.NeedMedium: 1.0,
		models.NeedHigh:   1.3,
	}
	for level, want := range factors {
		if got := cfg.NeedFactors.Factor(level); got != want {
			t.Errorf("Factor(%s) = %f, want %f", level, got, want)
		}
	}

	if cfg.MinPopulation != 1000 {
		t.Errorf("MinPopulation = %f, want 1000", cfg.MinPopulation)
	}
	if cfg.MinCoverageIndex != 0 || cfg.MaxCoverageIndex != 10 {
		t.Errorf("coverage bounds = [%f, %f], want [0, 10]", cfg.MinCoverageIndex, cfg.MaxCoverageIndex)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantError bool
	}{
		{"default", func(*Config) {}, false},
		{"zero weight allowed", func(c *Config) { c.Weights.Infrastructure = 0 }, false},
		{"negative weight", func(c *Config) { c.Weights.Food = -1 }, true},
		{"NaN weight", func(c *Config) { c.Weights.Medical = math.NaN() }, true},
		{"zero need factor", func(c *Config) { c.NeedFactors.High = 0 }, true},
		{"infinite need factor", func(c *Config) { c.NeedFactors.Low = math.Inf(1) }, true},
		{"min population below one", func(c *Config) { c.MinPopulation = 0 }, true},
		{"inverted bounds", func(c *Config) { c.MaxCoverageIndex = -1 }, true},
		{"percentile zero", func(c *Config) { c.OutlierPercentile = 0 }, true},
		{"percentile above one", func(c *Config) { c.OutlierPercentile = 1.01 }, true},
		{"percentile one", func(c *Config) { c.OutlierPercentile = 1 }, false},
		{"negative top orgs", func(c *Config) { c.TopOrgs = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestConfig_Clone(t *testing.T) {
	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.Weights.Food = 9
	clone.TopOrgs = 1

	if cfg.Weights.Food != 1.0 || cfg.TopOrgs != 5 {
		t.Error("modifying clone changed the original")
	}
}
