// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package recommend

import (
	"errors"
	"math"
	"testing"

	"github.com/tomtom215/reliefmap/internal/models"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}

	t.Run("coordination bounds", func(t *testing.T) {
		co := cfg.Coordination
		if co.MaxSources != 12 || co.MaxTargets != 15 {
			t.Errorf("search bounds = %d x %d, want 12 x 15", co.MaxSources, co.MaxTargets)
		}
		if co.TransferUnits != 3 || co.MaxSuggestions != 20 {
			t.Errorf("transfer/max = %d/%d, want 3/20", co.TransferUnits, co.MaxSuggestions)
		}
		if co.SourceMinCoverage != 0.35 || co.SourceMaxCoverage != 0.7 || co.TargetMaxCoverage != 0.35 {
			t.Errorf("coverage windows = %+v", co)
		}
	})

	t.Run("plan weighting", func(t *testing.T) {
		if cfg.Plan.UrgencyNormalizer != 20 || cfg.Plan.UrgencyFloor != 0.5 {
			t.Errorf("plan = %+v, want normalizer 20 and floor 0.5", cfg.Plan)
		}
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantError bool
	}{
		{"valid default", func(*Config) {}, false},
		{"zero max results", func(c *Config) { c.Urgency.MaxResults = 0 }, true},
		{"zero normalizer", func(c *Config) { c.Plan.UrgencyNormalizer = 0 }, true},
		{"floor above one", func(c *Config) { c.Plan.UrgencyFloor = 1.5 }, true},
		{"floor zero allowed", func(c *Config) { c.Plan.UrgencyFloor = 0 }, false},
		{"zero max budget", func(c *Config) { c.Plan.MaxBudget = 0 }, true},
		{"overlap ratio above one", func(c *Config) { c.Coordination.SourceOverlapRatio = 2 }, true},
		{"inverted source window", func(c *Config) {
			c.Coordination.SourceMinCoverage = 0.8
			c.Coordination.SourceMaxCoverage = 0.2
		}, true},
		{"zero target coverage", func(c *Config) { c.Coordination.TargetMaxCoverage = 0 }, true},
		{"negative urgency threshold", func(c *Config) { c.Coordination.TargetMinUrgency = -1 }, true},
		{"zero sources", func(c *Config) { c.Coordination.MaxSources = 0 }, true},
		{"zero transfer units", func(c *Config) { c.Coordination.TransferUnits = 0 }, true},
		{"zero suggestions", func(c *Config) { c.Coordination.MaxSuggestions = 0 }, true},
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
	clone.Coordination.MaxSources = 1
	clone.Urgency.MaxResults = 1

	if cfg.Coordination.MaxSources != 12 || cfg.Urgency.MaxResults != 50 {
		t.Error("modifying clone changed the original")
	}
}

func TestScenarios(t *testing.T) {
	all := Scenarios()
	if len(all) != 5 {
		t.Fatalf("len(Scenarios()) = %d, want 5", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Name >= all[i].Name {
			t.Errorf("scenarios not sorted: %s before %s", all[i-1].Name, all[i].Name)
		}
	}
	for _, s := range all {
		if s.NeedMultiplier <= 0 || s.VolatilityMultiplier <= 0 || s.PopulationMultiplier <= 0 {
			t.Errorf("%s has non-positive multiplier: %+v", s.Name, s)
		}
	}
}

func TestLookupScenario(t *testing.T) {
	s, err := LookupScenario("")
	if err != nil || s.Name != ScenarioBaseline {
		t.Errorf("LookupScenario(\"\") = %+v, %v; want baseline", s, err)
	}

	if _, err := LookupScenario("famine_onset"); err != nil {
		t.Errorf("LookupScenario(famine_onset) error = %v", err)
	}

	if _, err := LookupScenario("asteroid"); !errors.Is(err, ErrUnknownScenario) {
		t.Errorf("LookupScenario(asteroid) error = %v, want ErrUnknownScenario", err)
	}
}

func TestScenario_Apply(t *testing.T) {
	region := &models.Region{
		ID:                "r",
		Population:        1000,
		Volatility:        models.Float64Ptr(0.8),
		DynamicNeedFactor: models.Float64Ptr(1.5),
	}
	s := Scenario{NeedMultiplier: 2, VolatilityMultiplier: 2, PopulationMultiplier: 1.5}

	in := s.apply(region)
	if math.Abs(in.needFactor-3) > epsilon {
		t.Errorf("needFactor = %f, want 3", in.needFactor)
	}
	if in.volatility != 1 {
		t.Errorf("volatility = %f, want 1 (capped)", in.volatility)
	}
	if in.population != 1500 {
		t.Errorf("population = %d, want 1500", in.population)
	}

	baseline, _ := LookupScenario(ScenarioBaseline)
	plain := baseline.apply(&models.Region{Population: 42})
	if plain.needFactor != 1 || plain.volatility != 0 || plain.population != 42 {
		t.Errorf("baseline apply on bare region = %+v", plain)
	}
}
