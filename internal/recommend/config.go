// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package recommend

import (
	"fmt"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Urgency contains urgency ranking parameters.
	Urgency UrgencyConfig `json:"urgency"`

	// Plan contains greedy deployment plan parameters.
	Plan PlanConfig `json:"plan"`

	// Coordination contains redistribution heuristic parameters.
	Coordination CoordinationConfig `json:"coordination"`
}

// UrgencyConfig contains urgency ranking parameters.
type UrgencyConfig struct {
	// MaxResults caps the ranking length. Requests for more, or for a
	// non-positive count, receive MaxResults items.
	// Default: 50.
	MaxResults int `json:"max_results"`
}

// PlanConfig contains greedy deployment plan parameters.
type PlanConfig struct {
	// UrgencyNormalizer is the urgency at which the urgency weight saturates.
	// Default: 20.
	UrgencyNormalizer float64 `json:"urgency_normalizer"`

	// UrgencyFloor is the minimum weight applied to a candidate's marginal gain,
	// so low-urgency regions still receive budget when their gain is high.
	// Default: 0.5.
	UrgencyFloor float64 `json:"urgency_floor"`

	// MaxBudget bounds the number of greedy iterations for one plan.
	// Default: 500.
	MaxBudget int `json:"max_budget"`
}

// CoordinationConfig contains redistribution heuristic parameters.
type CoordinationConfig struct {
	// SourceOverlapRatio is the fraction of the maximum observed overlap a
	// source region must reach.
	// Default: 0.5.
	SourceOverlapRatio float64 `json:"source_overlap_ratio"`

	// SourceMinCoverage and SourceMaxCoverage bound the normalized coverage of
	// a source region (inclusive).
	// Default: [0.35, 0.7].
	SourceMinCoverage float64 `json:"source_min_coverage"`
	SourceMaxCoverage float64 `json:"source_max_coverage"`

	// TargetMaxCoverage is the exclusive upper bound on target normalized coverage.
	// Default: 0.35.
	TargetMaxCoverage float64 `json:"target_max_coverage"`

	// TargetMinUrgency is the minimum urgency score of a target region.
	// Default: 8.
	TargetMinUrgency float64 `json:"target_min_urgency"`

	// MaxSources and MaxTargets bound the pair search.
	// Default: 12 and 15.
	MaxSources int `json:"max_sources"`
	MaxTargets int `json:"max_targets"`

	// TransferUnits is the number of projects moved per suggestion. A source
	// must hold at least this many projects of the aid type.
	// Default: 3.
	TransferUnits int `json:"transfer_units"`

	// MaxSuggestions caps the output.
	// Default: 20.
	MaxSuggestions int `json:"max_suggestions"`
}

// DefaultConfig returns the default recommendation configuration.
func DefaultConfig() *Config {
	return &Config{
		Urgency: UrgencyConfig{
			MaxResults: 50,
		},
		Plan: PlanConfig{
			UrgencyNormalizer: 20,
			UrgencyFloor:      0.5,
			MaxBudget:         500,
		},
		Coordination: CoordinationConfig{
			SourceOverlapRatio: 0.5,
			SourceMinCoverage:  0.35,
			SourceMaxCoverage:  0.7,
			TargetMaxCoverage:  0.35,
			TargetMinUrgency:   8,
			MaxSources:         12,
			MaxTargets:         15,
			TransferUnits:      3,
			MaxSuggestions:     20,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Urgency.MaxResults < 1 {
		return fmt.Errorf("urgency.max_results must be positive, got %d", c.Urgency.MaxResults)
	}

	if c.Plan.UrgencyNormalizer <= 0 {
		return fmt.Errorf("plan.urgency_normalizer must be positive, got %f", c.Plan.UrgencyNormalizer)
	}
	if c.Plan.UrgencyFloor < 0 || c.Plan.UrgencyFloor > 1 {
		return fmt.Errorf("plan.urgency_floor must be in [0, 1], got %f", c.Plan.UrgencyFloor)
	}
	if c.Plan.MaxBudget < 1 {
		return fmt.Errorf("plan.max_budget must be positive, got %d", c.Plan.MaxBudget)
	}

	co := c.Coordination
	if co.SourceOverlapRatio < 0 || co.SourceOverlapRatio > 1 {
		return fmt.Errorf("coordination.source_overlap_ratio must be in [0, 1], got %f", co.SourceOverlapRatio)
	}
	if co.SourceMinCoverage < 0 || co.SourceMaxCoverage > 1 || co.SourceMinCoverage > co.SourceMaxCoverage {
		return fmt.Errorf("coordination source coverage window must satisfy 0 <= min <= max <= 1, got [%f, %f]",
			co.SourceMinCoverage, co.SourceMaxCoverage)
	}
	if co.TargetMaxCoverage <= 0 || co.TargetMaxCoverage > 1 {
		return fmt.Errorf("coordination.target_max_coverage must be in (0, 1], got %f", co.TargetMaxCoverage)
	}
	if co.TargetMinUrgency < 0 {
		return fmt.Errorf("coordination.target_min_urgency must be non-negative, got %f", co.TargetMinUrgency)
	}
	if co.MaxSources < 1 || co.MaxTargets < 1 {
		return fmt.Errorf("coordination.max_sources and max_targets must be positive, got %d and %d",
			co.MaxSources, co.MaxTargets)
	}
	if co.TransferUnits < 1 {
		return fmt.Errorf("coordination.transfer_units must be positive, got %d", co.TransferUnits)
	}
	if co.MaxSuggestions < 1 {
		return fmt.Errorf("coordination.max_suggestions must be positive, got %d", co.MaxSuggestions)
	}

	return nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// All nested structs contain only value types.
	return &Config{
		Urgency:      c.Urgency,
		Plan:         c.Plan,
		Coordination: c.Coordination,
	}
}
