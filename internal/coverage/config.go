// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package coverage

import (
	"fmt"
	"math"

	"github.com/tomtom215/reliefmap/internal/models"
)

// Config contains the tunable tables and bounds of the coverage computation.
type Config struct {
	// Weights scales project counts by aid type.
	Weights AidTypeWeights `json:"weights"`

	// NeedFactors inflates the need-adjusted population by need level.
	NeedFactors NeedFactors `json:"need_factors"`

	// MinPopulation floors the population used in the denominator.
	// Default: 1000.
	MinPopulation float64 `json:"min_population"`

	// MinCoverageIndex and MaxCoverageIndex clamp every raw index.
	// Default: [0, 10].
	MinCoverageIndex float64 `json:"min_coverage_index"`
	MaxCoverageIndex float64 `json:"max_coverage_index"`

	// OutlierPercentile selects the effective maximum during normalization.
	// Default: 0.95.
	OutlierPercentile float64 `json:"outlier_percentile"`

	// TopOrgs is the number of organizations listed per country on the world view.
	// Zero lists every organization.
	// Default: 5.
	TopOrgs int `json:"top_orgs"`
}

// AidTypeWeights maps each aid type to its contribution per project.
type AidTypeWeights struct {
	Food           float64 `json:"food"`
	Medical        float64 `json:"medical"`
	Infrastructure float64 `json:"infrastructure"`
}

// Weight returns the weight for an aid type. Unknown types weigh 0.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w AidTypeWeights) Weight(t models.AidType) float64 {
	switch t {
	case models.AidFood:
		return w.Food
	case models.AidMedical:
		return w.Medical
	case models.AidInfrastructure:
		return w.Infrastructure
	default:
		return 0
	}
}

// NeedFactors maps need levels to denominator multipliers.
type NeedFactors struct {
	Low    float64 `json:"low"`
	Medium float64 `json:"medium"`
	High   float64 `json:"high"`
}

// Factor returns the multiplier for a need level. Unknown levels use Medium.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (n NeedFactors) Factor(level models.NeedLevel) float64 {
	switch level {
	case models.NeedLow:
		return n.Low
	case models.NeedHigh:
		return n.High
	default:
		return n.Medium
	}
}

// DefaultConfig returns the default coverage configuration.
func DefaultConfig() *Config {
	return &Config{
		Weights: AidTypeWeights{
			Food:           1.0,
			Medical:        1.2,
			Infrastructure: 0.8,
		},
		NeedFactors: NeedFactors{
			Low:    0.8,
			Medium: 1.0,
			High:   1.3,
		},
		MinPopulation:     1000,
		MinCoverageIndex:  0,
		MaxCoverageIndex:  10,
		OutlierPercentile: 0.95,
		TopOrgs:           5,
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	weights := []struct {
		name  string
		value float64
	}{
		{"weights.food", c.Weights.Food},
		{"weights.medical", c.Weights.Medical},
		{"weights.infrastructure", c.Weights.Infrastructure},
	}
	for _, w := range weights {
		if w.value < 0 || math.IsNaN(w.value) || math.IsInf(w.value, 0) {
			return fmt.Errorf("%s must be a non-negative number, got %f", w.name, w.value)
		}
	}

	factors := []struct {
		name  string
		value float64
	}{
		{"need_factors.low", c.NeedFactors.Low},
		{"need_factors.medium", c.NeedFactors.Medium},
		{"need_factors.high", c.NeedFactors.High},
	}
	for _, f := range factors {
		if f.value <= 0 || math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%s must be positive, got %f", f.name, f.value)
		}
	}

	if c.MinPopulation < 1 {
		return fmt.Errorf("min_population must be at least 1, got %f", c.MinPopulation)
	}
	if c.MaxCoverageIndex <= c.MinCoverageIndex {
		return fmt.Errorf("max_coverage_index must be > min_coverage_index, got %f <= %f",
			c.MaxCoverageIndex, c.MinCoverageIndex)
	}
	if c.OutlierPercentile <= 0 || c.OutlierPercentile > 1 {
		return fmt.Errorf("outlier_percentile must be in (0, 1], got %f", c.OutlierPercentile)
	}
	if c.TopOrgs < 0 {
		return fmt.Errorf("top_orgs must be non-negative, got %d", c.TopOrgs)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
