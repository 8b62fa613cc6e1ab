// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package coverage

import (
	"math"

	"github.com/tomtom215/reliefmap/internal/graph"
	"github.com/tomtom215/reliefmap/internal/models"
)

// populationUnit expresses populations per thousand people in the denominator.
const populationUnit = 1000.0

// Calculator computes coverage indices and the aggregate score shapes.
// It holds only configuration and is safe for concurrent use.
type Calculator struct {
	cfg *Config
}

// NewCalculator creates a calculator. A nil config uses DefaultConfig.
func NewCalculator(cfg *Config) *Calculator {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Calculator{cfg: cfg.Clone()}
}

// Config returns a copy of the calculator configuration.
func (c *Calculator) Config() *Config {
	return c.cfg.Clone()
}

// Weight returns the configured weight of an aid type.
func (c *Calculator) Weight(t models.AidType) float64 {
	return c.cfg.Weights.Weight(t)
}

// WeightedAidPresence sums weight[aidType] × projectCount over the edges.
// Negative project counts contribute nothing.
func (c *Calculator) WeightedAidPresence(edges []*models.AidEdge) float64 {
	var total float64
	for _, e := range edges {
		if e.ProjectCount <= 0 {
			continue
		}
		total += c.cfg.Weights.Weight(e.AidType) * float64(e.ProjectCount)
	}
	return finite(total)
}

// RegionNeedFactor returns the denominator multiplier for a region.
func (c *Calculator) RegionNeedFactor(r *models.Region) float64 {
	return c.cfg.NeedFactors.Factor(r.NeedLevel)
}

// CountryNeedFactor returns the explicit override when present, else the level factor.
func (c *Calculator) CountryNeedFactor(country *models.Country) float64 {
	if country.NeedFactor != nil && *country.NeedFactor > 0 {
		return *country.NeedFactor
	}
	return c.cfg.NeedFactors.Factor(country.NeedLevel)
}

// NeedAdjustedPopulation returns max(population, MinPopulation) / 1000 × needFactor.
func (c *Calculator) NeedAdjustedPopulation(population int64, needFactor float64) float64 {
	pop := math.Max(float64(population), c.cfg.MinPopulation)
	return pop / populationUnit * needFactor
}

// RawCoverageIndex computes the clamped coverage index of a region from its edges.
func (c *Calculator) RawCoverageIndex(r *models.Region, edges []*models.AidEdge) float64 {
	return c.CoverageForPresence(r, c.WeightedAidPresence(edges))
}

// CoverageForPresence computes the clamped index of a region for a given weighted
// presence. Recommendation code uses it to simulate allocations.
func (c *Calculator) CoverageForPresence(r *models.Region, presence float64) float64 {
	return c.ratio(presence, c.NeedAdjustedPopulation(r.Population, c.RegionNeedFactor(r)))
}

// RegionCoverage computes the raw coverage index of a region through the index.
func (c *Calculator) RegionCoverage(idx *graph.Index, r *models.Region) float64 {
	return c.RawCoverageIndex(r, idx.EdgesByRegion(r.ID))
}

// CountryCoverage aggregates numerator and denominator over the country's regions
// before taking the ratio. It returns the clamped index and the total presence.
// A country without regions falls back to its own population and need factor.
func (c *Calculator) CountryCoverage(idx *graph.Index, country *models.Country) (raw, presence float64) {
	regions := idx.RegionsByCountry(country.ID)
	if len(regions) == 0 {
		denom := c.NeedAdjustedPopulation(country.Population, c.CountryNeedFactor(country))
		return c.ratio(0, denom), 0
	}

	var denom float64
	for _, r := range regions {
		presence += c.WeightedAidPresence(idx.EdgesByRegion(r.ID))
		denom += c.NeedAdjustedPopulation(r.Population, c.RegionNeedFactor(r))
	}
	return c.ratio(presence, denom), finite(presence)
}

// ratio divides and clamps, mapping degenerate input to 0 before clamping.
func (c *Calculator) ratio(numerator, denominator float64) float64 {
	if denominator <= 0 || math.IsNaN(denominator) || math.IsInf(denominator, 0) {
		return c.clamp(0)
	}
	return c.clamp(finite(numerator / denominator))
}

func (c *Calculator) clamp(v float64) float64 {
	return clamp(v, c.cfg.MinCoverageIndex, c.cfg.MaxCoverageIndex)
}

// finite replaces NaN and ±Inf with 0.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
