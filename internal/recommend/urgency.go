// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package recommend

import (
	"github.com/tomtom215/reliefmap/internal/graph"
	"github.com/tomtom215/reliefmap/internal/models"
)

// UrgencyOptions controls an urgency ranking.
type UrgencyOptions struct {
	// TopN limits the result. Non-positive or above the configured cap uses the cap.
	TopN int `json:"top_n"`

	// Scenario names a what-if preset. Empty means baseline.
	Scenario string `json:"scenario,omitempty"`

	// ScenarioCountries limits the scenario to these countries. Empty applies it everywhere.
	ScenarioCountries []string `json:"scenario_countries,omitempty"`
}

// UrgencyRanking ranks regions by urgency, highest first, ties by region id.
// Normalized coverage is taken from each region's country scope.
func (e *Engine) UrgencyRanking(idx *graph.Index, opts UrgencyOptions) ([]models.UrgencyRankItem, error) {
	candidates, err := e.rankCandidates(idx, opts.Scenario, opts.ScenarioCountries)
	if err != nil {
		return nil, err
	}

	limit := opts.TopN
	if limit <= 0 || limit > e.config.Urgency.MaxResults {
		limit = e.config.Urgency.MaxResults
	}
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	items := make([]models.UrgencyRankItem, len(candidates))
	for i := range candidates {
		c := &candidates[i]
		items[i] = models.UrgencyRankItem{
			Rank:               i + 1,
			RegionID:           c.region.ID,
			RegionName:         c.region.Name,
			CountryID:          c.region.CountryID,
			UrgencyScore:       c.urgency,
			NormalizedCoverage: c.score.NormalizedCoverage,
			RawCoverage:        c.score.RawCoverage,
			Population:         c.inputs.population,
			NeedLevel:          c.region.NeedLevel,
			DynamicNeedFactor:  c.inputs.needFactor,
			Volatility:         c.inputs.volatility,
		}
	}

	e.logger.Debug().
		Int("regions", len(items)).
		Str("scenario", opts.Scenario).
		Msg("computed urgency ranking")

	return items, nil
}
