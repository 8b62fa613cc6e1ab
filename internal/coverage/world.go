// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package coverage

import (
	"github.com/tomtom215/reliefmap/internal/graph"
	"github.com/tomtom215/reliefmap/internal/models"
)

// WorldScores computes one score per country, in dataset order, with every
// country normalized together as a single comparison scope.
func (c *Calculator) WorldScores(idx *graph.Index) []models.WorldScore {
	countries := idx.Countries()
	scores := make([]models.WorldScore, 0, len(countries))
	raw := make([]float64, 0, len(countries))

	for i := range countries {
		country, ok := idx.Country(countries[i].ID)
		if !ok || country != &countries[i] {
			// Duplicate id; the first occurrence already produced a score.
			continue
		}

		index, presence := c.CountryCoverage(idx, country)
		edges := idx.EdgesByCountry(country.ID)

		top := c.TopOrgs(idx, edges, c.cfg.TopOrgs)
		names := make([]string, len(top))
		for j := range top {
			names[j] = top[j].Name
		}

		scores = append(scores, models.WorldScore{
			CountryID:        country.ID,
			Name:             country.Name,
			RawCoverage:      index,
			TopOrgs:          names,
			RegionCount:      len(idx.RegionsByCountry(country.ID)),
			TotalAidPresence: presence,
			Population:       country.Population,
			NeedLevel:        country.NeedLevel,
		})
		raw = append(raw, index)
	}

	normalized := Normalize(raw, c.cfg.OutlierPercentile)
	for i := range scores {
		scores[i].NormalizedCoverage = normalized[i]
	}
	return scores
}
