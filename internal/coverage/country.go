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

// CountryScores computes one score per region of the country, in dataset order.
// The regions are normalized together, so the values are only comparable within
// this country. Variance is each region's distance from the mean normalized value.
// An id with no regions yields an empty slice.
func (c *Calculator) CountryScores(idx *graph.Index, countryID string) []models.RegionScore {
	regions := idx.RegionsByCountry(countryID)
	scores := make([]models.RegionScore, len(regions))
	raw := make([]float64, len(regions))

	for i, r := range regions {
		raw[i] = c.RegionCoverage(idx, r)
		scores[i] = models.RegionScore{
			RegionID:    r.ID,
			CountryID:   r.CountryID,
			Name:        r.Name,
			RawCoverage: raw[i],
			Overlap:     Overlap(idx, r.ID),
			OrgCount:    len(idx.OrgsByRegion(r.ID)),
			Population:  r.Population,
			NeedLevel:   r.NeedLevel,
			Centroid:    r.Centroid,
		}
	}

	normalized := Normalize(raw, c.cfg.OutlierPercentile)
	m := mean(normalized)
	for i := range scores {
		scores[i].NormalizedCoverage = normalized[i]
		scores[i].Variance = math.Abs(normalized[i] - m)
	}
	return scores
}

// NormalizedByRegion runs CountryScores for every country that has regions and
// returns the country-scope normalized coverage and raw index keyed by region id.
func (c *Calculator) NormalizedByRegion(idx *graph.Index) map[string]models.RegionScore {
	out := make(map[string]models.RegionScore, len(idx.Regions()))
	seen := make(map[string]struct{})
	for i := range idx.Regions() {
		countryID := idx.Regions()[i].CountryID
		if _, done := seen[countryID]; done {
			continue
		}
		seen[countryID] = struct{}{}
		for _, s := range c.CountryScores(idx, countryID) {
			out[s.RegionID] = s
		}
	}
	return out
}
