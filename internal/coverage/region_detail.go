// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package coverage

import (
	"sort"

	"github.com/tomtom215/reliefmap/internal/graph"
	"github.com/tomtom215/reliefmap/internal/models"
)

// RegionDetail expands one region's score. It returns nil for an unknown region.
//
// The normalized coverage is taken from CountryScores for the parent country so the
// detail view always agrees with the country list view.
func (c *Calculator) RegionDetail(idx *graph.Index, regionID string) *models.RegionDetail {
	region, ok := idx.Region(regionID)
	if !ok {
		return nil
	}

	var score models.RegionScore
	for _, s := range c.CountryScores(idx, region.CountryID) {
		if s.RegionID == regionID {
			score = s
			break
		}
	}

	edges := idx.EdgesByRegion(regionID)
	breakdown, total := c.AidTypeBreakdown(edges)

	return &models.RegionDetail{
		RegionScore:         score,
		WeightedAidPresence: c.WeightedAidPresence(edges),
		TotalProjects:       total,
		Organizations:       orgPresence(idx, edges),
		AidTypeBreakdown:    breakdown,
		OverlapIntensity:    Overlap(idx, regionID),
		SharedOrgs:          SharedOrgs(idx, region),
		Volatility:          region.Volatility,
		DynamicNeedFactor:   region.DynamicNeedFactor,
		ConflictEvents:      region.ConflictEvents,
		IPCPhase:            region.IPCPhase,
	}
}

// AidTypeBreakdown counts projects per aid type in models.AidTypes order.
// Percentages sum to 100 when the total is positive and are all 0 otherwise.
func (c *Calculator) AidTypeBreakdown(edges []*models.AidEdge) ([]models.AidTypeBreakdown, int) {
	counts := make(map[models.AidType]int, len(models.AidTypes))
	total := 0
	for _, e := range edges {
		if !e.AidType.Valid() || e.ProjectCount <= 0 {
			continue
		}
		counts[e.AidType] += e.ProjectCount
		total += e.ProjectCount
	}

	out := make([]models.AidTypeBreakdown, len(models.AidTypes))
	for i, t := range models.AidTypes {
		out[i] = models.AidTypeBreakdown{
			AidType:       t,
			Count:         counts[t],
			WeightedValue: c.cfg.Weights.Weight(t) * float64(counts[t]),
		}
		if total > 0 {
			out[i].Percentage = float64(counts[t]) / float64(total) * 100
		}
	}
	return out, total
}

// SharedOrgs lists organizations active in the region that also have an edge in
// another region of the same country, sorted by name.
func SharedOrgs(idx *graph.Index, region *models.Region) []models.OrgRef {
	shared := []models.OrgRef{}
	for _, org := range idx.OrgsByRegion(region.ID) {
		for _, otherID := range idx.RegionsByOrg(org.ID) {
			if otherID == region.ID {
				continue
			}
			other, ok := idx.Region(otherID)
			if !ok || other.CountryID != region.CountryID {
				continue
			}
			shared = append(shared, models.OrgRef{OrgID: org.ID, Name: org.Name})
			break
		}
	}
	sort.Slice(shared, func(i, j int) bool {
		if shared[i].Name != shared[j].Name {
			return shared[i].Name < shared[j].Name
		}
		return shared[i].OrgID < shared[j].OrgID
	})
	return shared
}

// orgPresence aggregates project counts per known organization, sorted by
// project count descending, then name.
func orgPresence(idx *graph.Index, edges []*models.AidEdge) []models.OrgPresence {
	type acc struct {
		presence models.OrgPresence
		types    map[models.AidType]struct{}
	}
	byOrg := make(map[string]*acc)
	for _, e := range edges {
		org, ok := idx.Organization(e.OrgID)
		if !ok {
			continue
		}
		a, exists := byOrg[org.ID]
		if !exists {
			a = &acc{
				presence: models.OrgPresence{OrgID: org.ID, Name: org.Name},
				types:    make(map[models.AidType]struct{}),
			}
			byOrg[org.ID] = a
		}
		if e.ProjectCount > 0 {
			a.presence.ProjectCount += e.ProjectCount
		}
		a.types[e.AidType] = struct{}{}
	}

	out := make([]models.OrgPresence, 0, len(byOrg))
	for _, a := range byOrg {
		a.presence.AidTypes = []models.AidType{}
		for _, t := range models.AidTypes {
			if _, ok := a.types[t]; ok {
				a.presence.AidTypes = append(a.presence.AidTypes, t)
			}
		}
		out = append(out, a.presence)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProjectCount != out[j].ProjectCount {
			return out[i].ProjectCount > out[j].ProjectCount
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].OrgID < out[j].OrgID
	})
	return out
}
