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

// TopOrgs ranks organizations over a set of edges by total project count.
// Ties are broken by organization name, then id. Edges of unknown organizations
// are skipped. k <= 0 returns every organization.
func (c *Calculator) TopOrgs(idx *graph.Index, edges []*models.AidEdge, k int) []models.OrgRank {
	byOrg := make(map[string]*models.OrgRank)
	for _, e := range edges {
		org, ok := idx.Organization(e.OrgID)
		if !ok {
			continue
		}
		rank, exists := byOrg[org.ID]
		if !exists {
			rank = &models.OrgRank{OrgID: org.ID, Name: org.Name}
			byOrg[org.ID] = rank
		}
		if e.ProjectCount > 0 {
			rank.TotalProjects += e.ProjectCount
			rank.WeightedPresence += c.cfg.Weights.Weight(e.AidType) * float64(e.ProjectCount)
		}
	}

	ranks := make([]models.OrgRank, 0, len(byOrg))
	for _, r := range byOrg {
		ranks = append(ranks, *r)
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].TotalProjects != ranks[j].TotalProjects {
			return ranks[i].TotalProjects > ranks[j].TotalProjects
		}
		if ranks[i].Name != ranks[j].Name {
			return ranks[i].Name < ranks[j].Name
		}
		return ranks[i].OrgID < ranks[j].OrgID
	})

	if k > 0 && len(ranks) > k {
		ranks = ranks[:k]
	}
	return ranks
}

// Overlap returns the share of all known organizations that are active in a region.
func Overlap(idx *graph.Index, regionID string) float64 {
	total := idx.OrgCount()
	if total == 0 {
		return 0
	}
	return float64(len(idx.OrgsByRegion(regionID))) / float64(total)
}
