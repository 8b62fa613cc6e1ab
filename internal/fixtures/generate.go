// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package fixtures

import (
	"fmt"
	"math/rand"

	"github.com/tomtom215/reliefmap/internal/models"
)

// Source is set on every generated edge.
const Source = "synthetic"

// Options controls project placement.
type Options struct {
	Seed int64

	// Projects is the number of placement draws. Draws that hit an existing
	// (organization, region, aid type) triple add to its project count.
	Projects int

	// HighNeedShare is the probability that a draw targets a high-need region
	// rather than any region.
	HighNeedShare float64

	// MaxProjectCount bounds the project count of a single draw (minimum 1).
	MaxProjectCount int
}

// DefaultOptions returns the demo dataset settings.
func DefaultOptions() Options {
	return Options{
		Seed:            42,
		Projects:        180,
		HighNeedShare:   0.7,
		MaxProjectCount: 15,
	}
}

// Generate builds the seed entities and places opts.Projects random projects.
// The same options always produce the same dataset.
func Generate(opts Options) *models.Dataset {
	if opts.MaxProjectCount < 1 {
		opts.MaxProjectCount = 1
	}

	ds := &models.Dataset{
		Countries:     Countries(),
		Regions:       Regions(),
		Organizations: Organizations(),
	}
	ds.Edges = placeProjects(ds.Organizations, ds.Regions, opts)
	return ds
}

// EdgeID is the id given to an edge without one: "org:region:aidType".
func EdgeID(orgID, regionID string, aidType models.AidType) string {
	return fmt.Sprintf("%s:%s:%s", orgID, regionID, aidType)
}

func placeProjects(orgs []models.Organization, regions []models.Region, opts Options) []models.AidEdge {
	edges := []models.AidEdge{}
	if len(orgs) == 0 || len(regions) == 0 || opts.Projects <= 0 {
		return edges
	}

	highNeed := make([]*models.Region, 0, len(regions))
	for i := range regions {
		if regions[i].NeedLevel == models.NeedHigh {
			highNeed = append(highNeed, &regions[i])
		}
	}

	//nolint:gosec // G404: demo data, reproducibility matters more than unpredictability
	rng := rand.New(rand.NewSource(opts.Seed))
	index := make(map[string]int)

	for i := 0; i < opts.Projects; i++ {
		org := orgs[rng.Intn(len(orgs))]

		var region *models.Region
		if len(highNeed) > 0 && rng.Float64() < opts.HighNeedShare {
			region = highNeed[rng.Intn(len(highNeed))]
		} else {
			region = &regions[rng.Intn(len(regions))]
		}

		aidType := models.AidTypes[rng.Intn(len(models.AidTypes))]
		count := 1 + rng.Intn(opts.MaxProjectCount)

		id := EdgeID(org.ID, region.ID, aidType)
		if at, ok := index[id]; ok {
			edges[at].ProjectCount += count
			continue
		}
		index[id] = len(edges)
		edges = append(edges, models.AidEdge{
			ID:           id,
			OrgID:        org.ID,
			RegionID:     region.ID,
			AidType:      aidType,
			ProjectCount: count,
			Synthetic:    true,
			Source:       Source,
		})
	}
	return edges
}
