// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package graph

import (
	"github.com/tomtom215/reliefmap/internal/models"
)

// Index holds read-only lookup structures over one dataset snapshot.
// It is safe for concurrent use once Build returns.
type Index struct {
	countries []models.Country
	regions   []models.Region
	orgs      []models.Organization
	edges     []models.AidEdge

	countryByID map[string]*models.Country
	regionByID  map[string]*models.Region
	orgByID     map[string]*models.Organization

	regionsByCountry map[string][]*models.Region
	edgesByRegion    map[string][]*models.AidEdge
	edgesByCountry   map[string][]*models.AidEdge
	orgsByRegion     map[string][]*models.Organization
	regionsByOrg     map[string][]string
}

// Build indexes the dataset in a single pass over each collection.
// The dataset slices are copied so later mutation by the caller does not leak in.
// Edges whose region or organization is unknown stay in Edges but are left out
// of every grouping, so no score counts a project nobody can be credited with.
func Build(ds *models.Dataset) *Index {
	if ds == nil {
		ds = &models.Dataset{}
	}
	snapshot := ds.Clone()

	idx := &Index{
		countries:        snapshot.Countries,
		regions:          snapshot.Regions,
		orgs:             snapshot.Organizations,
		edges:            snapshot.Edges,
		countryByID:      make(map[string]*models.Country, len(snapshot.Countries)),
		regionByID:       make(map[string]*models.Region, len(snapshot.Regions)),
		orgByID:          make(map[string]*models.Organization, len(snapshot.Organizations)),
		regionsByCountry: make(map[string][]*models.Region, len(snapshot.Countries)),
		edgesByRegion:    make(map[string][]*models.AidEdge, len(snapshot.Regions)),
		edgesByCountry:   make(map[string][]*models.AidEdge, len(snapshot.Countries)),
		orgsByRegion:     make(map[string][]*models.Organization, len(snapshot.Regions)),
		regionsByOrg:     make(map[string][]string, len(snapshot.Organizations)),
	}

	for i := range idx.countries {
		c := &idx.countries[i]
		if _, dup := idx.countryByID[c.ID]; !dup {
			idx.countryByID[c.ID] = c
		}
	}
	for i := range idx.orgs {
		o := &idx.orgs[i]
		if _, dup := idx.orgByID[o.ID]; !dup {
			idx.orgByID[o.ID] = o
		}
	}
	for i := range idx.regions {
		r := &idx.regions[i]
		if _, dup := idx.regionByID[r.ID]; dup {
			continue
		}
		idx.regionByID[r.ID] = r
		idx.regionsByCountry[r.CountryID] = append(idx.regionsByCountry[r.CountryID], r)
	}

	seenOrg := make(map[string]map[string]struct{}, len(idx.regions))
	for i := range idx.edges {
		e := &idx.edges[i]
		region, ok := idx.regionByID[e.RegionID]
		if !ok {
			continue
		}
		org, ok := idx.orgByID[e.OrgID]
		if !ok {
			continue
		}
		idx.edgesByRegion[e.RegionID] = append(idx.edgesByRegion[e.RegionID], e)
		idx.edgesByCountry[region.CountryID] = append(idx.edgesByCountry[region.CountryID], e)

		set := seenOrg[e.RegionID]
		if set == nil {
			set = make(map[string]struct{})
			seenOrg[e.RegionID] = set
		}
		if _, seen := set[org.ID]; seen {
			continue
		}
		set[org.ID] = struct{}{}
		idx.orgsByRegion[e.RegionID] = append(idx.orgsByRegion[e.RegionID], org)
		idx.regionsByOrg[org.ID] = append(idx.regionsByOrg[org.ID], e.RegionID)
	}

	return idx
}

// Countries returns all countries in input order.
func (idx *Index) Countries() []models.Country { return idx.countries }

// Regions returns all regions in input order.
func (idx *Index) Regions() []models.Region { return idx.regions }

// Organizations returns all organizations in input order.
func (idx *Index) Organizations() []models.Organization { return idx.orgs }

// Edges returns all aid edges in input order.
func (idx *Index) Edges() []models.AidEdge { return idx.edges }

// Country looks up a country by id.
func (idx *Index) Country(id string) (*models.Country, bool) {
	c, ok := idx.countryByID[id]
	return c, ok
}

// Region looks up a region by id.
func (idx *Index) Region(id string) (*models.Region, bool) {
	r, ok := idx.regionByID[id]
	return r, ok
}

// Organization looks up an organization by id.
func (idx *Index) Organization(id string) (*models.Organization, bool) {
	o, ok := idx.orgByID[id]
	return o, ok
}

// RegionsByCountry returns the regions of a country in input order.
func (idx *Index) RegionsByCountry(countryID string) []*models.Region {
	return idx.regionsByCountry[countryID]
}

// EdgesByRegion returns the region's edges whose organization is known.
func (idx *Index) EdgesByRegion(regionID string) []*models.AidEdge {
	return idx.edgesByRegion[regionID]
}

// EdgesByCountry returns the union of EdgesByRegion over the country's regions.
func (idx *Index) EdgesByCountry(countryID string) []*models.AidEdge {
	return idx.edgesByCountry[countryID]
}

// OrgsByRegion returns the distinct known organizations active in the region.
// Callers must treat the result as a set.
func (idx *Index) OrgsByRegion(regionID string) []*models.Organization {
	return idx.orgsByRegion[regionID]
}

// RegionsByOrg returns the ids of regions the organization is active in.
func (idx *Index) RegionsByOrg(orgID string) []string {
	return idx.regionsByOrg[orgID]
}

// OrgCount returns the number of distinct organizations in the dataset.
func (idx *Index) OrgCount() int {
	return len(idx.orgByID)
}
