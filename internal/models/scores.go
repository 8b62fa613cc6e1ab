// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package models

// Spread classifies how unevenly coverage is distributed across a set of regions.
type Spread string

const (
	SpreadLow    Spread = "low"
	SpreadMedium Spread = "medium"
	SpreadHigh   Spread = "high"
)

// OrgRank is one entry of a top-K organization query.
type OrgRank struct {
	OrgID            string  `json:"org_id"`
	Name             string  `json:"name"`
	TotalProjects    int     `json:"total_projects"`
	WeightedPresence float64 `json:"weighted_presence"`
}

// WorldScore is the per-country coverage shown on the world map.
// NormalizedCoverage is only comparable with other WorldScores from the same call.
type WorldScore struct {
	CountryID          string    `json:"country_id"`
	Name               string    `json:"name"`
	NormalizedCoverage float64   `json:"normalized_coverage"`
	RawCoverage        float64   `json:"raw_coverage"`
	TopOrgs            []string  `json:"top_orgs"`
	RegionCount        int       `json:"region_count"`
	TotalAidPresence   float64   `json:"total_aid_presence"`
	Population         int64     `json:"population"`
	NeedLevel          NeedLevel `json:"need_level,omitempty"`
}

// RegionScore is the per-region coverage within one country's comparison set.
type RegionScore struct {
	RegionID           string    `json:"region_id"`
	CountryID          string    `json:"country_id"`
	Name               string    `json:"name"`
	NormalizedCoverage float64   `json:"normalized_coverage"`
	RawCoverage        float64   `json:"raw_coverage"`
	Variance           float64   `json:"variance"`
	Overlap            float64   `json:"overlap"`
	OrgCount           int       `json:"org_count"`
	Population         int64     `json:"population"`
	NeedLevel          NeedLevel `json:"need_level"`
	Centroid           *LatLng   `json:"centroid,omitempty"`
}

// OrgPresence is one organization's activity within a single region.
type OrgPresence struct {
	OrgID        string    `json:"org_id"`
	Name         string    `json:"name"`
	AidTypes     []AidType `json:"aid_types"`
	ProjectCount int       `json:"project_count"`
}

// AidTypeBreakdown is the share of a region's projects for one aid type.
type AidTypeBreakdown struct {
	AidType       AidType `json:"aid_type"`
	Count         int     `json:"count"`
	Percentage    float64 `json:"percentage"`
	WeightedValue float64 `json:"weighted_value"`
}

// OrgRef names an organization.
type OrgRef struct {
	OrgID string `json:"org_id"`
	Name  string `json:"name"`
}

// RegionDetail expands a RegionScore with per-organization and per-aid-type data.
type RegionDetail struct {
	RegionScore
	WeightedAidPresence float64            `json:"weighted_aid_presence"`
	TotalProjects       int                `json:"total_projects"`
	Organizations       []OrgPresence      `json:"organizations"`
	AidTypeBreakdown    []AidTypeBreakdown `json:"aid_type_breakdown"`
	OverlapIntensity    float64            `json:"overlap_intensity"`
	SharedOrgs          []OrgRef           `json:"shared_orgs"`
	Volatility          *float64           `json:"volatility,omitempty"`
	DynamicNeedFactor   *float64           `json:"dynamic_need_factor,omitempty"`
	ConflictEvents      *int               `json:"conflict_events,omitempty"`
	IPCPhase            *int               `json:"ipc_phase,omitempty"`
}

// VarianceSummary describes the dispersion of raw coverage across a region set.
type VarianceSummary struct {
	Count                  int     `json:"count"`
	Mean                   float64 `json:"mean"`
	Variance               float64 `json:"variance"`
	StdDev                 float64 `json:"std_dev"`
	CoefficientOfVariation float64 `json:"coefficient_of_variation"`
	Spread                 Spread  `json:"spread"`
}
