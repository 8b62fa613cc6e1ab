// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package models

// UrgencyRankItem is one region in an urgency ranking.
type UrgencyRankItem struct {
	Rank               int       `json:"rank"`
	RegionID           string    `json:"region_id"`
	RegionName         string    `json:"region_name"`
	CountryID          string    `json:"country_id"`
	UrgencyScore       float64   `json:"urgency_score"`
	NormalizedCoverage float64   `json:"normalized_coverage"`
	RawCoverage        float64   `json:"raw_coverage"`
	Population         int64     `json:"population"`
	NeedLevel          NeedLevel `json:"need_level"`
	DynamicNeedFactor  float64   `json:"dynamic_need_factor"`
	Volatility         float64   `json:"volatility"`
}

// DeploymentPlanItem is an allocation of new projects to one (region, aid type) pair.
// Repeated allocations to the same pair are merged into a single item.
type DeploymentPlanItem struct {
	RegionID            string  `json:"region_id"`
	RegionName          string  `json:"region_name"`
	CountryID           string  `json:"country_id"`
	AidType             AidType `json:"aid_type"`
	Projects            int     `json:"projects"`
	CoverageImprovement float64 `json:"coverage_improvement"`
	UrgencyScore        float64 `json:"urgency_score"`
	Rationale           string  `json:"rationale"`
}

// CoordinationSuggestion proposes moving projects from a well-served region to an
// under-served one.
type CoordinationSuggestion struct {
	SourceRegionID   string  `json:"source_region_id"`
	SourceRegionName string  `json:"source_region_name"`
	TargetRegionID   string  `json:"target_region_id"`
	TargetRegionName string  `json:"target_region_name"`
	AidType          AidType `json:"aid_type"`
	Projects         int     `json:"projects"`
	ExpectedGain     float64 `json:"expected_gain"`
	SourceCoverage   float64 `json:"source_coverage"`
	TargetCoverage   float64 `json:"target_coverage"`
	TargetUrgency    float64 `json:"target_urgency"`
	SourceOverlap    float64 `json:"source_overlap"`
	Rationale        string  `json:"rationale"`
}
