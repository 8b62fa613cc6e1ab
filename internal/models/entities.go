// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package models

// NeedLevel classifies how much aid a country or region requires relative to its size.
type NeedLevel string

const (
	NeedLow    NeedLevel = "low"
	NeedMedium NeedLevel = "medium"
	NeedHigh   NeedLevel = "high"
)

// NeedLevels lists the known need levels in ascending order.
var NeedLevels = []NeedLevel{NeedLow, NeedMedium, NeedHigh}

// Valid reports whether the level is one of the known need levels.
func (n NeedLevel) Valid() bool {
	switch n {
	case NeedLow, NeedMedium, NeedHigh:
		return true
	default:
		return false
	}
}

// AidType is the category of an aid activity.
type AidType string

const (
	AidFood           AidType = "food"
	AidMedical        AidType = "medical"
	AidInfrastructure AidType = "infrastructure"
)

// AidTypes lists every aid type in the fixed order used for breakdowns and
// candidate enumeration. Iteration order matters for deterministic tie-breaking.
var AidTypes = []AidType{AidFood, AidMedical, AidInfrastructure}

// Valid reports whether the aid type is known.
func (a AidType) Valid() bool {
	switch a {
	case AidFood, AidMedical, AidInfrastructure:
		return true
	default:
		return false
	}
}

// LatLng is a geographic point. Used only for rendering.
type LatLng struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

// Country is a top-level comparison unit on the world map.
type Country struct {
	ID         string    `json:"id" validate:"required"`
	Name       string    `json:"name" validate:"required"`
	Population int64     `json:"population" validate:"gte=0"`
	NeedLevel  NeedLevel `json:"need_level,omitempty" validate:"omitempty,oneof=low medium high"`
	// NeedFactor overrides the factor derived from NeedLevel when set.
	NeedFactor *float64 `json:"need_factor,omitempty" validate:"omitempty,gt=0"`
}

// Region belongs to exactly one Country.
type Region struct {
	ID         string    `json:"id" validate:"required"`
	CountryID  string    `json:"country_id" validate:"required"`
	Name       string    `json:"name" validate:"required"`
	Centroid   *LatLng   `json:"centroid,omitempty"`
	Population int64     `json:"population" validate:"gt=0"`
	NeedLevel  NeedLevel `json:"need_level" validate:"required,oneof=low medium high"`

	// Volatility is an instability score in [0,1].
	Volatility *float64 `json:"volatility,omitempty" validate:"omitempty,gte=0,lte=1"`
	// DynamicNeedFactor scales urgency; absent means 1.
	DynamicNeedFactor *float64 `json:"dynamic_need_factor,omitempty" validate:"omitempty,gte=0"`

	// Display-only.
	ConflictEvents *int `json:"conflict_events,omitempty" validate:"omitempty,gte=0"`
	IPCPhase       *int `json:"ipc_phase,omitempty" validate:"omitempty,gte=1,lte=5"`
}

// VolatilityOrZero returns the region volatility, or 0 when absent.
func (r *Region) VolatilityOrZero() float64 {
	if r.Volatility == nil {
		return 0
	}
	return *r.Volatility
}

// DynamicNeedFactorOrDefault returns the dynamic need factor, or 1 when absent.
func (r *Region) DynamicNeedFactorOrDefault() float64 {
	if r.DynamicNeedFactor == nil {
		return 1
	}
	return *r.DynamicNeedFactor
}

// Organization is an aid provider active in one or more regions.
type Organization struct {
	ID      string `json:"id" validate:"required"`
	Name    string `json:"name" validate:"required"`
	Type    string `json:"type,omitempty"`
	Website string `json:"website,omitempty" validate:"omitempty,url"`
}

// AidEdge records the projects one organization runs in one region for one aid type.
type AidEdge struct {
	ID           string  `json:"id" validate:"required"`
	OrgID        string  `json:"org_id" validate:"required"`
	RegionID     string  `json:"region_id" validate:"required"`
	AidType      AidType `json:"aid_type" validate:"required,oneof=food medical infrastructure"`
	ProjectCount int     `json:"project_count" validate:"gte=0"`

	// Provenance. Never used for scoring.
	Synthetic bool   `json:"synthetic,omitempty"`
	Source    string `json:"source,omitempty"`
}

// Dataset is the full set of entity collections a computation pass runs over.
type Dataset struct {
	Countries     []Country      `json:"countries" validate:"dive"`
	Regions       []Region       `json:"regions" validate:"dive"`
	Organizations []Organization `json:"organizations" validate:"dive"`
	Edges         []AidEdge      `json:"edges" validate:"dive"`
}

// IsEmpty reports whether the dataset holds no entities at all.
func (d *Dataset) IsEmpty() bool {
	return len(d.Countries) == 0 && len(d.Regions) == 0 &&
		len(d.Organizations) == 0 && len(d.Edges) == 0
}

// Clone returns a copy whose slices can be modified without affecting d.
// Pointer fields inside entities are shared.
func (d *Dataset) Clone() Dataset {
	return Dataset{
		Countries:     append([]Country(nil), d.Countries...),
		Regions:       append([]Region(nil), d.Regions...),
		Organizations: append([]Organization(nil), d.Organizations...),
		Edges:         append([]AidEdge(nil), d.Edges...),
	}
}

// Float64Ptr returns a pointer to v.
func Float64Ptr(v float64) *float64 {
	return &v
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}
