// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package coverage

import (
	"math"
	"testing"

	"github.com/tomtom215/reliefmap/internal/graph"
	"github.com/tomtom215/reliefmap/internal/models"
)

const epsilon = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func edge(id, org, region string, t models.AidType, count int) models.AidEdge {
	return models.AidEdge{ID: id, OrgID: org, RegionID: region, AidType: t, ProjectCount: count}
}

func edgePtrs(edges ...models.AidEdge) []*models.AidEdge {
	out := make([]*models.AidEdge, len(edges))
	for i := range edges {
		out[i] = &edges[i]
	}
	return out
}

func TestWeightedAidPresence(t *testing.T) {
	calc := NewCalculator(nil)

	tests := []struct {
		name  string
		edges []*models.AidEdge
		want  float64
	}{
		{"no edges", nil, 0},
		{"single food", edgePtrs(edge("e1", "o", "r", models.AidFood, 10)), 10},
		{
			name: "mixed types use weights",
			edges: edgePtrs(
				edge("e1", "o", "r", models.AidFood, 10),
				edge("e2", "o", "r", models.AidMedical, 5),
				edge("e3", "o", "r", models.AidInfrastructure, 5),
			),
			want: 10 + 6 + 4,
		},
		{"negative count ignored", edgePtrs(edge("e1", "o", "r", models.AidFood, -5)), 0},
		{"unknown aid type weighs zero", edgePtrs(edge("e1", "o", "r", models.AidType("shelter"), 5)), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := calc.WeightedAidPresence(tt.edges); !approxEqual(got, tt.want) {
				t.Errorf("WeightedAidPresence() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestRawCoverageIndex(t *testing.T) {
	calc := NewCalculator(nil)

	tests := []struct {
		name   string
		region models.Region
		edges  []*models.AidEdge
		want   float64
	}{
		{
			name:   "medium need",
			region: models.Region{ID: "r", Population: 100000, NeedLevel: models.NeedMedium},
			edges:  edgePtrs(edge("e1", "o", "r", models.AidFood, 10), edge("e2", "o", "r", models.AidMedical, 5), edge("e3", "o", "r", models.AidInfrastructure, 5)),
			want:   0.2,
		},
		{
			name:   "high need inflates denominator",
			region: models.Region{ID: "r", Population: 100000, NeedLevel: models.NeedHigh},
			edges:  edgePtrs(edge("e1", "o", "r", models.AidFood, 13)),
			want:   0.1,
		},
		{
			name:   "unknown need level uses medium",
			region: models.Region{ID: "r", Population: 100000, NeedLevel: models.NeedLevel("extreme")},
			edges:  edgePtrs(edge("e1", "o", "r", models.AidFood, 10)),
			want:   0.1,
		},
		{
			name:   "no edges",
			region: models.Region{ID: "r", Population: 100000, NeedLevel: models.NeedLow},
			want:   0,
		},
		{
			name:   "zero population floored and clamped",
			region: models.Region{ID: "r", Population: 0, NeedLevel: models.NeedLow},
			edges:  edgePtrs(edge("e1", "o", "r", models.AidFood, 1000000000)),
			want:   10,
		},
		{
			name:   "negative population floored",
			region: models.Region{ID: "r", Population: -50, NeedLevel: models.NeedMedium},
			edges:  edgePtrs(edge("e1", "o", "r", models.AidFood, 5)),
			want:   5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.RawCoverageIndex(&tt.region, tt.edges)
			if !approxEqual(got, tt.want) {
				t.Errorf("RawCoverageIndex() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestRawCoverageIndex_StaysInRange(t *testing.T) {
	calc := NewCalculator(nil)
	populations := []int64{-1, 0, 1, 999, 1000, 5e6, math.MaxInt64}
	counts := []int{0, 1, 15, 1e6, math.MaxInt32}

	for _, pop := range populations {
		for _, count := range counts {
			for _, level := range models.NeedLevels {
				r := models.Region{ID: "r", Population: pop, NeedLevel: level}
				got := calc.RawCoverageIndex(&r, edgePtrs(edge("e", "o", "r", models.AidMedical, count)))
				if math.IsNaN(got) || math.IsInf(got, 0) || got < 0 || got > 10 {
					t.Fatalf("RawCoverageIndex(pop=%d, count=%d, level=%s) = %f, out of range",
						pop, count, level, got)
				}
			}
		}
	}
}

func TestCountryCoverage_AggregateThenRatio(t *testing.T) {
	calc := NewCalculator(nil)
	idx := graph.Build(&models.Dataset{
		Countries: []models.Country{{ID: "c", Name: "C", Population: 101000, NeedLevel: models.NeedLow}},
		Regions: []models.Region{
			{ID: "a", CountryID: "c", Name: "A", Population: 1000, NeedLevel: models.NeedLow},
			{ID: "b", CountryID: "c", Name: "B", Population: 100000, NeedLevel: models.NeedLow},
		},
		Organizations: []models.Organization{{ID: "o", Name: "Org"}},
		Edges: []models.AidEdge{
			edge("e1", "o", "a", models.AidFood, 10),
			edge("e2", "o", "b", models.AidFood, 10),
		},
	})
	country, _ := idx.Country("c")

	got, presence := calc.CountryCoverage(idx, country)

	want := 20.0 / (0.8 + 80)
	if !approxEqual(got, want) {
		t.Errorf("CountryCoverage() = %f, want %f", got, want)
	}
	if !approxEqual(presence, 20) {
		t.Errorf("presence = %f, want 20", presence)
	}

	a, _ := idx.Region("a")
	b, _ := idx.Region("b")
	average := (calc.RegionCoverage(idx, a) + calc.RegionCoverage(idx, b)) / 2
	if approxEqual(got, average) {
		t.Errorf("CountryCoverage() equals mean of region indices (%f)", average)
	}
}

func TestCountryCoverage_SingleRegionMatchesRegion(t *testing.T) {
	calc := NewCalculator(nil)
	idx := graph.Build(&models.Dataset{
		Countries:     []models.Country{{ID: "c", Name: "C", NeedLevel: models.NeedHigh}},
		Regions:       []models.Region{{ID: "r", CountryID: "c", Name: "R", Population: 250000, NeedLevel: models.NeedHigh}},
		Organizations: []models.Organization{{ID: "o", Name: "Org"}},
		Edges:         []models.AidEdge{edge("e", "o", "r", models.AidMedical, 7)},
	})
	country, _ := idx.Country("c")
	region, _ := idx.Region("r")

	got, _ := calc.CountryCoverage(idx, country)
	if want := calc.RegionCoverage(idx, region); !approxEqual(got, want) {
		t.Errorf("CountryCoverage() = %f, want %f", got, want)
	}
}

func TestCountryCoverage_NoRegions(t *testing.T) {
	calc := NewCalculator(nil)
	idx := graph.Build(&models.Dataset{
		Countries: []models.Country{{ID: "c", Name: "C", Population: 0, NeedFactor: models.Float64Ptr(2)}},
	})
	country, _ := idx.Country("c")

	got, presence := calc.CountryCoverage(idx, country)
	if got != 0 || presence != 0 {
		t.Errorf("CountryCoverage() = (%f, %f), want (0, 0)", got, presence)
	}
}

func TestCountryNeedFactor(t *testing.T) {
	calc := NewCalculator(nil)

	tests := []struct {
		name    string
		country models.Country
		want    float64
	}{
		{"level", models.Country{NeedLevel: models.NeedHigh}, 1.3},
		{"override wins", models.Country{NeedLevel: models.NeedHigh, NeedFactor: models.Float64Ptr(2.5)}, 2.5},
		{"non-positive override ignored", models.Country{NeedLevel: models.NeedLow, NeedFactor: models.Float64Ptr(0)}, 0.8},
		{"missing level", models.Country{}, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := calc.CountryNeedFactor(&tt.country); !approxEqual(got, tt.want) {
				t.Errorf("CountryNeedFactor() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestNewCalculator_CopiesConfig(t *testing.T) {
	cfg := DefaultConfig()
	calc := NewCalculator(cfg)
	cfg.Weights.Food = 100

	if got := calc.Weight(models.AidFood); got != 1.0 {
		t.Errorf("Weight(food) = %f, want 1.0", got)
	}
}
