// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package fixtures

import (
	"reflect"
	"testing"

	"github.com/tomtom215/reliefmap/internal/models"
	"github.com/tomtom215/reliefmap/internal/validation"
)

func TestSeedEntities(t *testing.T) {
	if got := len(Countries()); got != 8 {
		t.Errorf("len(Countries()) = %d, want 8", got)
	}
	if got := len(Regions()); got != 32 {
		t.Errorf("len(Regions()) = %d, want 32", got)
	}
	if got := len(Organizations()); got != 15 {
		t.Errorf("len(Organizations()) = %d, want 15", got)
	}
}

func TestRegions_Naming(t *testing.T) {
	byID := make(map[string]models.Region)
	for _, r := range Regions() {
		byID[r.ID] = r
	}

	tests := []struct {
		id, name, country string
	}{
		{"palestine-west-bank-north", "West Bank North", "palestine"},
		{"sudan-blue-nile", "Blue Nile", "sudan"},
		{"syria-aleppo", "Aleppo", "syria"},
	}
	for _, tt := range tests {
		r, ok := byID[tt.id]
		if !ok {
			t.Errorf("region %s missing", tt.id)
			continue
		}
		if r.Name != tt.name || r.CountryID != tt.country {
			t.Errorf("%s = %q in %s, want %q in %s", tt.id, r.Name, r.CountryID, tt.name, tt.country)
		}
		if r.Centroid == nil {
			t.Errorf("%s has no centroid", tt.id)
		}
	}
}

func TestOrganizationID(t *testing.T) {
	tests := []struct {
		name, want string
	}{
		{"World Food Programme", "world-food-programme"},
		{"Médecins Sans Frontières", "medecins-sans-frontières"},
		{"Action Contre la Faim Français", "action-contre-la-faim-francais"},
		{"ICRC", "icrc"},
	}
	for _, tt := range tests {
		if got := OrganizationID(tt.name); got != tt.want {
			t.Errorf("OrganizationID(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a := Generate(DefaultOptions())
	b := Generate(DefaultOptions())
	if !reflect.DeepEqual(a, b) {
		t.Error("Generate() with equal options produced different datasets")
	}

	opts := DefaultOptions()
	opts.Seed = 7
	if reflect.DeepEqual(a.Edges, Generate(opts).Edges) {
		t.Error("different seeds produced identical edges")
	}
}

func TestGenerate_Edges(t *testing.T) {
	opts := DefaultOptions()
	ds := Generate(opts)

	if len(ds.Edges) == 0 || len(ds.Edges) > opts.Projects {
		t.Fatalf("len(Edges) = %d, want 1..%d", len(ds.Edges), opts.Projects)
	}

	total := 0
	seen := make(map[string]bool)
	for _, e := range ds.Edges {
		if seen[e.ID] {
			t.Errorf("duplicate edge id %s", e.ID)
		}
		seen[e.ID] = true
		if e.ID != EdgeID(e.OrgID, e.RegionID, e.AidType) {
			t.Errorf("edge id %s does not match its triple", e.ID)
		}
		if !e.Synthetic || e.Source != Source {
			t.Errorf("edge %s not flagged synthetic", e.ID)
		}
		if e.ProjectCount < 1 {
			t.Errorf("edge %s has %d projects", e.ID, e.ProjectCount)
		}
		total += e.ProjectCount
	}

	if total < opts.Projects || total > opts.Projects*opts.MaxProjectCount {
		t.Errorf("total projects = %d, want %d..%d", total, opts.Projects, opts.Projects*opts.MaxProjectCount)
	}
}

func TestGenerate_PassesIntegrity(t *testing.T) {
	report := validation.CheckIntegrity(Generate(DefaultOptions()))
	if !report.Valid() {
		t.Errorf("generated dataset has violations: %+v", report.Violations)
	}
}

func TestGenerate_HighNeedOnly(t *testing.T) {
	opts := DefaultOptions()
	opts.HighNeedShare = 1
	ds := Generate(opts)

	need := make(map[string]models.NeedLevel)
	for _, r := range ds.Regions {
		need[r.ID] = r.NeedLevel
	}
	for _, e := range ds.Edges {
		if need[e.RegionID] != models.NeedHigh {
			t.Errorf("edge %s targets %s region", e.ID, need[e.RegionID])
		}
	}
}

func TestGenerate_NoProjects(t *testing.T) {
	opts := DefaultOptions()
	opts.Projects = 0
	ds := Generate(opts)
	if ds.Edges == nil || len(ds.Edges) != 0 {
		t.Errorf("Edges = %v, want empty slice", ds.Edges)
	}
	if len(ds.Regions) != 32 {
		t.Errorf("regions should still be generated")
	}
}
