// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package validation

import (
	"errors"
	"fmt"

	"github.com/tomtom215/reliefmap/internal/models"
)

// ErrIntegrity is wrapped by IntegrityReport.Err.
var ErrIntegrity = errors.New("dataset integrity violation")

// Entity kinds reported in violations.
const (
	EntityCountry      = "country"
	EntityRegion       = "region"
	EntityOrganization = "organization"
	EntityEdge         = "edge"
)

// IntegrityViolation describes one broken field or reference.
type IntegrityViolation struct {
	Entity  string `json:"entity"`
	ID      string `json:"id"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v IntegrityViolation) String() string {
	return fmt.Sprintf("%s %q: %s: %s", v.Entity, v.ID, v.Field, v.Message)
}

// IntegrityReport is the result of CheckIntegrity. Violations appear in
// dataset order: countries, regions, organizations, then edges.
type IntegrityReport struct {
	Countries     int                  `json:"countries"`
	Regions       int                  `json:"regions"`
	Organizations int                  `json:"organizations"`
	Edges         int                  `json:"edges"`
	Violations    []IntegrityViolation `json:"violations"`
}

// Valid reports whether no violations were found.
func (r *IntegrityReport) Valid() bool {
	return len(r.Violations) == 0
}

// Err returns nil for a clean report. Otherwise it returns an error wrapping
// ErrIntegrity that names the first violation and how many more follow.
func (r *IntegrityReport) Err() error {
	if r.Valid() {
		return nil
	}
	first := r.Violations[0]
	if len(r.Violations) == 1 {
		return fmt.Errorf("%w: %s", ErrIntegrity, first)
	}
	return fmt.Errorf("%w: %s (and %d more)", ErrIntegrity, first, len(r.Violations)-1)
}

func (r *IntegrityReport) add(entity, id, field, message string) {
	r.Violations = append(r.Violations, IntegrityViolation{
		Entity:  entity,
		ID:      id,
		Field:   field,
		Message: message,
	})
}

func (r *IntegrityReport) addStruct(entity, id string, s interface{}) {
	verr := ValidateStruct(s)
	if verr == nil {
		return
	}
	for _, fe := range verr.Errors() {
		r.add(entity, id, fe.Field(), fe.Error())
	}
}

// CheckIntegrity runs field validation and referential checks over ds.
//
// It never mutates ds and never fails; scoring code tolerates every violation
// it reports (unknown references are skipped, negative counts are ignored), so
// callers decide whether a non-empty report is fatal.
func CheckIntegrity(ds *models.Dataset) *IntegrityReport {
	report := &IntegrityReport{Violations: []IntegrityViolation{}}
	if ds == nil {
		return report
	}

	report.Countries = len(ds.Countries)
	report.Regions = len(ds.Regions)
	report.Organizations = len(ds.Organizations)
	report.Edges = len(ds.Edges)

	countries := make(map[string]struct{}, len(ds.Countries))
	for i := range ds.Countries {
		c := &ds.Countries[i]
		report.addStruct(EntityCountry, c.ID, c)
		checkDuplicate(report, countries, EntityCountry, c.ID)
	}

	regions := make(map[string]struct{}, len(ds.Regions))
	for i := range ds.Regions {
		r := &ds.Regions[i]
		report.addStruct(EntityRegion, r.ID, r)
		checkDuplicate(report, regions, EntityRegion, r.ID)
		if r.CountryID != "" {
			if _, ok := countries[r.CountryID]; !ok {
				report.add(EntityRegion, r.ID, "country_id", fmt.Sprintf("unknown country %q", r.CountryID))
			}
		}
	}

	orgs := make(map[string]struct{}, len(ds.Organizations))
	for i := range ds.Organizations {
		o := &ds.Organizations[i]
		report.addStruct(EntityOrganization, o.ID, o)
		checkDuplicate(report, orgs, EntityOrganization, o.ID)
	}

	edges := make(map[string]struct{}, len(ds.Edges))
	for i := range ds.Edges {
		e := &ds.Edges[i]
		report.addStruct(EntityEdge, e.ID, e)
		checkDuplicate(report, edges, EntityEdge, e.ID)
		if e.OrgID != "" {
			if _, ok := orgs[e.OrgID]; !ok {
				report.add(EntityEdge, e.ID, "org_id", fmt.Sprintf("unknown organization %q", e.OrgID))
			}
		}
		if e.RegionID != "" {
			if _, ok := regions[e.RegionID]; !ok {
				report.add(EntityEdge, e.ID, "region_id", fmt.Sprintf("unknown region %q", e.RegionID))
			}
		}
	}

	return report
}

// checkDuplicate records id in seen. Empty ids are already reported by the
// required tag.
func checkDuplicate(report *IntegrityReport, seen map[string]struct{}, entity, id string) {
	if id == "" {
		return
	}
	if _, dup := seen[id]; dup {
		report.add(entity, id, "id", "duplicate id; first occurrence wins")
		return
	}
	seen[id] = struct{}{}
}
