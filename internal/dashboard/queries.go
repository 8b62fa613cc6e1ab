// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package dashboard

import (
	"context"
	"fmt"

	"github.com/tomtom215/reliefmap/internal/coverage"
	"github.com/tomtom215/reliefmap/internal/metrics"
	"github.com/tomtom215/reliefmap/internal/models"
	"github.com/tomtom215/reliefmap/internal/recommend"
	"github.com/tomtom215/reliefmap/internal/validation"
)

// ScopeWorld is the normalization scope of WorldView. Normalized values are
// only comparable within one scope.
const ScopeWorld = "world"

// WorldView is the country-level map.
type WorldView struct {
	DatasetVersion uint64              `json:"dataset_version"`
	Scope          string              `json:"scope"`
	Countries      []models.WorldScore `json:"countries"`
}

// CountryView is one country's regions, normalized together.
type CountryView struct {
	DatasetVersion uint64                 `json:"dataset_version"`
	Scope          string                 `json:"scope"`
	CountryID      string                 `json:"country_id"`
	Regions        []models.RegionScore   `json:"regions"`
	Variance       models.VarianceSummary `json:"variance"`
}

// TopOrgsView ranks the organizations active in one country.
type TopOrgsView struct {
	DatasetVersion uint64           `json:"dataset_version"`
	CountryID      string           `json:"country_id"`
	Organizations  []models.OrgRank `json:"organizations"`
}

// RegionView is the drill-down for one region.
type RegionView struct {
	DatasetVersion uint64               `json:"dataset_version"`
	Region         *models.RegionDetail `json:"region"`
}

// UrgencyView is an urgency ranking.
type UrgencyView struct {
	DatasetVersion uint64                   `json:"dataset_version"`
	Scenario       string                   `json:"scenario"`
	Items          []models.UrgencyRankItem `json:"items"`
}

// DeploymentView is a deployment plan.
type DeploymentView struct {
	DatasetVersion uint64                      `json:"dataset_version"`
	Scenario       string                      `json:"scenario"`
	Budget         int                         `json:"budget"`
	Allocated      int                         `json:"allocated"`
	Items          []models.DeploymentPlanItem `json:"items"`
}

// CoordinationView is a list of redistribution suggestions.
type CoordinationView struct {
	DatasetVersion uint64                          `json:"dataset_version"`
	Scenario       string                          `json:"scenario"`
	Suggestions    []models.CoordinationSuggestion `json:"suggestions"`
}

// IntegrityView is the integrity report of the current dataset.
type IntegrityView struct {
	DatasetVersion uint64                      `json:"dataset_version"`
	Valid          bool                        `json:"valid"`
	Report         *validation.IntegrityReport `json:"report"`
}

// World returns every country's score, normalized as one scope.
func (s *Service) World(ctx context.Context) (*WorldView, error) {
	v, err := s.loadChecked(ctx)
	if err != nil {
		return nil, err
	}
	return compute(ctx, s, OpWorld, v, nil, func() (*WorldView, error) {
		return &WorldView{DatasetVersion: v.version, Scope: ScopeWorld, Countries: s.calc.WorldScores(v.idx)}, nil
	})
}

// CountryRegions returns the region scores of one country and their spread.
func (s *Service) CountryRegions(ctx context.Context, countryID string) (*CountryView, error) {
	v, err := s.loadChecked(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := v.idx.Country(countryID); !ok {
		return nil, fmt.Errorf("%w: %s", ErrCountryNotFound, countryID)
	}
	return compute(ctx, s, OpCountry, v, countryID, func() (*CountryView, error) {
		scores := s.calc.CountryScores(v.idx, countryID)
		return &CountryView{
			DatasetVersion: v.version,
			Scope:          CountryScope(countryID),
			CountryID:      countryID,
			Regions:        scores,
			Variance:       coverage.CoverageVariance(scores),
		}, nil
	})
}

// CountryScope is the normalization scope of a CountryView.
func CountryScope(countryID string) string {
	return "country:" + countryID
}

// TopOrgs ranks organizations in a country by project count. k <= 0 returns all.
func (s *Service) TopOrgs(ctx context.Context, countryID string, k int) (*TopOrgsView, error) {
	v, err := s.loadChecked(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := v.idx.Country(countryID); !ok {
		return nil, fmt.Errorf("%w: %s", ErrCountryNotFound, countryID)
	}
	params := struct {
		Country string `json:"country"`
		K       int    `json:"k"`
	}{countryID, k}
	return compute(ctx, s, OpTopOrgs, v, params, func() (*TopOrgsView, error) {
		return &TopOrgsView{
			DatasetVersion: v.version,
			CountryID:      countryID,
			Organizations:  s.calc.TopOrgs(v.idx, v.idx.EdgesByCountry(countryID), k),
		}, nil
	})
}

// Region returns the drill-down for one region.
func (s *Service) Region(ctx context.Context, regionID string) (*RegionView, error) {
	v, err := s.loadChecked(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := v.idx.Region(regionID); !ok {
		return nil, fmt.Errorf("%w: %s", ErrRegionNotFound, regionID)
	}
	return compute(ctx, s, OpRegion, v, regionID, func() (*RegionView, error) {
		return &RegionView{DatasetVersion: v.version, Region: s.calc.RegionDetail(v.idx, regionID)}, nil
	})
}

// Urgency ranks regions by urgency.
func (s *Service) Urgency(ctx context.Context, opts recommend.UrgencyOptions) (*UrgencyView, error) {
	v, err := s.loadChecked(ctx)
	if err != nil {
		return nil, err
	}
	return compute(ctx, s, OpUrgency, v, opts, func() (*UrgencyView, error) {
		items, err := s.engine.UrgencyRanking(v.idx, opts)
		if err != nil {
			return nil, err
		}
		return &UrgencyView{DatasetVersion: v.version, Scenario: scenarioName(opts.Scenario), Items: items}, nil
	})
}

// Deployment builds a greedy deployment plan for budget projects.
func (s *Service) Deployment(ctx context.Context, budget int, opts recommend.PlanOptions) (*DeploymentView, error) {
	if budget < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBudget, budget)
	}
	v, err := s.loadChecked(ctx)
	if err != nil {
		return nil, err
	}
	params := struct {
		Budget int                   `json:"budget"`
		Opts   recommend.PlanOptions `json:"opts"`
	}{budget, opts}
	return compute(ctx, s, OpDeployment, v, params, func() (*DeploymentView, error) {
		items, err := s.engine.DeploymentPlan(v.idx, budget, opts)
		if err != nil {
			return nil, err
		}
		allocated := 0
		for i := range items {
			allocated += items[i].Projects
		}
		metrics.RecordPlan(allocated)
		return &DeploymentView{
			DatasetVersion: v.version,
			Scenario:       scenarioName(opts.Scenario),
			Budget:         budget,
			Allocated:      allocated,
			Items:          items,
		}, nil
	})
}

// Coordination suggests project moves between regions.
func (s *Service) Coordination(ctx context.Context, opts recommend.CoordinationOptions) (*CoordinationView, error) {
	v, err := s.loadChecked(ctx)
	if err != nil {
		return nil, err
	}
	return compute(ctx, s, OpCoordination, v, opts, func() (*CoordinationView, error) {
		suggestions, err := s.engine.CoordinationSuggestions(v.idx, opts)
		if err != nil {
			return nil, err
		}
		metrics.RecordCoordination(len(suggestions))
		return &CoordinationView{DatasetVersion: v.version, Scenario: scenarioName(opts.Scenario), Suggestions: suggestions}, nil
	})
}

// Scenarios lists the what-if presets.
func (s *Service) Scenarios() []recommend.Scenario {
	return recommend.Scenarios()
}

// Integrity reports the integrity of the current dataset. It never fails on
// violations, even in strict mode.
func (s *Service) Integrity(ctx context.Context) (*IntegrityView, error) {
	v, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return &IntegrityView{DatasetVersion: v.version, Valid: v.report.Valid(), Report: v.report}, nil
}

// IntegrityViolations returns the version and violation count of the current
// dataset.
func (s *Service) IntegrityViolations(ctx context.Context) (uint64, int, error) {
	v, err := s.load(ctx)
	if err != nil {
		return 0, 0, err
	}
	return v.version, len(v.report.Violations), nil
}

func scenarioName(name string) string {
	if name == "" {
		return recommend.ScenarioBaseline
	}
	return name
}

// DefaultTopOrgs is the configured top-K used when a caller does not pass one.
func (s *Service) DefaultTopOrgs() int {
	return s.calc.Config().TopOrgs
}
