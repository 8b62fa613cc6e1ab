// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package recommend

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reliefmap/internal/coverage"
	"github.com/tomtom215/reliefmap/internal/graph"
	"github.com/tomtom215/reliefmap/internal/models"
)

// ErrUnknownScenario is returned when a scenario name matches no preset.
var ErrUnknownScenario = errors.New("unknown scenario")

// Engine produces urgency rankings, deployment plans and coordination suggestions
// from a dataset index. It holds no mutable state and is safe for concurrent use.
type Engine struct {
	config *Config
	calc   *coverage.Calculator
	logger zerolog.Logger
}

// NewEngine creates a new recommendation engine. A nil config or calculator uses
// the defaults.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, calc *coverage.Calculator, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if calc == nil {
		calc = coverage.NewCalculator(nil)
	}

	return &Engine{
		config: cfg.Clone(),
		calc:   calc,
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// candidate is one region with its country-scope coverage and urgency.
type candidate struct {
	region   *models.Region
	score    models.RegionScore
	inputs   urgencyInputs
	urgency  float64
	presence float64
}

// rankCandidates scores every region and sorts by urgency descending, then id.
func (e *Engine) rankCandidates(idx *graph.Index, scenarioName string, countryIDs []string) ([]candidate, error) {
	scenario, err := LookupScenario(scenarioName)
	if err != nil {
		return nil, err
	}
	baseline, _ := LookupScenario(ScenarioBaseline)
	affected := newScope(countryIDs)

	scores := e.calc.NormalizedByRegion(idx)
	regions := idx.Regions()
	out := make([]candidate, 0, len(regions))

	for i := range regions {
		r, ok := idx.Region(regions[i].ID)
		if !ok || r != &regions[i] {
			continue
		}
		score, ok := scores[r.ID]
		if !ok {
			continue
		}

		preset := baseline
		if affected.contains(r.CountryID) {
			preset = scenario
		}
		in := preset.apply(r)

		out = append(out, candidate{
			region:   r,
			score:    score,
			inputs:   in,
			urgency:  UrgencyScore(score.NormalizedCoverage, in.needFactor, in.population, in.volatility),
			presence: e.calc.WeightedAidPresence(idx.EdgesByRegion(r.ID)),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].urgency != out[j].urgency {
			return out[i].urgency > out[j].urgency
		}
		return out[i].region.ID < out[j].region.ID
	})
	return out, nil
}

// UrgencyScore combines inverted coverage, need, log population and volatility:
//
//	(1 − normalizedCoverage) × needFactor × ln(max(population, 1)) × (1 + min(volatility, 1))
//
// Negative volatility counts as 0. Non-finite results become 0.
func UrgencyScore(normalizedCoverage, needFactor float64, population int64, volatility float64) float64 {
	pop := math.Max(float64(population), 1)
	vol := math.Min(math.Max(volatility, 0), 1)
	score := (1 - normalizedCoverage) * needFactor * math.Log(pop) * (1 + vol)
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0
	}
	return score
}
