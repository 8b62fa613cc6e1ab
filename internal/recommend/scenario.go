// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package recommend

import (
	"fmt"
	"math"
	"sort"

	"github.com/tomtom215/reliefmap/internal/models"
)

// Scenario is a named what-if preset that scales urgency inputs.
// It never changes stored data or coverage scores.
type Scenario struct {
	Name                 string  `json:"name"`
	Description          string  `json:"description"`
	NeedMultiplier       float64 `json:"need_multiplier"`
	VolatilityMultiplier float64 `json:"volatility_multiplier"`
	PopulationMultiplier float64 `json:"population_multiplier"`
}

// ScenarioBaseline applies no perturbation.
const ScenarioBaseline = "baseline"

var scenarios = map[string]Scenario{
	ScenarioBaseline: {
		Name:                 ScenarioBaseline,
		Description:          "Current conditions",
		NeedMultiplier:       1,
		VolatilityMultiplier: 1,
		PopulationMultiplier: 1,
	},
	"conflict_escalation": {
		Name:                 "conflict_escalation",
		Description:          "Armed conflict intensifies; instability rises sharply",
		NeedMultiplier:       1.2,
		VolatilityMultiplier: 1.6,
		PopulationMultiplier: 1,
	},
	"displacement_surge": {
		Name:                 "displacement_surge",
		Description:          "Large inflow of displaced people",
		NeedMultiplier:       1.1,
		VolatilityMultiplier: 1.3,
		PopulationMultiplier: 1.25,
	},
	"famine_onset": {
		Name:                 "famine_onset",
		Description:          "Food insecurity reaches famine thresholds",
		NeedMultiplier:       1.4,
		VolatilityMultiplier: 1.1,
		PopulationMultiplier: 1,
	},
	"disease_outbreak": {
		Name:                 "disease_outbreak",
		Description:          "Epidemic strains health services",
		NeedMultiplier:       1.3,
		VolatilityMultiplier: 1.2,
		PopulationMultiplier: 1,
	},
}

// Scenarios returns every preset sorted by name.
func Scenarios() []Scenario {
	out := make([]Scenario, 0, len(scenarios))
	for _, s := range scenarios {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// LookupScenario resolves a preset by name. The empty name is the baseline.
func LookupScenario(name string) (Scenario, error) {
	if name == "" {
		name = ScenarioBaseline
	}
	s, ok := scenarios[name]
	if !ok {
		return Scenario{}, fmt.Errorf("%w: %q", ErrUnknownScenario, name)
	}
	return s, nil
}

// urgencyInputs are the perturbable inputs of the urgency formula.
type urgencyInputs struct {
	needFactor float64
	volatility float64
	population int64
}

// apply returns the scenario-adjusted urgency inputs of a region.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (s Scenario) apply(r *models.Region) urgencyInputs {
	in := urgencyInputs{
		needFactor: r.DynamicNeedFactorOrDefault() * s.NeedMultiplier,
		volatility: math.Min(r.VolatilityOrZero()*s.VolatilityMultiplier, 1),
		population: int64(math.Round(float64(r.Population) * s.PopulationMultiplier)),
	}
	if in.population < 0 {
		in.population = 0
	}
	return in
}

// scope limits a scenario to a set of countries. An empty scope covers everything.
type scope map[string]struct{}

func newScope(countryIDs []string) scope {
	if len(countryIDs) == 0 {
		return nil
	}
	s := make(scope, len(countryIDs))
	for _, id := range countryIDs {
		s[id] = struct{}{}
	}
	return s
}

func (s scope) contains(countryID string) bool {
	if s == nil {
		return true
	}
	_, ok := s[countryID]
	return ok
}
