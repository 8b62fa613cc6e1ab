// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

/*
Package recommend turns coverage scores into aid recommendations.

Three algorithms run over a graph.Index snapshot:

  - UrgencyRanking: orders regions by
    (1 − normalizedCoverage) × dynamicNeedFactor × ln(population) × (1 + volatility)
  - DeploymentPlan: greedy allocation of a project budget to the (region, aid type)
    pair with the best urgency-weighted marginal coverage gain
  - CoordinationSuggestions: moves of a few projects from crowded, adequately
    covered regions to urgent, under-covered ones

Normalized coverage always comes from the region's own country scope.

# Scenarios

Named presets (see Scenarios) scale need, volatility and population before urgency
is scored. They let a caller explore what-if conditions without editing data, and
can be limited to a set of countries. Coverage itself is never perturbed.

# Usage

	engine, err := recommend.NewEngine(recommend.DefaultConfig(), calc, logger)
	if err != nil {
	    return err
	}
	idx := graph.Build(&dataset)
	plan, err := engine.DeploymentPlan(idx, 25, recommend.PlanOptions{})

# Determinism

No randomness is used. Ties are broken by region id, and the greedy loop visits
candidates in urgency order and aid types in a fixed order, so identical input
produces identical output.
*/
package recommend
