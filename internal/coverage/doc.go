// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

/*
Package coverage computes relative aid coverage for countries and regions.

# Coverage Index

The raw coverage index of a region is aid presence per unit of need:

	presence = Σ weight[aidType] × projectCount
	index    = presence / (max(population, MinPopulation) / 1000 × needFactor[needLevel])

The result is clamped to [MinCoverageIndex, MaxCoverageIndex]. Non-finite
intermediate values become 0. A country's index sums presence and need-adjusted
population over its regions before dividing; it is not the mean of its region
indices, so a large region weighs as much as its population says it should.

# Normalization

Normalize rescales a comparison scope into [0,1] using the true minimum and the
95th percentile (nearest rank) as the effective maximum. Each call is its own
scope: WorldScores normalizes countries together, CountryScores normalizes the
regions of one country. Values from different scopes must not be compared.

# Aggregators

  - WorldScores: per-country index, top organizations, region count
  - CountryScores: per-region index, overlap and variance within one country
  - RegionDetail: one region with organization presence, aid-type breakdown and
    shared organizations

Every aggregator skips references to missing entities instead of failing. Input is
expected to have passed the validation package's integrity check.

All functions are deterministic and free of shared mutable state.
*/
package coverage
