// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

/*
Package models defines data structures for the Reliefmap application.

Entity models are the input collections every computation pass runs over:

  - Country: top-level map unit with population and need level
  - Region: sub-national unit scoped to one Country
  - Organization: aid provider
  - AidEdge: project count of one organization in one region for one aid type
  - Dataset: the four collections together

Derived models are ephemeral results, recomputed on every call and never stored:

  - WorldScore, RegionScore, RegionDetail: coverage at the three aggregation levels
  - OrgRank, VarianceSummary: ranking and dispersion helpers
  - UrgencyRankItem, DeploymentPlanItem, CoordinationSuggestion: recommendations

Entity structs carry go-playground/validator tags; referential integrity is
checked separately by the validation package.

All JSON field names use snake_case, matching the synthetic data files.
*/
package models
