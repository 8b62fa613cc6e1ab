// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

// Package fixtures builds the synthetic demo dataset: eight crisis countries,
// their regions, fifteen relief organizations and a seeded random placement of
// aid projects.
//
// Generation is deterministic per seed. Every generated edge is flagged
// Synthetic. Scoring code never imports this package; it is used by the server
// to seed an empty store and by tests.
package fixtures
