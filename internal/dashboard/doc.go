// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

/*
Package dashboard is the service layer between the HTTP API and the scoring
core.

On each request the Service checks the store's dataset version. When it has
moved, the service takes a snapshot, builds a graph.Index and runs the
integrity check once; the indexed view is then shared by every request for
that version. Results are cached under cache.GenerateKey(operation, version,
params), so a write never serves stale scores even before the invalidation
event evicts the old entries.

With Config.StrictIntegrity set, reads fail with validation.ErrIntegrity while
the dataset has violations, and imports with violations are rejected.
Otherwise violations are logged, exported as a metric and reported by
Integrity, and scoring skips unresolvable references.

Writes validate single entities with go-playground/validator before they
reach the store.
*/
package dashboard
