// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

// Package graph builds hash-map lookups over a dataset snapshot.
//
// The Index answers "regions of country", "edges of region", "edges of country"
// and "organizations of region" without rescanning the raw edge list, which keeps
// every aggregation in the coverage and recommend packages linear in the size of
// the dataset.
//
//	idx := graph.Build(&dataset)
//	for _, edge := range idx.EdgesByRegion("syria-aleppo") {
//	    ...
//	}
package graph
