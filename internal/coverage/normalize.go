// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package coverage

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// neutralScore is the normalized value of a degenerate comparison set.
const neutralScore = 0.5

// Normalize maps values into [0,1] within one comparison scope.
//
// The effective maximum is the value at the given percentile of the sorted input
// (nearest rank), which bounds the pull of a single outlier; the effective minimum
// is the true minimum. A single value, or a set with zero effective range, maps to
// 0.5. Non-finite inputs are treated as 0. The output is index-aligned with values.
//
// Results from different calls are not comparable: a region normalized within its
// country has a different value than the same region would have in a world scope.
func Normalize(values []float64, percentile float64) []float64 {
	if len(values) == 0 {
		return []float64{}
	}

	out := make([]float64, len(values))
	if len(values) == 1 {
		out[0] = neutralScore
		return out
	}

	clean := make([]float64, len(values))
	for i, v := range values {
		clean[i] = finite(v)
	}
	sorted := append([]float64(nil), clean...)
	sort.Float64s(sorted)

	lo := sorted[0]
	hi := Percentile(sorted, percentile)
	span := hi - lo
	if span <= 0 {
		for i := range out {
			out[i] = neutralScore
		}
		return out
	}

	for i, v := range clean {
		out[i] = clamp((v-lo)/span, 0, 1)
	}
	return out
}

// Percentile returns the nearest-rank percentile of an ascending slice.
// p is a fraction in (0,1]; values outside are clamped. Empty input yields 0.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if math.IsNaN(p) || p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}
	// Empirical is the nearest-rank definition: the smallest value with at
	// least p of the samples at or below it.
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// mean returns the arithmetic mean, or 0 for empty input.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}
