// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package coverage

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/tomtom215/reliefmap/internal/models"
)

// Coefficient-of-variation thresholds for spread classification.
const (
	lowSpreadCV    = 0.3
	mediumSpreadCV = 0.7
)

// CoverageVariance summarizes the dispersion of raw coverage across region scores
// using the population variance. Empty input yields a zero summary with low spread.
func CoverageVariance(scores []models.RegionScore) models.VarianceSummary {
	summary := models.VarianceSummary{Count: len(scores), Spread: models.SpreadLow}
	if len(scores) == 0 {
		return summary
	}

	raw := make([]float64, len(scores))
	for i := range scores {
		raw[i] = finite(scores[i].RawCoverage)
	}
	m, variance := stat.PopMeanVariance(raw, nil)
	stddev := math.Sqrt(variance)

	var cv float64
	if m != 0 {
		cv = stddev / m
	}

	summary.Mean = m
	summary.Variance = finite(variance)
	summary.StdDev = finite(stddev)
	summary.CoefficientOfVariation = finite(cv)
	summary.Spread = ClassifySpread(summary.CoefficientOfVariation)
	return summary
}

// ClassifySpread maps a coefficient of variation to a spread category.
func ClassifySpread(cv float64) models.Spread {
	switch {
	case cv < lowSpreadCV:
		return models.SpreadLow
	case cv < mediumSpreadCV:
		return models.SpreadMedium
	default:
		return models.SpreadHigh
	}
}
