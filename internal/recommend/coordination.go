// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package recommend

import (
	"fmt"
	"sort"

	"github.com/tomtom215/reliefmap/internal/graph"
	"github.com/tomtom215/reliefmap/internal/models"
)

// CoordinationOptions controls coordination suggestions.
type CoordinationOptions struct {
	Scenario          string   `json:"scenario,omitempty"`
	ScenarioCountries []string `json:"scenario_countries,omitempty"`

	// SameCountryOnly restricts pairs to regions of the same country.
	SameCountryOnly bool `json:"same_country_only,omitempty"`

	// Limit caps the output. Non-positive or above the configured cap uses the cap.
	Limit int `json:"limit,omitempty"`
}

type pairKey struct {
	source string
	target string
}

// CoordinationSuggestions proposes moving projects from well-served, crowded regions
// to urgent, under-served ones.
//
// Sources have overlap at or above a fraction of the maximum observed overlap and
// normalized coverage inside the source window. Targets have urgency at or above
// the threshold and normalized coverage below the target bound. For each pair in
// the bounded search, every aid type the source holds enough projects of is tried
// and the one with the largest target coverage gain is kept.
func (e *Engine) CoordinationSuggestions(idx *graph.Index, opts CoordinationOptions) ([]models.CoordinationSuggestion, error) {
	candidates, err := e.rankCandidates(idx, opts.Scenario, opts.ScenarioCountries)
	if err != nil {
		return nil, err
	}
	cfg := e.config.Coordination

	sources, targets := e.selectPairs(candidates)
	units := cfg.TransferUnits

	seen := make(map[pairKey]struct{})
	out := make([]models.CoordinationSuggestion, 0)

	for _, s := range sources {
		held := projectsByAidType(idx.EdgesByRegion(s.region.ID))

		for _, t := range targets {
			if s.region.ID == t.region.ID {
				continue
			}
			if opts.SameCountryOnly && s.region.CountryID != t.region.CountryID {
				continue
			}
			key := pairKey{source: s.region.ID, target: t.region.ID}
			if _, dup := seen[key]; dup {
				continue
			}

			before := e.calc.CoverageForPresence(t.region, t.presence)
			bestGain := 0.0
			var bestType models.AidType
			for _, aidType := range models.AidTypes {
				if held[aidType] < units {
					continue
				}
				after := e.calc.CoverageForPresence(t.region, t.presence+e.calc.Weight(aidType)*float64(units))
				if gain := after - before; gain > bestGain {
					bestGain = gain
					bestType = aidType
				}
			}
			if bestGain <= 0 {
				continue
			}

			seen[key] = struct{}{}
			out = append(out, models.CoordinationSuggestion{
				SourceRegionID:   s.region.ID,
				SourceRegionName: s.region.Name,
				TargetRegionID:   t.region.ID,
				TargetRegionName: t.region.Name,
				AidType:          bestType,
				Projects:         units,
				ExpectedGain:     bestGain,
				SourceCoverage:   s.score.NormalizedCoverage,
				TargetCoverage:   t.score.NormalizedCoverage,
				TargetUrgency:    t.urgency,
				SourceOverlap:    s.score.Overlap,
				Rationale: fmt.Sprintf("%s is well served (coverage %.2f, overlap %.0f%%); moving %d %s project(s) to %s (urgency %.2f, coverage %.2f) adds %.4f to its coverage index",
					s.region.Name, s.score.NormalizedCoverage, s.score.Overlap*100,
					units, bestType, t.region.Name, t.urgency, t.score.NormalizedCoverage, bestGain),
			})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].ExpectedGain != out[j].ExpectedGain {
			return out[i].ExpectedGain > out[j].ExpectedGain
		}
		if out[i].SourceRegionID != out[j].SourceRegionID {
			return out[i].SourceRegionID < out[j].SourceRegionID
		}
		return out[i].TargetRegionID < out[j].TargetRegionID
	})

	limit := opts.Limit
	if limit <= 0 || limit > cfg.MaxSuggestions {
		limit = cfg.MaxSuggestions
	}
	if len(out) > limit {
		out = out[:limit]
	}

	e.logger.Debug().
		Int("sources", len(sources)).
		Int("targets", len(targets)).
		Int("suggestions", len(out)).
		Msg("computed coordination suggestions")

	return out, nil
}

// selectPairs picks the bounded source and target lists from urgency-ranked
// candidates. Sources are ordered by overlap descending, then region id; targets
// keep urgency order.
func (e *Engine) selectPairs(candidates []candidate) (sources, targets []candidate) {
	cfg := e.config.Coordination

	maxOverlap := 0.0
	for i := range candidates {
		if candidates[i].score.Overlap > maxOverlap {
			maxOverlap = candidates[i].score.Overlap
		}
	}

	for i := range candidates {
		c := candidates[i]
		nc := c.score.NormalizedCoverage
		if maxOverlap > 0 && c.score.Overlap >= cfg.SourceOverlapRatio*maxOverlap &&
			nc >= cfg.SourceMinCoverage && nc <= cfg.SourceMaxCoverage {
			sources = append(sources, c)
		}
		if c.urgency >= cfg.TargetMinUrgency && nc < cfg.TargetMaxCoverage {
			targets = append(targets, c)
		}
	}

	sort.SliceStable(sources, func(i, j int) bool {
		if sources[i].score.Overlap != sources[j].score.Overlap {
			return sources[i].score.Overlap > sources[j].score.Overlap
		}
		return sources[i].region.ID < sources[j].region.ID
	})

	if len(sources) > cfg.MaxSources {
		sources = sources[:cfg.MaxSources]
	}
	if len(targets) > cfg.MaxTargets {
		targets = targets[:cfg.MaxTargets]
	}
	return sources, targets
}

// projectsByAidType sums project counts per aid type.
func projectsByAidType(edges []*models.AidEdge) map[models.AidType]int {
	out := make(map[models.AidType]int, len(models.AidTypes))
	for _, e := range edges {
		if e.ProjectCount > 0 {
			out[e.AidType] += e.ProjectCount
		}
	}
	return out
}
