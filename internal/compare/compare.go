// Package compare diffs two leaderboard documents model by model, producing
// per-metric deltas between a baseline document and a newer one.
package compare

import (
	"math"

	"github.com/catbench/leaderboard/internal/models"
	"github.com/catbench/leaderboard/internal/statistics"
)

// deltaConfidenceLevel is the level used for per-metric delta intervals.
const deltaConfidenceLevel = 0.95

// bootstrapSeed fixes the resampling source so the same pair of documents
// always diffs to the same intervals.
const bootstrapSeed = 1

// MetricDelta is the change in one aggregate metric for one model.
// Before and After are the cross-dataset means; either may be nil when the
// metric was not measured on that side, in which case Delta is nil too.
// DeltaCI is a bootstrap interval over the per-dataset deltas and is only
// present when both sides share at least two datasets carrying the metric.
type MetricDelta struct {
	Metric   string               `json:"metric"`
	Before   *float64             `json:"before"`
	After    *float64             `json:"after"`
	Delta    *float64             `json:"delta"`
	Relative *float64             `json:"relative,omitempty"`
	DeltaCI  *statistics.Interval `json:"delta_ci,omitempty"`
}

// ModelComparison is the full diff for one model across the two documents.
type ModelComparison struct {
	Model       string        `json:"model"`
	Added       bool          `json:"added,omitempty"`
	Removed     bool          `json:"removed,omitempty"`
	ScoreBefore *float64      `json:"score_before"`
	ScoreAfter  *float64      `json:"score_after"`
	ScoreDelta  *float64      `json:"score_delta"`
	Metrics     []MetricDelta `json:"metrics"`
}

// Result is the diff between two documents. Models follows the after
// document's order, with models present only in the baseline appended in the
// baseline's order.
type Result struct {
	Models []ModelComparison `json:"models"`
}

// Documents compares a baseline document to a newer one. Either side may be
// missing models the other has; those are flagged Added or Removed.
func Documents(before, after *models.Document) *Result {
	res := &Result{}
	if after != nil {
		for _, name := range after.MLIPs.Keys() {
			var old *models.ModelEntry
			if before != nil {
				old = before.MLIPs.Get(name)
			}
			res.Models = append(res.Models, compareEntries(name, old, after.MLIPs.Get(name)))
		}
	}
	if before != nil {
		for _, name := range before.MLIPs.Keys() {
			if after != nil && after.MLIPs.Get(name) != nil {
				continue
			}
			res.Models = append(res.Models, compareEntries(name, before.MLIPs.Get(name), nil))
		}
	}
	return res
}

func compareEntries(name string, before, after *models.ModelEntry) ModelComparison {
	mc := ModelComparison{
		Model:   name,
		Added:   before == nil && after != nil,
		Removed: after == nil && before != nil,
	}

	if before != nil {
		mc.ScoreBefore = ptr(before.OverallScore)
	}
	if after != nil {
		mc.ScoreAfter = ptr(after.OverallScore)
	}
	if mc.ScoreBefore != nil && mc.ScoreAfter != nil {
		mc.ScoreDelta = ptr(*mc.ScoreAfter - *mc.ScoreBefore)
	}

	for _, metric := range models.KeyMetrics {
		mc.Metrics = append(mc.Metrics, metricDelta(metric, before, after))
	}
	return mc
}

func metricDelta(metric string, before, after *models.ModelEntry) MetricDelta {
	md := MetricDelta{
		Metric: metric,
		Before: aggregateMean(before, metric),
		After:  aggregateMean(after, metric),
	}
	if md.Before == nil || md.After == nil {
		return md
	}
	md.Delta = ptr(*md.After - *md.Before)
	if math.Abs(*md.Before) > 0 {
		md.Relative = ptr(*md.Delta / math.Abs(*md.Before))
	}
	md.DeltaCI = statistics.BootstrapCI(
		perDatasetDeltas(before, after, metric), deltaConfidenceLevel, bootstrapSeed)
	return md
}

// perDatasetDeltas collects after-minus-before for every dataset both sides
// measured the metric on.
func perDatasetDeltas(before, after *models.ModelEntry, metric string) []float64 {
	var deltas []float64
	for name, beforeSet := range before.Datasets {
		b, ok := beforeSet[metric]
		if !ok {
			continue
		}
		afterSet, ok := after.Datasets[name]
		if !ok {
			continue
		}
		a, ok := afterSet[metric]
		if !ok {
			continue
		}
		deltas = append(deltas, a-b)
	}
	return deltas
}

func aggregateMean(entry *models.ModelEntry, metric string) *float64 {
	if entry == nil {
		return nil
	}
	stat, ok := entry.AverageMetrics[metric]
	if !ok {
		return nil
	}
	return ptr(stat.Mean)
}

func ptr(v float64) *float64 { return &v }
