// Package aggregate computes the cross-dataset statistics, composite scores,
// and rankings that the generator bakes into the leaderboard document.
package aggregate

import (
	"strings"

	"github.com/catbench/leaderboard/internal/metrics"
	"github.com/catbench/leaderboard/internal/models"
)

// Composite score weights: accuracy and success rate carry most of the
// overall ranking, speed the remainder.
const (
	accuracyWeight = 0.4
	successWeight  = 0.4
	speedWeight    = 0.2
)

// AverageMetrics computes the per-metric cross-dataset aggregates for one
// model. MAE metrics use a weighted mean with dataset structure counts as
// weights — larger datasets count for more — while rates and timings use a
// simple mean. Std, min, max, and count always come from the raw values.
func AverageMetrics(entry *models.ModelEntry, datasets map[string]models.DatasetInfo) map[string]models.AggregateStat {
	avg := make(map[string]models.AggregateStat)
	for _, metric := range models.KeyMetrics {
		var values, weights []float64
		for dsName, set := range entry.Datasets {
			v, ok := set[metric]
			if !ok {
				continue
			}
			values = append(values, v)
			weights = append(weights, datasetWeight(datasets, dsName))
		}
		if len(values) == 0 {
			continue
		}

		mean := metrics.Mean(values)
		if strings.Contains(metric, "MAE") {
			mean = metrics.WeightedMean(values, weights)
		}
		avg[metric] = models.AggregateStat{
			Mean:  mean,
			Std:   metrics.StdDev(values),
			Min:   metrics.Min(values),
			Max:   metrics.Max(values),
			Count: len(values),
		}
	}
	return avg
}

// datasetWeight returns the structure count for a dataset, or 1 when the
// dataset is unknown so unweighted data still averages sensibly.
func datasetWeight(datasets map[string]models.DatasetInfo, name string) float64 {
	info, ok := datasets[name]
	if !ok {
		return 1
	}
	return float64(info.NumStructures)
}

// OverallScore computes the composite ranking score from a model's averaged
// metrics. Each component only contributes when its metric exists:
//
//	0.4 · 1/(1+MAE) + 0.4 · rate/100 + 0.2 · 1/(1+time)
//
// Lower MAE and time push the score up; higher success rate does too.
func OverallScore(avg map[string]models.AggregateStat) float64 {
	score := 0.0
	if s, ok := avg[models.MetricMAETotal]; ok {
		score += accuracyWeight / (1.0 + s.Mean)
	}
	if s, ok := avg[models.MetricNormalRate]; ok {
		score += successWeight * s.Mean / 100.0
	}
	if s, ok := avg[models.MetricTimePerStep]; ok {
		score += speedWeight / (1.0 + s.Mean)
	}
	return score
}

// Finalize fills in the derived fields (average metrics, overall score,
// dataset count) for every model in the document.
func Finalize(doc *models.Document) {
	for _, name := range doc.MLIPs.Keys() {
		entry := doc.MLIPs.Get(name)
		if entry == nil || len(entry.Datasets) == 0 {
			continue
		}
		entry.AverageMetrics = AverageMetrics(entry, doc.Datasets)
		entry.OverallScore = OverallScore(entry.AverageMetrics)
		entry.NumDatasets = len(entry.Datasets)
	}
}
