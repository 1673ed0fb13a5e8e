// Package normalize turns the nested, key-addressed leaderboard document into
// flat per-model records and keyed table rows ready for analysis and charting.
package normalize

import "github.com/catbench/leaderboard/internal/models"

// Records produces one flat ModelRecord per model for the requested view.
// view is either a dataset name or models.ViewAverage for the cross-dataset
// aggregate.
//
// A nil document or empty model map yields an empty slice, never an error.
// Models without results for the requested dataset contribute no record —
// the benchmark matrix is sparse and a hole is not a failure. Output order
// follows the document's model order.
func Records(doc *models.Document, view string) []models.ModelRecord {
	if doc == nil || doc.MLIPs.Len() == 0 {
		return []models.ModelRecord{}
	}

	records := make([]models.ModelRecord, 0, doc.MLIPs.Len())
	for _, name := range doc.MLIPs.Keys() {
		entry := doc.MLIPs.Get(name)
		if entry == nil {
			continue
		}

		var rec models.ModelRecord
		var ok bool
		if view == models.ViewAverage {
			rec, ok = averageRecord(name, entry)
		} else {
			rec, ok = datasetRecord(name, entry, view)
		}
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	return records
}

// datasetRecord projects one model's MetricSet for a single dataset.
// ok is false when the model has no results for that dataset.
func datasetRecord(name string, entry *models.ModelEntry, dataset string) (models.ModelRecord, bool) {
	set, ok := entry.Datasets[dataset]
	if !ok {
		return models.ModelRecord{}, false
	}
	return models.ModelRecord{
		Model:       name,
		MAETotal:    metricValue(set, models.MetricMAETotal),
		MAENormal:   metricValue(set, models.MetricMAENormal),
		NormalRate:  metricValue(set, models.MetricNormalRate),
		ADwT:        metricValue(set, models.MetricADwT),
		TimePerStep: metricValue(set, models.MetricTimePerStep),
	}, true
}

// averageRecord projects the precomputed cross-dataset aggregates, unwrapping
// the mean of each statistic.
func averageRecord(name string, entry *models.ModelEntry) (models.ModelRecord, bool) {
	return models.ModelRecord{
		Model:       name,
		MAETotal:    aggregateMean(entry.AverageMetrics, models.MetricMAETotal),
		MAENormal:   aggregateMean(entry.AverageMetrics, models.MetricMAENormal),
		NormalRate:  aggregateMean(entry.AverageMetrics, models.MetricNormalRate),
		ADwT:        aggregateMean(entry.AverageMetrics, models.MetricADwT),
		TimePerStep: aggregateMean(entry.AverageMetrics, models.MetricTimePerStep),
	}, true
}

func metricValue(set models.MetricSet, key string) *float64 {
	if set == nil {
		return nil
	}
	v, ok := set[key]
	if !ok {
		return nil
	}
	return &v
}

func aggregateMean(stats map[string]models.AggregateStat, key string) *float64 {
	if stats == nil {
		return nil
	}
	s, ok := stats[key]
	if !ok {
		return nil
	}
	m := s.Mean
	return &m
}
