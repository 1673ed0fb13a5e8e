package aggregate

import (
	"sort"

	"github.com/catbench/leaderboard/internal/models"
)

// BuildRankings derives the five ranked lists from a finalized document.
// Models missing a category's metric are left out of that category. Ties
// keep document model order (stable sorts).
func BuildRankings(doc *models.Document) models.Rankings {
	var r models.Rankings

	for _, name := range doc.MLIPs.Keys() {
		entry := doc.MLIPs.Get(name)
		if entry == nil {
			continue
		}

		r.Overall = append(r.Overall, models.RankEntry{
			MLIP:        name,
			Value:       entry.OverallScore,
			NumDatasets: entry.NumDatasets,
		})
		r.Coverage = append(r.Coverage, models.RankEntry{
			MLIP:  name,
			Value: float64(entry.NumDatasets),
		})

		if s, ok := entry.AverageMetrics[models.MetricMAETotal]; ok {
			r.Accuracy = append(r.Accuracy, models.RankEntry{MLIP: name, Value: s.Mean, Std: s.Std})
		}
		if s, ok := entry.AverageMetrics[models.MetricNormalRate]; ok {
			r.SuccessRate = append(r.SuccessRate, models.RankEntry{MLIP: name, Value: s.Mean, Std: s.Std})
		}
		if s, ok := entry.AverageMetrics[models.MetricTimePerStep]; ok {
			r.Speed = append(r.Speed, models.RankEntry{MLIP: name, Value: s.Mean, Std: s.Std})
		}
	}

	descending(r.Overall)
	ascending(r.Accuracy)
	descending(r.SuccessRate)
	ascending(r.Speed)
	descending(r.Coverage)
	return r
}

func ascending(entries []models.RankEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Value < entries[j].Value
	})
}

func descending(entries []models.RankEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Value > entries[j].Value
	})
}
