// Package models defines the leaderboard document model: the JSON shape
// produced by the generator and consumed by the normalization layer, the
// Pareto engine, and the web API.
package models

import "time"

// Canonical metric keys as they appear in benchmark result files and in the
// generated document. These are the five metrics tracked per model per dataset.
const (
	MetricMAETotal    = "MAE_total (eV)"
	MetricMAENormal   = "MAE_normal (eV)"
	MetricNormalRate  = "Normal rate (%)"
	MetricADwT        = "ADwT (%)"
	MetricTimePerStep = "Time_per_step (s)"
)

// KeyMetrics lists the tracked metric keys in canonical order.
var KeyMetrics = []string{
	MetricMAETotal,
	MetricMAENormal,
	MetricNormalRate,
	MetricADwT,
	MetricTimePerStep,
}

// Document is the top-level leaderboard data container.
type Document struct {
	Metadata            Metadata                             `json:"metadata"`
	MLIPs               ModelMap                             `json:"mlips"`
	Datasets            map[string]DatasetInfo               `json:"datasets"`
	Rankings            Rankings                             `json:"rankings"`
	ExcelData           map[string]map[string]BreakdownTable `json:"excel_data,omitempty"`
	AdsorbateBreakdown  map[string]BreakdownTable            `json:"adsorbate_breakdown,omitempty"`
}

// Metadata describes when and from what the document was generated.
type Metadata struct {
	GeneratedAt time.Time `json:"generated_at"`
	NumMLIPs    int       `json:"num_mlips"`
	NumDatasets int       `json:"num_datasets"`
	Metrics     []string  `json:"metrics"`
}

// MetricSet holds one dataset's results for one model, keyed by metric name.
// Absent keys mean the metric was not measured for that (model, dataset) pair.
type MetricSet map[string]float64

// AggregateStat is a precomputed cross-dataset statistic for one metric.
type AggregateStat struct {
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

// ModelEntry holds all results for a single model: per-dataset metric sets
// plus the precomputed cross-dataset aggregates.
type ModelEntry struct {
	Datasets       map[string]MetricSet     `json:"datasets"`
	AverageMetrics map[string]AggregateStat `json:"average_metrics"`
	OverallScore   float64                  `json:"overall_score"`
	NumDatasets    int                      `json:"num_datasets"`
}

// DatasetInfo describes a benchmark dataset.
type DatasetInfo struct {
	Name          string `json:"name"`
	NumStructures int    `json:"num_structures"`
	FilePath      string `json:"file_path,omitempty"`
}

// Rankings groups the per-category ranked lists.
type Rankings struct {
	Overall     []RankEntry `json:"overall"`
	Accuracy    []RankEntry `json:"accuracy"`
	SuccessRate []RankEntry `json:"success_rate"`
	Speed       []RankEntry `json:"speed"`
	Coverage    []RankEntry `json:"coverage"`
}

// RankEntry is one row in a ranking. Value carries the category's metric
// (composite score, MAE, rate, time per step, or dataset count); Std is the
// spread across datasets where the category has one.
type RankEntry struct {
	MLIP        string  `json:"mlip"`
	Value       float64 `json:"value"`
	Std         float64 `json:"std,omitempty"`
	NumDatasets int     `json:"num_datasets,omitempty"`
}

// BreakdownTable is a columns-plus-rows table as extracted from a result
// workbook sheet (per-adsorbate breakdowns and dataset×model detail views).
// Every row in Data has exactly len(Columns) cells.
type BreakdownTable struct {
	Columns []string `json:"columns"`
	Data    [][]any  `json:"data"`
}
