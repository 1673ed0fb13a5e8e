// Package ingest reads per-dataset benchmark result exports into the
// document model. A results directory holds one subdirectory per dataset:
//
//	results/
//	  AgPd/
//	    mlip_data.csv     per-model metric rows
//	    MACE.csv          that model's adsorbate breakdown sheet
//	    CHGNet.csv
//	  CuZn/
//	    ...
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/catbench/leaderboard/internal/cache"
	"github.com/catbench/leaderboard/internal/models"
)

// MainDataFile is the per-dataset file carrying one metric row per model.
const MainDataFile = "mlip_data.csv"

// modelColumn names the model identifier column in the main data file.
const modelColumn = "MLIP_name"

// structuresColumn carries the dataset's structure count, repeated per row.
const structuresColumn = "Num_total"

// altMetricNames maps each canonical metric key to the header variants seen
// across result exports. The canonical name itself is tried first.
var altMetricNames = map[string][]string{
	models.MetricMAETotal:    {"MAE_total", "MAE_total(eV)"},
	models.MetricMAENormal:   {"MAE_normal", "MAE_normal(eV)"},
	models.MetricNormalRate:  {"Normal rate", "Normal rate(%)", "Normal (%)"},
	models.MetricADwT:        {"ADwT", "ADwT(%)"},
	models.MetricTimePerStep: {"Time_per_step", "Time/step (s)", "Time/step"},
}

// DatasetResult is everything ingested from one dataset directory.
type DatasetResult struct {
	Info       models.DatasetInfo
	ModelOrder []string
	Metrics    map[string]models.MetricSet
	Breakdowns map[string]models.BreakdownTable
}

// Dataset ingests a single dataset directory.
func Dataset(dir string) (*DatasetResult, error) {
	name := filepath.Base(dir)
	mainPath := filepath.Join(dir, MainDataFile)

	records, err := readCSV(mainPath)
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("ingest: %s is empty (no header row)", mainPath)
	}

	headers := records[0]
	colIndex := make(map[string]int, len(headers))
	for i, h := range headers {
		colIndex[strings.TrimSpace(h)] = i
	}
	modelIdx, ok := colIndex[modelColumn]
	if !ok {
		return nil, fmt.Errorf("ingest: %s has no %s column", mainPath, modelColumn)
	}

	result := &DatasetResult{
		Info:       models.DatasetInfo{Name: name, FilePath: mainPath},
		Metrics:    make(map[string]models.MetricSet),
		Breakdowns: make(map[string]models.BreakdownTable),
	}

	for rowNum, row := range records[1:] {
		if len(row) != len(headers) {
			return nil, fmt.Errorf("ingest: %s row %d has %d columns, expected %d",
				mainPath, rowNum+2, len(row), len(headers))
		}
		model := strings.TrimSpace(row[modelIdx])
		if model == "" {
			continue
		}

		set := make(models.MetricSet)
		for _, metric := range models.KeyMetrics {
			if v, ok := lookupMetric(row, colIndex, metric); ok {
				set[metric] = v
			}
		}
		if _, seen := result.Metrics[model]; !seen {
			result.ModelOrder = append(result.ModelOrder, model)
		}
		result.Metrics[model] = set

		// Num_total repeats per row; take the max to be safe.
		if idx, ok := colIndex[structuresColumn]; ok && idx < len(row) {
			if n, err := strconv.ParseFloat(strings.TrimSpace(row[idx]), 64); err == nil {
				if int(n) > result.Info.NumStructures {
					result.Info.NumStructures = int(n)
				}
			}
		}
	}

	if err := loadBreakdowns(dir, result); err != nil {
		return nil, err
	}
	return result, nil
}

// lookupMetric reads one metric from a row, trying the canonical header
// first, then the known alternates.
func lookupMetric(row []string, colIndex map[string]int, metric string) (float64, bool) {
	names := append([]string{metric}, altMetricNames[metric]...)
	for _, name := range names {
		idx, ok := colIndex[name]
		if !ok || idx >= len(row) {
			continue
		}
		cell := strings.TrimSpace(row[idx])
		if cell == "" {
			continue
		}
		if v, err := strconv.ParseFloat(cell, 64); err == nil {
			return v, true
		}
	}
	return 0, false
}

// loadBreakdowns reads every other CSV in the dataset directory as a
// per-model breakdown sheet named after the model.
func loadBreakdowns(dir string, result *DatasetResult) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("ingest: reading %s: %w", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() || e.Name() == MainDataFile || !strings.HasSuffix(e.Name(), ".csv") {
			continue
		}
		model := strings.TrimSuffix(e.Name(), ".csv")
		table, err := loadTable(filepath.Join(dir, e.Name()))
		if err != nil {
			return err
		}
		result.Breakdowns[model] = *table
	}
	return nil
}

// Results ingests every dataset directory under root, running up to workers
// datasets concurrently. Directories without a main data file are skipped
// with a warning. Output is sorted by dataset name for determinism.
//
// When c is non-nil, dataset directories whose CSV contents are unchanged
// since the last run are served from the cache instead of reparsed.
func Results(ctx context.Context, root string, workers int, c *cache.Cache) ([]*DatasetResult, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("ingest: reading results dir %s: %w", root, err)
	}

	var dirs []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(root, e.Name())
		if _, err := os.Stat(filepath.Join(dir, MainDataFile)); err != nil {
			slog.Warn("skipping dataset directory without main data file", "dir", dir)
			continue
		}
		dirs = append(dirs, dir)
	}

	if workers < 1 {
		workers = 1
	}
	results := make([]*DatasetResult, len(dirs))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, dir := range dirs {
		g.Go(func() error {
			res, err := ingestDataset(dir, c)
			if err != nil {
				return err
			}
			slog.Debug("ingested dataset", "dataset", res.Info.Name,
				"models", len(res.Metrics), "structures", res.Info.NumStructures)
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Info.Name < results[j].Info.Name
	})
	return results, nil
}

// ingestDataset ingests one dataset directory, consulting the cache first.
// Cache failures fall back to a fresh parse rather than failing the run.
func ingestDataset(dir string, c *cache.Cache) (*DatasetResult, error) {
	var key string
	if c != nil {
		k, err := cache.DatasetKey(dir)
		if err != nil {
			slog.Warn("cache key failed, reparsing", "dir", dir, "error", err)
		} else {
			key = k
			var cached DatasetResult
			if c.Get(key, &cached) {
				slog.Debug("dataset served from cache", "dataset", cached.Info.Name)
				return &cached, nil
			}
		}
	}

	res, err := Dataset(dir)
	if err != nil {
		return nil, err
	}
	if c != nil && key != "" {
		if err := c.Put(key, res); err != nil {
			slog.Warn("caching dataset failed", "dataset", res.Info.Name, "error", err)
		}
	}
	return res, nil
}
