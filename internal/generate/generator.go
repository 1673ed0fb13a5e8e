// Package generate assembles the leaderboard document from ingested results
// and writes the output artifacts.
package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/catbench/leaderboard/internal/aggregate"
	"github.com/catbench/leaderboard/internal/cache"
	"github.com/catbench/leaderboard/internal/ingest"
	"github.com/catbench/leaderboard/internal/models"
)

// Output artifact names.
const (
	DocumentFile   = "leaderboard_data.json"
	CompressedFile = "leaderboard_data.json.gz"
)

// Options configures a generation run.
type Options struct {
	ResultsDir string
	OutputDir  string
	Workers    int

	// CacheDir enables the ingest cache when non-empty: dataset directories
	// whose CSVs are unchanged are not reparsed.
	CacheDir string
}

// Run ingests all datasets, finalizes aggregates and rankings, and writes
// the document artifacts to the output directory.
func Run(ctx context.Context, opts Options) (*models.Document, error) {
	var c *cache.Cache
	if opts.CacheDir != "" {
		c = cache.New(opts.CacheDir)
	}
	results, err := ingest.Results(ctx, opts.ResultsDir, opts.Workers, c)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no datasets found under %s", opts.ResultsDir)
	}

	doc := BuildDocument(results)
	aggregate.Finalize(doc)
	doc.Rankings = aggregate.BuildRankings(doc)

	if err := WriteDocument(doc, opts.OutputDir); err != nil {
		return nil, err
	}

	slog.Info("leaderboard generated",
		"mlips", doc.Metadata.NumMLIPs,
		"datasets", doc.Metadata.NumDatasets,
		"output", opts.OutputDir)
	return doc, nil
}

// BuildDocument merges per-dataset ingestion results into a single document.
// Models appear in first-seen order across datasets; a model's adsorbate
// breakdown comes from the first dataset that carries one for it.
func BuildDocument(results []*ingest.DatasetResult) *models.Document {
	mlips := models.NewModelMap()
	doc := &models.Document{
		Datasets:           make(map[string]models.DatasetInfo),
		ExcelData:          make(map[string]map[string]models.BreakdownTable),
		AdsorbateBreakdown: make(map[string]models.BreakdownTable),
	}

	for _, res := range results {
		dataset := res.Info.Name
		doc.Datasets[dataset] = res.Info

		for _, model := range res.ModelOrder {
			entry := mlips.Get(model)
			if entry == nil {
				entry = &models.ModelEntry{Datasets: make(map[string]models.MetricSet)}
				mlips.Set(model, entry)
			}
			entry.Datasets[dataset] = res.Metrics[model]
		}

		if len(res.Breakdowns) > 0 {
			doc.ExcelData[dataset] = res.Breakdowns
		}
		for model, table := range res.Breakdowns {
			if _, seen := doc.AdsorbateBreakdown[model]; !seen {
				doc.AdsorbateBreakdown[model] = table
			}
		}
	}

	doc.MLIPs = *mlips
	doc.Metadata = models.Metadata{
		GeneratedAt: time.Now().UTC(),
		NumMLIPs:    mlips.Len(),
		NumDatasets: len(doc.Datasets),
		Metrics:     models.KeyMetrics,
	}
	return doc
}

// WriteDocument writes the document as pretty JSON plus a gzipped sibling
// for bandwidth-sensitive deployments.
func WriteDocument(doc *models.Document, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling document: %w", err)
	}

	jsonPath := filepath.Join(dir, DocumentFile)
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", jsonPath, err)
	}

	gzPath := filepath.Join(dir, CompressedFile)
	f, err := os.Create(gzPath)
	if err != nil {
		return fmt.Errorf("writing %s: %w", gzPath, err)
	}
	defer f.Close() //nolint:errcheck

	zw, err := gzip.NewWriterLevel(f, gzip.BestCompression)
	if err != nil {
		return err
	}
	if _, err := zw.Write(data); err != nil {
		return fmt.Errorf("compressing %s: %w", gzPath, err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("compressing %s: %w", gzPath, err)
	}
	return f.Close()
}

// LoadDocument reads a previously generated document from a JSON file.
func LoadDocument(path string) (*models.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document %s: %w", path, err)
	}
	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing document %s: %w", path, err)
	}
	return &doc, nil
}
