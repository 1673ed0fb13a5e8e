package webapi

import (
	"errors"
	"testing"
	"time"

	"github.com/catbench/leaderboard/internal/aggregate"
	"github.com/catbench/leaderboard/internal/generate"
	"github.com/catbench/leaderboard/internal/models"
	"github.com/catbench/leaderboard/internal/projectconfig"
)

// fixtureDocument builds a small document with three models on one dataset:
// "fast" and "accurate" form the accuracy-vs-speed frontier, "dominated"
// loses to "accurate" on both axes.
func fixtureDocument() *models.Document {
	entry := func(mae, rate, tps float64) *models.ModelEntry {
		return &models.ModelEntry{
			Datasets: map[string]models.MetricSet{
				"cathub": {
					models.MetricMAETotal:    mae,
					models.MetricNormalRate:  rate,
					models.MetricTimePerStep: tps,
				},
			},
		}
	}

	mlips := models.NewModelMap()
	mlips.Set("fast", entry(0.3, 90, 0.01))
	mlips.Set("accurate", entry(0.1, 95, 0.1))
	mlips.Set("dominated", entry(0.4, 80, 0.2))

	doc := &models.Document{
		Metadata: models.Metadata{
			GeneratedAt: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
			NumMLIPs:    3,
			NumDatasets: 1,
			Metrics:     models.KeyMetrics,
		},
		MLIPs: *mlips,
		Datasets: map[string]models.DatasetInfo{
			"cathub": {Name: "cathub", NumStructures: 200},
		},
		AdsorbateBreakdown: map[string]models.BreakdownTable{
			"fast": {
				Columns: []string{"Adsorbate", "MAE - MAE"},
				Data:    [][]any{{"CO", 0.12}, {"OH", 0.08}},
			},
		},
		ExcelData: map[string]map[string]models.BreakdownTable{
			"cathub": {
				"fast": {
					Columns: []string{"Adsorbate", "Energy"},
					Data:    [][]any{{"CO", -1.5}},
				},
			},
		},
	}
	aggregate.Finalize(doc)
	doc.Rankings = aggregate.BuildRankings(doc)
	return doc
}

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	dir := t.TempDir()
	if err := generate.WriteDocument(fixtureDocument(), dir); err != nil {
		t.Fatalf("writing fixture document: %v", err)
	}
	return NewFileStore(dir, projectconfig.DefaultFrontiers())
}

func TestFileStoreDocument(t *testing.T) {
	store := newTestStore(t)

	doc, err := store.Document()
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	if doc.MLIPs.Len() != 3 {
		t.Errorf("expected 3 models, got %d", doc.MLIPs.Len())
	}
	if got := doc.MLIPs.Keys()[0]; got != "fast" {
		t.Errorf("model order not preserved: first key = %q", got)
	}
}

func TestFileStoreMissingDocument(t *testing.T) {
	store := NewFileStore(t.TempDir(), nil)

	_, err := store.Document()
	if !errors.Is(err, ErrNoDocument) {
		t.Fatalf("expected ErrNoDocument, got %v", err)
	}
}

func TestFileStoreViews(t *testing.T) {
	store := newTestStore(t)

	views, err := store.Views()
	if err != nil {
		t.Fatalf("Views: %v", err)
	}
	want := []string{models.ViewAverage, "cathub"}
	if len(views) != len(want) {
		t.Fatalf("views = %v, want %v", views, want)
	}
	for i := range want {
		if views[i] != want[i] {
			t.Errorf("views[%d] = %q, want %q", i, views[i], want[i])
		}
	}
}

func TestFileStoreRecords(t *testing.T) {
	store := newTestStore(t)

	records, err := store.Records(models.ViewAverage)
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].Model != "fast" {
		t.Errorf("first record = %q, want fast", records[0].Model)
	}
	if records[0].MAETotal == nil || *records[0].MAETotal != 0.3 {
		t.Errorf("fast MAETotal = %v, want 0.3", records[0].MAETotal)
	}

	if _, err := store.Records("nope"); !errors.Is(err, ErrUnknownView) {
		t.Errorf("expected ErrUnknownView, got %v", err)
	}
}

func TestFileStoreFrontier(t *testing.T) {
	store := newTestStore(t)

	result, err := store.Frontier("accuracy-vs-speed", models.ViewAverage)
	if err != nil {
		t.Fatalf("Frontier: %v", err)
	}
	if len(result.Points) != 3 {
		t.Errorf("expected 3 points, got %d", len(result.Points))
	}
	if len(result.Frontier) != 2 {
		t.Fatalf("expected 2 frontier points, got %d", len(result.Frontier))
	}
	// Sorted ascending by x: fast (0.01) before accurate (0.1).
	if result.Frontier[0].Model != "fast" || result.Frontier[1].Model != "accurate" {
		t.Errorf("frontier = %q,%q, want fast,accurate",
			result.Frontier[0].Model, result.Frontier[1].Model)
	}
	if want := 4*(len(result.Frontier)-1) + 1; len(result.Curve) != want {
		t.Errorf("curve has %d vertices, want %d", len(result.Curve), want)
	}
	if len(result.Region) == 0 {
		t.Error("expected non-empty region")
	}

	if _, err := store.Frontier("nope", models.ViewAverage); !errors.Is(err, ErrUnknownFrontier) {
		t.Errorf("expected ErrUnknownFrontier, got %v", err)
	}
}

func TestFileStoreFrontierMemoized(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Frontier("accuracy-vs-speed", models.ViewAverage)
	if err != nil {
		t.Fatalf("Frontier: %v", err)
	}
	second, err := store.Frontier("accuracy-vs-speed", models.ViewAverage)
	if err != nil {
		t.Fatalf("Frontier (cached): %v", err)
	}
	if first != second {
		t.Error("expected memoized result pointer on second call")
	}

	if err := store.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	third, err := store.Frontier("accuracy-vs-speed", models.ViewAverage)
	if err != nil {
		t.Fatalf("Frontier (after reload): %v", err)
	}
	if first == third {
		t.Error("expected fresh result after Reload")
	}
}

func TestFileStoreModelBreakdown(t *testing.T) {
	store := newTestStore(t)

	rows, err := store.ModelBreakdown("fast")
	if err != nil {
		t.Fatalf("ModelBreakdown: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	// "MAE - MAE" collapses: both the original and the short key are present.
	if rows[0]["MAE"] != rows[0]["MAE - MAE"] {
		t.Errorf("collapsed column mismatch: %v vs %v", rows[0]["MAE"], rows[0]["MAE - MAE"])
	}

	if _, err := store.ModelBreakdown("nope"); !errors.Is(err, ErrUnknownModel) {
		t.Errorf("expected ErrUnknownModel, got %v", err)
	}
}

func TestFileStoreDatasetTable(t *testing.T) {
	store := newTestStore(t)

	rows, err := store.DatasetTable("cathub", "fast")
	if err != nil {
		t.Fatalf("DatasetTable: %v", err)
	}
	if len(rows) != 1 || rows[0]["Adsorbate"] != "CO" {
		t.Errorf("unexpected rows: %v", rows)
	}

	if _, err := store.DatasetTable("nope", "fast"); !errors.Is(err, ErrUnknownDataset) {
		t.Errorf("expected ErrUnknownDataset, got %v", err)
	}
	if _, err := store.DatasetTable("cathub", "nope"); !errors.Is(err, ErrUnknownModel) {
		t.Errorf("expected ErrUnknownModel, got %v", err)
	}
}
