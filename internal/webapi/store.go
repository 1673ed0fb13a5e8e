package webapi

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"sync"

	"github.com/catbench/leaderboard/internal/generate"
	"github.com/catbench/leaderboard/internal/models"
	"github.com/catbench/leaderboard/internal/normalize"
	"github.com/catbench/leaderboard/internal/pareto"
	"github.com/catbench/leaderboard/internal/projectconfig"
)

// Sentinel errors mapped to HTTP status codes by the handlers.
var (
	ErrNoDocument      = errors.New("no leaderboard document loaded")
	ErrUnknownView     = errors.New("unknown view")
	ErrUnknownModel    = errors.New("unknown model")
	ErrUnknownDataset  = errors.New("unknown dataset")
	ErrUnknownFrontier = errors.New("unknown frontier")
)

// DocumentStore provides read access to a leaderboard document and the
// derived views the API serves.
type DocumentStore interface {
	// Document returns the full leaderboard document.
	Document() (*models.Document, error)
	// Views returns the selectable views: "average" plus every dataset name.
	Views() ([]string, error)
	// Records returns the flat per-model records for a view.
	Records(view string) ([]models.ModelRecord, error)
	// Frontiers lists the configured frontier views.
	Frontiers() []FrontierInfo
	// Frontier computes (or returns the memoized) frontier for a view.
	Frontier(name, view string) (*FrontierResult, error)
	// ModelBreakdown returns a model's per-adsorbate breakdown rows.
	ModelBreakdown(model string) ([]normalize.Row, error)
	// DatasetTable returns one model's detail sheet rows for a dataset.
	DatasetTable(dataset, model string) ([]normalize.Row, error)
	// Reload discards cached state and rereads the document from disk.
	Reload() error
}

// FileStore serves a leaderboard document from a generated output directory.
// The document loads lazily on first access and frontier computations are
// memoized per (frontier, view) until Reload.
type FileStore struct {
	dir       string
	frontiers []projectconfig.FrontierConfig

	mu      sync.RWMutex
	doc     *models.Document
	loaded  bool
	loadErr error
	memo    map[string]*FrontierResult
}

// NewFileStore creates a FileStore reading leaderboard_data.json from dir.
func NewFileStore(dir string, frontiers []projectconfig.FrontierConfig) *FileStore {
	return &FileStore{
		dir:       dir,
		frontiers: frontiers,
		memo:      make(map[string]*FrontierResult),
	}
}

func (fs *FileStore) load() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.doc = nil
	fs.memo = make(map[string]*FrontierResult)
	fs.loaded = true

	doc, err := generate.LoadDocument(filepath.Join(fs.dir, generate.DocumentFile))
	if err != nil {
		fs.loadErr = err
		return err
	}
	fs.doc = doc
	fs.loadErr = nil
	return nil
}

func (fs *FileStore) ensureLoaded() error {
	fs.mu.RLock()
	if fs.loaded {
		err := fs.loadErr
		fs.mu.RUnlock()
		return err
	}
	fs.mu.RUnlock()
	return fs.load()
}

// Reload forces a fresh read of the document from disk.
func (fs *FileStore) Reload() error {
	return fs.load()
}

// Document returns the loaded leaderboard document.
func (fs *FileStore) Document() (*models.Document, error) {
	if err := fs.ensureLoaded(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDocument, err)
	}
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.doc, nil
}

// Views returns "average" plus every dataset name in sorted document order.
func (fs *FileStore) Views() ([]string, error) {
	doc, err := fs.Document()
	if err != nil {
		return nil, err
	}
	views := make([]string, 0, len(doc.Datasets)+1)
	views = append(views, models.ViewAverage)
	for _, name := range sortedKeys(doc.Datasets) {
		views = append(views, name)
	}
	return views, nil
}

// Records returns the flat records for view.
func (fs *FileStore) Records(view string) ([]models.ModelRecord, error) {
	doc, err := fs.Document()
	if err != nil {
		return nil, err
	}
	if err := validView(doc, view); err != nil {
		return nil, err
	}
	return normalize.Records(doc, view), nil
}

// Frontiers lists the configured frontier views.
func (fs *FileStore) Frontiers() []FrontierInfo {
	infos := make([]FrontierInfo, 0, len(fs.frontiers))
	for _, fc := range fs.frontiers {
		infos = append(infos, frontierInfo(fc))
	}
	return infos
}

// Frontier computes the named frontier over the given view's records.
func (fs *FileStore) Frontier(name, view string) (*FrontierResult, error) {
	doc, err := fs.Document()
	if err != nil {
		return nil, err
	}
	if err := validView(doc, view); err != nil {
		return nil, err
	}

	key := name + "\x00" + view
	fs.mu.RLock()
	if cached, ok := fs.memo[key]; ok {
		fs.mu.RUnlock()
		return cached, nil
	}
	fs.mu.RUnlock()

	fc, ok := fs.frontierConfig(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFrontier, name)
	}

	result, err := computeFrontier(doc, fc, view)
	if err != nil {
		return nil, err
	}

	fs.mu.Lock()
	fs.memo[key] = result
	fs.mu.Unlock()
	return result, nil
}

// ModelBreakdown returns the per-adsorbate breakdown rows for a model.
func (fs *FileStore) ModelBreakdown(model string) ([]normalize.Row, error) {
	doc, err := fs.Document()
	if err != nil {
		return nil, err
	}
	table, ok := doc.AdsorbateBreakdown[model]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, model)
	}
	return normalize.ProjectRows(&table)
}

// DatasetTable returns the detail sheet rows for one model in one dataset.
func (fs *FileStore) DatasetTable(dataset, model string) ([]normalize.Row, error) {
	doc, err := fs.Document()
	if err != nil {
		return nil, err
	}
	sheets, ok := doc.ExcelData[dataset]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDataset, dataset)
	}
	table, ok := sheets[model]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, model)
	}
	return normalize.ProjectRows(&table)
}

func (fs *FileStore) frontierConfig(name string) (projectconfig.FrontierConfig, bool) {
	for _, fc := range fs.frontiers {
		if fc.Name == name {
			return fc, true
		}
	}
	return projectconfig.FrontierConfig{}, false
}

func validView(doc *models.Document, view string) error {
	if view == models.ViewAverage {
		return nil
	}
	if _, ok := doc.Datasets[view]; ok {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownView, view)
}

func sortedKeys(m map[string]models.DatasetInfo) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func frontierInfo(fc projectconfig.FrontierConfig) FrontierInfo {
	return FrontierInfo{
		Name:      fc.Name,
		X:         fc.X,
		Y:         fc.Y,
		MinimizeX: minimizes(fc.MinimizeX),
		MinimizeY: minimizes(fc.MinimizeY),
	}
}

// minimizes defaults an unset axis direction to minimize.
func minimizes(b *bool) bool {
	return b == nil || *b
}

func computeFrontier(doc *models.Document, fc projectconfig.FrontierConfig, view string) (*FrontierResult, error) {
	mx, err := pareto.ParseMetric(fc.X)
	if err != nil {
		return nil, fmt.Errorf("frontier %q: %w", fc.Name, err)
	}
	my, err := pareto.ParseMetric(fc.Y)
	if err != nil {
		return nil, fmt.Errorf("frontier %q: %w", fc.Name, err)
	}

	records := normalize.Records(doc, view)
	points := pareto.PointsFromRecords(records, mx, my)

	dx, dy := direction(fc.MinimizeX), direction(fc.MinimizeY)
	frontier := pareto.Frontier(points, dx, dy)

	extentX, extentY := extents(points)
	result := &FrontierResult{
		FrontierInfo: frontierInfo(fc),
		View:         view,
		Points:       toFrontierPoints(points),
		Frontier:     toFrontierPoints(frontier),
		Curve:        pareto.StepCurve(frontier),
		Region:       pareto.Region(frontier, points, extentX, extentY, minimizes(fc.MinimizeY)),
	}
	return result, nil
}

func direction(minimize *bool) pareto.Direction {
	if minimizes(minimize) {
		return pareto.Minimize
	}
	return pareto.Maximize
}

func extents(points []pareto.Point) (maxX, maxY float64) {
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	if len(points) == 0 {
		return 0, 0
	}
	return maxX, maxY
}

func toFrontierPoints(points []pareto.Point) []FrontierPoint {
	out := make([]FrontierPoint, 0, len(points))
	for _, p := range points {
		out = append(out, FrontierPoint{Model: p.Record.Model, X: p.X, Y: p.Y})
	}
	return out
}

// Ensure FileStore satisfies DocumentStore.
var _ DocumentStore = (*FileStore)(nil)
