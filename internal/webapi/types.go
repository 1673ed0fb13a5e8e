package webapi

import (
	"github.com/catbench/leaderboard/internal/models"
	"github.com/catbench/leaderboard/internal/normalize"
	"github.com/catbench/leaderboard/internal/pareto"
)

// FrontierInfo describes one configured frontier view.
type FrontierInfo struct {
	Name      string `json:"name"`
	X         string `json:"x"`
	Y         string `json:"y"`
	MinimizeX bool   `json:"minimizeX"`
	MinimizeY bool   `json:"minimizeY"`
}

// FrontierPoint is one model's position on a frontier chart.
type FrontierPoint struct {
	Model string  `json:"model"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// FrontierResult is a fully computed frontier for one (frontier, view) pair:
// the optimal points, the staircase curve through them, and the dominated
// region boundary for shading.
type FrontierResult struct {
	FrontierInfo
	View     string          `json:"view"`
	Points   []FrontierPoint `json:"points"`
	Frontier []FrontierPoint `json:"frontier"`
	Curve    []pareto.Vertex `json:"curve"`
	Region   []pareto.Vertex `json:"region"`
}

// RecordsResponse wraps the flat records for one view.
type RecordsResponse struct {
	View    string               `json:"view"`
	Records []models.ModelRecord `json:"records"`
}

// ViewsResponse lists the selectable views: "average" plus every dataset.
type ViewsResponse struct {
	Views []string `json:"views"`
}

// TableResponse wraps projected table rows.
type TableResponse struct {
	Rows []normalize.Row `json:"rows"`
}

// BreakdownResponse carries a model's per-adsorbate breakdown: the projected
// rows as-is plus the typed decode of the well-known columns.
type BreakdownResponse struct {
	Rows       []normalize.Row          `json:"rows"`
	Adsorbates []normalize.AdsorbateRow `json:"adsorbates"`
}

// HealthResponse is the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is returned for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
