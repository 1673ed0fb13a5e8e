package webapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/catbench/leaderboard/internal/models"
	"github.com/catbench/leaderboard/internal/normalize"
	"github.com/catbench/leaderboard/internal/reporting"
)

// Version is set at build time or defaults to dev.
var Version = "0.3.0"

// Handlers holds the HTTP handler methods for the dashboard API.
type Handlers struct {
	store DocumentStore
}

// NewHandlers creates a new Handlers with the given store.
func NewHandlers(store DocumentStore) *Handlers {
	return &Handlers{store: store}
}

// HandleHealth returns a simple health check response.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// HandleLeaderboard returns the full leaderboard document.
func (h *Handlers) HandleLeaderboard(w http.ResponseWriter, _ *http.Request) {
	doc, err := h.store.Document()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// HandleViews lists the selectable record views.
func (h *Handlers) HandleViews(w http.ResponseWriter, _ *http.Request) {
	views, err := h.store.Views()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ViewsResponse{Views: views})
}

// HandleRecords returns the flat records for a view. The view query param
// defaults to the cross-dataset average.
func (h *Handlers) HandleRecords(w http.ResponseWriter, r *http.Request) {
	view := r.URL.Query().Get("view")
	if view == "" {
		view = models.ViewAverage
	}

	records, err := h.store.Records(view)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, RecordsResponse{View: view, Records: records})
}

// HandleRankings returns the per-category ranked lists.
func (h *Handlers) HandleRankings(w http.ResponseWriter, _ *http.Request) {
	doc, err := h.store.Document()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc.Rankings)
}

// HandleFrontiers lists the configured frontier views.
func (h *Handlers) HandleFrontiers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Frontiers())
}

// HandleFrontierDetail returns a computed frontier for a view.
func (h *Handlers) HandleFrontierDetail(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "frontier name is required")
		return
	}
	view := r.URL.Query().Get("view")
	if view == "" {
		view = models.ViewAverage
	}

	result, err := h.store.Frontier(name, view)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleModelBreakdown returns a model's per-adsorbate breakdown rows.
func (h *Handlers) HandleModelBreakdown(w http.ResponseWriter, r *http.Request) {
	model := r.PathValue("model")
	if model == "" {
		writeError(w, http.StatusBadRequest, "model is required")
		return
	}

	rows, err := h.store.ModelBreakdown(model)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	typed, err := normalize.DecodeAdsorbateRows(rows)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, BreakdownResponse{Rows: rows, Adsorbates: typed})
}

// HandleDatasetTable returns one model's detail sheet rows for a dataset.
func (h *Handlers) HandleDatasetTable(w http.ResponseWriter, r *http.Request) {
	dataset := r.PathValue("dataset")
	model := r.PathValue("model")
	if dataset == "" || model == "" {
		writeError(w, http.StatusBadRequest, "dataset and model are required")
		return
	}

	rows, err := h.store.DatasetTable(dataset, model)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, TableResponse{Rows: rows})
}

// HandleReport renders the leaderboard as an HTML report fragment.
func (h *Handlers) HandleReport(w http.ResponseWriter, _ *http.Request) {
	doc, err := h.store.Document()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	html, err := reporting.HTMLReport(doc)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(html) //nolint:errcheck
}

// RegisterRoutes registers all dashboard API routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, store DocumentStore) {
	h := NewHandlers(store)
	mux.HandleFunc("GET /api/health", h.HandleHealth)
	mux.HandleFunc("GET /api/leaderboard", h.HandleLeaderboard)
	mux.HandleFunc("GET /api/views", h.HandleViews)
	mux.HandleFunc("GET /api/records", h.HandleRecords)
	mux.HandleFunc("GET /api/rankings", h.HandleRankings)
	mux.HandleFunc("GET /api/frontiers", h.HandleFrontiers)
	mux.HandleFunc("GET /api/frontiers/{name}", h.HandleFrontierDetail)
	mux.HandleFunc("GET /api/models/{model}/breakdown", h.HandleModelBreakdown)
	mux.HandleFunc("GET /api/datasets/{dataset}/models/{model}/table", h.HandleDatasetTable)
	mux.HandleFunc("GET /api/report", h.HandleReport)
}

// writeStoreError maps store sentinel errors to HTTP status codes.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnknownView),
		errors.Is(err, ErrUnknownModel),
		errors.Is(err, ErrUnknownDataset),
		errors.Is(err, ErrUnknownFrontier):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrNoDocument):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// CORSMiddleware wraps a handler with CORS headers.
// If allowedOrigins is empty, no CORS header is set (same-origin only).
// Otherwise, the request Origin is checked against the allowed list.
func CORSMiddleware(next http.Handler, allowedOrigins ...string) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if len(allowedOrigins) > 0 && origin != "" && allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg, Code: code})
}
