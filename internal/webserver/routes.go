package webserver

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/catbench/leaderboard/internal/webapi"
)

// registerRoutes sets up API and static file routes on the given mux.
func registerRoutes(mux *http.ServeMux, store *webapi.FileStore, cfg Config) {
	webapi.RegisterRoutes(mux, store)

	// Reload lets a deployment pick up a regenerated document without a
	// restart.
	mux.HandleFunc("POST /api/reload", func(w http.ResponseWriter, _ *http.Request) {
		if err := store.Reload(); err != nil {
			cfg.Logger.Error("document reload failed", "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	// Static files: the generated output directory (leaderboard_data.json,
	// summary_report.txt, and any deployed frontend assets).
	mux.Handle("/", staticHandler(cfg.DataDir))
}

// staticHandler serves files from dir, falling back to index.html for paths
// that do not match a file so a client-routed frontend keeps working.
func staticHandler(dir string) http.Handler {
	fileServer := http.FileServer(http.Dir(dir))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			full := filepath.Join(dir, filepath.FromSlash(r.URL.Path))
			if info, err := os.Stat(full); err == nil && !info.IsDir() {
				fileServer.ServeHTTP(w, r)
				return
			}
		}

		index := filepath.Join(dir, "index.html")
		if _, err := os.Stat(index); err == nil {
			http.ServeFile(w, r, index)
			return
		}
		http.NotFound(w, r)
	})
}
