package webserver

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catbench/leaderboard/internal/generate"
	"github.com/catbench/leaderboard/internal/models"
)

func writeFixture(t *testing.T, dir string) {
	t.Helper()
	mlips := models.NewModelMap()
	mlips.Set("mace-mp-0", &models.ModelEntry{
		Datasets: map[string]models.MetricSet{
			"cathub": {models.MetricMAETotal: 0.12},
		},
		AverageMetrics: map[string]models.AggregateStat{
			models.MetricMAETotal: {Mean: 0.12, Min: 0.12, Max: 0.12, Count: 1},
		},
		OverallScore: 0.65,
		NumDatasets:  1,
	})
	doc := &models.Document{
		Metadata: models.Metadata{
			GeneratedAt: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
			NumMLIPs:    1,
			NumDatasets: 1,
			Metrics:     models.KeyMetrics,
		},
		MLIPs: *mlips,
		Datasets: map[string]models.DatasetInfo{
			"cathub": {Name: "cathub", NumStructures: 200},
		},
	}
	require.NoError(t, generate.WriteDocument(doc, dir))
}

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	dir := t.TempDir()
	writeFixture(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"),
		[]byte("<!doctype html><title>catbench</title>"), 0o644))

	srv, err := New(Config{
		Port:      0,
		DataDir:   dir,
		NoBrowser: true,
	})
	require.NoError(t, err)
	return srv.Handler()
}

func TestHealthEndpoint(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	err := json.Unmarshal(rec.Body.Bytes(), &body)
	require.NoError(t, err)
	assert.Equal(t, "ok", body["status"])
}

func TestLeaderboardEndpoint(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "mlips")
	assert.Contains(t, body, "rankings")
}

func TestReloadEndpoint(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/reload", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestStaticDocumentServing(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/"+generate.DocumentFile, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "mace-mp-0")
}

func TestIndexFallbackForClientRoutes(t *testing.T) {
	handler := newTestHandler(t)

	for _, path := range []string{"/", "/dashboard"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, "path %s", path)
		assert.Contains(t, rec.Body.String(), "<!doctype html>", "path %s", path)
	}
}

func TestGzipCompression(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	if rec.Header().Get("Content-Encoding") != "gzip" {
		// Small responses may skip compression; nothing more to check.
		return
	}
	zr, err := gzip.NewReader(rec.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "mlips"))
}

func TestMissingDataDirStillServesAPI(t *testing.T) {
	srv, err := New(Config{Port: 0, DataDir: t.TempDir(), NoBrowser: true})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
