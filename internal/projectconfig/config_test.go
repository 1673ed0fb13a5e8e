package projectconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadNoConfigFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DefaultResultsDir, cfg.Paths.Results)
	assert.Equal(t, DefaultOutputDir, cfg.Paths.Output)
	assert.Equal(t, DefaultWorkers, cfg.Generate.Workers)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	require.Len(t, cfg.Frontiers, 2)
	assert.Equal(t, "accuracy-vs-speed", cfg.Frontiers[0].Name)
	assert.Equal(t, "robustness-vs-speed", cfg.Frontiers[1].Name)
}

func TestLoadMergesFileOntoDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `
paths:
  results: bench-results/
server:
  port: 8080
publish:
  account_url: https://acct.blob.core.windows.net
  prefix: v2/
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "bench-results/", cfg.Paths.Results)
	assert.Equal(t, DefaultOutputDir, cfg.Paths.Output) // untouched default
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "https://acct.blob.core.windows.net", cfg.Publish.AccountURL)
	assert.Equal(t, DefaultPublishContainer, cfg.Publish.Container)
	assert.Equal(t, "v2/", cfg.Publish.Prefix)
}

func TestLoadCustomFrontiersReplaceDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `
frontiers:
  - name: adwt-vs-speed
    x: time_per_step
    y: adwt
    minimize_y: false
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	require.Len(t, cfg.Frontiers, 1)
	assert.Equal(t, "adwt-vs-speed", cfg.Frontiers[0].Name)
	require.NotNil(t, cfg.Frontiers[0].MinimizeY)
	assert.False(t, *cfg.Frontiers[0].MinimizeY)
	assert.Nil(t, cfg.Frontiers[0].MinimizeX)
}

func TestLoadWalksUpToParent(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName),
		[]byte("server:\n  port: 9999\n"), 0o644))

	cfg, err := Load(nested)
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Server.Port)
}

func TestLoadMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName),
		[]byte("paths: [not a map"), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
}
