// Package projectconfig provides the ProjectConfig struct and loader for
// .catbench.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the project configuration file searched for by Load.
const ConfigFileName = ".catbench.yaml"

// Default values for project configuration. These are the single source of
// truth — New() references them and no other code should duplicate them.
const (
	DefaultResultsDir = "results/"
	DefaultOutputDir  = "public/"

	DefaultWorkers = 4

	DefaultServerPort = 3000

	DefaultPublishContainer = "leaderboard"
)

// PathsConfig holds the results and output directory paths.
type PathsConfig struct {
	Results string `yaml:"results,omitempty"`
	Output  string `yaml:"output,omitempty"`
}

// GenerateConfig holds generation parameters. CacheDir enables the ingest
// cache when set; unchanged dataset exports are then not reparsed.
type GenerateConfig struct {
	Workers  int    `yaml:"workers,omitempty"`
	CacheDir string `yaml:"cache_dir,omitempty"`
}

// ServerConfig holds dashboard server settings.
type ServerConfig struct {
	Port    int    `yaml:"port,omitempty"`
	DataDir string `yaml:"data_dir,omitempty"`
}

// FrontierConfig defines one Pareto frontier view: which metrics form the
// axes and which way each axis optimizes.
type FrontierConfig struct {
	Name      string `yaml:"name"`
	X         string `yaml:"x"`
	Y         string `yaml:"y"`
	MinimizeX *bool  `yaml:"minimize_x,omitempty"`
	MinimizeY *bool  `yaml:"minimize_y,omitempty"`
}

// PublishConfig holds Azure Blob Storage publish settings.
type PublishConfig struct {
	AccountURL string `yaml:"account_url,omitempty"`
	Container  string `yaml:"container,omitempty"`
	Prefix     string `yaml:"prefix,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .catbench.yaml.
type ProjectConfig struct {
	Paths     PathsConfig      `yaml:"paths,omitempty"`
	Generate  GenerateConfig   `yaml:"generate,omitempty"`
	Server    ServerConfig     `yaml:"server,omitempty"`
	Frontiers []FrontierConfig `yaml:"frontiers,omitempty"`
	Publish   PublishConfig    `yaml:"publish,omitempty"`
}

// DefaultFrontiers returns the two built-in frontier views: accuracy versus
// speed (both minimized) and robustness versus speed (rate maximized).
func DefaultFrontiers() []FrontierConfig {
	return []FrontierConfig{
		{Name: "accuracy-vs-speed", X: "time_per_step", Y: "mae_total",
			MinimizeX: boolPtr(true), MinimizeY: boolPtr(true)},
		{Name: "robustness-vs-speed", X: "time_per_step", Y: "normal_rate",
			MinimizeX: boolPtr(true), MinimizeY: boolPtr(false)},
	}
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Paths: PathsConfig{
			Results: DefaultResultsDir,
			Output:  DefaultOutputDir,
		},
		Generate: GenerateConfig{
			Workers: DefaultWorkers,
		},
		Server: ServerConfig{
			Port:    DefaultServerPort,
			DataDir: DefaultOutputDir,
		},
		Frontiers: DefaultFrontiers(),
		Publish: PublishConfig{
			Container: DefaultPublishContainer,
		},
	}
}

// Load finds .catbench.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil // no file found → return defaults
		}
		return nil, fmt.Errorf("loading %s: %w", ConfigFileName, err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ConfigFileName, err)
	}

	// Merge file values onto defaults.
	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// findConfigFile walks up from dir looking for .catbench.yaml (max 10
// levels). Returns os.ErrNotExist if no config file is found. Propagates
// real I/O errors (e.g. permission denied) instead of silently swallowing
// them.
func findConfigFile(dir string) ([]byte, error) {
	// Convert to absolute path so filepath.Dir(".") walks correctly.
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, ConfigFileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	if src.Paths.Results != "" {
		dst.Paths.Results = src.Paths.Results
	}
	if src.Paths.Output != "" {
		dst.Paths.Output = src.Paths.Output
	}

	if src.Generate.Workers != 0 {
		dst.Generate.Workers = src.Generate.Workers
	}
	if src.Generate.CacheDir != "" {
		dst.Generate.CacheDir = src.Generate.CacheDir
	}

	if src.Server.Port != 0 {
		dst.Server.Port = src.Server.Port
	}
	if src.Server.DataDir != "" {
		dst.Server.DataDir = src.Server.DataDir
	}

	// Frontier views replace wholesale: a project that defines its own
	// views owns the full list.
	if len(src.Frontiers) > 0 {
		dst.Frontiers = src.Frontiers
	}

	if src.Publish.AccountURL != "" {
		dst.Publish.AccountURL = src.Publish.AccountURL
	}
	if src.Publish.Container != "" {
		dst.Publish.Container = src.Publish.Container
	}
	if src.Publish.Prefix != "" {
		dst.Publish.Prefix = src.Publish.Prefix
	}
}

func boolPtr(b bool) *bool { return &b }
