// Package wizard implements the interactive project setup flow behind
// `catbench init`.
package wizard

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/catbench/leaderboard/internal/projectconfig"
)

// RunInitWizard runs an interactive huh form to collect project settings,
// starting from defaults. Blank answers keep the default value.
func RunInitWizard(in io.Reader, out io.Writer, defaults *projectconfig.ProjectConfig) (*projectconfig.ProjectConfig, error) {
	if defaults == nil {
		defaults = projectconfig.New()
	}

	var (
		resultsDir = defaults.Paths.Results
		outputDir  = defaults.Paths.Output
		workersRaw = strconv.Itoa(defaults.Generate.Workers)
		portRaw    = strconv.Itoa(defaults.Server.Port)
		accountURL = defaults.Publish.AccountURL
		container  = defaults.Publish.Container
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Results directory").
				Description("Where per-dataset benchmark result folders live").
				Placeholder(projectconfig.DefaultResultsDir).
				Value(&resultsDir),
			huh.NewInput().
				Title("Output directory").
				Description("Where the generated leaderboard artifacts go").
				Placeholder(projectconfig.DefaultOutputDir).
				Value(&outputDir),
			huh.NewInput().
				Title("Ingest workers").
				Description("Datasets ingested in parallel").
				Value(&workersRaw).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Dashboard port").
				Value(&portRaw).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Azure storage account URL").
				Description("Optional, for catbench publish").
				Placeholder("https://<account>.blob.core.windows.net").
				Value(&accountURL),
			huh.NewInput().
				Title("Blob container").
				Placeholder(projectconfig.DefaultPublishContainer).
				Value(&container),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	cfg := projectconfig.New()
	cfg.Paths.Results = fallback(resultsDir, defaults.Paths.Results)
	cfg.Paths.Output = fallback(outputDir, defaults.Paths.Output)
	cfg.Generate.Workers = intOr(workersRaw, defaults.Generate.Workers)
	cfg.Server.Port = intOr(portRaw, defaults.Server.Port)
	cfg.Server.DataDir = cfg.Paths.Output
	cfg.Publish.AccountURL = strings.TrimSpace(accountURL)
	cfg.Publish.Container = fallback(container, defaults.Publish.Container)
	return cfg, nil
}

// RenderConfigYAML renders a ProjectConfig as .catbench.yaml content.
func RenderConfigYAML(cfg *projectconfig.ProjectConfig) (string, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("rendering config: %w", err)
	}
	return "# CatBench leaderboard project configuration\n" + string(data), nil
}

// WriteConfig writes the rendered config into dir. It refuses to overwrite an
// existing file unless force is set.
func WriteConfig(cfg *projectconfig.ProjectConfig, dir string, force bool) (string, error) {
	path := filepath.Join(dir, projectconfig.ConfigFileName)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	content, err := RenderConfigYAML(cfg)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing config: %w", err)
	}
	return path, nil
}

func validatePositiveInt(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fmt.Errorf("must be a positive integer")
	}
	return nil
}

func fallback(value, def string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return def
}

func intOr(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return def
	}
	return n
}
