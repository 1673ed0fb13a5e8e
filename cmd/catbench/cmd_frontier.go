package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/catbench/leaderboard/internal/generate"
	"github.com/catbench/leaderboard/internal/models"
	"github.com/catbench/leaderboard/internal/projectconfig"
	"github.com/catbench/leaderboard/internal/webapi"
)

func newFrontierCommand() *cobra.Command {
	var view string
	var format string
	var docPath string

	cmd := &cobra.Command{
		Use:   "frontier [name]",
		Short: "Compute a Pareto frontier from the generated leaderboard",
		Long: `Compute a Pareto frontier over the generated leaderboard document.

With no argument, lists the configured frontier views. With a name, computes
that frontier and prints the optimal models, marking which of the full point
set made the frontier.

Frontier views come from .catbench.yaml; the defaults are accuracy-vs-speed
and robustness-vs-speed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "table" && format != "json" {
				return fmt.Errorf("unsupported format %q: must be table or json", format)
			}

			cfg, store, err := openStore(docPath)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				return printFrontierList(cmd, cfg, format)
			}

			result, err := store.Frontier(args[0], view)
			if err != nil {
				return err
			}

			if format == "json" {
				return printJSON(cmd, result)
			}
			printFrontierTable(cmd, result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&view, "view", "v", models.ViewAverage, "Record view: average or a dataset name")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table or json")
	cmd.Flags().StringVar(&docPath, "data", "", "Leaderboard JSON path (default: <output dir>/leaderboard_data.json)")

	return cmd
}

// openStore loads project config and opens a document store on the directory
// holding the leaderboard JSON.
func openStore(docPath string) (*projectconfig.ProjectConfig, *webapi.FileStore, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, nil, fmt.Errorf("getting working directory: %w", err)
	}
	cfg, err := projectconfig.Load(wd)
	if err != nil {
		return nil, nil, err
	}

	dir := cfg.Paths.Output
	if docPath != "" {
		if filepath.Base(docPath) != generate.DocumentFile {
			return nil, nil, fmt.Errorf("expected a %s path, got %s", generate.DocumentFile, docPath)
		}
		dir = filepath.Dir(docPath)
	}
	return cfg, webapi.NewFileStore(dir, cfg.Frontiers), nil
}

func printFrontierList(cmd *cobra.Command, cfg *projectconfig.ProjectConfig, format string) error {
	infos := webapi.NewFileStore("", cfg.Frontiers).Frontiers()
	if format == "json" {
		return printJSON(cmd, infos)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s  %s  %s  %s\n",
		padCell("Name", 24), padCell("X axis", 14), padCell("Y axis", 14), "Directions")
	fmt.Fprintln(out, strings.Repeat("-", 64))
	for _, info := range infos {
		fmt.Fprintf(out, "%s  %s  %s  %s\n",
			padCell(info.Name, 24),
			padCell(info.X, 14),
			padCell(info.Y, 14),
			fmt.Sprintf("x %s, y %s", axisWord(info.MinimizeX), axisWord(info.MinimizeY)))
	}
	return nil
}

func printFrontierTable(cmd *cobra.Command, result *webapi.FrontierResult) {
	out := cmd.OutOrStdout()

	onFrontier := make(map[string]bool, len(result.Frontier))
	for _, p := range result.Frontier {
		onFrontier[p.Model] = true
	}

	nameWidth := len("Model")
	for _, p := range result.Points {
		if w := runewidth.StringWidth(p.Model); w > nameWidth {
			nameWidth = w
		}
	}

	fmt.Fprintf(out, "%s (%s view)\n", result.Name, result.View)
	fmt.Fprintf(out, "x: %s (%s)   y: %s (%s)\n\n",
		result.X, axisWord(result.MinimizeX), result.Y, axisWord(result.MinimizeY))

	fmt.Fprintf(out, "%s  %s  %s  %s\n",
		padCell("Model", nameWidth), padCell("X", 12), padCell("Y", 12), "Frontier")
	fmt.Fprintln(out, strings.Repeat("-", nameWidth+34))
	for _, p := range result.Points {
		marker := ""
		if onFrontier[p.Model] {
			marker = "*"
		}
		fmt.Fprintf(out, "%s  %s  %s  %s\n",
			padCell(p.Model, nameWidth),
			padCell(fmt.Sprintf("%.4g", p.X), 12),
			padCell(fmt.Sprintf("%.4g", p.Y), 12),
			marker)
	}
	fmt.Fprintf(out, "\n%d of %d models on the frontier\n", len(result.Frontier), len(result.Points))
}

func axisWord(minimize bool) string {
	if minimize {
		return "minimize"
	}
	return "maximize"
}

// padCell pads s with spaces so its terminal display width reaches width.
func padCell(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
