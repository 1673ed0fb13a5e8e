package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/catbench/leaderboard/internal/generate"
	"github.com/catbench/leaderboard/internal/models"
	"github.com/catbench/leaderboard/internal/projectconfig"
	"github.com/catbench/leaderboard/internal/reporting"
	"github.com/catbench/leaderboard/internal/spinner"
)

func newGenerateCommand() *cobra.Command {
	var resultsDir string
	var outputDir string
	var workers int
	var cacheDir string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the leaderboard from benchmark results",
		Long: `Generate leaderboard artifacts from per-dataset benchmark results.

Reads every dataset directory under the results directory, aggregates metrics
across datasets, ranks models, and writes leaderboard_data.json (plus a
gzipped copy and a text summary report) into the output directory.

Directories default to the paths in .catbench.yaml, discovered by walking up
from the current directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting working directory: %w", err)
			}
			cfg, err := projectconfig.Load(wd)
			if err != nil {
				return err
			}

			opts := generate.Options{
				ResultsDir: firstNonEmpty(resultsDir, cfg.Paths.Results),
				OutputDir:  firstNonEmpty(outputDir, cfg.Paths.Output),
				Workers:    cfg.Generate.Workers,
				CacheDir:   firstNonEmpty(cacheDir, cfg.Generate.CacheDir),
			}
			if workers > 0 {
				opts.Workers = workers
			}

			var doc *models.Document
			err = spinner.Run(cmd.OutOrStdout(), "generating leaderboard...", func() error {
				var runErr error
				doc, runErr = generate.Run(cmd.Context(), opts)
				return runErr
			})
			if err != nil {
				return err
			}

			reportPath, err := reporting.WriteSummary(doc, opts.OutputDir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Generated leaderboard: %d models across %d datasets\n",
				doc.Metadata.NumMLIPs, doc.Metadata.NumDatasets)
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Written files:")
			fmt.Fprintf(out, "  %s\n", filepath.Join(opts.OutputDir, generate.DocumentFile))
			fmt.Fprintf(out, "  %s\n", filepath.Join(opts.OutputDir, generate.CompressedFile))
			fmt.Fprintf(out, "  %s\n", reportPath)
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Next: catbench serve --data-dir %s\n", opts.OutputDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&resultsDir, "results", "r", "", "Results directory (default: from .catbench.yaml)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (default: from .catbench.yaml)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Datasets ingested in parallel (default: from .catbench.yaml)")
	cmd.Flags().StringVar(&cacheDir, "cache-dir", "", "Ingest cache directory (default: cache disabled)")

	return cmd
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
