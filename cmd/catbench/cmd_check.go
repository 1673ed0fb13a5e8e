package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/catbench/leaderboard/internal/generate"
	"github.com/catbench/leaderboard/internal/projectconfig"
	"github.com/catbench/leaderboard/internal/validation"
)

func newCheckCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "check [leaderboard.json]",
		Short: "Validate a generated leaderboard document",
		Long: `Validate a generated leaderboard document.

Runs two kinds of checks:
  1. Schema - the document matches the leaderboard JSON Schema
  2. Lints  - semantic checks the schema cannot express (ranking entries
     naming unknown models, metadata counts that disagree with the document,
     table rows whose width does not match their columns)

With no argument, checks the document in the configured output directory.
Exits 1 when the document fails any check.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "json" {
				return fmt.Errorf("invalid format %q: expected text or json", format)
			}

			path, err := resolveCheckPath(args)
			if err != nil {
				return err
			}

			schemaErrs, lintErrs, err := validation.ValidateDocumentFile(path)
			if err != nil {
				return err
			}

			if format == "json" {
				return printJSON(cmd, checkReport{
					Timestamp:  time.Now().UTC().Format(time.RFC3339),
					Path:       path,
					Valid:      len(schemaErrs) == 0 && len(lintErrs) == 0,
					SchemaErrs: schemaErrs,
					LintErrs:   lintErrs,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Checking %s\n\n", path)

			if len(schemaErrs) == 0 {
				fmt.Fprintln(out, "Schema: ok")
			} else {
				fmt.Fprintf(out, "Schema: %d error(s)\n", len(schemaErrs))
				for _, e := range schemaErrs {
					fmt.Fprintf(out, "  %s\n", e)
				}
			}
			if len(lintErrs) == 0 {
				fmt.Fprintln(out, "Lints:  ok")
			} else {
				fmt.Fprintf(out, "Lints:  %d finding(s)\n", len(lintErrs))
				for _, e := range lintErrs {
					fmt.Fprintf(out, "  %s\n", e)
				}
			}

			if len(schemaErrs) > 0 || len(lintErrs) > 0 {
				return &CheckFailureError{
					Message: fmt.Sprintf("%s failed validation", path),
				}
			}
			fmt.Fprintln(out, "\nDocument is valid.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text or json")

	return cmd
}

type checkReport struct {
	Timestamp  string   `json:"timestamp"`
	Path       string   `json:"path"`
	Valid      bool     `json:"valid"`
	SchemaErrs []string `json:"schemaErrors,omitempty"`
	LintErrs   []string `json:"lintErrors,omitempty"`
}

func resolveCheckPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	cfg, err := projectconfig.Load(wd)
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg.Paths.Output, generate.DocumentFile), nil
}
