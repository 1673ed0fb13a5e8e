package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/catbench/leaderboard/internal/compare"
	"github.com/catbench/leaderboard/internal/generate"
	"github.com/catbench/leaderboard/internal/statistics"
)

func newCompareCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "compare <before.json> <after.json>",
		Short: "Compare two leaderboard documents",
		Long: `Compare two leaderboard documents model by model.

Loads a baseline and a newer leaderboard JSON and reports per-model deltas in
overall score and every aggregate metric, flagging models that were added or
removed between the two.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "table" && format != "json" {
				return fmt.Errorf("unsupported format %q: must be table or json", format)
			}

			before, err := generate.LoadDocument(args[0])
			if err != nil {
				return fmt.Errorf("loading %s: %w", args[0], err)
			}
			after, err := generate.LoadDocument(args[1])
			if err != nil {
				return fmt.Errorf("loading %s: %w", args[1], err)
			}

			result := compare.Documents(before, after)
			if format == "json" {
				return printJSON(cmd, result)
			}
			printCompareTable(cmd, args[0], args[1], result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table or json")

	return cmd
}

func printCompareTable(cmd *cobra.Command, beforePath, afterPath string, result *compare.Result) {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, strings.Repeat("=", 70))
	fmt.Fprintln(out, " LEADERBOARD COMPARISON")
	fmt.Fprintln(out, strings.Repeat("=", 70))
	fmt.Fprintf(out, "  before: %s\n", beforePath)
	fmt.Fprintf(out, "  after:  %s\n\n", afterPath)

	nameWidth := len("Model")
	for _, mc := range result.Models {
		if len(mc.Model) > nameWidth {
			nameWidth = len(mc.Model)
		}
	}

	fmt.Fprintf(out, "  %s  %s  %s  %s\n",
		padCell("Model", nameWidth),
		padCell("Score before", 13), padCell("Score after", 12), "Delta")
	fmt.Fprintln(out, "  "+strings.Repeat("-", nameWidth+38))

	for _, mc := range result.Models {
		switch {
		case mc.Added:
			fmt.Fprintf(out, "  %s  %s  %s  (added)\n",
				padCell(mc.Model, nameWidth),
				padCell("-", 13), padCell(formatScore(mc.ScoreAfter), 12))
		case mc.Removed:
			fmt.Fprintf(out, "  %s  %s  %s  (removed)\n",
				padCell(mc.Model, nameWidth),
				padCell(formatScore(mc.ScoreBefore), 13), padCell("-", 12))
		default:
			fmt.Fprintf(out, "  %s  %s  %s  %s\n",
				padCell(mc.Model, nameWidth),
				padCell(formatScore(mc.ScoreBefore), 13),
				padCell(formatScore(mc.ScoreAfter), 12),
				formatDelta(mc.ScoreDelta))
		}
	}
	fmt.Fprintln(out)

	// Per-metric detail for models present on both sides.
	for _, mc := range result.Models {
		if mc.Added || mc.Removed {
			continue
		}
		changed := make([]compare.MetricDelta, 0, len(mc.Metrics))
		for _, md := range mc.Metrics {
			if md.Delta != nil && *md.Delta != 0 {
				changed = append(changed, md)
			}
		}
		if len(changed) == 0 {
			continue
		}
		fmt.Fprintf(out, "  %s:\n", mc.Model)
		for _, md := range changed {
			note := ""
			if statistics.Significant(md.DeltaCI) {
				note = " [significant]"
			}
			fmt.Fprintf(out, "    %s: %.4g -> %.4g (%s)%s\n",
				md.Metric, *md.Before, *md.After, formatDelta(md.Delta), note)
		}
		fmt.Fprintln(out)
	}
}

func formatScore(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.4f", *v)
}

func formatDelta(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%+.4f", *v)
}
