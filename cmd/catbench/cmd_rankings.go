package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/catbench/leaderboard/internal/models"
)

// rankingCategory names a ranked list and how its values print.
type rankingCategory struct {
	name   string
	title  string
	pick   func(models.Rankings) []models.RankEntry
	format func(models.RankEntry) string
}

var rankingCategories = []rankingCategory{
	{"overall", "Overall Score", func(r models.Rankings) []models.RankEntry { return r.Overall },
		func(e models.RankEntry) string { return fmt.Sprintf("%.3f (%d datasets)", e.Value, e.NumDatasets) }},
	{"accuracy", "Accuracy (MAE)", func(r models.Rankings) []models.RankEntry { return r.Accuracy },
		func(e models.RankEntry) string { return fmt.Sprintf("%.3f ± %.3f eV", e.Value, e.Std) }},
	{"success_rate", "Success Rate", func(r models.Rankings) []models.RankEntry { return r.SuccessRate },
		func(e models.RankEntry) string { return fmt.Sprintf("%.1f ± %.1f%%", e.Value, e.Std) }},
	{"speed", "Speed", func(r models.Rankings) []models.RankEntry { return r.Speed },
		func(e models.RankEntry) string { return fmt.Sprintf("%.4f ± %.4f s/step", e.Value, e.Std) }},
	{"coverage", "Coverage", func(r models.Rankings) []models.RankEntry { return r.Coverage },
		func(e models.RankEntry) string { return fmt.Sprintf("%d datasets", int(e.Value)) }},
}

func newRankingsCommand() *cobra.Command {
	var category string
	var format string
	var docPath string

	cmd := &cobra.Command{
		Use:   "rankings",
		Short: "Print model rankings from the generated leaderboard",
		Long: `Print the per-category model rankings from the generated leaderboard.

Categories: overall, accuracy, success_rate, speed, coverage. With no
--category, all categories print.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "table" && format != "json" {
				return fmt.Errorf("unsupported format %q: must be table or json", format)
			}

			_, store, err := openStore(docPath)
			if err != nil {
				return err
			}
			doc, err := store.Document()
			if err != nil {
				return err
			}

			if format == "json" {
				return printJSON(cmd, doc.Rankings)
			}

			out := cmd.OutOrStdout()
			printed := 0
			for _, cat := range rankingCategories {
				if category != "" && cat.name != category {
					continue
				}
				if printed > 0 {
					fmt.Fprintln(out)
				}
				printRanking(out, cat, cat.pick(doc.Rankings))
				printed++
			}
			if printed == 0 {
				return fmt.Errorf("unknown category %q", category)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Only this category")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table or json")
	cmd.Flags().StringVar(&docPath, "data", "", "Leaderboard JSON path (default: <output dir>/leaderboard_data.json)")

	return cmd
}

func printRanking(out writer, cat rankingCategory, entries []models.RankEntry) {
	fmt.Fprintf(out, "%s\n", cat.title)
	fmt.Fprintln(out, strings.Repeat("-", len(cat.title)))
	if len(entries) == 0 {
		fmt.Fprintln(out, "  (no entries)")
		return
	}

	nameWidth := 0
	for _, e := range entries {
		if len(e.MLIP) > nameWidth {
			nameWidth = len(e.MLIP)
		}
	}
	for i, e := range entries {
		fmt.Fprintf(out, "  %2d. %s  %s\n", i+1, padCell(e.MLIP, nameWidth), cat.format(e))
	}
}

type writer = interface{ Write([]byte) (int, error) }
