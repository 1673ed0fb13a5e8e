// Package reporting renders human-readable views of a leaderboard document:
// the plain-text summary report written next to the JSON artifact, and an
// HTML report page for the web UI.
package reporting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/catbench/leaderboard/internal/models"
)

// SummaryFileName is the text report written alongside the document.
const SummaryFileName = "summary_report.txt"

// topN is how many entries each category section lists.
const topN = 5

// SummaryReport produces the plain-text summary of a leaderboard document:
// generation metadata plus the top performers in each ranking category.
func SummaryReport(doc *models.Document) string {
	var b strings.Builder
	rule := strings.Repeat("=", 80)

	b.WriteString(rule + "\n")
	b.WriteString("CATBENCH LEADERBOARD SUMMARY\n")
	b.WriteString(rule + "\n")
	b.WriteString(fmt.Sprintf("Generated: %s\n", doc.Metadata.GeneratedAt.Format("2006-01-02 15:04:05")))
	b.WriteString(fmt.Sprintf("Total MLIPs evaluated: %d\n", doc.Metadata.NumMLIPs))
	b.WriteString(fmt.Sprintf("Total datasets: %d\n", doc.Metadata.NumDatasets))
	b.WriteString("\n")

	b.WriteString("TOP PERFORMERS BY CATEGORY\n")
	b.WriteString(strings.Repeat("-", 40) + "\n")

	writeCategory(&b, "Overall Score", doc.Rankings.Overall, func(e models.RankEntry) string {
		return fmt.Sprintf("%s: %.3f (%d datasets)", e.MLIP, e.Value, e.NumDatasets)
	})
	writeCategory(&b, "Best Accuracy (MAE)", doc.Rankings.Accuracy, func(e models.RankEntry) string {
		return fmt.Sprintf("%s: %.3f ± %.3f eV", e.MLIP, e.Value, e.Std)
	})
	writeCategory(&b, "Highest Success Rate", doc.Rankings.SuccessRate, func(e models.RankEntry) string {
		return fmt.Sprintf("%s: %.1f ± %.1f%%", e.MLIP, e.Value, e.Std)
	})
	writeCategory(&b, "Fastest Models", doc.Rankings.Speed, func(e models.RankEntry) string {
		return fmt.Sprintf("%s: %.4f ± %.4f s/step", e.MLIP, e.Value, e.Std)
	})
	writeCategory(&b, "Best Coverage", doc.Rankings.Coverage, func(e models.RankEntry) string {
		return fmt.Sprintf("%s: %d datasets", e.MLIP, int(e.Value))
	})

	b.WriteString("\n" + rule + "\n")
	return b.String()
}

func writeCategory(b *strings.Builder, title string, entries []models.RankEntry, format func(models.RankEntry) string) {
	if len(entries) == 0 {
		return
	}
	b.WriteString(fmt.Sprintf("\n%s:\n", title))
	for i, e := range entries {
		if i >= topN {
			break
		}
		b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, format(e)))
	}
}

// WriteSummary renders the summary report and writes it into outputDir.
// It returns the path of the written file.
func WriteSummary(doc *models.Document, outputDir string) (string, error) {
	path := filepath.Join(outputDir, SummaryFileName)
	if err := os.WriteFile(path, []byte(SummaryReport(doc)), 0o644); err != nil {
		return "", fmt.Errorf("writing summary report: %w", err)
	}
	return path, nil
}
