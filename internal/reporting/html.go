package reporting

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/catbench/leaderboard/internal/models"
)

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// MarkdownReport renders a leaderboard document as a GitHub-flavored markdown
// page: a full overall-ranking table plus top-performer sections per category.
func MarkdownReport(doc *models.Document) string {
	var b strings.Builder

	b.WriteString("# CatBench Leaderboard\n\n")
	b.WriteString(fmt.Sprintf("Generated %s · %d MLIPs · %d datasets\n\n",
		doc.Metadata.GeneratedAt.Format("2006-01-02 15:04 UTC"),
		doc.Metadata.NumMLIPs, doc.Metadata.NumDatasets))

	if len(doc.Rankings.Overall) > 0 {
		b.WriteString("## Overall Ranking\n\n")
		b.WriteString("| Rank | MLIP | Score | Datasets |\n")
		b.WriteString("| ---: | :--- | ---: | ---: |\n")
		for i, e := range doc.Rankings.Overall {
			b.WriteString(fmt.Sprintf("| %d | %s | %.3f | %d |\n", i+1, e.MLIP, e.Value, e.NumDatasets))
		}
		b.WriteString("\n")
	}

	writeMarkdownCategory(&b, "Best Accuracy (MAE)", "MAE (eV)", doc.Rankings.Accuracy, "%.3f ± %.3f")
	writeMarkdownCategory(&b, "Highest Success Rate", "Rate (%)", doc.Rankings.SuccessRate, "%.1f ± %.1f")
	writeMarkdownCategory(&b, "Fastest Models", "Time (s/step)", doc.Rankings.Speed, "%.4f ± %.4f")

	return b.String()
}

func writeMarkdownCategory(b *strings.Builder, title, valueHeader string, entries []models.RankEntry, valueFormat string) {
	if len(entries) == 0 {
		return
	}
	b.WriteString(fmt.Sprintf("## %s\n\n", title))
	b.WriteString(fmt.Sprintf("| Rank | MLIP | %s |\n", valueHeader))
	b.WriteString("| ---: | :--- | ---: |\n")
	for i, e := range entries {
		if i >= topN {
			break
		}
		b.WriteString(fmt.Sprintf("| %d | %s | %s |\n", i+1, e.MLIP, fmt.Sprintf(valueFormat, e.Value, e.Std)))
	}
	b.WriteString("\n")
}

// RenderHTML converts markdown source to an HTML fragment.
func RenderHTML(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := md.Convert(source, &buf); err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.Bytes(), nil
}

// HTMLReport renders the full document report as an HTML fragment.
func HTMLReport(doc *models.Document) ([]byte, error) {
	return RenderHTML([]byte(MarkdownReport(doc)))
}
