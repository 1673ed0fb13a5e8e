package normalize

import (
	"fmt"
	"strings"

	"github.com/catbench/leaderboard/internal/models"
)

// Row is a single table row keyed by column name.
type Row map[string]any

// collapseSep joins the two header halves of a merged workbook header.
// A column named "A - A" (both halves identical) is a self-referential
// artifact of merged-cell extraction; the intended name is just "A".
const collapseSep = " - "

// ProjectRows converts a columns-plus-rows breakdown table into keyed row
// objects.
//
// Returns (nil, nil) when the table or its columns/data are absent, so
// callers can tell "no data" apart from an empty table. When a column name
// collapses (its halves around " - " are identical), the value is stored
// under both the collapsed name and the original name — older consumers key
// on the uncollapsed form.
//
// A row whose length does not match the column count is a malformed table
// and returns an error.
func ProjectRows(table *models.BreakdownTable) ([]Row, error) {
	if table == nil || table.Columns == nil || table.Data == nil {
		return nil, nil
	}

	rows := make([]Row, 0, len(table.Data))
	for i, cells := range table.Data {
		if len(cells) != len(table.Columns) {
			return nil, fmt.Errorf("malformed table: row %d has %d cells, expected %d",
				i, len(cells), len(table.Columns))
		}
		row := make(Row, len(table.Columns))
		for j, col := range table.Columns {
			if collapsed, ok := collapseColumn(col); ok {
				row[collapsed] = cells[j]
			}
			row[col] = cells[j]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// collapseColumn reports whether col is of the form "A - A" and returns A.
func collapseColumn(col string) (string, bool) {
	head, tail, found := strings.Cut(col, collapseSep)
	if !found || head != tail {
		return "", false
	}
	return head, true
}
