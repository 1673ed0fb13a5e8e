package ingest

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/catbench/leaderboard/internal/models"
)

// Cells below this magnitude are numerical noise from the solver and clamp
// to zero.
const zeroClamp = 1e-10

// readCSV reads all records from a CSV file. Rows may have ragged lengths;
// sheet exports pad short rows with empty cells to the header width later.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: parse %s: %w", path, err)
	}
	return records, nil
}

// loadTable reads a breakdown sheet export into a BreakdownTable, resolving
// single- or two-row headers.
//
// Workbook exports carry merged header cells: the top row names a metric
// group and the second row its sub-columns, with merged cells arriving as a
// value followed by blanks. The blanks forward-fill, and the two rows combine
// to "H1 - H2" column names. A group header repeated verbatim into its own
// sub-row stays a bare "A"; other exporters emit the self-referential
// "A - A" form instead, which the row projector collapses on read.
func loadTable(path string) (*models.BreakdownTable, error) {
	records, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv: %s is empty (no header row)", path)
	}

	headerRow := records[0]
	var columns []string
	var dataRows [][]string

	if len(records) >= 2 && isHeaderRow(records[1]) {
		columns = combineHeaders(headerRow, records[1])
		dataRows = records[2:]
	} else {
		columns = make([]string, len(headerRow))
		for i, h := range headerRow {
			if h == "" {
				h = fmt.Sprintf("Column %d", i+1)
			}
			columns[i] = h
		}
		dataRows = records[1:]
	}

	data := make([][]any, 0, len(dataRows))
	for _, row := range dataRows {
		cells := make([]any, len(columns))
		for i := range columns {
			if i < len(row) {
				cells[i] = parseCell(row[i])
			} else {
				cells[i] = ""
			}
		}
		data = append(data, cells)
	}

	return &models.BreakdownTable{Columns: columns, Data: data}, nil
}

// isHeaderRow reports whether a row looks like a second header row: it has
// text but no numeric cells. Data rows always carry at least one number.
func isHeaderRow(row []string) bool {
	hasText := false
	for _, cell := range row {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		if _, err := strconv.ParseFloat(cell, 64); err == nil {
			return false
		}
		hasText = true
	}
	return hasText
}

// combineHeaders merges a two-row header into flat column names. Merged
// cells in the top row forward-fill across their blank continuation cells.
// "Anomaly count" groups get their detection scheme suffixed; a bare group
// cell becomes the total column.
func combineHeaders(top, sub []string) []string {
	width := len(top)
	if len(sub) > width {
		width = len(sub)
	}

	columns := make([]string, 0, width)
	fill := ""
	for i := 0; i < width; i++ {
		h1 := ""
		if i < len(top) {
			h1 = strings.TrimSpace(top[i])
		}
		if h1 == "" {
			h1 = fill
		} else {
			fill = h1
		}
		h2 := ""
		if i < len(sub) {
			h2 = strings.TrimSpace(sub[i])
		}

		switch {
		case h1 == "Anomaly count" && h2 != "":
			columns = append(columns, "Anomaly count - "+h2)
		case h1 == "Anomaly count":
			columns = append(columns, "Anomaly count - total")
		case h1 != "" && h2 != "" && h1 != h2:
			columns = append(columns, h1+" - "+h2)
		case h1 != "":
			columns = append(columns, h1)
		case h2 != "":
			columns = append(columns, h2)
		default:
			columns = append(columns, fmt.Sprintf("Column %d", i+1))
		}
	}
	return columns
}

// parseCell converts a CSV cell to float64 when numeric, otherwise keeps the
// trimmed string. Empty cells stay empty strings.
func parseCell(cell string) any {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return ""
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return trimmed
	}
	if math.Abs(v) < zeroClamp {
		return 0.0
	}
	return v
}
