package render

import (
	"strings"

	"github.com/nao1215/weeklyreport/internal/model"
)

// TableRows renders records as indented multi-line rows, one cell per column
// in the given order. Missing columns render as empty cells.
func TableRows(records []model.Record, columns []string) string {
	var sb strings.Builder
	for _, rec := range records {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = "<td>" + rec.Get(col) + "</td>"
		}
		sb.WriteString("      <tr>\n        ")
		sb.WriteString(strings.Join(cells, "\n        "))
		sb.WriteString("\n      </tr>\n")
	}
	return sb.String()
}

// TableBody wraps rows produced by TableRows as <tbody> content.
func TableBody(rows string) string {
	return "\n" + rows + "    "
}

// CompactRows renders each record as a single-line row.
func CompactRows(records []model.Record, columns []string) string {
	var sb strings.Builder
	for _, rec := range records {
		sb.WriteString("<tr>")
		for _, col := range columns {
			sb.WriteString("<td>")
			sb.WriteString(rec.Get(col))
			sb.WriteString("</td>")
		}
		sb.WriteString("</tr>\n      ")
	}
	return sb.String()
}

// CompactTableBody wraps rows produced by CompactRows as <tbody> content.
func CompactTableBody(rows string) string {
	return "\n      " + rows
}

// WatchlistRows renders watchlist items with the focus column in bold.
func WatchlistRows(records []model.Record) string {
	var sb strings.Builder
	for _, rec := range records {
		sb.WriteString("      <tr>\n")
		sb.WriteString("        <td><strong>" + rec.Get("focus") + "</strong></td>\n")
		sb.WriteString("        <td>" + rec.Get("timing") + "</td>\n")
		sb.WriteString("        <td>" + rec.Get("impact") + "</td>\n")
		sb.WriteString("      </tr>\n")
	}
	return sb.String()
}
