package render

import (
	"fmt"
	"io"
	"strings"
)

// Cell is one table entry: plain text plus the severity used for
// terminal styling. Widths are computed on the plain text so ANSI
// escapes never skew column alignment.
type Cell struct {
	Text string
	Sev  Severity
}

// PlainCell returns an unstyled cell.
func PlainCell(text string) Cell {
	return Cell{Text: text}
}

// Table renders rows of cells as a markdown table: first column
// left-aligned, the rest right-aligned.
type Table struct {
	headers []string
	rows    [][]Cell
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

// AddRow appends one row; it must have as many cells as there are
// headers.
func (t *Table) AddRow(cells ...Cell) {
	t.rows = append(t.rows, cells)
}

// WriteMarkdown writes the table, styling cells through st.
func (t *Table) WriteMarkdown(w io.Writer, st Style) error {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if len(cell.Text) > widths[i] {
				widths[i] = len(cell.Text)
			}
		}
	}

	// header row
	parts := make([]string, len(t.headers))
	for i, h := range t.headers {
		if i == 0 {
			parts[i] = fmt.Sprintf("%-*s", widths[i], h)
		} else {
			parts[i] = fmt.Sprintf("%*s", widths[i], h)
		}
	}
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(parts, " | ")); err != nil {
		return err
	}

	// separator: ":---" for the left-aligned column, "---:" for the rest
	for i, width := range widths {
		dashes := width - 1
		if dashes < 1 {
			dashes = 1
		}
		if i == 0 {
			parts[i] = ":" + strings.Repeat("-", dashes)
		} else {
			parts[i] = strings.Repeat("-", dashes) + ":"
		}
	}
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(parts, " | ")); err != nil {
		return err
	}

	for _, row := range t.rows {
		for i, cell := range row {
			var padded string
			if i == 0 {
				padded = fmt.Sprintf("%-*s", widths[i], cell.Text)
			} else {
				padded = fmt.Sprintf("%*s", widths[i], cell.Text)
			}
			// Pad first so escape sequences sit outside the alignment.
			parts[i] = st.Paint(padded, cell.Sev)
		}
		if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(parts, " | ")); err != nil {
			return err
		}
	}

	return nil
}
