// Package output provides terminal formatting helpers for crateup:
// a Unicode-aware table formatter and a carriage-return progress line.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Column is one table column: header text, the width it has grown to, and
// whether it is rendered.
type Column struct {
	Header string
	Width  int
	hidden bool
}

// Table formats aligned rows with dynamic column widths. Widths are measured
// in terminal cells rather than bytes, so crate names with wide runes and
// emoji status icons line up.
type Table struct {
	columns   []Column
	separator string
}

// NewTable returns an empty table with a two-space column separator.
//
// Returns:
//   - *Table: A table ready for column configuration
func NewTable() *Table {
	return &Table{separator: "  "}
}

// WithSeparator replaces the column separator.
//
// Parameters:
//   - sep: The string placed between columns
//
// Returns:
//   - *Table: The table, for chaining
func (t *Table) WithSeparator(sep string) *Table {
	t.separator = sep
	return t
}

// AddColumn appends a visible column sized to its header.
//
// Parameters:
//   - header: The column header text
//
// Returns:
//   - *Table: The table, for chaining
func (t *Table) AddColumn(header string) *Table {
	return t.add(header, 0, false)
}

// AddColumnWithMinWidth appends a visible column that never shrinks below
// minWidth, keeping narrow columns stable while rows stream in.
//
// Parameters:
//   - header: The column header text
//   - minWidth: Floor for the column width in cells
//
// Returns:
//   - *Table: The table, for chaining
func (t *Table) AddColumnWithMinWidth(header string, minWidth int) *Table {
	return t.add(header, minWidth, false)
}

// AddConditionalColumn appends a column that renders only when visible is
// true, for data that may not be present (a CRATE column only shown when a
// dependency is renamed).
//
// Parameters:
//   - header: The column header text
//   - visible: Whether the column renders
//
// Returns:
//   - *Table: The table, for chaining
func (t *Table) AddConditionalColumn(header string, visible bool) *Table {
	return t.add(header, 0, !visible)
}

func (t *Table) add(header string, minWidth int, hidden bool) *Table {
	width := max(DisplayWidth(header), minWidth)
	t.columns = append(t.columns, Column{Header: header, Width: width, hidden: hidden})
	return t
}

// UpdateWidths grows column widths to fit a data row. Values map to columns
// by position; extra values are ignored.
//
// Parameters:
//   - values: One cell per column
//
// Returns:
//   - *Table: The table, for chaining
func (t *Table) UpdateWidths(values ...string) *Table {
	for i, val := range values {
		if i >= len(t.columns) {
			break
		}
		t.columns[i].Width = max(t.columns[i].Width, DisplayWidth(val))
	}
	return t
}

// HeaderRow renders the padded header line, skipping hidden columns.
//
// Returns:
//   - string: The header row
func (t *Table) HeaderRow() string {
	return t.row(func(i int) string { return t.columns[i].Header })
}

// SeparatorRow renders a dash run per visible column.
//
// Returns:
//   - string: The separator row
func (t *Table) SeparatorRow() string {
	var parts []string
	for _, col := range t.columns {
		if !col.hidden {
			parts = append(parts, strings.Repeat("-", col.Width))
		}
	}
	return strings.Join(parts, t.separator)
}

// FormatRow renders one data row. Values map to columns by position,
// hidden columns included, so callers always pass one value per configured
// column; missing values render empty.
//
// Parameters:
//   - values: One cell per column
//
// Returns:
//   - string: The padded row
func (t *Table) FormatRow(values ...string) string {
	return t.row(func(i int) string {
		if i < len(values) {
			return values[i]
		}
		return ""
	})
}

// row assembles visible cells supplied by value, padded to column width.
func (t *Table) row(value func(i int) string) string {
	var parts []string
	for i, col := range t.columns {
		if !col.hidden {
			parts = append(parts, ToWidth(value(i), col.Width))
		}
	}
	return strings.Join(parts, t.separator)
}

// Fprint writes the header and separator rows to w.
//
// Parameters:
//   - w: Destination writer
func (t *Table) Fprint(w io.Writer) {
	_, _ = fmt.Fprintln(w, t.HeaderRow())
	_, _ = fmt.Fprintln(w, t.SeparatorRow())
}

// DisplayWidth measures a string in terminal cells, counting wide runes and
// emoji as two.
//
// Parameters:
//   - s: The string to measure
//
// Returns:
//   - int: Width in cells
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// ToWidth pads s with trailing spaces up to width cells. Strings already at
// or past the target come back unchanged.
//
// Parameters:
//   - s: The string to pad
//   - width: Target width in cells
//
// Returns:
//   - string: The padded string
func ToWidth(s string, width int) string {
	if pad := width - DisplayWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}
