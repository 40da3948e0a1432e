// Package table provides the in-memory tabular model shared by all
// pipeline stages: an ordered column schema over row-major cells with
// explicit null handling.
package table

import (
	"fmt"
	"sort"
)

// Table is an ordered collection of rows sharing one column schema.
// Row order is preserved across operations but carries no meaning.
type Table struct {
	cols []string
	rows [][]Value
}

// New creates an empty table with the given column schema.
func New(columns ...string) *Table {
	t := &Table{cols: make([]string, len(columns))}
	copy(t.cols, columns)
	return t
}

// Columns returns the column names in schema order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.cols))
	copy(out, t.cols)
	return out
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// ColumnIndex returns the position of a column, or -1 if absent.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.cols {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the schema contains the named column.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// AppendRow adds one row. Short rows are padded with nulls; long rows
// are an error since they indicate a malformed source sheet.
func (t *Table) AppendRow(cells []Value) error {
	if len(cells) > len(t.cols) {
		return fmt.Errorf("row has %d cells, schema has %d columns", len(cells), len(t.cols))
	}
	row := make([]Value, len(t.cols))
	copy(row, cells)
	t.rows = append(t.rows, row)
	return nil
}

// Get returns the cell at (row, column name). Absent columns read as null.
func (t *Table) Get(row int, col string) Value {
	i := t.ColumnIndex(col)
	if i < 0 {
		return Null
	}
	return t.rows[row][i]
}

// Set writes the cell at (row, column name). Setting an absent column
// is an error.
func (t *Table) Set(row int, col string, v Value) error {
	i := t.ColumnIndex(col)
	if i < 0 {
		return fmt.Errorf("no such column %q", col)
	}
	t.rows[row][i] = v
	return nil
}

// AddColumn appends a new column filled with the given value for every
// existing row. Adding a column that already exists is an error.
func (t *Table) AddColumn(name string, fill Value) error {
	if t.HasColumn(name) {
		return fmt.Errorf("column %q already exists", name)
	}
	t.cols = append(t.cols, name)
	for i := range t.rows {
		t.rows[i] = append(t.rows[i], fill)
	}
	return nil
}

// RenameColumn renames a column in place. Renaming an absent column is
// a no-op so callers can apply fix-up maps tolerantly.
func (t *Table) RenameColumn(from, to string) {
	if i := t.ColumnIndex(from); i >= 0 {
		t.cols[i] = to
	}
}

// Concat appends all rows of other, aligning columns by name. Columns
// present in only one table are padded with nulls, matching how
// heterogeneous source files union into one schema.
func (t *Table) Concat(other *Table) {
	for _, c := range other.cols {
		if !t.HasColumn(c) {
			t.cols = append(t.cols, c)
			for i := range t.rows {
				t.rows[i] = append(t.rows[i], Null)
			}
		}
	}
	for r := 0; r < other.Len(); r++ {
		row := make([]Value, len(t.cols))
		for i, c := range other.cols {
			row[t.ColumnIndex(c)] = other.rows[r][i]
		}
		t.rows = append(t.rows, row)
	}
}

// Select returns a new table holding only the named columns, in the
// given order. Requesting an absent column is an error.
func (t *Table) Select(columns ...string) (*Table, error) {
	idx := make([]int, len(columns))
	for i, c := range columns {
		j := t.ColumnIndex(c)
		if j < 0 {
			return nil, fmt.Errorf("no such column %q", c)
		}
		idx[i] = j
	}
	out := New(columns...)
	for _, row := range t.rows {
		cells := make([]Value, len(idx))
		for i, j := range idx {
			cells[i] = row[j]
		}
		out.rows = append(out.rows, cells)
	}
	return out, nil
}

// Filter returns a new table holding the rows for which keep returns true.
func (t *Table) Filter(keep func(row int) bool) *Table {
	out := New(t.cols...)
	for i, row := range t.rows {
		if keep(i) {
			cells := make([]Value, len(row))
			copy(cells, row)
			out.rows = append(out.rows, cells)
		}
	}
	return out
}

// SortBy sorts rows in place using the comparison less(i, j) over row
// indexes. The sort is stable.
func (t *Table) SortBy(less func(i, j int) bool) {
	sort.SliceStable(t.rows, func(i, j int) bool { return less(i, j) })
}

// Row returns a copy of row i's cells in schema order.
func (t *Table) Row(i int) []Value {
	out := make([]Value, len(t.rows[i]))
	copy(out, t.rows[i])
	return out
}

// NullCounts returns the number of null cells per column, keyed by
// column name.
func (t *Table) NullCounts() map[string]int {
	counts := make(map[string]int, len(t.cols))
	for _, c := range t.cols {
		counts[c] = 0
	}
	for _, row := range t.rows {
		for i, v := range row {
			if v.IsNull() {
				counts[t.cols[i]]++
			}
		}
	}
	return counts
}
