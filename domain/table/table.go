// Package table holds the in-memory tabular data model shared by every
// pipeline stage. A Table is an ordered sequence of rows over a fixed
// column order; cells are typed Values with an explicit missing marker.
package table

import "fmt"

// Row maps a column name to its cell value
type Row map[string]Value

// Clone returns a deep copy of the row
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is the single in-flight dataset passed between pipeline stages.
// Columns fixes the column order; every row shares the same schema.
type Table struct {
	Columns []string
	Rows    []Row
}

// New creates an empty table with the given column order
func New(columns ...string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols}
}

// Append adds a row to the table
func (t *Table) Append(r Row) {
	t.Rows = append(t.Rows, r)
}

// NumRows returns the number of rows
func (t *Table) NumRows() int { return len(t.Rows) }

// NumColumns returns the number of columns
func (t *Table) NumColumns() int { return len(t.Columns) }

// HasColumn reports whether the table declares the named column
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the table
func (t *Table) Clone() *Table {
	out := New(t.Columns...)
	out.Rows = make([]Row, len(t.Rows))
	for i, r := range t.Rows {
		out.Rows[i] = r.Clone()
	}
	return out
}

// Column returns the vertical slice for the named column, in row order
func (t *Table) Column(name string) []Value {
	out := make([]Value, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r[name]
	}
	return out
}

// NumericColumn returns the non-missing numeric values of a column, in
// row order. Missing and non-numeric cells are skipped.
func (t *Table) NumericColumn(name string) []float64 {
	var out []float64
	for _, r := range t.Rows {
		if v := r[name]; v.IsNumeric() {
			out = append(out, v.AsFloat64())
		}
	}
	return out
}

// MissingCount returns how many cells in the named column are missing
func (t *Table) MissingCount(name string) int {
	count := 0
	for _, r := range t.Rows {
		if r[name].IsMissing {
			count++
		}
	}
	return count
}

// MissingCounts returns the per-column missing cell counts
func (t *Table) MissingCounts() map[string]int {
	out := make(map[string]int, len(t.Columns))
	for _, c := range t.Columns {
		out[c] = t.MissingCount(c)
	}
	return out
}

// DistinctStrings returns the distinct non-missing string values of a
// column in first-seen order. The order is deterministic because rows
// are always visited top to bottom.
func (t *Table) DistinctStrings(name string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range t.Rows {
		v := r[name]
		if !v.IsString() {
			continue
		}
		s := v.AsString()
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// AddColumn appends a new column, filling every row with the given
// default value. Fails if the column already exists.
func (t *Table) AddColumn(name string, fill Value) error {
	if t.HasColumn(name) {
		return fmt.Errorf("column %q already exists", name)
	}
	t.Columns = append(t.Columns, name)
	for _, r := range t.Rows {
		r[name] = fill
	}
	return nil
}

// DropColumns removes the named columns from the schema and every row.
// Unknown names are ignored.
func (t *Table) DropColumns(names ...string) {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	kept := t.Columns[:0]
	for _, c := range t.Columns {
		if !drop[c] {
			kept = append(kept, c)
		}
	}
	t.Columns = kept
	for _, r := range t.Rows {
		for n := range drop {
			delete(r, n)
		}
	}
}

// ReplaceColumn swaps one column for a set of new columns at the same
// schema position. Used by one-hot expansion. The new columns' cell
// values must already be present in every row.
func (t *Table) ReplaceColumn(name string, with []string) error {
	idx := -1
	for i, c := range t.Columns {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("column %q not found", name)
	}
	cols := make([]string, 0, len(t.Columns)-1+len(with))
	cols = append(cols, t.Columns[:idx]...)
	cols = append(cols, with...)
	cols = append(cols, t.Columns[idx+1:]...)
	t.Columns = cols
	for _, r := range t.Rows {
		delete(r, name)
	}
	return nil
}

// Filter returns a new table containing the rows for which keep returns
// true. Column order is preserved; rows are shared, not copied.
func (t *Table) Filter(keep func(Row) bool) *Table {
	out := New(t.Columns...)
	for _, r := range t.Rows {
		if keep(r) {
			out.Append(r)
		}
	}
	return out
}

// Select returns a new table containing the rows at the given indices
func (t *Table) Select(indices []int) *Table {
	out := New(t.Columns...)
	for _, i := range indices {
		out.Append(t.Rows[i])
	}
	return out
}
