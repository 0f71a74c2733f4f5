// Package dataset provides the in-memory tabular model the pipeline works on:
// named columns over string-valued rows, read from and written to delimited
// text or exported HTML tables.
package dataset

import "fmt"

// Dataset is a rectangular table of string values with named columns.
// Mutating methods never touch rows shared with a clone's parent; callers
// that need the original unchanged work on Clone().
type Dataset struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// New builds an empty dataset with the given column names.
func New(columns ...string) *Dataset {
	d := &Dataset{
		columns: append([]string(nil), columns...),
		index:   make(map[string]int, len(columns)),
	}
	for i, name := range d.columns {
		d.index[name] = i
	}
	return d
}

// Columns returns the column names in order.
func (d *Dataset) Columns() []string {
	return append([]string(nil), d.columns...)
}

// HasColumn reports whether a column with the given name exists.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.rows)
}

// AppendRow adds one row; its width must match the column count.
func (d *Dataset) AppendRow(row []string) error {
	if len(row) != len(d.columns) {
		return fmt.Errorf("row has %d values, dataset has %d columns", len(row), len(d.columns))
	}
	d.rows = append(d.rows, append([]string(nil), row...))
	return nil
}

// Value returns the cell at row i of the named column.
func (d *Dataset) Value(i int, column string) (string, error) {
	idx, ok := d.index[column]
	if !ok {
		return "", fmt.Errorf("unknown column %q", column)
	}
	if i < 0 || i >= len(d.rows) {
		return "", fmt.Errorf("row %d out of range (%d rows)", i, len(d.rows))
	}
	return d.rows[i][idx], nil
}

// Column returns a copy of the named column's values.
func (d *Dataset) Column(name string) ([]string, error) {
	idx, ok := d.index[name]
	if !ok {
		return nil, fmt.Errorf("unknown column %q", name)
	}
	values := make([]string, len(d.rows))
	for i, row := range d.rows {
		values[i] = row[idx]
	}
	return values, nil
}

// SetColumn adds a new column or overwrites an existing one with the given
// values, which must cover every row.
func (d *Dataset) SetColumn(name string, values []string) error {
	if len(values) != len(d.rows) {
		return fmt.Errorf("column %q has %d values, dataset has %d rows", name, len(values), len(d.rows))
	}
	if idx, ok := d.index[name]; ok {
		for i := range d.rows {
			d.rows[i][idx] = values[i]
		}
		return nil
	}
	d.index[name] = len(d.columns)
	d.columns = append(d.columns, name)
	for i := range d.rows {
		d.rows[i] = append(d.rows[i], values[i])
	}
	return nil
}

// Clone returns a deep copy the caller may mutate freely.
func (d *Dataset) Clone() *Dataset {
	out := New(d.columns...)
	out.rows = make([][]string, len(d.rows))
	for i, row := range d.rows {
		out.rows[i] = append([]string(nil), row...)
	}
	return out
}

// Head returns a copy containing at most n leading rows.
func (d *Dataset) Head(n int) *Dataset {
	if n > len(d.rows) {
		n = len(d.rows)
	}
	out := New(d.columns...)
	for _, row := range d.rows[:n] {
		out.rows = append(out.rows, append([]string(nil), row...))
	}
	return out
}

// Select returns a copy containing only rows where keep[i] is true.
// keep must cover every row.
func (d *Dataset) Select(keep []bool) (*Dataset, error) {
	if len(keep) != len(d.rows) {
		return nil, fmt.Errorf("keep mask has %d entries, dataset has %d rows", len(keep), len(d.rows))
	}
	out := New(d.columns...)
	for i, row := range d.rows {
		if keep[i] {
			out.rows = append(out.rows, append([]string(nil), row...))
		}
	}
	return out, nil
}
