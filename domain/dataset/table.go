package dataset

import (
	"fmt"
	"math"

	"anovakit/domain/core"
)

// Table is the canonical in-memory tabular dataset: named float64 columns of
// equal length, NaN marking a missing cell. Columns keep insertion order.
type Table struct {
	Name     string
	Source   string // file path or other origin, informational
	LoadedAt core.Timestamp

	keys   []core.ColumnKey
	values map[core.ColumnKey][]float64
	rows   int
}

// NewTable creates an empty table
func NewTable(name string) *Table {
	return &Table{
		Name:     name,
		LoadedAt: core.Now(),
		values:   make(map[core.ColumnKey][]float64),
	}
}

// AddColumn appends a column. The first column fixes the row count.
func (t *Table) AddColumn(key core.ColumnKey, values []float64) error {
	if key == "" {
		return core.NewArgumentError("column", "empty column name")
	}
	if _, exists := t.values[key]; exists {
		return core.NewArgumentError("column", fmt.Sprintf("duplicate column %q", key))
	}
	if len(t.keys) > 0 && len(values) != t.rows {
		return core.NewArgumentError("column", fmt.Sprintf("column %q has %d rows, expected %d", key, len(values), t.rows))
	}

	col := make([]float64, len(values))
	copy(col, values)

	t.keys = append(t.keys, key)
	t.values[key] = col
	t.rows = len(values)
	return nil
}

// Column returns a copy of a column's values
func (t *Table) Column(key core.ColumnKey) ([]float64, error) {
	col, ok := t.values[key]
	if !ok {
		return nil, core.NewColumnNotFoundError(key.String())
	}
	out := make([]float64, len(col))
	copy(out, col)
	return out, nil
}

// Columns returns the column keys in insertion order
func (t *Table) Columns() []core.ColumnKey {
	out := make([]core.ColumnKey, len(t.keys))
	copy(out, t.keys)
	return out
}

// HasColumn reports whether key exists
func (t *Table) HasColumn(key core.ColumnKey) bool {
	_, ok := t.values[key]
	return ok
}

// Row returns row i restricted to the given columns, in the given order
func (t *Table) Row(i int, keys ...core.ColumnKey) ([]float64, error) {
	if i < 0 || i >= t.rows {
		return nil, core.NewArgumentError("row", fmt.Sprintf("index %d out of range [0,%d)", i, t.rows))
	}
	out := make([]float64, len(keys))
	for j, key := range keys {
		col, ok := t.values[key]
		if !ok {
			return nil, core.NewColumnNotFoundError(key.String())
		}
		out[j] = col[i]
	}
	return out, nil
}

// MissingCount returns the number of NaN cells in a column
func (t *Table) MissingCount(key core.ColumnKey) (int, error) {
	col, ok := t.values[key]
	if !ok {
		return 0, core.NewColumnNotFoundError(key.String())
	}
	missing := 0
	for _, v := range col {
		if math.IsNaN(v) {
			missing++
		}
	}
	return missing, nil
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return t.rows
}

// ColumnCount returns the number of columns
func (t *Table) ColumnCount() int {
	return len(t.keys)
}

// Fingerprint hashes the table content for run reports
func (t *Table) Fingerprint() core.Hash {
	cols := make(map[string][]float64, len(t.values))
	for k, v := range t.values {
		cols[k.String()] = v
	}
	return core.ComputeColumnsHash(cols)
}
