// Package table holds the numeric tables that experiment runs log, one
// named column per statistic and one row per generation.
package table

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrNoSuchColumn    = errors.New("no such column")
	ErrDuplicateColumn = errors.New("duplicate column")
	ErrEmptyColumnName = errors.New("empty column name")
	ErrRaggedColumns   = errors.New("columns have different lengths")
)

// Series is a single ordered sequence of values, usually one metric over
// generations.
type Series []float64

// Table is an ordered set of named numeric columns sharing a row count.
// A Table is not modified after construction; accessors hand out copies.
type Table struct {
	names []string
	cols  [][]float64
	index map[string]int
}

// New builds a table from column names and column data. cols[i] holds the
// values of names[i]. The slices are copied.
func New(names []string, cols [][]float64) (*Table, error) {
	if len(names) != len(cols) {
		return nil, fmt.Errorf("%d column names for %d columns", len(names), len(cols))
	}
	t := &Table{
		names: make([]string, len(names)),
		cols:  make([][]float64, len(cols)),
		index: make(map[string]int, len(names)),
	}
	for i, name := range names {
		if name == "" {
			return nil, fmt.Errorf("%w: column %d", ErrEmptyColumnName, i)
		}
		if _, ok := t.index[name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
		}
		if len(cols[i]) != len(cols[0]) {
			return nil, fmt.Errorf("%w: %q has %d rows, %q has %d",
				ErrRaggedColumns, name, len(cols[i]), names[0], len(cols[0]))
		}
		t.index[name] = i
		t.names[i] = name
		t.cols[i] = append([]float64(nil), cols[i]...)
		if t.cols[i] == nil {
			t.cols[i] = []float64{}
		}
	}
	return t, nil
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.names...)
}

func (t *Table) NumCols() int {
	return len(t.names)
}

func (t *Table) NumRows() int {
	if len(t.cols) == 0 {
		return 0
	}
	return len(t.cols[0])
}

func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns a copy of the named column.
func (t *Table) Column(name string) (Series, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoSuchColumn, name)
	}
	return append(Series{}, t.cols[i]...), nil
}

// At returns the value in column col, row row, both indexed from 0.
func (t *Table) At(col, row int) float64 {
	return t.cols[col][row]
}

// Equal reports whether t and o have the same columns in the same order and
// every cell differs by less than tol. A NaN cell never equals anything.
func (t *Table) Equal(o *Table, tol float64) bool {
	if t.NumCols() != o.NumCols() || t.NumRows() != o.NumRows() {
		return false
	}
	for i := range t.names {
		if t.names[i] != o.names[i] {
			return false
		}
		for r := range t.cols[i] {
			d := t.cols[i][r] - o.cols[i][r]
			if math.IsNaN(d) || d >= tol || -d >= tol {
				return false
			}
		}
	}
	return true
}
