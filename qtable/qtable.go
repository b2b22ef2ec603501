// Package qtable reads the expected-value tables agents log: one column per
// agent state, one row per action (the number of resources the agent takes).
package qtable

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"

	"github.com/domino14/commonsplot/stats"
	"github.com/domino14/commonsplot/table"
)

var (
	ErrUnmappedColumn = errors.New("column does not name a state")
	ErrDuplicateState = errors.New("state mapped to more than one column")
	ErrMissingState   = errors.New("state has no column")
	ErrNoActions      = errors.New("table has no actions")
)

// EVTable holds the expected value of every action in every state. Every
// StateKey from AllKeys is present and all states have the same number of
// actions.
type EVTable struct {
	values     map[StateKey][]float64
	numActions int
}

// FromTable maps the columns of t onto states. Each of the nine states must
// be named by exactly one column and no other columns may be present.
func FromTable(t *table.Table) (*EVTable, error) {
	if t.NumRows() == 0 {
		return nil, ErrNoActions
	}
	e := &EVTable{
		values:     make(map[StateKey][]float64, len(Levels)*len(Levels)),
		numActions: t.NumRows(),
	}
	for _, name := range t.Columns() {
		k, err := ParseColumnName(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnmappedColumn, err)
		}
		if _, ok := e.values[k]; ok {
			return nil, fmt.Errorf("%w: %s (column %q)", ErrDuplicateState, k.ColumnName(), name)
		}
		col, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		e.values[k] = col
	}
	missing := lo.Filter(AllKeys(), func(k StateKey, _ int) bool {
		_, ok := e.values[k]
		return !ok
	})
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrMissingState,
			lo.Map(missing, func(k StateKey, _ int) string { return k.ColumnName() }))
	}
	return e, nil
}

// New builds an EVTable directly. values must hold every state.
func New(values map[StateKey][]float64) (*EVTable, error) {
	for k := range values {
		if !k.Commons.valid() || !k.Score.valid() {
			return nil, fmt.Errorf("%w: %v", ErrUnmappedColumn, k)
		}
	}
	names := make([]string, 0, len(values))
	cols := make([][]float64, 0, len(values))
	for _, k := range AllKeys() {
		v, ok := values[k]
		if !ok {
			continue
		}
		names = append(names, k.ColumnName())
		cols = append(cols, v)
	}
	t, err := table.New(names, cols)
	if err != nil {
		return nil, err
	}
	return FromTable(t)
}

func (e *EVTable) NumActions() int {
	return e.numActions
}

// Keys returns the states in AllKeys order.
func (e *EVTable) Keys() []StateKey {
	return AllKeys()
}

// Actions returns a copy of the expected values for state k, indexed by
// action.
func (e *EVTable) Actions(k StateKey) []float64 {
	return append([]float64(nil), e.values[k]...)
}

// BestAction returns the index of the highest-valued action in state k. Ties
// go to the lowest index.
func (e *EVTable) BestAction(k StateKey) int {
	return floats.MaxIdx(e.values[k])
}

// Table converts e back into a table with one column per state.
func (e *EVTable) Table() (*table.Table, error) {
	keys := e.Keys()
	return table.New(
		lo.Map(keys, func(k StateKey, _ int) string { return k.ColumnName() }),
		lo.Map(keys, func(k StateKey, _ int) []float64 { return e.values[k] }),
	)
}

// Normalized rescales each state's action values onto [0, 1] using that
// state's own minimum and maximum. A state whose actions are all equal maps
// to zeros.
func (e *EVTable) Normalized() *EVTable {
	out := &EVTable{
		values:     make(map[StateKey][]float64, len(e.values)),
		numActions: e.numActions,
	}
	for k, v := range e.values {
		out.values[k] = stats.MinMax(v)
	}
	return out
}
