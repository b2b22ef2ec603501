package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/commonsplot/qtable"
	"github.com/domino14/commonsplot/stats"
	"github.com/domino14/commonsplot/table"
)

func TestSeries(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	s := table.Series{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	is.NoErr(Series(&buf, "Agents alive", s, Options{HistogramBins: 5, Width: 10, MaxPoints: 5}))
	out := buf.String()
	is.True(strings.HasPrefix(out, "### Agents alive\n"))
	is.True(strings.Contains(out, "points: 10"))
	is.True(strings.Contains(out, "mean: 5.500"))
	// ten points binned down to five rows
	is.True(strings.Contains(out, "0-1"))
	is.True(strings.Contains(out, "8-9"))
	is.True(strings.Contains(out, "█"))
}

func TestSeriesLongInput(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	is.NoErr(Series(&buf, "walk", stats.RandomWalk(5000), DefaultOptions()))
	is.True(strings.Contains(buf.String(), "points: 5,000"))
}

func TestSeriesDegenerate(t *testing.T) {
	is := is.New(t)
	for _, s := range []table.Series{{}, {3}, {2, 2, 2}} {
		var buf bytes.Buffer
		is.NoErr(Series(&buf, "t", s, Options{}))
		is.True(buf.Len() > 0)
	}
	var buf bytes.Buffer
	is.NoErr(Series(&buf, "t", table.Series{}, Options{}))
	is.True(strings.Contains(buf.String(), "(no data)"))

	buf.Reset()
	is.NoErr(Series(&buf, "t", table.Series{2, 2, 2}, Options{}))
	is.True(strings.Contains(buf.String(), "(flat)"))
}

func TestQTable(t *testing.T) {
	is := is.New(t)
	values := map[qtable.StateKey][]float64{}
	for i, k := range qtable.AllKeys() {
		values[k] = []float64{float64(i), float64(i) + 0.5, float64(i) - 1}
	}
	values[qtable.StateKey{Commons: qtable.High, Score: qtable.High}] = []float64{1, 1, 1}
	ev, err := qtable.New(values)
	is.NoErr(err)

	var buf bytes.Buffer
	is.NoErr(QTable(&buf, ev.Normalized(), Options{Width: 8}))
	out := buf.String()
	is.Equal(strings.Count(out, "### "), 9)
	is.True(strings.Contains(out, "### commons: LOW score: LOW (greedy action 1)"))
	is.True(strings.Contains(out, "action 2"))
	is.True(strings.Contains(out, "all 3 actions"))
}

func TestQTableSingleAction(t *testing.T) {
	is := is.New(t)
	values := map[qtable.StateKey][]float64{}
	for _, k := range qtable.AllKeys() {
		values[k] = []float64{0.25}
	}
	ev, err := qtable.New(values)
	is.NoErr(err)
	var buf bytes.Buffer
	is.NoErr(QTable(&buf, ev, Options{}))
	is.Equal(strings.Count(buf.String(), "all 1 actions: 0.25"), 9)
}

func TestTableSummary(t *testing.T) {
	is := is.New(t)
	tbl, err := table.New([]string{"epochs_ran", "alive"}, [][]float64{{2, 4, 6}, {1, 1, 1}})
	is.NoErr(err)
	var buf bytes.Buffer
	is.NoErr(TableSummary(&buf, tbl))
	out := buf.String()
	is.True(strings.Contains(out, "Rows: 3  Columns: 2"))
	is.True(strings.Contains(out, "epochs_ran  mean: 4.0000  stdev: 2.0000  min: 2.0000  max: 6.0000"))
	is.True(strings.Contains(out, "alive       mean: 1.0000"))
}

func TestSummary(t *testing.T) {
	is := is.New(t)
	means, _ := table.New([]string{"x"}, [][]float64{{3, 6}})
	hw, _ := table.New([]string{"x"}, [][]float64{{1, 3}})
	var buf bytes.Buffer
	is.NoErr(Summary(&buf, means, hw, 2, 95))
	out := buf.String()
	is.True(strings.Contains(out, "Runs averaged: 2"))
	is.True(strings.Contains(out, "Mean 95% half-width per column:"))
	is.True(strings.Contains(out, "x: ±2.0000"))
}
