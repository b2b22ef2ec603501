// Package render draws series and Q-tables as unicode text, for terminals
// and logs.
package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/aybabtme/uniplot/barchart"
	"github.com/aybabtme/uniplot/histogram"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/floats"

	"github.com/domino14/commonsplot/qtable"
	"github.com/domino14/commonsplot/stats"
	"github.com/domino14/commonsplot/table"
)

// barchart only plots integers, so values are carried in thousandths.
const fixedPoint = 1000

// Options controls the size of rendered charts.
type Options struct {
	// HistogramBins is the number of buckets in value histograms.
	HistogramBins int
	// Width is the length, in cells, of the longest bar.
	Width int
	// MaxPoints caps the number of rows in a trend chart; longer series are
	// binned down to fit.
	MaxPoints int
}

func DefaultOptions() Options {
	return Options{HistogramBins: 10, Width: 40, MaxPoints: 25}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.HistogramBins <= 0 {
		o.HistogramBins = d.HistogramBins
	}
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.MaxPoints <= 0 {
		o.MaxPoints = d.MaxPoints
	}
	return o
}

func printer() *message.Printer {
	return message.NewPrinter(language.English)
}

// Series writes a titled block with summary statistics, the series over time
// and a histogram of its values.
func Series(w io.Writer, title string, s table.Series, opts Options) error {
	opts = opts.withDefaults()
	p := printer()
	p.Fprintf(w, "### %s\n", title)
	if len(s) == 0 {
		_, err := io.WriteString(w, "(no data)\n\n")
		return err
	}
	st := &stats.Statistic{}
	for _, v := range s {
		st.Push(v)
	}
	p.Fprintf(w, "points: %d  min: %.3f  max: %.3f  mean: %.3f  stdev: %.3f\n\n",
		len(s), floats.Min(s), floats.Max(s), st.Mean(), st.Stdev())

	if err := trend(w, s, opts); err != nil {
		return err
	}
	io.WriteString(w, "\n")
	h := histogram.Hist(opts.HistogramBins, s)
	if err := histogram.Fprint(w, h, histogram.Linear(opts.Width)); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// trend plots s in order, one row per point, after binning it down to at
// most opts.MaxPoints points.
func trend(w io.Writer, s table.Series, opts Options) error {
	binsize := (len(s) + opts.MaxPoints - 1) / opts.MaxPoints
	points, err := stats.Bin(s, binsize)
	if err != nil {
		return err
	}
	if len(points) < 2 || floats.Min(points) == floats.Max(points) {
		_, err := fmt.Fprintf(w, "0-%d  %.4g (flat)\n", len(s)-1, points[0])
		return err
	}
	xys := make([][2]int, len(points))
	for i, v := range points {
		xys[i] = [2]int{i, toFixed(v)}
	}
	chart := barchart.BarChartXYs(xys)
	xfmt := func(x float64) string {
		start := int(x) * binsize
		end := min(start+binsize, len(s)) - 1
		if start == end {
			return fmt.Sprint(start)
		}
		return fmt.Sprintf("%d-%d", start, end)
	}
	return barchart.Fprintf(w, chart, len(points), barchart.Linear(opts.Width), xfmt, fromFixedString)
}

func toFixed(v float64) int {
	return int(math.Round(v * fixedPoint))
}

func fromFixedString(v float64) string {
	return fmt.Sprintf("%.3g", v/fixedPoint)
}

// QTable writes one bar chart per state, one bar per action, marking the
// greedy action.
func QTable(w io.Writer, ev *qtable.EVTable, opts Options) error {
	opts = opts.withDefaults()
	p := printer()
	for _, k := range ev.Keys() {
		actions := ev.Actions(k)
		best := ev.BestAction(k)
		p.Fprintf(w, "### %s (greedy action %d)\n", k, best)
		if len(actions) < 2 || floats.Min(actions) == floats.Max(actions) {
			p.Fprintf(w, "all %d actions: %.4g\n\n", len(actions), actions[0])
			continue
		}
		xys := make([][2]int, len(actions))
		for i, v := range actions {
			xys[i] = [2]int{i, toFixed(v)}
		}
		chart := barchart.BarChartXYs(xys)
		xfmt := func(x float64) string { return fmt.Sprintf("action %d", int(x)) }
		if err := barchart.Fprintf(w, chart, len(actions), barchart.Linear(opts.Width), xfmt, fromFixedString); err != nil {
			return err
		}
		io.WriteString(w, "\n")
	}
	return nil
}

// TableSummary writes the count, mean, standard deviation and range of every
// column of t.
func TableSummary(w io.Writer, t *table.Table) error {
	p := printer()
	p.Fprintf(w, "Rows: %d  Columns: %d\n", t.NumRows(), t.NumCols())
	width := 0
	for _, name := range t.Columns() {
		width = max(width, len(name))
	}
	for _, name := range t.Columns() {
		col, err := t.Column(name)
		if err != nil {
			return err
		}
		st := &stats.Statistic{}
		for _, v := range col {
			st.Push(v)
		}
		pad := strings.Repeat(" ", width-len(name))
		if len(col) == 0 {
			p.Fprintf(w, "%s%s  (empty)\n", name, pad)
			continue
		}
		p.Fprintf(w, "%s%s  mean: %.4f  stdev: %.4f  min: %.4f  max: %.4f\n",
			name, pad, st.Mean(), st.Stdev(), floats.Min(col), floats.Max(col))
	}
	return nil
}

// Summary writes the mean table of a run set alongside the confidence
// interval half-width of every column's overall mean.
func Summary(w io.Writer, means, halfWidths *table.Table, runs int, confidence float64) error {
	p := printer()
	p.Fprintf(w, "Runs averaged: %d\n", runs)
	if err := TableSummary(w, means); err != nil {
		return err
	}
	p.Fprintf(w, "Mean %.0f%% half-width per column:\n", confidence)
	for _, name := range halfWidths.Columns() {
		col, err := halfWidths.Column(name)
		if err != nil {
			return err
		}
		if len(col) == 0 {
			continue
		}
		p.Fprintf(w, "  %s: ±%.4f\n", name, floats.Sum(col)/float64(len(col)))
	}
	return nil
}
