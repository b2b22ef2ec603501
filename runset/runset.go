// Package runset averages the result tables of repeated experiment runs.
//
// A run set lives on disk as one directory per run under a common parent:
//
//	path/0/filename
//	path/1/filename
//	...
//	path/N-1/filename
//
// Every run must log the same columns and the same number of rows.
package runset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/domino14/commonsplot/stats"
	"github.com/domino14/commonsplot/table"
)

var (
	ErrNotFound       = errors.New("run file not found")
	ErrSchemaMismatch = errors.New("run schema mismatch")
	ErrEmptyInput     = errors.New("no runs to aggregate")
)

// RunPath returns the location of run i's results file.
func RunPath(basePath, filename string, i int) string {
	return filepath.Join(basePath, strconv.Itoa(i), filename)
}

// Aggregator loads and combines run sets. The zero value is ready to use and
// loads with one goroutine per CPU.
type Aggregator struct {
	// Concurrency bounds the number of run files read at once. Zero or less
	// means runtime.NumCPU().
	Concurrency int
}

// Average is (&Aggregator{}).Average.
func Average(ctx context.Context, basePath, filename string, n int) (*table.Table, error) {
	return (&Aggregator{}).Average(ctx, basePath, filename, n)
}

// Summarize is (&Aggregator{}).Summarize.
func Summarize(ctx context.Context, basePath, filename string, n int, confidence float64) (*Summary, error) {
	return (&Aggregator{}).Summarize(ctx, basePath, filename, n, confidence)
}

// Load reads the n run tables and checks that they share run 0's schema.
// The returned tables all have run 0's column order.
func (a *Aggregator) Load(ctx context.Context, basePath, filename string, n int) ([]*table.Table, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: asked for %d runs", ErrEmptyInput, n)
	}
	limit := a.Concurrency
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	runs := make([]*table.Table, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := range n {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			path := RunPath(basePath, filename, i)
			t, err := table.LoadCSV(path)
			if errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("%w: run %d: %s", ErrNotFound, i, path)
			}
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			log.Debug().Int("run", i).Int("rows", t.NumRows()).Str("path", path).Msg("loaded-run")
			runs[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := 1; i < n; i++ {
		aligned, err := conform(runs[0], runs[i])
		if err != nil {
			return nil, fmt.Errorf("%w: run %d: %w", ErrSchemaMismatch, i, err)
		}
		runs[i] = aligned
	}
	return runs, nil
}

// conform returns t with its columns in ref's order, or an error describing
// how its schema differs from ref's.
func conform(ref, t *table.Table) (*table.Table, error) {
	missing, extra := lo.Difference(ref.Columns(), t.Columns())
	if len(missing) > 0 || len(extra) > 0 {
		return nil, fmt.Errorf("missing columns %v, unexpected columns %v", missing, extra)
	}
	if t.NumRows() != ref.NumRows() {
		return nil, fmt.Errorf("%d rows, run 0 has %d", t.NumRows(), ref.NumRows())
	}
	if slices.Equal(ref.Columns(), t.Columns()) {
		return t, nil
	}
	names := ref.Columns()
	cols := make([][]float64, len(names))
	for i, name := range names {
		col, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		cols[i] = col
	}
	return table.New(names, cols)
}

// Average returns the cell-wise mean of the n runs of filename under
// basePath. Cells are summed in run order and then divided by n.
func (a *Aggregator) Average(ctx context.Context, basePath, filename string, n int) (*table.Table, error) {
	runs, err := a.Load(ctx, basePath, filename, n)
	if err != nil {
		return nil, err
	}
	return Mean(runs)
}

// Mean returns the cell-wise mean of tables that already share a schema and
// column order, as returned by Load.
func Mean(runs []*table.Table) (*table.Table, error) {
	if len(runs) == 0 {
		return nil, ErrEmptyInput
	}
	names := runs[0].Columns()
	sums := make([][]float64, len(names))
	for i, name := range names {
		col, err := runs[0].Column(name)
		if err != nil {
			return nil, err
		}
		sums[i] = col
	}
	for r, run := range runs[1:] {
		if run.NumRows() != runs[0].NumRows() {
			return nil, fmt.Errorf("%w: run %d: %d rows, run 0 has %d",
				ErrSchemaMismatch, r+1, run.NumRows(), runs[0].NumRows())
		}
		for i, name := range names {
			col, err := run.Column(name)
			if err != nil {
				return nil, fmt.Errorf("%w: run %d: %w", ErrSchemaMismatch, r+1, err)
			}
			floats.Add(sums[i], col)
		}
	}
	n := float64(len(runs))
	for i := range sums {
		for j := range sums[i] {
			sums[i][j] /= n
		}
	}
	return table.New(names, sums)
}

// Summary is the mean of a run set together with the spread of each cell
// across runs.
type Summary struct {
	Runs int
	// Confidence is the two-tailed confidence level, in percent, that
	// HalfWidth was computed for.
	Confidence float64
	Mean       *table.Table
	StdErr     *table.Table
	HalfWidth  *table.Table
}

// Summarize loads the run set like Average and also reports, per cell, the
// standard error of the mean and the half-width of its confidence interval.
func (a *Aggregator) Summarize(ctx context.Context, basePath, filename string, n int,
	confidence float64) (*Summary, error) {

	z, err := stats.HalfWidth(1, confidence)
	if err != nil {
		return nil, err
	}
	runs, err := a.Load(ctx, basePath, filename, n)
	if err != nil {
		return nil, err
	}
	mean, err := Mean(runs)
	if err != nil {
		return nil, err
	}

	names := mean.Columns()
	rows := mean.NumRows()
	stderr := make([][]float64, len(names))
	half := make([][]float64, len(names))
	for c := range names {
		stderr[c] = make([]float64, rows)
		half[c] = make([]float64, rows)
		for r := range rows {
			cell := &stats.Statistic{}
			for _, run := range runs {
				cell.Push(run.At(c, r))
			}
			stderr[c][r] = cell.StandardError()
			half[c][r] = z * stderr[c][r]
		}
	}
	se, err := table.New(names, stderr)
	if err != nil {
		return nil, err
	}
	hw, err := table.New(names, half)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("runs", n).Float64("confidence", confidence).Msg("summarized-runs")
	return &Summary{
		Runs:       n,
		Confidence: confidence,
		Mean:       mean,
		StdErr:     se,
		HalfWidth:  hw,
	}, nil
}
