// Package chart describes which series to draw from a results table and how
// to prepare it.
package chart

import (
	"fmt"
	"strings"

	"github.com/domino14/commonsplot/stats"
	"github.com/domino14/commonsplot/table"
)

// Kind selects a metric and the transformations applied before it is drawn.
// Zero Smoothing or BinSize turns that step off.
type Kind struct {
	Metric    Metric `yaml:"metric"`
	Normalize bool   `yaml:"normalize"`
	Smoothing int    `yaml:"smoothing"`
	BinSize   int    `yaml:"bin_size"`
	Title     string `yaml:"title,omitempty"`
}

func (k Kind) Validate() error {
	if _, ok := metricInfo[k.Metric]; !ok {
		return fmt.Errorf("%w: unknown metric %d", stats.ErrInvalidArgument, int(k.Metric))
	}
	if k.Smoothing < 0 {
		return fmt.Errorf("%w: smoothing window %d", stats.ErrInvalidArgument, k.Smoothing)
	}
	if k.BinSize < 0 {
		return fmt.Errorf("%w: bin size %d", stats.ErrInvalidArgument, k.BinSize)
	}
	return nil
}

// Series extracts the metric from t, then smooths, bins and normalizes it in
// that order.
func (k Kind) Series(t *table.Table) (table.Series, error) {
	if err := k.Validate(); err != nil {
		return nil, err
	}
	s, err := k.Metric.Extract(t)
	if err != nil {
		return nil, err
	}
	if k.Smoothing > 0 {
		if s, err = stats.MovingAverage(s, k.Smoothing); err != nil {
			return nil, err
		}
	}
	if k.BinSize > 0 {
		if s, err = stats.Bin(s, k.BinSize); err != nil {
			return nil, err
		}
	}
	if k.Normalize {
		s = stats.MinMax(s)
	}
	return s, nil
}

// DisplayTitle is Title if set, otherwise a description of the kind.
func (k Kind) DisplayTitle() string {
	if k.Title != "" {
		return k.Title
	}
	var notes []string
	if k.Smoothing > 0 {
		notes = append(notes, fmt.Sprintf("moving average %d", k.Smoothing))
	}
	if k.BinSize > 0 {
		notes = append(notes, fmt.Sprintf("bins of %d", k.BinSize))
	}
	if k.Normalize {
		notes = append(notes, "normalized")
	}
	title := k.Metric.Label() + " per generation"
	if len(notes) > 0 {
		title += " (" + strings.Join(notes, ", ") + ")"
	}
	return title
}
