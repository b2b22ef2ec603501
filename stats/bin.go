package stats

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Bin collapses values into contiguous windows of binsize elements and
// replaces each window with its mean. The result has ceil(len(values)/binsize)
// elements. The last window may be short; it is averaged over the elements it
// actually holds.
func Bin(values []float64, binsize int) ([]float64, error) {
	if binsize <= 0 {
		return nil, fmt.Errorf("%w: bin size must be positive, got %d",
			ErrInvalidArgument, binsize)
	}
	nbins := (len(values) + binsize - 1) / binsize
	binned := make([]float64, nbins)
	for i := range binned {
		start := i * binsize
		end := min(start+binsize, len(values))
		binned[i] = stat.Mean(values[start:end], nil)
	}
	return binned, nil
}

// MovingAverage returns the trailing mean of every full window of the given
// size, so the output has max(0, len(values)-window+1) elements. Positions
// that have fewer than window predecessors are dropped rather than filled.
func MovingAverage(values []float64, window int) ([]float64, error) {
	if window <= 0 {
		return nil, fmt.Errorf("%w: window must be positive, got %d",
			ErrInvalidArgument, window)
	}
	if len(values) < window {
		return []float64{}, nil
	}
	out := make([]float64, len(values)-window+1)
	for i := range out {
		out[i] = stat.Mean(values[i:i+window], nil)
	}
	return out, nil
}
