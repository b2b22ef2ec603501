package stats

import (
	"lukechampine.com/frand"
)

// RandomWalk returns n points of a Gaussian random walk starting at 0: the
// cumulative sum of standard-normal steps. It is the synthetic stream used to
// preview binning without experiment data.
func RandomWalk(n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	walk := make([]float64, n)
	pos := 0.0
	for i := range walk {
		pos += normalStep()
		walk[i] = pos
	}
	return walk
}

func normalStep() float64 {
	// Quantile(0) is -Inf.
	u := frand.Float64()
	for u == 0 {
		u = frand.Float64()
	}
	return stdNormal.Quantile(u)
}
