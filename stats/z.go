package stats

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"
)

var stdNormal = distuv.Normal{
	Mu:    0,
	Sigma: 1,
}

// ZVal returns the two-tailed Z-value associated with a specific confidence interval.
// The interval is a number from 0 to 100 percent.
func ZVal(confidenceInterval float64) float64 {
	area := (1 + (confidenceInterval / 100)) / 2
	return stdNormal.Quantile(area)
}

// HalfWidth returns the half-width of the two-tailed confidence interval
// around a mean with the given standard error.
func HalfWidth(stdErr, confidenceInterval float64) (float64, error) {
	if confidenceInterval <= 0 || confidenceInterval >= 100 {
		return 0, fmt.Errorf("%w: confidence must be in (0, 100), got %v",
			ErrInvalidArgument, confidenceInterval)
	}
	return ZVal(confidenceInterval) * stdErr, nil
}
