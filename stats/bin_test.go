package stats

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestBin(t *testing.T) {
	is := is.New(t)
	type tc struct {
		values  []float64
		binsize int
		binned  []float64
	}
	cases := []tc{
		{[]float64{1, 2, 3, 4}, 2, []float64{1.5, 3.5}},
		// the short last window is averaged over the one element it has
		{[]float64{1, 2, 3}, 2, []float64{1.5, 3.0}},
		{[]float64{}, 5, []float64{}},
		{[]float64{7}, 1, []float64{7}},
		{[]float64{1, 2, 3, 4, 5, 6, 7}, 3, []float64{2, 5, 7}},
		{[]float64{1, 2, 3}, 10, []float64{2}},
		{[]float64{-1, 1, -3, 3}, 2, []float64{0, 0}},
	}
	for _, c := range cases {
		binned, err := Bin(c.values, c.binsize)
		is.NoErr(err)
		is.True(binned != nil)
		is.True(FuzzyEqualSlices(binned, c.binned))
	}
}

func TestBinLength(t *testing.T) {
	is := is.New(t)
	values := RandomWalk(1000)
	for l := 0; l <= len(values); l += 37 {
		for b := 1; b <= 50; b += 7 {
			binned, err := Bin(values[:l], b)
			is.NoErr(err)
			is.Equal(len(binned), (l+b-1)/b)
		}
	}
}

func TestBinInvalidSize(t *testing.T) {
	is := is.New(t)
	for _, b := range []int{0, -1, -100} {
		binned, err := Bin([]float64{1, 2, 3}, b)
		is.True(errors.Is(err, ErrInvalidArgument))
		is.Equal(binned, nil)
	}
}

func TestBinDoesNotMutate(t *testing.T) {
	is := is.New(t)
	values := []float64{1, 2, 3, 4, 5}
	_, err := Bin(values, 2)
	is.NoErr(err)
	is.Equal(values, []float64{1, 2, 3, 4, 5})
}

func TestMovingAverage(t *testing.T) {
	is := is.New(t)
	type tc struct {
		values []float64
		window int
		ma     []float64
	}
	cases := []tc{
		{[]float64{1, 2, 3, 4, 5}, 2, []float64{1.5, 2.5, 3.5, 4.5}},
		{[]float64{1, 2, 3, 4, 5}, 5, []float64{3}},
		{[]float64{1, 2, 3, 4, 5}, 1, []float64{1, 2, 3, 4, 5}},
		{[]float64{1, 2}, 3, []float64{}},
		{[]float64{}, 3, []float64{}},
	}
	for _, c := range cases {
		ma, err := MovingAverage(c.values, c.window)
		is.NoErr(err)
		is.True(FuzzyEqualSlices(ma, c.ma))
	}

	_, err := MovingAverage([]float64{1}, 0)
	is.True(errors.Is(err, ErrInvalidArgument))
}
