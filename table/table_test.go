package table

import (
	"errors"
	"math"
	"testing"

	"github.com/matryer/is"
)

func TestNew(t *testing.T) {
	is := is.New(t)
	tbl, err := New([]string{"epochs_ran", "agents_alive"},
		[][]float64{{10, 20, 30}, {5, 4, 3}})
	is.NoErr(err)
	is.Equal(tbl.NumCols(), 2)
	is.Equal(tbl.NumRows(), 3)
	is.Equal(tbl.Columns(), []string{"epochs_ran", "agents_alive"})
	is.True(tbl.HasColumn("agents_alive"))
	is.True(!tbl.HasColumn("pool_size"))
	is.Equal(tbl.At(1, 2), 3.0)

	col, err := tbl.Column("epochs_ran")
	is.NoErr(err)
	is.Equal(col, Series{10, 20, 30})

	_, err = tbl.Column("pool_size")
	is.True(errors.Is(err, ErrNoSuchColumn))
}

func TestNewRejects(t *testing.T) {
	is := is.New(t)
	type tc struct {
		names []string
		cols  [][]float64
		err   error
	}
	cases := []tc{
		{[]string{"a", "a"}, [][]float64{{1}, {2}}, ErrDuplicateColumn},
		{[]string{"a", ""}, [][]float64{{1}, {2}}, ErrEmptyColumnName},
		{[]string{"a", "b"}, [][]float64{{1, 2}, {2}}, ErrRaggedColumns},
	}
	for _, c := range cases {
		_, err := New(c.names, c.cols)
		is.True(errors.Is(err, c.err))
	}
	_, err := New([]string{"a"}, [][]float64{{1}, {2}})
	is.True(err != nil)
}

func TestImmutable(t *testing.T) {
	is := is.New(t)
	data := []float64{1, 2, 3}
	names := []string{"x"}
	tbl, err := New(names, [][]float64{data})
	is.NoErr(err)

	data[0] = 100
	names[0] = "y"
	col, _ := tbl.Column("x")
	is.Equal(col[0], 1.0)

	col[1] = 200
	again, _ := tbl.Column("x")
	is.Equal(again[1], 2.0)

	cols := tbl.Columns()
	cols[0] = "z"
	is.Equal(tbl.Columns(), []string{"x"})
}

func TestEqual(t *testing.T) {
	is := is.New(t)
	a, _ := New([]string{"x", "y"}, [][]float64{{1, 2}, {3, 4}})
	b, _ := New([]string{"x", "y"}, [][]float64{{1, 2.0000001}, {3, 4}})
	c, _ := New([]string{"y", "x"}, [][]float64{{3, 4}, {1, 2}})
	d, _ := New([]string{"x", "y"}, [][]float64{{1, 2.5}, {3, 4}})
	is.True(a.Equal(b, 1e-6))
	is.True(!a.Equal(c, 1e-6))
	is.True(!a.Equal(d, 1e-6))

	nan, _ := New([]string{"x", "y"}, [][]float64{{1, math.NaN()}, {3, 4}})
	is.True(!a.Equal(nan, 1e-6))
	is.True(!nan.Equal(a, 1e-6))
	is.True(!nan.Equal(nan, 1e-6))
}

func TestEmptyTable(t *testing.T) {
	is := is.New(t)
	tbl, err := New([]string{"x"}, [][]float64{nil})
	is.NoErr(err)
	is.Equal(tbl.NumRows(), 0)
	col, err := tbl.Column("x")
	is.NoErr(err)
	is.Equal(len(col), 0)
}
