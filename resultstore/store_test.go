package resultstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/commonsplot/table"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveLoad(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	s := openStore(t)

	key := Key{BasePath: "results/commons", Filename: "generations.csv", Runs: 10}
	tbl, err := table.New([]string{"epochs_ran", "agents_alive"},
		[][]float64{{12.5, 30, 7.25}, {5, 4.1, 0}})
	is.NoErr(err)
	is.NoErr(s.Save(ctx, key, tbl))

	back, err := s.Load(ctx, key)
	is.NoErr(err)
	is.True(back.Equal(tbl, 1e-12))

	_, err = s.Load(ctx, Key{BasePath: "results/commons", Filename: "generations.csv", Runs: 9})
	is.True(errors.Is(err, ErrNotStored))
}

func TestSaveReplaces(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	s := openStore(t)
	key := Key{BasePath: "r", Filename: "g.csv", Runs: 2}

	first, _ := table.New([]string{"a", "b"}, [][]float64{{1, 2}, {3, 4}})
	second, _ := table.New([]string{"x"}, [][]float64{{9}})
	is.NoErr(s.Save(ctx, key, first))
	is.NoErr(s.Save(ctx, key, second))

	back, err := s.Load(ctx, key)
	is.NoErr(err)
	is.True(back.Equal(second, 1e-12))
}

func TestSaveEmptyTable(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	s := openStore(t)
	key := Key{BasePath: "r", Filename: "g.csv", Runs: 1}

	empty, _ := table.New([]string{"a", "b"}, [][]float64{nil, nil})
	is.NoErr(s.Save(ctx, key, empty))
	back, err := s.Load(ctx, key)
	is.NoErr(err)
	is.Equal(back.Columns(), []string{"a", "b"})
	is.Equal(back.NumRows(), 0)
}

func TestDelete(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	s := openStore(t)
	key := Key{BasePath: "r", Filename: "g.csv", Runs: 3}
	tbl, _ := table.New([]string{"a"}, [][]float64{{1}})
	is.NoErr(s.Save(ctx, key, tbl))
	is.NoErr(s.Delete(ctx, key))
	_, err := s.Load(ctx, key)
	is.True(errors.Is(err, ErrNotStored))
}

func TestFingerprint(t *testing.T) {
	is := is.New(t)
	a := Key{BasePath: "r", Filename: "g.csv", Runs: 3}
	is.Equal(a.Fingerprint(), a.Fingerprint())
	is.True(a.Fingerprint() != Key{BasePath: "r", Filename: "g.csv", Runs: 4}.Fingerprint())
	// separators keep adjacent fields from running together
	is.True(Key{BasePath: "ab", Filename: "c"}.Fingerprint() != Key{BasePath: "a", Filename: "bc"}.Fingerprint())
}
