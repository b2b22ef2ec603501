// Package resultstore keeps aggregated run-set tables in a sqlite database so
// they need not be recomputed from the per-run CSVs.
package resultstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/domino14/commonsplot/table"
)

var ErrNotStored = errors.New("no stored result for run set")

const schema = `
CREATE TABLE IF NOT EXISTS run_sets (
	fingerprint INTEGER PRIMARY KEY,
	base_path   TEXT NOT NULL,
	filename    TEXT NOT NULL,
	runs        INTEGER NOT NULL,
	num_rows    INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS run_set_columns (
	fingerprint INTEGER NOT NULL,
	col_idx     INTEGER NOT NULL,
	col_name    TEXT NOT NULL,
	PRIMARY KEY (fingerprint, col_idx)
);
CREATE TABLE IF NOT EXISTS run_set_cells (
	fingerprint INTEGER NOT NULL,
	col_idx     INTEGER NOT NULL,
	row_idx     INTEGER NOT NULL,
	value       REAL NOT NULL,
	PRIMARY KEY (fingerprint, col_idx, row_idx)
);
`

// Key names a run set: the runs of Filename under BasePath, Runs of them.
type Key struct {
	BasePath string
	Filename string
	Runs     int
}

// Fingerprint is the key's row id in the store.
func (k Key) Fingerprint() int64 {
	return int64(xxhash.Sum64String(k.BasePath + "\x00" + k.Filename + "\x00" + strconv.Itoa(k.Runs)))
}

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the store at path.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// one writer; sqlite serializes anyway
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores t under key, replacing anything stored there before.
func (s *Store) Save(ctx context.Context, key Key, t *table.Table) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	fp := key.Fingerprint()
	if err := deleteRunSet(ctx, tx, fp); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO run_sets (fingerprint, base_path, filename, runs, num_rows) VALUES (?, ?, ?, ?, ?)",
		fp, key.BasePath, key.Filename, key.Runs, t.NumRows()); err != nil {
		return err
	}

	colStmt, err := tx.PrepareContext(ctx,
		"INSERT INTO run_set_columns (fingerprint, col_idx, col_name) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer colStmt.Close()
	cellStmt, err := tx.PrepareContext(ctx,
		"INSERT INTO run_set_cells (fingerprint, col_idx, row_idx, value) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer cellStmt.Close()

	for c, name := range t.Columns() {
		if _, err := colStmt.ExecContext(ctx, fp, c, name); err != nil {
			return err
		}
		for r := range t.NumRows() {
			if _, err := cellStmt.ExecContext(ctx, fp, c, r, t.At(c, r)); err != nil {
				return err
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Debug().Str("base", key.BasePath).Str("file", key.Filename).Int("runs", key.Runs).
		Msg("stored-run-set")
	return nil
}

// Load returns the table stored under key, or ErrNotStored.
func (s *Store) Load(ctx context.Context, key Key) (*table.Table, error) {
	fp := key.Fingerprint()
	var (
		basePath, filename string
		runs, numRows      int
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT base_path, filename, runs, num_rows FROM run_sets WHERE fingerprint = ?", fp).
		Scan(&basePath, &filename, &runs, &numRows)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s/*/%s (%d runs)", ErrNotStored, key.BasePath, key.Filename, key.Runs)
	}
	if err != nil {
		return nil, err
	}
	if basePath != key.BasePath || filename != key.Filename || runs != key.Runs {
		// fingerprint collision
		return nil, fmt.Errorf("%w: %s/*/%s (%d runs)", ErrNotStored, key.BasePath, key.Filename, key.Runs)
	}

	names, err := s.columns(ctx, fp)
	if err != nil {
		return nil, err
	}
	cols := make([][]float64, len(names))
	for i := range cols {
		cols[i] = make([]float64, numRows)
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT col_idx, row_idx, value FROM run_set_cells WHERE fingerprint = ?", fp)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var c, r int
		var v float64
		if err := rows.Scan(&c, &r, &v); err != nil {
			return nil, err
		}
		if c < 0 || c >= len(cols) || r < 0 || r >= numRows {
			return nil, fmt.Errorf("stored cell (%d, %d) out of range", c, r)
		}
		cols[c][r] = v
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return table.New(names, cols)
}

func (s *Store) columns(ctx context.Context, fp int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT col_name FROM run_set_columns WHERE fingerprint = ? ORDER BY col_idx", fp)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Delete removes the table stored under key, if any.
func (s *Store) Delete(ctx context.Context, key Key) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := deleteRunSet(ctx, tx, key.Fingerprint()); err != nil {
		return err
	}
	return tx.Commit()
}

func deleteRunSet(ctx context.Context, tx *sql.Tx, fp int64) error {
	for _, tbl := range []string{"run_set_cells", "run_set_columns", "run_sets"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+tbl+" WHERE fingerprint = ?", fp); err != nil {
			return err
		}
	}
	return nil
}
