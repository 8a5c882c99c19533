package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Catalog indexes run metadata in SQLite so listing and prefix resolution
// stay fast as runs accumulate. The run.json files remain the source of
// truth; the catalog is rebuilt row by row as runs are written.
type Catalog struct {
	db *sql.DB
}

const catalogSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	created_at INTEGER NOT NULL,
	kind       TEXT NOT NULL,
	vertices   INTEGER NOT NULL,
	equations  INTEGER NOT NULL,
	variables  INTEGER NOT NULL,
	rank       INTEGER NOT NULL DEFAULT 0,
	status     TEXT NOT NULL,
	notes      TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
`

// OpenCatalog opens (creating if needed) the catalog database at path.
func OpenCatalog(path string) (*Catalog, error) {
	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping catalog: %w", err)
	}
	if _, err := db.Exec(catalogSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create catalog schema: %w", err)
	}
	return &Catalog{db: db}, nil
}

// Close closes the database handle.
func (c *Catalog) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Put inserts or replaces one run row.
func (c *Catalog) Put(ctx context.Context, m Meta) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO runs
		   (id, created_at, kind, vertices, equations, variables, rank, status, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, toMillis(m.CreatedAt), m.Kind, m.Vertices, m.Equations, m.Variables,
		m.Rank, m.Status, m.Notes,
	)
	if err != nil {
		return fmt.Errorf("catalog put: %w", err)
	}
	return nil
}

// Get returns the row for a full run ID.
func (c *Catalog) Get(ctx context.Context, id string) (*Meta, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT id, created_at, kind, vertices, equations, variables, rank, status, notes
		   FROM runs WHERE id = ?`, id)
	m, err := scanMeta(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return m, err
}

// List returns every run, newest first.
func (c *Catalog) List(ctx context.Context) ([]Meta, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT id, created_at, kind, vertices, equations, variables, rank, status, notes
		   FROM runs ORDER BY created_at DESC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("catalog list: %w", err)
	}
	defer rows.Close()

	var out []Meta
	for rows.Next() {
		m, err := scanMeta(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

// ResolvePrefix expands a run ID prefix to the unique full ID.
func (c *Catalog) ResolvePrefix(ctx context.Context, prefix string) (string, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT id FROM runs WHERE id LIKE ? ORDER BY id LIMIT 2`, prefix+"%")
	if err != nil {
		return "", fmt.Errorf("catalog resolve: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}
	switch len(ids) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrRunNotFound, prefix)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("%w: %s", ErrAmbiguousRun, prefix)
	}
}

// UpdateStatus records the outcome of a reduction.
func (c *Catalog) UpdateStatus(ctx context.Context, id, status string, rank int) error {
	res, err := c.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, rank = ? WHERE id = ?`, status, rank, id)
	if err != nil {
		return fmt.Errorf("catalog update: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMeta(row rowScanner) (*Meta, error) {
	var m Meta
	var created int64
	if err := row.Scan(&m.ID, &created, &m.Kind, &m.Vertices, &m.Equations,
		&m.Variables, &m.Rank, &m.Status, &m.Notes); err != nil {
		return nil, err
	}
	m.CreatedAt = fromMillis(created)
	return &m, nil
}
