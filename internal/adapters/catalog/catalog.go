// Package catalog records written artifacts in a SQLite database so later
// steps can find every season of a split without walking directories.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/okian/rotosim/internal/adapters/writer"
	"github.com/okian/rotosim/internal/domain/model"
)

// Entry is one catalogued artifact.
type Entry struct {
	writer.Artifact
	RunID     uuid.UUID
	Seed      uint64
	CreatedAt time.Time
}

// Catalog is a SQLite-backed artifact index.
type Catalog struct {
	db *sql.DB
}

// Open opens or creates the catalog database at path. ":memory:" keeps it in
// memory for the life of the Catalog.
func Open(ctx context.Context, path string) (*Catalog, error) {
	dsn := ":memory:"
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("%w: create catalog dir: %w", ErrCatalog, err)
		}
		dsn = path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrCatalog, path, err)
	}
	// single writer; also keeps an in-memory database on one connection
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schemaV1); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: init schema: %w", ErrCatalog, err)
	}
	return &Catalog{db: db}, nil
}

// Close releases the database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Record upserts the entry for an artifact key.
func (c *Catalog) Record(ctx context.Context, e Entry) error {
	_, err := c.db.ExecContext(ctx, `
INSERT INTO artifacts (split, season, num_teams, team_size, run_id, row_count, seed, path, sha256, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (split, season, num_teams, team_size) DO UPDATE SET
    run_id = excluded.run_id,
    row_count = excluded.row_count,
    seed = excluded.seed,
    path = excluded.path,
    sha256 = excluded.sha256,
    created_at = excluded.created_at`,
		string(e.Split), e.Season, e.NumTeams, e.TeamSize,
		e.RunID.String(), e.Rows, strconv.FormatUint(e.Seed, 10), e.Path, e.SHA256,
		e.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("%w: record %s: %w", ErrCatalog, e.RelPath(), err)
	}
	return nil
}

// Lookup returns the entry for a key.
func (c *Catalog) Lookup(ctx context.Context, key writer.Key) (Entry, error) {
	row := c.db.QueryRowContext(ctx, selectEntry+`
WHERE split = ? AND season = ? AND num_teams = ? AND team_size = ?`,
		string(key.Split), key.Season, key.NumTeams, key.TeamSize)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: %s", ErrArtifactNotFound, key.RelPath())
	}
	return e, err
}

// List returns a split's entries for one league shape, ordered by season.
func (c *Catalog) List(ctx context.Context, split model.Split, numTeams, teamSize int) ([]Entry, error) {
	rows, err := c.db.QueryContext(ctx, selectEntry+`
WHERE split = ? AND num_teams = ? AND team_size = ?
ORDER BY season`, string(split), numTeams, teamSize)
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %w", ErrCatalog, split, err)
	}
	defer func() { _ = rows.Close() }()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list %s: %w", ErrCatalog, split, err)
	}
	return out, nil
}

const selectEntry = `
SELECT split, season, num_teams, team_size, run_id, row_count, seed, path, sha256, created_at
FROM artifacts`

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (Entry, error) {
	var (
		e                  Entry
		split, runID, seed string
		createdAt          string
	)
	if err := s.Scan(&split, &e.Season, &e.NumTeams, &e.TeamSize, &runID, &e.Rows, &seed, &e.Path, &e.SHA256, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, err
		}
		return Entry{}, fmt.Errorf("%w: scan: %w", ErrCatalog, err)
	}

	var err error
	e.Split = model.Split(split)
	if e.RunID, err = uuid.Parse(runID); err != nil {
		return Entry{}, fmt.Errorf("%w: run id %q: %w", ErrCatalog, runID, err)
	}
	if e.Seed, err = strconv.ParseUint(seed, 10, 64); err != nil {
		return Entry{}, fmt.Errorf("%w: seed %q: %w", ErrCatalog, seed, err)
	}
	if e.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return Entry{}, fmt.Errorf("%w: created_at %q: %w", ErrCatalog, createdAt, err)
	}
	return e, nil
}
