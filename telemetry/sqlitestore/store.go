// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package sqlitestore persists promotion histograms in a SQLite database.
//
// Buckets are keyed by the stable ordinal of dclayer.Result and store the
// result's name beside it. Opening a database whose names disagree with the
// current enum fails with ErrOrdinalMismatch instead of silently mixing
// counts from renumbered results.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/gogpu/dclayer"
	"github.com/gogpu/dclayer/telemetry"
)

// ErrOrdinalMismatch is returned when a stored bucket name does not match
// the result with the same ordinal.
var ErrOrdinalMismatch = errors.New("sqlitestore: stored result ordinals do not match dclayer.Result")

// schemaVersion is bumped when the table layout changes.
const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS results (
    ordinal INTEGER PRIMARY KEY,   -- dclayer.Result value
    name    TEXT NOT NULL,         -- dclayer.Result.String()
    count   INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS runs (
    id    TEXT PRIMARY KEY,        -- random UUID per Add
    total INTEGER NOT NULL
);
`

// Store accumulates histogram snapshots in a database file.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and verifies that its result
// ordinals match the current enum.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: open %s: %w", path, err)
	}
	// SQLite serializes writers; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.init(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("sqlitestore: create schema: %w", err)
	}

	var version int
	err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := s.db.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("sqlitestore: record schema version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("sqlitestore: read schema version: %w", err)
	case version != schemaVersion:
		return fmt.Errorf("sqlitestore: schema version %d, want %d", version, schemaVersion)
	}

	return s.checkOrdinals(ctx)
}

// checkOrdinals verifies every stored bucket against dclayer.Result.
func (s *Store) checkOrdinals(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, "SELECT ordinal, name FROM results")
	if err != nil {
		return fmt.Errorf("sqlitestore: read results: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			ordinal int
			name    string
		)
		if err := rows.Scan(&ordinal, &name); err != nil {
			return fmt.Errorf("sqlitestore: scan result: %w", err)
		}
		if ordinal < 0 || ordinal >= int(dclayer.NumResults) || dclayer.Result(ordinal).String() != name {
			return fmt.Errorf("%w: ordinal %d stored as %q", ErrOrdinalMismatch, ordinal, name)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("sqlitestore: read results: %w", err)
	}
	return nil
}

// Add accumulates snap into the stored counts in one transaction and
// records it as a new run. It returns the run id.
func (s *Store) Add(ctx context.Context, snap telemetry.Snapshot) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("sqlitestore: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const upsert = `
INSERT INTO results (ordinal, name, count) VALUES (?, ?, ?)
ON CONFLICT(ordinal) DO UPDATE SET count = count + excluded.count`

	for i, c := range snap {
		if c == 0 {
			continue
		}
		r := dclayer.Result(i)
		if _, err := tx.ExecContext(ctx, upsert, i, r.String(), int64(c)); err != nil {
			return "", fmt.Errorf("sqlitestore: add %s: %w", r, err)
		}
	}

	id := uuid.NewString()
	if _, err := tx.ExecContext(ctx, "INSERT INTO runs (id, total) VALUES (?, ?)", id, int64(snap.Total())); err != nil {
		return "", fmt.Errorf("sqlitestore: record run: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("sqlitestore: commit: %w", err)
	}

	dclayer.Logger().Debug("sqlitestore: histogram saved", "run", id, "total", snap.Total())
	return id, nil
}

// Runs returns the number of snapshots added so far.
func (s *Store) Runs(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs").Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlitestore: count runs: %w", err)
	}
	return n, nil
}

// Load returns the accumulated counts.
func (s *Store) Load(ctx context.Context) (telemetry.Snapshot, error) {
	var snap telemetry.Snapshot
	rows, err := s.db.QueryContext(ctx, "SELECT ordinal, count FROM results ORDER BY ordinal")
	if err != nil {
		return snap, fmt.Errorf("sqlitestore: load: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ordinal, count int64
		if err := rows.Scan(&ordinal, &count); err != nil {
			return snap, fmt.Errorf("sqlitestore: scan: %w", err)
		}
		if ordinal < 0 || ordinal >= int64(dclayer.NumResults) {
			return snap, fmt.Errorf("%w: ordinal %d", ErrOrdinalMismatch, ordinal)
		}
		snap[ordinal] = uint64(count)
	}
	if err := rows.Err(); err != nil {
		return snap, fmt.Errorf("sqlitestore: load: %w", err)
	}
	return snap, nil
}

// Reset deletes all stored counts and runs.
func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM results; DELETE FROM runs"); err != nil {
		return fmt.Errorf("sqlitestore: reset: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
