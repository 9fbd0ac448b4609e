// Package runlog is the optional run-history store: a local SQLite file
// recording one row per integrator or aggregator invocation, for anyone
// auditing what parameters produced a given trajectory or density file.
// It is ambient infrastructure, not queried by the tools themselves — set
// RUNLOG to a path to enable it; leave it unset and Open returns a no-op
// store.
package runlog

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	_ "modernc.org/sqlite"

	"trajectory/internal/errs"
)

// Store appends run-history records to a SQLite database. A nil *sql.DB
// means logging is disabled; every method is then a no-op.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the run-history database at path. An
// empty path disables the store entirely.
func Open(path string) (*Store, error) {
	if path == "" {
		return &Store{}, nil
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errs.Wrapf(errs.ErrUnreadableFile, "opening run log %s: %v", path, err)
	}
	const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	tool       TEXT NOT NULL,
	started_at TEXT NOT NULL,
	finished_at TEXT NOT NULL,
	params     TEXT NOT NULL,
	output_path TEXT NOT NULL,
	status     TEXT NOT NULL,
	detail     TEXT NOT NULL
);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errs.Wrapf(errs.ErrUnreadableFile, "initializing run log schema: %v", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle, if any.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record is one completed run, ready to be appended.
type Record struct {
	Tool       string
	StartedAt  time.Time
	FinishedAt time.Time
	Params     string
	OutputPath string
	Status     string // "ok" or "error"
	Detail     string
}

// Append inserts one run record. A no-op store silently discards it.
func (s *Store) Append(r Record) error {
	if s.db == nil {
		return nil
	}
	_, err := s.db.Exec(
		`INSERT INTO runs (tool, started_at, finished_at, params, output_path, status, detail)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Tool, r.StartedAt.Format(time.RFC3339), r.FinishedAt.Format(time.RFC3339),
		r.Params, r.OutputPath, r.Status, r.Detail,
	)
	if err != nil {
		return errs.Wrapf(errs.ErrUnreadableFile, "appending run log record: %v", err)
	}
	return nil
}

// Enabled reports whether this store will actually persist records.
func (s *Store) Enabled() bool { return s.db != nil }

// ParamString renders a flat "KEY=value KEY=value" parameter summary, the
// same shorthand the original tool printed to stdout at startup.
func ParamString(pairs map[string]string) string {
	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := ""
	for _, k := range keys {
		out += fmt.Sprintf("%s=%s ", k, pairs[k])
	}
	return out
}
