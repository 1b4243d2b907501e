// Package cache is the optional, on-disk persisted-state layout spec §6
// describes: "an optional workspace folder stores serialized textual
// inference records keyed by absolute module path" in a forward-
// compatible format. Records are stored in a small embedded SQLite
// database (modernc.org/sqlite, pure Go, no cgo) rather than flat files,
// so a workspace can be opened and queried without re-walking a
// directory of cache entries by hand.
package cache

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS module_entities (
	module_path TEXT NOT NULL,
	dotted_name TEXT NOT NULL,
	content_key TEXT NOT NULL,
	tuple_line  TEXT NOT NULL,
	PRIMARY KEY (module_path, dotted_name)
);`

// Record is one persisted (dotted name -> textual tuple) entry for a
// module. ContentKey is the module source's object.ContentKey at the time
// TupleLine was computed; a reader that finds a mismatching ContentKey
// knows the record is stale rather than trusting a wrong cache hit.
type Record struct {
	DottedName string
	ContentKey string
	TupleLine  string
}

// Store is a handle onto the persisted cache database.
type Store struct {
	db *sql.DB
}

// Open creates (or reuses) the SQLite database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing cache schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put replaces every stored record for modulePath with records.
func (s *Store) Put(modulePath string, records []Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("cache: begin: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM module_entities WHERE module_path = ?`, modulePath); err != nil {
		tx.Rollback()
		return fmt.Errorf("cache: clearing %s: %w", modulePath, err)
	}
	for _, r := range records {
		if _, err := tx.Exec(
			`INSERT INTO module_entities (module_path, dotted_name, content_key, tuple_line) VALUES (?, ?, ?, ?)`,
			modulePath, r.DottedName, r.ContentKey, r.TupleLine,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("cache: inserting %s#%s: %w", modulePath, r.DottedName, err)
		}
	}
	return tx.Commit()
}

// Get returns every stored record for modulePath, in no particular order.
func (s *Store) Get(modulePath string) ([]Record, error) {
	rows, err := s.db.Query(
		`SELECT dotted_name, content_key, tuple_line FROM module_entities WHERE module_path = ?`,
		modulePath,
	)
	if err != nil {
		return nil, fmt.Errorf("cache: querying %s: %w", modulePath, err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.DottedName, &r.ContentKey, &r.TupleLine); err != nil {
			return nil, fmt.Errorf("cache: scanning %s: %w", modulePath, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Forget deletes every stored record for modulePath (used when a resource
// is removed from the workspace rather than merely re-saved).
func (s *Store) Forget(modulePath string) error {
	_, err := s.db.Exec(`DELETE FROM module_entities WHERE module_path = ?`, modulePath)
	if err != nil {
		return fmt.Errorf("cache: forgetting %s: %w", modulePath, err)
	}
	return nil
}
