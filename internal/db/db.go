// Package db bootstraps the nudge task store: directory creation,
// connection pragmas, and schema migrations.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Pragmas applied to every connection. WAL keeps capture writes from
// blocking list reads; busy_timeout covers a second nudge invocation
// racing the first.
var pragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA busy_timeout = 5000",
	"PRAGMA foreign_keys = ON",
}

// OpenDB opens the SQLite task store at path, creating its parent
// directory when needed, and brings the schema up to date. ":memory:"
// opens an ephemeral store.
func OpenDB(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating task store directory: %w", err)
		}
	}

	store, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening task store: %w", err)
	}

	for _, pragma := range pragmas {
		if _, err := store.Exec(pragma); err != nil {
			store.Close()
			return nil, fmt.Errorf("applying %q: %w", pragma, err)
		}
	}

	if err := Migrate(store); err != nil {
		store.Close()
		return nil, fmt.Errorf("migrating task store: %w", err)
	}
	return store, nil
}
