package treestore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the embedded backend, useful for single-binary deployments.
type SQLite struct {
	sqlStore
}

// NewSQLite opens (or creates) the database file with WAL enabled.
func NewSQLite(dbPath string) (*SQLite, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		os.MkdirAll(dir, 0o755)
	}
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS nodes (
			path   TEXT PRIMARY KEY,
			record TEXT NOT NULL
		)`); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLite{sqlStore{db: db}}, nil
}
