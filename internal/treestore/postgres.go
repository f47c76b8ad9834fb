package treestore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Postgres backs the tree with a JSONB nodes table via the pgx stdlib driver.
type Postgres struct {
	sqlStore
}

// NewPostgres opens a pooled connection and creates the nodes table.
func NewPostgres(connString string) (*Postgres, error) {
	db, err := sql.Open("pgx", connString)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)
	if err := db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS nodes (
			path   TEXT PRIMARY KEY,
			record JSONB NOT NULL
		)`); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Postgres{sqlStore{db: db, dollarBind: true}}, nil
}
