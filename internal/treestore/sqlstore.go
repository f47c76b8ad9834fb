package treestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// sqlStore backs the tree with a flat nodes table, shared by the Postgres and
// SQLite backends. Each row is one record: (path, JSON document).
type sqlStore struct {
	db         *sql.DB
	dollarBind bool // rewrite ? placeholders to $n (Postgres)
}

func (s *sqlStore) bind(query string) string {
	if !s.dollarBind {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *sqlStore) subtree(ctx context.Context, path string) (map[string]Record, error) {
	query := `SELECT path, record FROM nodes WHERE path = ? OR path LIKE ? || '/%'`
	args := []any{path, path}
	if path == "" {
		query = `SELECT path, record FROM nodes`
		args = nil
	}
	rows, err := s.db.QueryContext(ctx, s.bind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flat := map[string]Record{}
	for rows.Next() {
		var p string
		var raw []byte
		if err := rows.Scan(&p, &raw); err != nil {
			return nil, err
		}
		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("decode %s: %w", p, err)
		}
		flat[p] = rec
	}
	return flat, rows.Err()
}

func (s *sqlStore) Get(ctx context.Context, path string) (Node, error) {
	flat, err := s.subtree(ctx, path)
	if err != nil {
		return nil, err
	}
	return assemble(flat, path), nil
}

func (s *sqlStore) Query(ctx context.Context, path, field, value string) (map[string]Record, error) {
	flat, err := s.subtree(ctx, path)
	if err != nil {
		return nil, err
	}
	return matchChildren(flat, path, field, value), nil
}

func (s *sqlStore) Push(ctx context.Context, path string, rec Record) (string, error) {
	key := newKey()
	buf, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}
	_, err = s.db.ExecContext(ctx,
		s.bind(`INSERT INTO nodes (path, record) VALUES (?, ?)`),
		path+"/"+key, buf)
	if err != nil {
		return "", err
	}
	return key, nil
}

func (s *sqlStore) Update(ctx context.Context, path string, fields Record) error {
	rec := Record{}
	var raw []byte
	err := s.db.QueryRowContext(ctx,
		s.bind(`SELECT record FROM nodes WHERE path = ?`), path).Scan(&raw)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return err
	default:
		if err := json.Unmarshal(raw, &rec); err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
	}
	buf, err := json.Marshal(mergeRecord(rec, fields))
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, s.bind(`
		INSERT INTO nodes (path, record) VALUES (?, ?)
		ON CONFLICT (path) DO UPDATE SET record = excluded.record`),
		path, buf)
	return err
}

func (s *sqlStore) Remove(ctx context.Context, path string) error {
	_, err := s.db.ExecContext(ctx,
		s.bind(`DELETE FROM nodes WHERE path = ? OR path LIKE ? || '/%'`),
		path, path)
	return err
}

func (s *sqlStore) Dump(ctx context.Context) (Node, error) {
	flat, err := s.subtree(ctx, "")
	if err != nil {
		return nil, err
	}
	n := assemble(flat, "")
	if n == nil {
		n = Node{}
	}
	return n, nil
}

func (s *sqlStore) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *sqlStore) Close() error { return s.db.Close() }
