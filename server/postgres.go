package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/etnz/hisab"
	_ "github.com/lib/pq"
)

const schema = `CREATE TABLE IF NOT EXISTS hisab_collections (
	module     text PRIMARY KEY,
	data       jsonb NOT NULL,
	updated_at timestamptz NOT NULL DEFAULT now()
)`

// PostgresStore keeps one row per collection in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// OpenPostgres connects to the database at connStr and creates the table if needed.
func OpenPostgres(ctx context.Context, connStr string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Close() error { return s.db.Close() }

func (s *PostgresStore) Snapshot(ctx context.Context) (hisab.State, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT module, data FROM hisab_collections`)
	if err != nil {
		return hisab.State{}, fmt.Errorf("failed to query collections: %w", err)
	}
	defer rows.Close()

	state := hisab.NewState()
	for rows.Next() {
		var name string
		var data []byte
		if err := rows.Scan(&name, &data); err != nil {
			return hisab.State{}, fmt.Errorf("failed to scan collection: %w", err)
		}
		module, err := hisab.ParseModule(name)
		if err != nil {
			continue // rows of a newer schema
		}
		if err := state.SetRaw(module, data); err != nil {
			return hisab.State{}, err
		}
	}
	return state, rows.Err()
}

func (s *PostgresStore) Replace(ctx context.Context, module hisab.Module, data json.RawMessage) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO hisab_collections (module, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (module) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
		string(module), string(data))
	if err != nil {
		return fmt.Errorf("failed to replace %s: %w", module, err)
	}
	return nil
}
