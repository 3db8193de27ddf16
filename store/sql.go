// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/folium-11/elo-arena/models"
)

// SQL stores the arena document as a single JSON row and uploaded blobs
// in a sibling table. It speaks both sqlite (modernc.org/sqlite) and
// postgres (lib/pq); the driver must be blank-imported by the caller.
type SQL struct {
	db       *sql.DB
	postgres bool
}

// OpenSQL connects to the backing database. driver is "sqlite" or
// "postgres", matching DATABASE_TYPE.
func OpenSQL(driver, dsn string) (*SQL, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &SQL{db: db, postgres: driver == "postgres"}, nil
}

// NewSQL wraps an existing connection. Used by tests.
func NewSQL(db *sql.DB, postgres bool) *SQL {
	return &SQL{db: db, postgres: postgres}
}

// Ping verifies the connection.
func (s *SQL) Ping() error { return s.db.Ping() }

// Close releases the connection.
func (s *SQL) Close() error { return s.db.Close() }

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS arena_state (
    id INTEGER PRIMARY KEY,
    doc TEXT NOT NULL,
    version TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS blobs (
    key TEXT PRIMARY KEY,
    content_type TEXT NOT NULL,
    data BLOB NOT NULL,
    created_at TIMESTAMP NOT NULL
);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS arena_state (
    id INTEGER PRIMARY KEY,
    doc TEXT NOT NULL,
    version TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS blobs (
    key TEXT PRIMARY KEY,
    content_type TEXT NOT NULL,
    data BYTEA NOT NULL,
    created_at TIMESTAMP NOT NULL
);
`

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func (s *SQL) CreateSchema() error {
	schema := schemaSQLite
	if s.postgres {
		schema = schemaPostgres
	}
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// rebind rewrites ? placeholders to $n for postgres.
func (s *SQL) rebind(query string) string {
	if !s.postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

func (s *SQL) Get(ctx context.Context) (*models.State, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT doc FROM arena_state WHERE id = 1
	`)).Scan(&doc)
	if err == sql.ErrNoRows {
		return models.NewState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state: %w", err)
	}

	st := &models.State{}
	if err := json.Unmarshal([]byte(doc), st); err != nil {
		return nil, fmt.Errorf("failed to decode state document: %w", err)
	}
	st.Normalize()
	return st, nil
}

func (s *SQL) Put(ctx context.Context, st *models.State) error {
	doc, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to encode state document: %w", err)
	}

	_, err = s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO arena_state (id, doc, version, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			doc = EXCLUDED.doc,
			version = EXCLUDED.version,
			updated_at = EXCLUDED.updated_at
	`), string(doc), uuid.NewString(), time.Now())
	if err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	return nil
}

func (s *SQL) Head(ctx context.Context) (string, error) {
	var version string
	err := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT version FROM arena_state WHERE id = 1
	`)).Scan(&version)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read state version: %w", err)
	}
	return version, nil
}

func (s *SQL) Store(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO blobs (key, content_type, data, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (key) DO NOTHING
	`), key, contentType, data, time.Now())
	if err != nil {
		return "", fmt.Errorf("failed to store blob: %w", err)
	}
	return "/uploads/" + key, nil
}

func (s *SQL) Open(ctx context.Context, key string) ([]byte, string, error) {
	var data []byte
	var contentType string
	err := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT data, content_type FROM blobs WHERE key = ?
	`), key).Scan(&data, &contentType)
	if err == sql.ErrNoRows {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to read blob: %w", err)
	}
	return data, contentType, nil
}

func (s *SQL) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, s.rebind(`
		DELETE FROM blobs WHERE key = ?
	`), key)
	if err != nil {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	return nil
}
