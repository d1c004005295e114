// Squadmatch - Player Compatibility Matching for Social Gaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/squadmatch

// Package store provides the DuckDB-backed persistence layer. It
// implements every repository interface the match package consumes,
// plus the write paths used by onboarding and the mock seeder.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/squadmatch/internal/config"
	"github.com/tomtom215/squadmatch/internal/logging"
	"github.com/tomtom215/squadmatch/internal/match"
)

// Store wraps the DuckDB connection.
type Store struct {
	conn *sql.DB
	cfg  *config.DatabaseConfig
}

// New opens (or creates) the DuckDB database and initializes the schema.
func New(cfg *config.DatabaseConfig) (*Store, error) {
	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	if dir := filepath.Dir(cfg.Path); cfg.Path != ":memory:" && dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
		}
	}

	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s",
		cfg.Path, threads, cfg.MaxMemory)
	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{conn: conn, cfg: cfg}
	if err := s.createTables(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logging.Info().Str("path", cfg.Path).Int("threads", threads).Msg("Database ready")
	return s, nil
}

// Repositories returns the store as the full repository bundle the
// matching core consumes.
func (s *Store) Repositories() match.Repositories {
	return match.Repositories{
		Profiles:      s,
		Traits:        s,
		Schedules:     s,
		Libraries:     s,
		Reliability:   s,
		Relationships: s,
		Pool:          s,
	}
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Ping verifies the connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

func (s *Store) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			display_name TEXT NOT NULL,
			archetype TEXT NOT NULL DEFAULT '',
			online BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS traits (
			user_id TEXT PRIMARY KEY,
			cooperation DOUBLE NOT NULL,
			exploration DOUBLE NOT NULL,
			strategy DOUBLE NOT NULL,
			leadership DOUBLE NOT NULL,
			social DOUBLE NOT NULL,
			archetype TEXT NOT NULL DEFAULT '',
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS schedule_slots (
			user_id TEXT NOT NULL,
			day TEXT NOT NULL,
			slot TEXT NOT NULL,
			PRIMARY KEY (user_id, day, slot)
		)`,
		`CREATE TABLE IF NOT EXISTS library_titles (
			user_id TEXT NOT NULL,
			title_id TEXT NOT NULL,
			PRIMARY KEY (user_id, title_id)
		)`,
		`CREATE TABLE IF NOT EXISTS library_stats (
			user_id TEXT PRIMARY KEY,
			total_play_hours DOUBLE NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS reliability (
			user_id TEXT PRIMARY KEY,
			party_count INTEGER NOT NULL DEFAULT 0,
			score DOUBLE NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS relationships (
			user_id TEXT NOT NULL,
			other_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			PRIMARY KEY (user_id, other_id, kind)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_relationships_kind ON relationships (user_id, kind)`,
		`CREATE INDEX IF NOT EXISTS idx_schedule_user ON schedule_slots (user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_library_user ON library_titles (user_id)`,
	}

	for _, q := range queries {
		if _, err := s.conn.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", q, err)
		}
	}
	return nil
}
