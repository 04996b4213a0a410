// Package storage owns the connection to the sales data store: the
// bounded connection pool, schema migrations, and the read-only
// aggregation queries behind the dashboard.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"salesdash/internal/config"

	_ "modernc.org/sqlite"
)

// Repository wraps the pooled database handle. It is constructed once
// in main and injected into the dashboard service; there is no
// package-level singleton.
type Repository struct {
	db *sql.DB
}

// NewRepository opens the sales store and applies migrations. The pool
// is bounded per the configuration (reference: 5 idle, 20 open). A
// failure here leaves the caller free to run degraded rather than exit.
func NewRepository(cfg *config.Config) (*Repository, error) {
	dbPath := cfg.DatabaseURL
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sales database: %w", err)
	}

	db.SetMaxOpenConns(cfg.PoolMaxOpen)
	db.SetMaxIdleConns(cfg.PoolMaxIdle)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	slog.Info("Sales store opened",
		"path", dbPath,
		"pool_max_open", cfg.PoolMaxOpen,
		"pool_max_idle", cfg.PoolMaxIdle)

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping reports whether the store is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// PoolStats exposes the pool counters (open, in-use, idle) for
// readiness checks and tests.
func (r *Repository) PoolStats() sql.DBStats {
	return r.db.Stats()
}

// withConn runs fn against one pooled connection. Acquisition blocks
// when the pool is exhausted; the deferred close returns the connection
// to the idle set on every exit path, including query failure.
func (r *Repository) withConn(ctx context.Context, fn func(*sql.Conn) error) error {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()
	return fn(conn)
}
