// Package storage persists collection entries in SQLite. It is a
// collaborator of the collection aggregator: the aggregator owns the
// reconciliation semantics, storage only mirrors its state durably.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// DB wraps the database connection.
type DB struct {
	conn *sql.DB
	path string
}

// Config holds database configuration settings.
type Config struct {
	// Path is the SQLite file path. ":memory:" opens an in-memory
	// database, useful for tests.
	Path string

	// MaxOpenConns caps open connections. Default: 10.
	MaxOpenConns int

	// BusyTimeout is how long to wait on a locked database. Default: 5s.
	BusyTimeout time.Duration

	// AutoMigrate runs pending migrations during Open.
	AutoMigrate bool
}

// DefaultConfig returns a Config with sensible defaults for path.
func DefaultConfig(path string) *Config {
	return &Config{
		Path:         path,
		MaxOpenConns: 10,
		BusyTimeout:  5 * time.Second,
		AutoMigrate:  true,
	}
}

// Open opens the collection database, creating the parent directory and
// optionally applying migrations.
func Open(config *Config) (*DB, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if config.MaxOpenConns <= 0 {
		config.MaxOpenConns = 10
	}
	if config.BusyTimeout <= 0 {
		config.BusyTimeout = 5 * time.Second
	}

	if config.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(config.Path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	if config.AutoMigrate && config.Path != ":memory:" {
		if err := migrateUp(config.Path); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	dsn := fmt.Sprintf("%s?_busy_timeout=%d&_journal_mode=WAL&_foreign_keys=on",
		config.Path, config.BusyTimeout.Milliseconds())

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	conn.SetMaxOpenConns(config.MaxOpenConns)

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{conn: conn, path: config.Path}

	// In-memory databases cannot be migrated through a URL, so the
	// schema is applied directly.
	if config.AutoMigrate && config.Path == ":memory:" {
		if err := db.applySchemaDirect(); err != nil {
			_ = conn.Close()
			return nil, err
		}
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	return db.conn.Close()
}

// Conn returns the underlying sql.DB for raw queries.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}
