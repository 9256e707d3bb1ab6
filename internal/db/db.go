// Package db owns the SQLite connection and schema for the Sentinel store.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

var (
	conn          *sql.DB
	dbInitialized bool
)

// Open returns the database connection for the given project directory,
// initializing the schema on first use. The store lives alongside the
// audit artifacts under .sentinel/.
func Open(dir string) (*sql.DB, error) {
	if conn != nil {
		return conn, nil
	}

	sentinelDir := filepath.Join(dir, ".sentinel")
	if err := os.MkdirAll(sentinelDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create .sentinel directory: %w", err)
	}

	dbPath := filepath.Join(sentinelDir, "sentinel.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	conn = db
	if !dbInitialized {
		dbInitialized = true
		if err := initSchema(conn); err != nil {
			return nil, fmt.Errorf("failed to initialize schema: %w", err)
		}
	}

	return conn, nil
}

// Close closes the database connection.
func Close() error {
	if conn != nil {
		return conn.Close()
	}
	return nil
}

func initSchema(db *sql.DB) error {
	if _, err := db.Exec(GetSchemaSQL()); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return RunMigrations(db)
}
