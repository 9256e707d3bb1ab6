package db

import (
	"database/sql"
	"fmt"
)

// Migration represents one schema migration.
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.DB) error
}

// migrations is the list of all migrations in order. Fresh stores get
// the full schema from SchemaSQL; migrations exist for stores created
// by earlier versions.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "add_cost_usd_to_runs",
		Up:      migrationV1,
	},
}

// RunMigrations applies any migrations newer than the store's version.
func RunMigrations(db *sql.DB) error {
	for _, m := range migrations {
		var applied int
		err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations WHERE version = ?", m.Version).Scan(&applied)
		if err != nil {
			return fmt.Errorf("failed to read migration state: %w", err)
		}
		if applied > 0 {
			continue
		}
		if err := m.Up(db); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
		}
		if _, err := db.Exec("INSERT INTO schema_migrations (version, name) VALUES (?, ?)", m.Version, m.Name); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
	}
	return nil
}

// migrationV1 backfills the cost column for stores created before run
// costs were tracked. On fresh stores the column already exists.
func migrationV1(db *sql.DB) error {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM pragma_table_info('runs') WHERE name = 'cost_usd'").Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	_, err = db.Exec("ALTER TABLE runs ADD COLUMN cost_usd REAL NOT NULL DEFAULT 0")
	return err
}
