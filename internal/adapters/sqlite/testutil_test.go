// Package sqlite_test contains integration tests for SQLite repositories.
//
// All test setup uses db.GetSchemaSQL() so tests run against the
// authoritative schema. Do not hardcode CREATE TABLE statements here.
package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/sentinel/internal/adapters/sqlite"
	"github.com/example/sentinel/internal/db"
	"github.com/example/sentinel/internal/ports/secondary"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if _, err = testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedWave inserts a test wave and returns its ID.
func seedWave(t *testing.T, database *sql.DB, id string, locks []string) string {
	t.Helper()
	if id == "" {
		id = "W1"
	}
	repo := sqlite.NewWaveRepository(database)
	if err := repo.Upsert(context.Background(), &secondary.WaveRecord{ID: id, FileLocks: locks}); err != nil {
		t.Fatalf("failed to seed wave: %v", err)
	}
	return id
}

// seedTask inserts a test task and returns its ID.
func seedTask(t *testing.T, database *sql.DB, id, role, wave string) string {
	t.Helper()
	if id == "" {
		id = "T-001"
	}
	if role == "" {
		role = "Builder"
	}
	repo := sqlite.NewTaskRepository(database)
	err := repo.Upsert(context.Background(), &secondary.TaskRecord{
		ID:           id,
		AgentRole:    role,
		Title:        "Test task " + id,
		WaveID:       wave,
		CheckCommand: "go test ./...",
		Status:       "pending",
	})
	if err != nil {
		t.Fatalf("failed to seed task: %v", err)
	}
	return id
}
