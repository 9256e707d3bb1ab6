package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/sentinel/internal/adapters/sqlite"
	"github.com/example/sentinel/internal/ports/secondary"
)

func TestTaskRepositoryUpsertAndGet(t *testing.T) {
	database := setupTestDB(t)
	wave := seedWave(t, database, "W1", nil)
	repo := sqlite.NewTaskRepository(database)
	ctx := context.Background()

	task := &secondary.TaskRecord{
		ID:           "SENTINEL-T-001",
		AgentRole:    "Sentinel",
		Title:        "Validate T-001",
		WaveID:       wave,
		Dependencies: []string{"T-001"},
		CheckCommand: "go test ./...",
		Status:       "pending",
	}
	if err := repo.Upsert(ctx, task); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	got, err := repo.GetByID(ctx, "SENTINEL-T-001")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.AgentRole != "Sentinel" {
		t.Errorf("AgentRole = %s, want Sentinel", got.AgentRole)
	}
	if len(got.Dependencies) != 1 || got.Dependencies[0] != "T-001" {
		t.Errorf("Dependencies = %v, want [T-001]", got.Dependencies)
	}
	if got.CreatedAt == "" || got.UpdatedAt == "" {
		t.Error("timestamps not populated")
	}
}

func TestTaskRepositoryUpsertReplacesExisting(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewTaskRepository(database)
	ctx := context.Background()

	id := seedTask(t, database, "T-001", "Builder", "")

	if err := repo.Upsert(ctx, &secondary.TaskRecord{
		ID:        id,
		AgentRole: "Builder",
		Title:     "Renamed",
		Status:    "done",
	}); err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}

	got, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Title != "Renamed" || got.Status != "done" {
		t.Errorf("upsert did not replace: title=%q status=%q", got.Title, got.Status)
	}

	all, err := repo.List(ctx, secondary.TaskFilters{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 1 {
		t.Errorf("List() returned %d tasks, want 1", len(all))
	}
}

func TestTaskRepositoryListFilters(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewTaskRepository(database)
	ctx := context.Background()

	seedTask(t, database, "T-001", "Builder", "")
	seedTask(t, database, "SENTINEL-T-001", "Sentinel", "")
	seedTask(t, database, "T-002", "Builder", "")

	sentinels, err := repo.List(ctx, secondary.TaskFilters{AgentRole: "Sentinel"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(sentinels) != 1 || sentinels[0].ID != "SENTINEL-T-001" {
		t.Errorf("List(Sentinel) = %v, want [SENTINEL-T-001]", sentinels)
	}

	all, err := repo.List(ctx, secondary.TaskFilters{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("List() returned %d tasks, want 3", len(all))
	}
	// Insertion order preserved.
	if all[0].ID != "T-001" || all[2].ID != "T-002" {
		t.Errorf("List() order = [%s %s %s]", all[0].ID, all[1].ID, all[2].ID)
	}
}

func TestTaskRepositoryUpdateStatus(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewTaskRepository(database)
	ctx := context.Background()

	id := seedTask(t, database, "", "", "")

	if err := repo.UpdateStatus(ctx, id, "done"); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	got, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Status != "done" {
		t.Errorf("Status = %s, want done", got.Status)
	}

	if err := repo.UpdateStatus(ctx, "T-999", "done"); err == nil {
		t.Error("UpdateStatus() on missing task did not error")
	}
}

func TestTaskRepositoryGetMissing(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewTaskRepository(database)

	if _, err := repo.GetByID(context.Background(), "T-404"); err == nil {
		t.Error("GetByID() on missing task did not error")
	}
}
