package app

import (
	"context"
	"testing"

	"github.com/example/sentinel/internal/config"
	"github.com/example/sentinel/internal/models"
	"github.com/example/sentinel/internal/ports/primary"
)

func injectorPlan() models.Plan {
	return models.Plan{
		Waves: []models.Wave{{ID: "W1", FileLocks: []string{"internal/"}}},
		Tasks: []models.Task{
			{ID: "T1", AgentRole: "Builder", Title: "Build parser", WaveID: "W1", CheckCommand: "go test ./...", Status: models.TaskStatusPending},
			{ID: "T2", AgentRole: "Builder", Title: "Build CLI", WaveID: "W1", CheckCommand: "go test ./...", Status: models.TaskStatusPending},
		},
	}
}

func TestInjectPersistsExpandedPlan(t *testing.T) {
	cfg := config.Default()
	tasks := newMockTaskRepo()
	waves := &mockWaveRepo{}
	list := &mockTaskList{}
	svc := NewPlanService(cfg, tasks, waves, list, nil)

	resp, err := svc.Inject(context.Background(), primary.InjectRequest{Plan: injectorPlan()})
	if err != nil {
		t.Fatalf("Inject() error = %v", err)
	}

	if len(resp.Inserted) != 2 {
		t.Fatalf("inserted = %d, want 2", len(resp.Inserted))
	}
	if len(resp.Plan.Tasks) != 4 {
		t.Errorf("expanded plan tasks = %d, want 4", len(resp.Plan.Tasks))
	}
	// All tasks, original and sentinel, land in the store.
	if len(tasks.upserted) != 4 {
		t.Errorf("persisted tasks = %d, want 4", len(tasks.upserted))
	}
	if _, err := tasks.GetByID(context.Background(), "SENTINEL-T1"); err != nil {
		t.Errorf("SENTINEL-T1 not persisted: %v", err)
	}
	if len(waves.upserted) != 1 || waves.upserted[0].ID != "W1" {
		t.Errorf("persisted waves = %+v", waves.upserted)
	}

	want := []string{
		"- [ ] SENTINEL-T1: validate T1",
		"- [ ] SENTINEL-T2: validate T2",
	}
	if len(list.appended) != len(want) {
		t.Fatalf("checklist lines = %v", list.appended)
	}
	for i, line := range want {
		if list.appended[i] != line {
			t.Errorf("checklist line %d = %q, want %q", i, list.appended[i], line)
		}
	}
}

func TestInjectDisabledPassesThrough(t *testing.T) {
	cfg := config.Default()
	cfg.Sentinel.Enabled = false
	tasks := newMockTaskRepo()
	waves := &mockWaveRepo{}
	list := &mockTaskList{}
	svc := NewPlanService(cfg, tasks, waves, list, nil)

	resp, err := svc.Inject(context.Background(), primary.InjectRequest{Plan: injectorPlan()})
	if err != nil {
		t.Fatalf("Inject() error = %v", err)
	}
	if len(resp.Inserted) != 0 {
		t.Errorf("inserted = %d, want 0 when disabled", len(resp.Inserted))
	}
	if len(resp.Plan.Tasks) != 2 {
		t.Errorf("plan tasks = %d, want unchanged 2", len(resp.Plan.Tasks))
	}
	if len(list.appended) != 0 {
		t.Errorf("checklist lines appended while disabled: %v", list.appended)
	}
}

func TestInjectDisabledRejectsSentinelTasks(t *testing.T) {
	cfg := config.Default()
	cfg.Sentinel.Enabled = false
	svc := NewPlanService(cfg, newMockTaskRepo(), &mockWaveRepo{}, &mockTaskList{}, nil)

	p := injectorPlan()
	p.Tasks = append(p.Tasks, models.Task{
		ID:           "SENTINEL-T1",
		AgentRole:    models.AgentRoleSentinel,
		WaveID:       "W1",
		Dependencies: []string{"T1"},
	})
	if _, err := svc.Inject(context.Background(), primary.InjectRequest{Plan: p}); err == nil {
		t.Error("a disabled sentinel must reject plans that already contain sentinel tasks")
	}
}
