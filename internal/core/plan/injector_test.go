package plan

import (
	"testing"

	"github.com/example/sentinel/internal/models"
)

func regularTask(id, wave string) models.Task {
	return models.Task{
		ID:           id,
		AgentRole:    "Builder",
		Title:        "Build " + id,
		WaveID:       wave,
		CheckCommand: "go test ./...",
		Status:       models.TaskStatusPending,
	}
}

func TestExpandInsertsSentinelAfterEachTask(t *testing.T) {
	p := models.Plan{Tasks: []models.Task{
		regularTask("T-001", "W1"),
		regularTask("T-002", "W1"),
	}}

	res, err := Expand(p, true)
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	wantOrder := []string{"T-001", "SENTINEL-T-001", "T-002", "SENTINEL-T-002"}
	if len(res.Plan.Tasks) != len(wantOrder) {
		t.Fatalf("expanded plan has %d tasks, want %d", len(res.Plan.Tasks), len(wantOrder))
	}
	for i, id := range wantOrder {
		if res.Plan.Tasks[i].ID != id {
			t.Errorf("task[%d].ID = %s, want %s", i, res.Plan.Tasks[i].ID, id)
		}
	}

	if len(res.Inserted) != 2 {
		t.Fatalf("inserted %d sentinel tasks, want 2", len(res.Inserted))
	}
	s := res.Inserted[0]
	if s.AgentRole != models.AgentRoleSentinel {
		t.Errorf("inserted agent role = %s, want %s", s.AgentRole, models.AgentRoleSentinel)
	}
	if s.ParentID() != "T-001" {
		t.Errorf("inserted parent = %s, want T-001", s.ParentID())
	}
	if s.WaveID != "W1" {
		t.Errorf("inserted wave = %s, want W1", s.WaveID)
	}
}

func TestExpandIsIdempotent(t *testing.T) {
	p := models.Plan{Tasks: []models.Task{regularTask("T-001", "W1")}}

	first, err := Expand(p, true)
	if err != nil {
		t.Fatalf("first Expand() error = %v", err)
	}
	second, err := Expand(first.Plan, true)
	if err != nil {
		t.Fatalf("second Expand() error = %v", err)
	}

	if len(second.Plan.Tasks) != len(first.Plan.Tasks) {
		t.Errorf("re-expansion grew plan from %d to %d tasks", len(first.Plan.Tasks), len(second.Plan.Tasks))
	}
	if len(second.Inserted) != 0 {
		t.Errorf("re-expansion inserted %d tasks, want 0", len(second.Inserted))
	}
}

func TestExpandDisabledReturnsPlanUnchanged(t *testing.T) {
	p := models.Plan{Tasks: []models.Task{
		regularTask("T-001", "W1"),
		regularTask("T-002", "W1"),
	}}

	res, err := Expand(p, false)
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if len(res.Plan.Tasks) != 2 || len(res.Inserted) != 0 {
		t.Errorf("disabled expansion changed the plan: %d tasks, %d inserted", len(res.Plan.Tasks), len(res.Inserted))
	}
	for _, task := range res.Plan.Tasks {
		if task.IsSentinel() {
			t.Errorf("disabled plan contains sentinel task %s", task.ID)
		}
	}
}

func TestExpandDisabledRejectsExistingSentinelTasks(t *testing.T) {
	p := models.Plan{Tasks: []models.Task{
		regularTask("T-001", "W1"),
		{
			ID:           "SENTINEL-T-001",
			AgentRole:    models.AgentRoleSentinel,
			Dependencies: []string{"T-001"},
		},
	}}

	if _, err := Expand(p, false); err == nil {
		t.Fatal("Expand() with disabled sentinel accepted a plan containing sentinel tasks")
	}
}

func TestChecklistLine(t *testing.T) {
	s := models.Task{
		ID:           "SENTINEL-T-007",
		AgentRole:    models.AgentRoleSentinel,
		Dependencies: []string{"T-007"},
	}
	got := ChecklistLine(s)
	want := "- [ ] SENTINEL-T-007: validate T-007"
	if got != want {
		t.Errorf("ChecklistLine() = %q, want %q", got, want)
	}
}
