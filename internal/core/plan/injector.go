// Package plan contains the pure business logic for task-plan expansion.
// This is part of the Functional Core - no I/O, only pure functions.
package plan

import (
	"fmt"

	"github.com/example/sentinel/internal/models"
)

// SentinelTaskID derives the id of the Sentinel task validating the
// given parent task.
func SentinelTaskID(parentID string) string {
	return "SENTINEL-" + parentID
}

// ChecklistLine renders the persisted task-list entry for a Sentinel task.
func ChecklistLine(s models.Task) string {
	return fmt.Sprintf("- [ ] %s: validate %s", s.ID, s.ParentID())
}

// ExpandResult is the outcome of one injection pass.
type ExpandResult struct {
	Plan     models.Plan
	Inserted []models.Task // newly created Sentinel tasks, in plan order
}

// Expand inserts one Sentinel task immediately after each regular task.
// The inserted task depends on exactly its parent and carries the
// parent's wave.
//
// When enabled is false the plan is returned unchanged; a plan that
// already contains Sentinel tasks in that configuration violates the
// bootstrap invariant (the Sentinel must never validate its own build)
// and is rejected.
//
// Expansion is idempotent: a regular task that is already followed by
// its Sentinel task is not expanded again.
func Expand(p models.Plan, enabled bool) (ExpandResult, error) {
	if !enabled {
		for _, t := range p.Tasks {
			if t.IsSentinel() {
				return ExpandResult{}, fmt.Errorf("sentinel disabled but plan contains sentinel task %s", t.ID)
			}
		}
		return ExpandResult{Plan: p}, nil
	}

	covered := make(map[string]bool)
	for _, t := range p.Tasks {
		if t.IsSentinel() {
			covered[t.ParentID()] = true
		}
	}

	out := models.Plan{Waves: p.Waves, Tasks: make([]models.Task, 0, len(p.Tasks)*2)}
	var inserted []models.Task
	for _, t := range p.Tasks {
		out.Tasks = append(out.Tasks, t)
		if t.IsSentinel() || covered[t.ID] {
			continue
		}
		s := models.Task{
			ID:           SentinelTaskID(t.ID),
			AgentRole:    models.AgentRoleSentinel,
			Title:        fmt.Sprintf("Validate %s", t.Title),
			WaveID:       t.WaveID,
			Dependencies: []string{t.ID},
			CheckCommand: t.CheckCommand,
			Status:       models.TaskStatusPending,
		}
		out.Tasks = append(out.Tasks, s)
		inserted = append(inserted, s)
	}

	return ExpandResult{Plan: out, Inserted: inserted}, nil
}
