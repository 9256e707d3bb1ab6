// Package models contains domain types for Sentinel entities.
// SQL persistence lives in internal/adapters/sqlite/*.go
package models

import "time"

// AgentRoleSentinel marks a task as an auto-inserted validation task.
const AgentRoleSentinel = "Sentinel"

// Task represents one unit of orchestrated work.
// The orchestrator owns tasks; the Sentinel reads them and appends
// sibling validation tasks.
type Task struct {
	ID           string
	AgentRole    string
	Title        string
	WaveID       string
	Dependencies []string
	CheckCommand string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Task status constants
const (
	TaskStatusPending = "pending"
	TaskStatusDone    = "done"
)

// IsSentinel reports whether the task is an auto-inserted Sentinel task.
func (t *Task) IsSentinel() bool {
	return t.AgentRole == AgentRoleSentinel
}

// ParentID returns the id of the task this Sentinel task validates.
// Sentinel tasks depend on exactly one parent; for regular tasks the
// result is empty.
func (t *Task) ParentID() string {
	if !t.IsSentinel() || len(t.Dependencies) != 1 {
		return ""
	}
	return t.Dependencies[0]
}

// Wave is one checkpointed batch of tasks. FileLocks declares the files
// the wave owns; edits to another wave's locked files are cross-wave
// collisions.
type Wave struct {
	ID        string
	FileLocks []string
}

// Plan is the ordered task plan for an orchestration run.
type Plan struct {
	Waves []Wave
	Tasks []Task
}

// LocksExcluding returns a map from locked file path to owning wave id,
// excluding the given wave. Used for cross-wave collision checks.
func (p *Plan) LocksExcluding(waveID string) map[string]string {
	locks := make(map[string]string)
	for _, w := range p.Waves {
		if w.ID == waveID {
			continue
		}
		for _, f := range w.FileLocks {
			locks[f] = w.ID
		}
	}
	return locks
}
