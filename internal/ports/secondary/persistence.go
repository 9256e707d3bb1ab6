// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// TaskRepository defines the secondary port for the flat task store.
// Sentinel-to-parent cross references are resolved by id lookup here,
// never by object references.
type TaskRepository interface {
	// Upsert persists a task, replacing any existing row with the same id.
	Upsert(ctx context.Context, task *TaskRecord) error

	// GetByID retrieves a task by its ID.
	GetByID(ctx context.Context, id string) (*TaskRecord, error)

	// List retrieves tasks matching the given filters, in insertion order.
	List(ctx context.Context, filters TaskFilters) ([]*TaskRecord, error)

	// UpdateStatus sets the status of a task.
	UpdateStatus(ctx context.Context, id, status string) error
}

// TaskRecord represents a task as stored in persistence.
type TaskRecord struct {
	ID           string
	AgentRole    string
	Title        string
	WaveID       string
	Dependencies []string // stored as a JSON array
	CheckCommand string
	Status       string
	CreatedAt    string
	UpdatedAt    string
}

// TaskFilters contains filter options for querying tasks.
type TaskFilters struct {
	AgentRole string
	WaveID    string
	Status    string
}

// WaveRepository defines the secondary port for wave file-lock storage.
type WaveRepository interface {
	// Upsert persists a wave, replacing any existing row with the same id.
	Upsert(ctx context.Context, wave *WaveRecord) error

	// List retrieves all waves.
	List(ctx context.Context) ([]*WaveRecord, error)
}

// WaveRecord represents a wave's file-lock declaration as stored.
type WaveRecord struct {
	ID        string
	FileLocks []string // stored as a JSON array
}

// RunRepository defines the secondary port for Sentinel run history.
// One row is written per run, mirroring the manifest it audited.
type RunRepository interface {
	// Create persists a new run record.
	Create(ctx context.Context, run *RunRecord) error

	// GetLatestByTaskID retrieves the most recent run for a task.
	GetLatestByTaskID(ctx context.Context, taskID string) (*RunRecord, error)

	// List retrieves run records, most recent first.
	List(ctx context.Context, limit int) ([]*RunRecord, error)
}

// RunRecord represents one Sentinel run as stored in persistence.
type RunRecord struct {
	ID           string
	TaskID       string
	Result       string // 'PASS', 'FAIL', 'ERROR'
	TierUsed     int
	Iterations   int
	CostUSD      float64
	FilesChanged []string // stored as a JSON array
	CreatedAt    string
}
