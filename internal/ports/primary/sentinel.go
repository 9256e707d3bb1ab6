package primary

import (
	"context"

	"github.com/example/sentinel/internal/models"
)

// SentinelService defines the primary port for running validation tasks.
type SentinelService interface {
	// Run executes one full Sentinel run for the given Sentinel task.
	// A *models.WaveHaltError return signals that the wave must not be
	// checkpointed; the manifest triple is written before it is raised.
	Run(ctx context.Context, req RunRequest) (*RunResponse, error)

	// Probe checks local tier liveness once, without caching.
	Probe(ctx context.Context) bool

	// GetRun retrieves the most recent run record for a task.
	GetRun(ctx context.Context, taskID string) (*Run, error)

	// ListRuns lists run records, most recent first.
	ListRuns(ctx context.Context, limit int) ([]*Run, error)
}

// RunRequest identifies the Sentinel task to execute.
type RunRequest struct {
	TaskID  string
	WorkDir string
}

// RunResponse reports one completed run. When the run was halted the
// response is still populated; the halt travels as the returned error.
type RunResponse struct {
	Manifest   models.Manifest
	Tiers      []models.TierResult
	Violations []models.Violation
	Annotated  int // task-list lines annotated by the cascade
	AuditDir   string
}

// Run represents a historical run record at the port boundary.
type Run struct {
	ID           string
	TaskID       string
	Result       string
	TierUsed     int
	Iterations   int
	CostUSD      float64
	FilesChanged []string
	CreatedAt    string
}
