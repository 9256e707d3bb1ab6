// Package primary defines the primary ports (driving interfaces) for the application.
package primary

import (
	"context"

	"github.com/example/sentinel/internal/models"
)

// PlanService defines the primary port for task-plan expansion.
type PlanService interface {
	// Inject expands a plan with one Sentinel task per regular task,
	// persists the expanded plan to the task store, and appends a
	// checklist line per inserted task. With the sentinel disabled the
	// plan passes through unchanged.
	Inject(ctx context.Context, req InjectRequest) (*InjectResponse, error)
}

// InjectRequest describes one injection pass.
type InjectRequest struct {
	Plan models.Plan
}

// InjectResponse reports the outcome of an injection pass.
type InjectResponse struct {
	Plan     models.Plan
	Inserted []models.Task
}
