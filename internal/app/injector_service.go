package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/sentinel/internal/config"
	"github.com/example/sentinel/internal/core/plan"
	"github.com/example/sentinel/internal/models"
	"github.com/example/sentinel/internal/ports/primary"
	"github.com/example/sentinel/internal/ports/secondary"
)

// PlanServiceImpl implements the PlanService interface. Expansion is
// delegated to the pure injector; this layer persists the result and
// mirrors new sentinel tasks into the shared checklist.
type PlanServiceImpl struct {
	cfg      config.Config
	tasks    secondary.TaskRepository
	waves    secondary.WaveRepository
	tasklist secondary.TaskList
	logger   *zap.Logger
}

// NewPlanService creates a PlanService with injected dependencies.
func NewPlanService(cfg config.Config, tasks secondary.TaskRepository, waves secondary.WaveRepository, tasklist secondary.TaskList, logger *zap.Logger) *PlanServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanServiceImpl{cfg: cfg, tasks: tasks, waves: waves, tasklist: tasklist, logger: logger}
}

// Inject expands a plan with sentinel tasks, persists the expanded plan,
// and appends one checklist line per inserted task.
func (s *PlanServiceImpl) Inject(ctx context.Context, req primary.InjectRequest) (*primary.InjectResponse, error) {
	result, err := plan.Expand(req.Plan, s.cfg.Sentinel.Enabled)
	if err != nil {
		return nil, err
	}

	for _, w := range result.Plan.Waves {
		if err := s.waves.Upsert(ctx, &secondary.WaveRecord{ID: w.ID, FileLocks: w.FileLocks}); err != nil {
			return nil, fmt.Errorf("failed to persist wave %s: %w", w.ID, err)
		}
	}
	for _, t := range result.Plan.Tasks {
		if err := s.tasks.Upsert(ctx, taskToRecord(t)); err != nil {
			return nil, fmt.Errorf("failed to persist task %s: %w", t.ID, err)
		}
	}

	for _, t := range result.Inserted {
		line := plan.ChecklistLine(t)
		if err := s.tasklist.AppendLine(line); err != nil {
			return nil, fmt.Errorf("failed to append checklist entry for %s: %w", t.ID, err)
		}
		s.logger.Info("injected sentinel task",
			zap.String("task_id", t.ID),
			zap.String("parent_id", t.ParentID()),
			zap.String("wave_id", t.WaveID),
		)
	}

	return &primary.InjectResponse{Plan: result.Plan, Inserted: result.Inserted}, nil
}

func taskToRecord(t models.Task) *secondary.TaskRecord {
	return &secondary.TaskRecord{
		ID:           t.ID,
		AgentRole:    t.AgentRole,
		Title:        t.Title,
		WaveID:       t.WaveID,
		Dependencies: t.Dependencies,
		CheckCommand: t.CheckCommand,
		Status:       t.Status,
	}
}

// Ensure PlanServiceImpl implements the interface
var _ primary.PlanService = (*PlanServiceImpl)(nil)
