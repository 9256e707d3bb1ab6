package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/example/sentinel/internal/config"
	"github.com/example/sentinel/internal/models"
	"github.com/example/sentinel/internal/ports/secondary"
)

// TierBudget bounds one fix-attempt cycle. A zero MaxCostUSD means the
// tier has no monetary budget (local inference is free).
type TierBudget struct {
	Tier          int
	MaxIterations int
	MaxCostUSD    float64
	Timeout       time.Duration
}

// BudgetsFromConfig maps tier configuration onto executor budgets.
func BudgetsFromConfig(cfg config.TiersConfig) (local TierBudget, cloud TierBudget) {
	local = TierBudget{
		Tier:          models.TierLocal,
		MaxIterations: cfg.Local.MaxIterations,
		Timeout:       cfg.Local.Timeout,
	}
	cloud = TierBudget{
		Tier:          models.TierCloud,
		MaxIterations: cfg.Cloud.MaxIterations,
		MaxCostUSD:    cfg.Cloud.MaxCostUSD,
		Timeout:       cfg.Cloud.Timeout,
	}
	return local, cloud
}

// TierExecutor runs one bounded check-and-repair cycle against a tier.
type TierExecutor struct {
	check  secondary.CheckRunner
	git    secondary.GitClient
	logger *zap.Logger
}

// NewTierExecutor creates a TierExecutor with injected collaborators.
func NewTierExecutor(check secondary.CheckRunner, git secondary.GitClient, logger *zap.Logger) *TierExecutor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TierExecutor{check: check, git: git, logger: logger}
}

// Execute runs up to MaxIterations check-repair-recheck iterations.
// The loop stops on: check success, iteration cap, wall-clock deadline,
// or monetary budget exhaustion. Deadline and budget are enforced
// between iterations; an in-flight iteration always runs to its own
// completion.
func (e *TierExecutor) Execute(ctx context.Context, client secondary.TierClient, budget TierBudget, task *models.Task, workDir string) models.TierResult {
	start := time.Now()
	deadline := start.Add(budget.Timeout)
	result := models.TierResult{Tier: budget.Tier, Attempted: true}

	var previousPatch string
	for i := 1; i <= budget.MaxIterations; i++ {
		if i > 1 {
			if time.Now().After(deadline) {
				e.logger.Info("tier wall-clock budget exhausted",
					zap.Int("tier", budget.Tier),
					zap.String("task_id", task.ID),
					zap.Int("iterations", result.Iterations),
				)
				break
			}
			if budget.MaxCostUSD > 0 && result.CostUSD >= budget.MaxCostUSD {
				e.logger.Info("tier monetary budget exhausted",
					zap.Int("tier", budget.Tier),
					zap.String("task_id", task.ID),
					zap.Float64("cost_usd", result.CostUSD),
				)
				break
			}
		}
		result.Iterations = i

		passed, output, err := e.check.Run(ctx, workDir, task.CheckCommand)
		if err != nil {
			e.logger.Warn("check command could not run",
				zap.Int("tier", budget.Tier),
				zap.String("task_id", task.ID),
				zap.Error(err),
			)
			break
		}
		if passed {
			result.Passed = true
			break
		}

		repair, err := client.Repair(ctx, secondary.RepairRequest{
			Task:          task,
			WorkDir:       workDir,
			CheckOutput:   output,
			PreviousPatch: previousPatch,
		})
		if err != nil {
			e.logger.Warn("tier repair call failed",
				zap.Int("tier", budget.Tier),
				zap.String("task_id", task.ID),
				zap.Error(err),
			)
			break
		}
		result.CostUSD += repair.CostUSD

		if err := e.git.Apply(ctx, workDir, repair.Patch); err != nil {
			// Unapplicable patch: the re-check next iteration sees the
			// same failure and the tier retries with it as context.
			e.logger.Warn("repair patch did not apply",
				zap.Int("tier", budget.Tier),
				zap.String("task_id", task.ID),
				zap.Error(err),
			)
		}
		previousPatch = repair.Patch
	}

	result.Duration = time.Since(start)
	return result
}

// SkippedTier records a tier that never ran because the availability
// probe reported its endpoint unreachable.
func SkippedTier(tier int) models.TierResult {
	return models.TierResult{Tier: tier, Attempted: false, Skipped: true}
}
