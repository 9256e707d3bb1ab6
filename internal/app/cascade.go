package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/example/sentinel/internal/config"
	"github.com/example/sentinel/internal/models"
	"github.com/example/sentinel/internal/ports/secondary"
)

// CascadeAnalyzer propagates a change-radius violation's consequences
// to downstream pending tasks.
type CascadeAnalyzer struct {
	mode     string
	taskList secondary.TaskList
	prompter secondary.Prompter
	logger   *zap.Logger
}

// NewCascadeAnalyzer creates a CascadeAnalyzer for the configured mode.
// The prompter is only consulted in human-gated mode.
func NewCascadeAnalyzer(mode string, taskList secondary.TaskList, prompter secondary.Prompter, logger *zap.Logger) *CascadeAnalyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CascadeAnalyzer{mode: mode, taskList: taskList, prompter: prompter, logger: logger}
}

// Apply handles one run's violations. It returns how many task-list
// lines were annotated and, when the operator (or policy) decides the
// wave must stop, the halt signal for the caller to raise after the
// manifest write.
func (c *CascadeAnalyzer) Apply(taskID string, violations []models.Violation) (int, *models.WaveHaltError, error) {
	if len(violations) == 0 {
		return 0, nil, nil
	}

	switch c.mode {
	case config.ModeAuto:
		annotated, err := c.annotate(taskID, violations)
		return annotated, nil, err

	case config.ModeHumanGated:
		choice, err := c.prompter.SelectCascadeAction(violations)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to read cascade decision: %w", err)
		}
		switch choice {
		case secondary.ChoiceAutoApply:
			annotated, err := c.annotate(taskID, violations)
			return annotated, nil, err
		case secondary.ChoiceReviewAndHalt, secondary.ChoiceHalt:
			return 0, &models.WaveHaltError{
				Reason:     fmt.Sprintf("change radius exceeded for %s, operator chose %s", taskID, choice),
				Violations: violations,
			}, nil
		default:
			return 0, nil, fmt.Errorf("unknown cascade decision %q", choice)
		}

	default:
		return 0, nil, fmt.Errorf("unknown cascade mode %q", c.mode)
	}
}

// annotate appends the warning block to every pending task-list line.
func (c *CascadeAnalyzer) annotate(taskID string, violations []models.Violation) (int, error) {
	annotated, err := c.taskList.AnnotatePending(AnnotationBlock(taskID, violations))
	if err != nil {
		return 0, fmt.Errorf("failed to annotate task list: %w", err)
	}
	c.logger.Info("cascade warning propagated",
		zap.String("task_id", taskID),
		zap.Int("annotated", annotated),
		zap.Int("violations", len(violations)),
	)
	return annotated, nil
}

// AnnotationBlock renders the structured warning inserted after each
// pending task-list line.
func AnnotationBlock(taskID string, violations []models.Violation) []string {
	block := []string{
		fmt.Sprintf("  > [SENTINEL CASCADE WARNING] change radius exceeded by %s", taskID),
	}
	for _, v := range violations {
		block = append(block, fmt.Sprintf("  > %s: observed %s, budget %s", v.Axis, v.Observed, v.Budget))
	}
	return block
}
