package secondary

import (
	"context"

	"github.com/example/sentinel/internal/models"
)

// GitClient defines the secondary port for the git collaborator.
// The Sentinel never commits; committing a wave belongs to the
// orchestrator and only happens when no halt was raised.
type GitClient interface {
	// Snapshot captures a reference to the current working-tree state,
	// taken when a run begins.
	Snapshot(ctx context.Context, dir string) (string, error)

	// DiffSince returns the unified diff of working-tree changes since
	// the given snapshot reference. Empty string when nothing changed.
	DiffSince(ctx context.Context, dir, ref string) (string, error)

	// ShowAt returns a file's content at the given snapshot reference.
	// A file that did not exist yet yields empty content.
	ShowAt(ctx context.Context, dir, ref, path string) ([]byte, error)

	// Apply applies a unified diff to the working tree.
	Apply(ctx context.Context, dir, patch string) error
}

// CheckRunner defines the secondary port for a task's validation check.
type CheckRunner interface {
	// Run executes the check command. passed reflects the command's
	// exit status; err is reserved for failures to run it at all.
	Run(ctx context.Context, dir, command string) (passed bool, output string, err error)
}

// RepairRequest asks a tier to fix a failing check.
type RepairRequest struct {
	Task          *models.Task
	WorkDir       string
	CheckOutput   string // failing check output from the current iteration
	PreviousPatch string // last patch this tier produced, empty on the first iteration
}

// RepairResult is one tier invocation's response.
type RepairResult struct {
	Patch   string // unified diff to apply, may be empty
	CostUSD float64
}

// TierClient defines the secondary port shared by both model tiers.
type TierClient interface {
	// Tier returns the escalation level this client serves.
	Tier() int

	// Repair asks the tier for a fix to a failing check.
	Repair(ctx context.Context, req RepairRequest) (*RepairResult, error)
}

// AvailabilityProbe defines the liveness check for the local tier.
// Implementations never return an error: network failure, DNS failure,
// and timeout all read as unavailable.
type AvailabilityProbe interface {
	Available(ctx context.Context) bool
}

// TaskList defines the secondary port for the persisted task-list
// collaborator. It is append-only from the Sentinel's perspective.
type TaskList interface {
	// AppendLine appends one checklist line.
	AppendLine(line string) error

	// AnnotatePending inserts the annotation block after every line
	// still marked incomplete, returning how many lines were annotated.
	// Completed lines are never touched.
	AnnotatePending(block []string) (int, error)
}

// Cascade prompt choices for human-gated mode.
const (
	ChoiceAutoApply     = "auto-apply"
	ChoiceReviewAndHalt = "review-and-halt"
	ChoiceHalt          = "halt"
)

// Prompter defines the human-input channel used in human-gated mode.
type Prompter interface {
	// SelectCascadeAction presents the three choices for the given
	// violations and returns the one selected.
	SelectCascadeAction(violations []models.Violation) (string, error)
}
