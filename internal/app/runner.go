package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/sentinel/internal/config"
	"github.com/example/sentinel/internal/core/radius"
	"github.com/example/sentinel/internal/diff"
	"github.com/example/sentinel/internal/models"
	"github.com/example/sentinel/internal/ports/primary"
	"github.com/example/sentinel/internal/ports/secondary"
)

// runState names one phase of a Sentinel run. The decision tree is an
// explicit state machine so the write-on-every-path guarantee stays
// structurally obvious.
type runState string

const (
	StateProbing      runState = "PROBING"
	StateTier1Running runState = "TIER1_RUNNING"
	StateTier2Running runState = "TIER2_RUNNING"
	StateDiffing      runState = "DIFFING"
	StateEvaluating   runState = "EVALUATING"
	StateCascading    runState = "CASCADING"
	StateWriting      runState = "WRITING"
	StateDone         runState = "DONE"
	StateHalted       runState = "HALTED"
)

// SentinelServiceImpl implements the SentinelService interface. It owns
// no mutable state across runs; each run owns its own manifest and tier
// results exclusively, so distinct tasks may run concurrently.
type SentinelServiceImpl struct {
	cfg      config.Config
	tasks    secondary.TaskRepository
	waves    secondary.WaveRepository
	runs     secondary.RunRepository
	git      secondary.GitClient
	probe    secondary.AvailabilityProbe
	local    secondary.TierClient
	cloud    secondary.TierClient
	executor *TierExecutor
	writer   *ManifestWriter
	cascade  *CascadeAnalyzer
	logger   *zap.Logger
}

// SentinelDeps bundles the collaborators a SentinelServiceImpl drives.
type SentinelDeps struct {
	Tasks    secondary.TaskRepository
	Waves    secondary.WaveRepository
	Runs     secondary.RunRepository
	Git      secondary.GitClient
	Probe    secondary.AvailabilityProbe
	Local    secondary.TierClient
	Cloud    secondary.TierClient
	Executor *TierExecutor
	Writer   *ManifestWriter
	Cascade  *CascadeAnalyzer
	Logger   *zap.Logger
}

// NewSentinelService creates a SentinelService with injected dependencies.
func NewSentinelService(cfg config.Config, deps SentinelDeps) *SentinelServiceImpl {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SentinelServiceImpl{
		cfg:      cfg,
		tasks:    deps.Tasks,
		waves:    deps.Waves,
		runs:     deps.Runs,
		git:      deps.Git,
		probe:    deps.Probe,
		local:    deps.Local,
		cloud:    deps.Cloud,
		executor: deps.Executor,
		writer:   deps.Writer,
		cascade:  deps.Cascade,
		logger:   logger,
	}
}

// Probe checks local tier liveness once. Results are never cached.
func (s *SentinelServiceImpl) Probe(ctx context.Context) bool {
	return s.probe.Available(ctx)
}

// Run executes one full Sentinel run for a Sentinel task.
//
// The audit triple is written on every exit path: the write lives in a
// deferred block around the run body, so normal completion, bounded
// failure, and internal faults all leave exactly one manifest behind.
// A halt decision is surfaced as a *models.WaveHaltError only after
// that write completes.
func (s *SentinelServiceImpl) Run(ctx context.Context, req primary.RunRequest) (resp *primary.RunResponse, err error) {
	task, err := s.loadSentinelTask(ctx, req.TaskID)
	if err != nil {
		return nil, err
	}

	workDir := req.WorkDir
	if workDir == "" {
		workDir = "."
	}
	auditDir := filepath.Join(workDir, s.cfg.Sentinel.AuditDir, task.ID)

	var (
		state      = StateProbing
		manifest   = models.Manifest{TaskID: task.ID, Result: models.RunResultError}
		patch      string
		stats      diff.Stats
		tiers      []models.TierResult
		violations []models.Violation
		reports    []models.InterfaceReport
		halt       *models.WaveHaltError
		annotated  int
	)
	resp = &primary.RunResponse{AuditDir: auditDir}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sentinel run faulted in state %s: %v", state, r)
		}
		fillManifest(&manifest, tiers)
		if err != nil {
			// Internal fault: the result is forced to ERROR but the
			// audit record is still written.
			manifest.Result = models.RunResultError
			s.logger.Error("sentinel run faulted",
				zap.String("task_id", task.ID),
				zap.String("state", string(state)),
				zap.Error(err),
			)
		}

		summary := buildSummary(task, manifest, tiers, violations, reports, halt)
		if werr := s.writer.Write(auditDir, manifest, patch, summary); werr != nil {
			// Fatal: the run cannot be considered complete without its
			// audit record. The original outcome is preserved in the
			// error for the operator.
			err = fmt.Errorf("manifest write failed for %s (run result was %s): %w", task.ID, manifest.Result, werr)
			return
		}
		s.recordRun(ctx, manifest)

		resp.Manifest = manifest
		resp.Tiers = tiers
		resp.Violations = violations
		resp.Annotated = annotated

		if err == nil && halt != nil {
			err = halt
		}
	}()

	snapshot, err := s.git.Snapshot(ctx, workDir)
	if err != nil {
		return resp, fmt.Errorf("failed to snapshot working tree: %w", err)
	}

	localBudget, cloudBudget := BudgetsFromConfig(s.cfg.Tiers)

	for state != StateDone {
		switch state {
		case StateProbing:
			if s.probe.Available(ctx) {
				state = StateTier1Running
			} else {
				s.logger.Info("local tier unavailable, escalating directly",
					zap.String("task_id", task.ID))
				tiers = append(tiers, SkippedTier(models.TierLocal))
				state = StateTier2Running
			}

		case StateTier1Running:
			result := s.executor.Execute(ctx, s.local, localBudget, task, workDir)
			tiers = append(tiers, result)
			if result.Passed {
				state = StateDiffing
			} else {
				state = StateTier2Running
			}

		case StateTier2Running:
			// Last resort: pass or fail, there is no further escalation.
			result := s.executor.Execute(ctx, s.cloud, cloudBudget, task, workDir)
			tiers = append(tiers, result)
			state = StateDiffing

		case StateDiffing:
			patch, err = s.git.DiffSince(ctx, workDir, snapshot)
			if err != nil {
				return resp, fmt.Errorf("failed to diff working tree: %w", err)
			}
			stats, err = diff.ParseStats(patch)
			if err != nil {
				return resp, fmt.Errorf("failed to analyze diff: %w", err)
			}
			manifest.FilesChanged = stats.Files
			reports, err = s.interfaceReports(ctx, workDir, snapshot, stats.Files)
			if err != nil {
				return resp, err
			}
			state = StateEvaluating

		case StateEvaluating:
			// Radius is scored even on a failed fix; a failed attempt
			// may still have left partial, risky edits behind.
			locks, lerr := s.locksExcluding(ctx, task.WaveID)
			if lerr != nil {
				return resp, lerr
			}
			violations = radius.Evaluate(radius.Input{
				Files:            stats.Files,
				LinesChanged:     stats.LinesChanged,
				InterfaceChanges: totalInterfaceChanges(reports),
				LockedElsewhere:  locks,
			}, radius.Budgets{
				MaxFiles:       s.cfg.Radius.MaxFiles,
				MaxLines:       s.cfg.Radius.MaxLines,
				AllowInterface: s.cfg.Radius.AllowInterface,
			})
			state = StateCascading

		case StateCascading:
			annotated, halt, err = s.cascade.Apply(task.ID, violations)
			if err != nil {
				return resp, err
			}
			state = StateDone
		}
	}

	return resp, nil
}

// GetRun retrieves the most recent run record for a task.
func (s *SentinelServiceImpl) GetRun(ctx context.Context, taskID string) (*primary.Run, error) {
	record, err := s.runs.GetLatestByTaskID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return recordToRun(record), nil
}

// ListRuns lists run records, most recent first.
func (s *SentinelServiceImpl) ListRuns(ctx context.Context, limit int) ([]*primary.Run, error) {
	records, err := s.runs.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	runs := make([]*primary.Run, len(records))
	for i, r := range records {
		runs[i] = recordToRun(r)
	}
	return runs, nil
}

// loadSentinelTask resolves the Sentinel task and checks its parent is
// done. The parent cross-reference is an id lookup into the flat store.
func (s *SentinelServiceImpl) loadSentinelTask(ctx context.Context, taskID string) (*models.Task, error) {
	record, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	task := recordToTask(record)
	if !task.IsSentinel() {
		return nil, fmt.Errorf("task %s has agent role %q, not a sentinel task", taskID, task.AgentRole)
	}
	parentID := task.ParentID()
	if parentID == "" {
		return nil, fmt.Errorf("sentinel task %s has no parent dependency", taskID)
	}

	parent, err := s.tasks.GetByID(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("parent of %s: %w", taskID, err)
	}
	if parent.Status != models.TaskStatusDone {
		return nil, fmt.Errorf("parent task %s is %s; the sentinel runs only after its parent is done", parentID, parent.Status)
	}

	return task, nil
}

// interfaceReports diffs each modified file's pre-image (at the run
// snapshot) against its working-tree content.
func (s *SentinelServiceImpl) interfaceReports(ctx context.Context, workDir, snapshot string, files []string) ([]models.InterfaceReport, error) {
	var reports []models.InterfaceReport
	for _, f := range files {
		pre, err := s.git.ShowAt(ctx, workDir, snapshot, f)
		if err != nil {
			return nil, fmt.Errorf("failed to read pre-image of %s: %w", f, err)
		}
		post, err := os.ReadFile(filepath.Join(workDir, f))
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read %s: %w", f, err)
		}
		report, err := diff.InterfaceReport(ctx, f, pre, post)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// locksExcluding builds the cross-wave lock map from the wave store.
func (s *SentinelServiceImpl) locksExcluding(ctx context.Context, waveID string) (map[string]string, error) {
	waves, err := s.waves.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list waves: %w", err)
	}
	locks := make(map[string]string)
	for _, w := range waves {
		if w.ID == waveID {
			continue
		}
		for _, f := range w.FileLocks {
			locks[f] = w.ID
		}
	}
	return locks, nil
}

// recordRun persists the run history row. History is best-effort; the
// manifest on disk is the authoritative audit record.
func (s *SentinelServiceImpl) recordRun(ctx context.Context, manifest models.Manifest) {
	err := s.runs.Create(ctx, &secondary.RunRecord{
		ID:           uuid.NewString(),
		TaskID:       manifest.TaskID,
		Result:       manifest.Result,
		TierUsed:     manifest.TierUsed,
		Iterations:   manifest.Iterations,
		CostUSD:      manifest.CostUSD,
		FilesChanged: manifest.FilesChanged,
	})
	if err != nil {
		s.logger.Warn("failed to record run history", zap.String("task_id", manifest.TaskID), zap.Error(err))
	}
}

// fillManifest folds the tier results into the manifest. Iterations and
// cost are totals across tiers; tier_used is the last tier that ran.
func fillManifest(m *models.Manifest, tiers []models.TierResult) {
	m.Result = models.RunResultFail
	for _, t := range tiers {
		if t.Attempted {
			m.TierUsed = t.Tier
		}
		m.Iterations += t.Iterations
		m.CostUSD += t.CostUSD
		if t.Passed {
			m.Result = models.RunResultPass
		}
	}
}

func totalInterfaceChanges(reports []models.InterfaceReport) int {
	total := 0
	for _, r := range reports {
		total += r.Total()
	}
	return total
}

func recordToTask(r *secondary.TaskRecord) *models.Task {
	return &models.Task{
		ID:           r.ID,
		AgentRole:    r.AgentRole,
		Title:        r.Title,
		WaveID:       r.WaveID,
		Dependencies: r.Dependencies,
		CheckCommand: r.CheckCommand,
		Status:       r.Status,
	}
}

func recordToRun(r *secondary.RunRecord) *primary.Run {
	return &primary.Run{
		ID:           r.ID,
		TaskID:       r.TaskID,
		Result:       r.Result,
		TierUsed:     r.TierUsed,
		Iterations:   r.Iterations,
		CostUSD:      r.CostUSD,
		FilesChanged: r.FilesChanged,
		CreatedAt:    r.CreatedAt,
	}
}

// Ensure SentinelServiceImpl implements the interface
var _ primary.SentinelService = (*SentinelServiceImpl)(nil)
