package app

import (
	"context"
	"fmt"

	"github.com/example/sentinel/internal/models"
	"github.com/example/sentinel/internal/ports/secondary"
)

// Hand-written mocks for the secondary ports. Each records the calls a
// test needs to assert on and nothing more.

type mockTaskRepo struct {
	records  map[string]*secondary.TaskRecord
	upserted []*secondary.TaskRecord
}

func newMockTaskRepo(records ...*secondary.TaskRecord) *mockTaskRepo {
	m := &mockTaskRepo{records: make(map[string]*secondary.TaskRecord)}
	for _, r := range records {
		m.records[r.ID] = r
	}
	return m
}

func (m *mockTaskRepo) Upsert(_ context.Context, task *secondary.TaskRecord) error {
	m.records[task.ID] = task
	m.upserted = append(m.upserted, task)
	return nil
}

func (m *mockTaskRepo) GetByID(_ context.Context, id string) (*secondary.TaskRecord, error) {
	r, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("task not found: %s", id)
	}
	return r, nil
}

func (m *mockTaskRepo) List(_ context.Context, _ secondary.TaskFilters) ([]*secondary.TaskRecord, error) {
	out := make([]*secondary.TaskRecord, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r)
	}
	return out, nil
}

func (m *mockTaskRepo) UpdateStatus(_ context.Context, id, status string) error {
	r, ok := m.records[id]
	if !ok {
		return fmt.Errorf("task not found: %s", id)
	}
	r.Status = status
	return nil
}

type mockWaveRepo struct {
	waves    []*secondary.WaveRecord
	upserted []*secondary.WaveRecord
}

func (m *mockWaveRepo) Upsert(_ context.Context, wave *secondary.WaveRecord) error {
	m.upserted = append(m.upserted, wave)
	for i, w := range m.waves {
		if w.ID == wave.ID {
			m.waves[i] = wave
			return nil
		}
	}
	m.waves = append(m.waves, wave)
	return nil
}

func (m *mockWaveRepo) List(_ context.Context) ([]*secondary.WaveRecord, error) {
	return m.waves, nil
}

type mockRunRepo struct {
	created []*secondary.RunRecord
}

func (m *mockRunRepo) Create(_ context.Context, run *secondary.RunRecord) error {
	m.created = append(m.created, run)
	return nil
}

func (m *mockRunRepo) GetLatestByTaskID(_ context.Context, taskID string) (*secondary.RunRecord, error) {
	for i := len(m.created) - 1; i >= 0; i-- {
		if m.created[i].TaskID == taskID {
			return m.created[i], nil
		}
	}
	return nil, fmt.Errorf("no runs for task: %s", taskID)
}

func (m *mockRunRepo) List(_ context.Context, limit int) ([]*secondary.RunRecord, error) {
	out := make([]*secondary.RunRecord, 0, len(m.created))
	for i := len(m.created) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		out = append(out, m.created[i])
	}
	return out, nil
}

type mockGit struct {
	snapshot  string
	diff      string
	diffErr   error
	preImages map[string][]byte
	applied   []string
	applyErr  error
}

func (m *mockGit) Snapshot(_ context.Context, _ string) (string, error) {
	if m.snapshot == "" {
		return "snap-1", nil
	}
	return m.snapshot, nil
}

func (m *mockGit) DiffSince(_ context.Context, _, _ string) (string, error) {
	return m.diff, m.diffErr
}

func (m *mockGit) ShowAt(_ context.Context, _, _, path string) ([]byte, error) {
	return m.preImages[path], nil
}

func (m *mockGit) Apply(_ context.Context, _, patch string) error {
	m.applied = append(m.applied, patch)
	return m.applyErr
}

type mockProbe struct {
	available bool
	calls     int
}

func (m *mockProbe) Available(_ context.Context) bool {
	m.calls++
	return m.available
}

type checkResult struct {
	passed bool
	output string
	err    error
}

// mockCheck replays a scripted sequence of check outcomes, repeating
// the last one when the script runs out.
type mockCheck struct {
	script []checkResult
	calls  int
}

func (m *mockCheck) Run(_ context.Context, _, _ string) (bool, string, error) {
	i := m.calls
	m.calls++
	if i >= len(m.script) {
		i = len(m.script) - 1
	}
	r := m.script[i]
	return r.passed, r.output, r.err
}

type mockTier struct {
	tier      int
	patch     string
	costUSD   float64
	repairErr error
	calls     int
	requests  []secondary.RepairRequest
}

func (m *mockTier) Tier() int { return m.tier }

func (m *mockTier) Repair(_ context.Context, req secondary.RepairRequest) (*secondary.RepairResult, error) {
	m.calls++
	m.requests = append(m.requests, req)
	if m.repairErr != nil {
		return nil, m.repairErr
	}
	return &secondary.RepairResult{Patch: m.patch, CostUSD: m.costUSD}, nil
}

type mockTaskList struct {
	appended  []string
	blocks    [][]string
	annotated int
	appendErr error
}

func (m *mockTaskList) AppendLine(line string) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.appended = append(m.appended, line)
	return nil
}

func (m *mockTaskList) AnnotatePending(block []string) (int, error) {
	m.blocks = append(m.blocks, block)
	return m.annotated, nil
}

type mockPrompter struct {
	choice string
	err    error
	calls  int
}

func (m *mockPrompter) SelectCascadeAction(_ []models.Violation) (string, error) {
	m.calls++
	return m.choice, m.err
}
