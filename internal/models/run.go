package models

import "time"

// RunResult classifies the outcome of one Sentinel run.
const (
	RunResultPass  = "PASS"
	RunResultFail  = "FAIL"
	RunResultError = "ERROR"
)

// Tier numbers. Tier 1 is the local model endpoint, tier 2 the cloud
// endpoint. There is no tier 3; tier 2 is the last resort.
const (
	TierLocal = 1
	TierCloud = 2
)

// TierResult captures one bounded fix-attempt cycle. Produced once per
// tier attempted and immutable after creation.
type TierResult struct {
	Tier       int
	Attempted  bool
	Skipped    bool
	Passed     bool
	Iterations int
	CostUSD    float64
	Duration   time.Duration
}

// Manifest is the permanent structured audit record of one Sentinel run.
// Exactly one exists per run, written under the per-task audit directory.
type Manifest struct {
	TaskID       string   `json:"task_id"`
	Result       string   `json:"result"`
	TierUsed     int      `json:"tier_used"`
	Iterations   int      `json:"iterations"`
	CostUSD      float64  `json:"cost_usd"`
	FilesChanged []string `json:"files_changed"`
}

// InterfaceReport summarizes structural symbol changes in one modified
// file. Whitespace and comment edits never appear here.
type InterfaceReport struct {
	Path           string
	SymbolsAdded   []string
	SymbolsRemoved []string
	SymbolsChanged []string
}

// Total returns the number of interface changes in the report.
func (r InterfaceReport) Total() int {
	return len(r.SymbolsAdded) + len(r.SymbolsRemoved) + len(r.SymbolsChanged)
}
