package models

import (
	"fmt"
	"strings"
)

// Axis names for change-radius violations.
const (
	AxisFiles     = "files"
	AxisLines     = "lines"
	AxisInterface = "interface"
	AxisCrossWave = "cross_wave"
)

// Violation records one change-radius budget breach. Zero or more are
// produced per run; the four axes are scored independently.
type Violation struct {
	Axis     string
	Observed string
	Budget   string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: observed %s, budget %s", v.Axis, v.Observed, v.Budget)
}

// WaveHaltError is the signal raised to the orchestrator when a wave
// must not be checkpointed. It is always surfaced after the manifest
// write completes, so a halted wave still leaves an audit record.
type WaveHaltError struct {
	Reason     string
	Violations []Violation
}

func (e *WaveHaltError) Error() string {
	if len(e.Violations) == 0 {
		return fmt.Sprintf("wave halted: %s", e.Reason)
	}
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return fmt.Sprintf("wave halted: %s (%s)", e.Reason, strings.Join(parts, "; "))
}
