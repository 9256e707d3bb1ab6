// Package radius contains the pure business logic for change-radius
// scoring. This is part of the Functional Core - no I/O, only pure
// functions.
package radius

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/sentinel/internal/models"
)

// Budgets holds the configured limits for one evaluation.
type Budgets struct {
	MaxFiles       int
	MaxLines       int // gross count: additions + deletions
	AllowInterface bool
}

// Input is everything one evaluation looks at. LockedElsewhere maps a
// file path to the id of the wave whose lock set declares it, for waves
// other than the one under evaluation.
type Input struct {
	Files            []string
	LinesChanged     int
	InterfaceChanges int
	LockedElsewhere  map[string]string
}

// Evaluate scores a run against the budgets. The four axes are checked
// independently; each produces at most one violation and none
// short-circuits another.
func Evaluate(in Input, b Budgets) []models.Violation {
	var violations []models.Violation

	if len(in.Files) > b.MaxFiles {
		violations = append(violations, models.Violation{
			Axis:     models.AxisFiles,
			Observed: fmt.Sprintf("%d files", len(in.Files)),
			Budget:   fmt.Sprintf("%d", b.MaxFiles),
		})
	}

	if in.LinesChanged > b.MaxLines {
		violations = append(violations, models.Violation{
			Axis:     models.AxisLines,
			Observed: fmt.Sprintf("%d lines", in.LinesChanged),
			Budget:   fmt.Sprintf("%d", b.MaxLines),
		})
	}

	if in.InterfaceChanges > 0 && !b.AllowInterface {
		violations = append(violations, models.Violation{
			Axis:     models.AxisInterface,
			Observed: fmt.Sprintf("%d interface changes", in.InterfaceChanges),
			Budget:   "0",
		})
	}

	if collisions := crossWaveCollisions(in.Files, in.LockedElsewhere); len(collisions) > 0 {
		violations = append(violations, models.Violation{
			Axis:     models.AxisCrossWave,
			Observed: strings.Join(collisions, ", "),
			Budget:   "no edits to files locked by other waves",
		})
	}

	return violations
}

func crossWaveCollisions(files []string, locked map[string]string) []string {
	var collisions []string
	for _, f := range files {
		if wave, ok := locked[f]; ok {
			collisions = append(collisions, fmt.Sprintf("%s (locked by %s)", f, wave))
		}
	}
	sort.Strings(collisions)
	return collisions
}
