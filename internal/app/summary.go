package app

import (
	"fmt"
	"strings"

	"github.com/example/sentinel/internal/models"
)

// buildSummary renders summary.md: the prose record the orchestrator
// injects into the next task's context.
func buildSummary(task *models.Task, manifest models.Manifest, tiers []models.TierResult, violations []models.Violation, reports []models.InterfaceReport, halt *models.WaveHaltError) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Sentinel run %s\n\n", task.ID)
	fmt.Fprintf(&b, "Validated %s. Result: **%s** (tier %d, %d iterations, $%.4f).\n\n",
		task.ParentID(), manifest.Result, manifest.TierUsed, manifest.Iterations, manifest.CostUSD)

	b.WriteString("## Tiers\n\n")
	if len(tiers) == 0 {
		b.WriteString("- no tier was attempted\n")
	}
	for _, t := range tiers {
		switch {
		case t.Skipped:
			fmt.Fprintf(&b, "- tier %d: skipped, endpoint unavailable\n", t.Tier)
		case t.Passed:
			fmt.Fprintf(&b, "- tier %d: passed after %d iterations in %.1fs ($%.4f)\n",
				t.Tier, t.Iterations, t.Duration.Seconds(), t.CostUSD)
		default:
			fmt.Fprintf(&b, "- tier %d: failed after %d iterations in %.1fs ($%.4f)\n",
				t.Tier, t.Iterations, t.Duration.Seconds(), t.CostUSD)
		}
	}

	b.WriteString("\n## Files changed\n\n")
	if len(manifest.FilesChanged) == 0 {
		b.WriteString("- none\n")
	}
	symbolNotes := make(map[string]string)
	for _, r := range reports {
		if r.Total() == 0 {
			continue
		}
		var parts []string
		if len(r.SymbolsAdded) > 0 {
			parts = append(parts, "added "+strings.Join(r.SymbolsAdded, ", "))
		}
		if len(r.SymbolsRemoved) > 0 {
			parts = append(parts, "removed "+strings.Join(r.SymbolsRemoved, ", "))
		}
		if len(r.SymbolsChanged) > 0 {
			parts = append(parts, "changed "+strings.Join(r.SymbolsChanged, ", "))
		}
		symbolNotes[r.Path] = strings.Join(parts, "; ")
	}
	for _, f := range manifest.FilesChanged {
		if note, ok := symbolNotes[f]; ok {
			fmt.Fprintf(&b, "- %s (%s)\n", f, note)
		} else {
			fmt.Fprintf(&b, "- %s\n", f)
		}
	}

	b.WriteString("\n## Change radius\n\n")
	if len(violations) == 0 {
		b.WriteString("Within budgets on all four axes.\n")
	} else {
		for _, v := range violations {
			fmt.Fprintf(&b, "- %s\n", v.String())
		}
	}

	if halt != nil {
		fmt.Fprintf(&b, "\n## Wave halted\n\n%s\n", halt.Reason)
	}

	return b.String()
}
