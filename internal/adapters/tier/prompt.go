// Package tier contains the model-tier adapters: the local endpoint
// (tier 1), the cloud endpoint (tier 2), and the liveness probe.
package tier

import (
	"fmt"
	"strings"

	"github.com/example/sentinel/internal/ports/secondary"
)

const repairSystemPrompt = `You are a repair agent inside a build pipeline.
A task's validation check is failing. Produce the smallest fix that makes
the check pass. Respond with a single unified diff against the working
tree and nothing else. Do not reformat unrelated code.`

// repairPrompt renders the user prompt for one repair iteration.
func repairPrompt(req secondary.RepairRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Task: %s (%s)\n", req.Task.ID, req.Task.Title)
	fmt.Fprintf(&b, "Check command: %s\n\n", req.Task.CheckCommand)
	b.WriteString("Failing check output:\n```\n")
	b.WriteString(truncate(req.CheckOutput, 8000))
	b.WriteString("\n```\n")
	if req.PreviousPatch != "" {
		b.WriteString("\nYour previous patch did not fix the check:\n```diff\n")
		b.WriteString(truncate(req.PreviousPatch, 4000))
		b.WriteString("\n```\n")
	}
	b.WriteString("\nRespond with a unified diff only.")
	return b.String()
}

// extractPatch pulls the unified diff out of a model response, removing
// a fenced code block if the model added one despite instructions.
func extractPatch(response string) string {
	response = strings.TrimSpace(response)
	if idx := strings.Index(response, "```"); idx >= 0 {
		rest := response[idx+3:]
		rest = strings.TrimPrefix(rest, "diff")
		rest = strings.TrimPrefix(rest, "patch")
		if end := strings.Index(rest, "```"); end >= 0 {
			response = rest[:end]
		} else {
			response = rest
		}
	}
	return strings.TrimSpace(response) + "\n"
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "\n[... truncated ...]"
}
