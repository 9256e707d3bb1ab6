// Package check runs a task's validation command against the working tree.
package check

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/example/sentinel/internal/ports/secondary"
)

// Runner executes check commands through the shell, so task plans can
// declare commands like "go test ./..." or "npm test -- --ci".
type Runner struct{}

// NewRunner creates a new check Runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Run executes the check command in dir. A non-zero exit is a failed
// check, not an error; err is reserved for being unable to run the
// command at all.
func (r *Runner) Run(ctx context.Context, dir, command string) (bool, string, error) {
	if command == "" {
		return false, "", fmt.Errorf("task has no check command")
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = dir

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	err := cmd.Run()
	if err == nil {
		return true, output.String(), nil
	}
	if _, isExit := err.(*exec.ExitError); isExit {
		return false, output.String(), nil
	}
	return false, output.String(), fmt.Errorf("failed to run check command: %w", err)
}

// Ensure Runner implements the interface
var _ secondary.CheckRunner = (*Runner)(nil)
