package check

import (
	"context"
	"strings"
	"testing"
)

func TestRunnerPassingCommand(t *testing.T) {
	runner := NewRunner()

	passed, output, err := runner.Run(context.Background(), t.TempDir(), "echo ok")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !passed {
		t.Error("Run() passed = false for exit 0")
	}
	if !strings.Contains(output, "ok") {
		t.Errorf("output = %q, want command output captured", output)
	}
}

func TestRunnerFailingCommandIsNotAnError(t *testing.T) {
	runner := NewRunner()

	passed, output, err := runner.Run(context.Background(), t.TempDir(), "echo broken && exit 3")
	if err != nil {
		t.Fatalf("Run() error = %v, non-zero exit must not be an error", err)
	}
	if passed {
		t.Error("Run() passed = true for exit 3")
	}
	if !strings.Contains(output, "broken") {
		t.Errorf("output = %q, want failure output captured", output)
	}
}

func TestRunnerEmptyCommand(t *testing.T) {
	runner := NewRunner()

	if _, _, err := runner.Run(context.Background(), t.TempDir(), ""); err == nil {
		t.Error("Run() with empty command did not error")
	}
}
