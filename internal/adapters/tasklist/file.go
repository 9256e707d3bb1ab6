// Package tasklist adapts the persisted markdown task list. The Sentinel
// treats it as append-only: it appends checklist lines and annotation
// blocks, never rewriting existing entries.
package tasklist

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/example/sentinel/internal/ports/secondary"
)

// pendingLine matches a checklist entry that has not been completed.
// Completed entries (- [x]) are historical record and are never touched.
var pendingLine = regexp.MustCompile(`^\s*- \[ \]`)

// File is the markdown task-list collaborator.
type File struct {
	path string
}

// NewFile creates a task-list adapter for the given path.
func NewFile(path string) *File {
	return &File{path: path}
}

// AppendLine appends one checklist line, creating the file if needed.
func (f *File) AppendLine(line string) error {
	handle, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open task list: %w", err)
	}
	defer handle.Close()

	if _, err := fmt.Fprintln(handle, line); err != nil {
		return fmt.Errorf("failed to append to task list: %w", err)
	}
	return nil
}

// AnnotatePending inserts the annotation block after every incomplete
// checklist line and returns how many lines were annotated. Only work
// that has not started gets warned; completed lines stay byte-for-byte
// identical.
func (f *File) AnnotatePending(block []string) (int, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return 0, fmt.Errorf("failed to read task list: %w", err)
	}

	trailingNewline := strings.HasSuffix(string(data), "\n")
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")

	annotated := 0
	out := make([]string, 0, len(lines)+len(block)*4)
	for _, line := range lines {
		out = append(out, line)
		if pendingLine.MatchString(line) {
			out = append(out, block...)
			annotated++
		}
	}

	content := strings.Join(out, "\n")
	if trailingNewline {
		content += "\n"
	}
	if err := os.WriteFile(f.path, []byte(content), 0644); err != nil {
		return 0, fmt.Errorf("failed to write task list: %w", err)
	}
	return annotated, nil
}

// Ensure File implements the interface
var _ secondary.TaskList = (*File)(nil)
