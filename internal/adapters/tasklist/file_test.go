package tasklist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTasks(t *testing.T, content string) *File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "TASKS.md")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write task list: %v", err)
	}
	return NewFile(path)
}

func readBack(t *testing.T, f *File) string {
	t.Helper()
	data, err := os.ReadFile(f.path)
	if err != nil {
		t.Fatalf("failed to read task list: %v", err)
	}
	return string(data)
}

func TestAppendLine(t *testing.T) {
	f := writeTasks(t, "# Wave 1\n- [ ] T-001: build the thing\n")

	if err := f.AppendLine("- [ ] SENTINEL-T-001: validate T-001"); err != nil {
		t.Fatalf("AppendLine() error = %v", err)
	}

	content := readBack(t, f)
	if !strings.HasSuffix(content, "- [ ] SENTINEL-T-001: validate T-001\n") {
		t.Errorf("task list does not end with appended line:\n%s", content)
	}
	if !strings.Contains(content, "T-001: build the thing") {
		t.Error("existing entries were rewritten")
	}
}

func TestAppendLineCreatesFile(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "TASKS.md"))

	if err := f.AppendLine("- [ ] T-001: first entry"); err != nil {
		t.Fatalf("AppendLine() error = %v", err)
	}
	if got := readBack(t, f); got != "- [ ] T-001: first entry\n" {
		t.Errorf("new file content = %q", got)
	}
}

func TestAnnotatePendingOnlyTouchesIncompleteLines(t *testing.T) {
	original := `# Wave 2
- [x] T-001: done work
- [ ] T-002: pending work
- [x] T-003: more done work
- [ ] T-004: also pending
`
	f := writeTasks(t, original)

	block := []string{
		"  > [SENTINEL CASCADE WARNING] run SENTINEL-T-002",
		"  > files: observed 5 files, budget 3",
	}
	annotated, err := f.AnnotatePending(block)
	if err != nil {
		t.Fatalf("AnnotatePending() error = %v", err)
	}
	if annotated != 2 {
		t.Errorf("annotated %d lines, want 2", annotated)
	}

	content := readBack(t, f)
	lines := strings.Split(content, "\n")

	// Completed lines are byte-for-byte unchanged.
	for _, done := range []string{"- [x] T-001: done work", "- [x] T-003: more done work"} {
		found := false
		for i, line := range lines {
			if line == done {
				found = true
				// And never directly followed by the warning block.
				if i+1 < len(lines) && strings.Contains(lines[i+1], "SENTINEL CASCADE WARNING") {
					t.Errorf("completed line %q was annotated", done)
				}
			}
		}
		if !found {
			t.Errorf("completed line %q was modified", done)
		}
	}

	if strings.Count(content, "[SENTINEL CASCADE WARNING]") != 2 {
		t.Errorf("warning block count = %d, want 2:\n%s", strings.Count(content, "[SENTINEL CASCADE WARNING]"), content)
	}

	// Each pending line is immediately followed by the block.
	for i, line := range lines {
		if strings.HasPrefix(line, "- [ ]") {
			if i+1 >= len(lines) || !strings.Contains(lines[i+1], "SENTINEL CASCADE WARNING") {
				t.Errorf("pending line %q not annotated", line)
			}
		}
	}
}

func TestAnnotatePendingWithNoPendingLines(t *testing.T) {
	original := "- [x] T-001: everything finished\n"
	f := writeTasks(t, original)

	annotated, err := f.AnnotatePending([]string{"  > warning"})
	if err != nil {
		t.Fatalf("AnnotatePending() error = %v", err)
	}
	if annotated != 0 {
		t.Errorf("annotated = %d, want 0", annotated)
	}
	if got := readBack(t, f); got != original {
		t.Errorf("file changed with nothing to annotate:\n%q", got)
	}
}
