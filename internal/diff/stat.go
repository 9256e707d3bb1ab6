// Package diff computes change statistics and structural interface
// reports from working-tree diffs. It is evaluation input only; nothing
// here blocks a run by itself.
package diff

import (
	"fmt"
	"sort"
	"strings"

	godiff "github.com/sourcegraph/go-diff/diff"
)

// Stats summarizes one unified diff.
type Stats struct {
	Files        []string // distinct modified paths, sorted
	LinesChanged int      // gross count: additions + deletions
}

// ParseStats parses a unified diff (as produced by the git collaborator)
// into its modified-file list and gross changed-line count. An empty
// patch yields empty stats.
func ParseStats(patch string) (Stats, error) {
	if strings.TrimSpace(patch) == "" {
		return Stats{}, nil
	}

	fileDiffs, err := godiff.NewMultiFileDiffReader(strings.NewReader(patch)).ReadAllFiles()
	if err != nil {
		return Stats{}, fmt.Errorf("failed to parse unified diff: %w", err)
	}

	seen := make(map[string]bool)
	stats := Stats{}
	for _, fd := range fileDiffs {
		name := fileName(fd)
		if name != "" && !seen[name] {
			seen[name] = true
			stats.Files = append(stats.Files, name)
		}
		for _, hunk := range fd.Hunks {
			for _, line := range strings.Split(string(hunk.Body), "\n") {
				if strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++") {
					stats.LinesChanged++
				} else if strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---") {
					stats.LinesChanged++
				}
			}
		}
	}
	sort.Strings(stats.Files)

	return stats, nil
}

// fileName picks the post-image path of a file diff, falling back to the
// pre-image for deletions. Git's a/ and b/ prefixes are stripped.
func fileName(fd *godiff.FileDiff) string {
	name := fd.NewName
	if name == "" || name == "/dev/null" {
		name = fd.OrigName
	}
	if name == "/dev/null" {
		return ""
	}
	name = strings.TrimPrefix(name, "a/")
	name = strings.TrimPrefix(name, "b/")
	return name
}
