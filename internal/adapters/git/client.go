// Package git provides the exec-based adapter for the git collaborator.
package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/example/sentinel/internal/ports/secondary"
)

// Client runs git against a working tree. The Sentinel only reads diffs
// and applies repair patches; committing belongs to the orchestrator.
type Client struct{}

// NewClient creates a new git Client.
func NewClient() *Client {
	return &Client{}
}

// Snapshot captures the current working-tree state as a ref. A dirty
// tree is captured with `stash create` (which commits nothing and moves
// no files); a clean tree snapshots as HEAD.
func (c *Client) Snapshot(ctx context.Context, dir string) (string, error) {
	out, err := c.output(ctx, dir, "stash", "create")
	if err != nil {
		return "", fmt.Errorf("failed to snapshot working tree: %w", err)
	}
	ref := strings.TrimSpace(out)
	if ref != "" {
		return ref, nil
	}

	out, err = c.output(ctx, dir, "rev-parse", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// DiffSince returns the unified diff of working-tree changes since the
// given snapshot ref, empty when nothing changed.
func (c *Client) DiffSince(ctx context.Context, dir, ref string) (string, error) {
	out, err := c.output(ctx, dir, "diff", ref)
	if err != nil {
		return "", fmt.Errorf("failed to diff since %s: %w", ref, err)
	}
	return out, nil
}

// ShowAt returns a file's content at the snapshot ref. Files that did
// not exist at the ref yield empty content, which is what the interface
// differ expects for new files.
func (c *Client) ShowAt(ctx context.Context, dir, ref, path string) ([]byte, error) {
	out, err := c.output(ctx, dir, "show", ref+":"+path)
	if err != nil {
		if strings.Contains(err.Error(), "exists on disk") || strings.Contains(err.Error(), "does not exist") {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to show %s at %s: %w", path, ref, err)
	}
	return []byte(out), nil
}

// Apply applies a unified diff to the working tree.
func (c *Client) Apply(ctx context.Context, dir, patch string) error {
	if strings.TrimSpace(patch) == "" {
		return nil
	}

	cmd := exec.CommandContext(ctx, "git", "apply", "--whitespace=nowarn", "-")
	cmd.Dir = dir
	cmd.Stdin = strings.NewReader(patch)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to apply patch: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// output runs a git command and returns its stdout.
func (c *Client) output(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// Ensure Client implements the interface
var _ secondary.GitClient = (*Client)(nil)
