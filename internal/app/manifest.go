package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/example/sentinel/internal/models"
)

// Audit artifact names, fixed per run directory.
const (
	ManifestFile = "manifest.json"
	DiffFile     = "diff.patch"
	SummaryFile  = "summary.md"
)

// ManifestWriter persists the audit triple for one run. Each file is
// written to a temp name and renamed, so a crash mid-write never leaves
// a torn artifact behind.
type ManifestWriter struct {
	logger *zap.Logger
}

// NewManifestWriter creates a ManifestWriter.
func NewManifestWriter(logger *zap.Logger) *ManifestWriter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ManifestWriter{logger: logger}
}

// Write persists manifest.json, diff.patch, and summary.md under dir.
// A failure here is fatal to the run: the caller must not report the
// run complete without its audit record.
func (w *ManifestWriter) Write(dir string, manifest models.Manifest, patch, summary string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create audit directory: %w", err)
	}

	if manifest.FilesChanged == nil {
		manifest.FilesChanged = []string{}
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := writeAtomic(filepath.Join(dir, ManifestFile), append(data, '\n')); err != nil {
		return err
	}
	if err := writeAtomic(filepath.Join(dir, DiffFile), []byte(patch)); err != nil {
		return err
	}
	if err := writeAtomic(filepath.Join(dir, SummaryFile), []byte(summary)); err != nil {
		return err
	}

	w.logger.Info("audit record written",
		zap.String("task_id", manifest.TaskID),
		zap.String("result", manifest.Result),
		zap.String("dir", dir),
	)
	return nil
}

// writeAtomic writes data to a temp file in the target directory and
// renames it into place.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}
	return nil
}
