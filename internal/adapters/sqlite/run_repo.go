package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/sentinel/internal/ports/secondary"
)

// RunRepository implements secondary.RunRepository with SQLite.
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new SQLite run repository.
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

const runSelectCols = "id, task_id, result, tier_used, iterations, cost_usd, files_changed, created_at"

func scanRun(scanner interface {
	Scan(dest ...any) error
}) (*secondary.RunRecord, error) {
	var (
		files     string
		createdAt time.Time
	)

	record := &secondary.RunRecord{}
	err := scanner.Scan(
		&record.ID, &record.TaskID, &record.Result, &record.TierUsed,
		&record.Iterations, &record.CostUSD, &files, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	record.CreatedAt = createdAt.Format(time.RFC3339)
	if err := json.Unmarshal([]byte(files), &record.FilesChanged); err != nil {
		return nil, fmt.Errorf("failed to decode files_changed for run %s: %w", record.ID, err)
	}

	return record, nil
}

// Create persists a new run record.
func (r *RunRepository) Create(ctx context.Context, run *secondary.RunRecord) error {
	files, err := json.Marshal(run.FilesChanged)
	if err != nil {
		return fmt.Errorf("failed to encode files_changed: %w", err)
	}
	if run.FilesChanged == nil {
		files = []byte("[]")
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO runs (id, task_id, result, tier_used, iterations, cost_usd, files_changed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.TaskID, run.Result, run.TierUsed, run.Iterations, run.CostUSD, string(files),
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

// GetLatestByTaskID retrieves the most recent run for a task.
func (r *RunRepository) GetLatestByTaskID(ctx context.Context, taskID string) (*secondary.RunRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+runSelectCols+" FROM runs WHERE task_id = ? ORDER BY created_at DESC, rowid DESC LIMIT 1",
		taskID,
	)
	record, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no runs recorded for task %s", taskID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return record, nil
}

// List retrieves run records, most recent first.
func (r *RunRepository) List(ctx context.Context, limit int) ([]*secondary.RunRecord, error) {
	query := "SELECT " + runSelectCols + " FROM runs ORDER BY created_at DESC, rowid DESC"
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var records []*secondary.RunRecord
	for rows.Next() {
		record, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Ensure RunRepository implements the interface
var _ secondary.RunRepository = (*RunRepository)(nil)
