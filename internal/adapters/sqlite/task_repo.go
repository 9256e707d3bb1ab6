// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/sentinel/internal/ports/secondary"
)

// TaskRepository implements secondary.TaskRepository with SQLite.
type TaskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new SQLite task repository.
func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskSelectCols = "id, agent_role, title, wave_id, dependencies, check_command, status, created_at, updated_at"

// scanTask scans a task row into a TaskRecord.
func scanTask(scanner interface {
	Scan(dest ...any) error
}) (*secondary.TaskRecord, error) {
	var (
		title        sql.NullString
		waveID       sql.NullString
		deps         string
		checkCommand sql.NullString
		createdAt    time.Time
		updatedAt    time.Time
	)

	record := &secondary.TaskRecord{}
	err := scanner.Scan(
		&record.ID, &record.AgentRole, &title, &waveID, &deps,
		&checkCommand, &record.Status, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Title = title.String
	record.WaveID = waveID.String
	record.CheckCommand = checkCommand.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	if err := json.Unmarshal([]byte(deps), &record.Dependencies); err != nil {
		return nil, fmt.Errorf("failed to decode dependencies for task %s: %w", record.ID, err)
	}

	return record, nil
}

// Upsert persists a task, replacing any existing row with the same id.
func (r *TaskRepository) Upsert(ctx context.Context, task *secondary.TaskRecord) error {
	deps, err := json.Marshal(task.Dependencies)
	if err != nil {
		return fmt.Errorf("failed to encode dependencies: %w", err)
	}
	if task.Dependencies == nil {
		deps = []byte("[]")
	}

	var title, waveID, checkCommand sql.NullString
	if task.Title != "" {
		title = sql.NullString{String: task.Title, Valid: true}
	}
	if task.WaveID != "" {
		waveID = sql.NullString{String: task.WaveID, Valid: true}
	}
	if task.CheckCommand != "" {
		checkCommand = sql.NullString{String: task.CheckCommand, Valid: true}
	}

	status := task.Status
	if status == "" {
		status = "pending"
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO tasks (id, agent_role, title, wave_id, dependencies, check_command, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   agent_role = excluded.agent_role,
		   title = excluded.title,
		   wave_id = excluded.wave_id,
		   dependencies = excluded.dependencies,
		   check_command = excluded.check_command,
		   status = excluded.status,
		   updated_at = CURRENT_TIMESTAMP`,
		task.ID, task.AgentRole, title, waveID, string(deps), checkCommand, status,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert task: %w", err)
	}

	return nil
}

// GetByID retrieves a task by its ID.
func (r *TaskRepository) GetByID(ctx context.Context, id string) (*secondary.TaskRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+taskSelectCols+" FROM tasks WHERE id = ?", id,
	)
	record, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("task %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return record, nil
}

// List retrieves tasks matching the given filters, in insertion order.
func (r *TaskRepository) List(ctx context.Context, filters secondary.TaskFilters) ([]*secondary.TaskRecord, error) {
	query := "SELECT " + taskSelectCols + " FROM tasks WHERE 1=1"
	var args []any

	if filters.AgentRole != "" {
		query += " AND agent_role = ?"
		args = append(args, filters.AgentRole)
	}
	if filters.WaveID != "" {
		query += " AND wave_id = ?"
		args = append(args, filters.WaveID)
	}
	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}
	query += " ORDER BY rowid"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var records []*secondary.TaskRecord
	for rows.Next() {
		record, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// UpdateStatus sets the status of a task.
func (r *TaskRepository) UpdateStatus(ctx context.Context, id, status string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE tasks SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update task status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("task %s not found", id)
	}
	return nil
}

// Ensure TaskRepository implements the interface
var _ secondary.TaskRepository = (*TaskRepository)(nil)
