package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/example/sentinel/internal/ports/secondary"
)

// WaveRepository implements secondary.WaveRepository with SQLite.
type WaveRepository struct {
	db *sql.DB
}

// NewWaveRepository creates a new SQLite wave repository.
func NewWaveRepository(db *sql.DB) *WaveRepository {
	return &WaveRepository{db: db}
}

// Upsert persists a wave, replacing any existing row with the same id.
func (r *WaveRepository) Upsert(ctx context.Context, wave *secondary.WaveRecord) error {
	locks, err := json.Marshal(wave.FileLocks)
	if err != nil {
		return fmt.Errorf("failed to encode file locks: %w", err)
	}
	if wave.FileLocks == nil {
		locks = []byte("[]")
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO waves (id, file_locks) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   file_locks = excluded.file_locks,
		   updated_at = CURRENT_TIMESTAMP`,
		wave.ID, string(locks),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert wave: %w", err)
	}
	return nil
}

// List retrieves all waves.
func (r *WaveRepository) List(ctx context.Context) ([]*secondary.WaveRecord, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, file_locks FROM waves ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to list waves: %w", err)
	}
	defer rows.Close()

	var records []*secondary.WaveRecord
	for rows.Next() {
		var locks string
		record := &secondary.WaveRecord{}
		if err := rows.Scan(&record.ID, &locks); err != nil {
			return nil, fmt.Errorf("failed to scan wave: %w", err)
		}
		if err := json.Unmarshal([]byte(locks), &record.FileLocks); err != nil {
			return nil, fmt.Errorf("failed to decode file locks for wave %s: %w", record.ID, err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Ensure WaveRepository implements the interface
var _ secondary.WaveRepository = (*WaveRepository)(nil)
