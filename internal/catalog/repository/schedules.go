package repository

import (
	"context"
	"fmt"
)

// ScheduleEntry is a master's working window for one ISO day of week.
// Times of day travel as HH:MM strings; the column type is TIME.
type ScheduleEntry struct {
	ID        int64
	MasterID  int64
	DayOfWeek int
	StartTime string
	EndTime   string
}

// ListSchedule returns a master's schedule rows ordered by day of week.
// Days without a row are non-working.
func (r *Repository) ListSchedule(ctx context.Context, masterID int64) ([]ScheduleEntry, error) {
	query := `SELECT id, master_id, day_of_week,
			to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI')
		FROM schedules WHERE master_id = $1 ORDER BY day_of_week`

	rows, err := r.pool.Query(ctx, query, masterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule: %w", err)
	}
	defer rows.Close()

	items := make([]ScheduleEntry, 0, 7)
	for rows.Next() {
		var item ScheduleEntry
		if err := rows.Scan(&item.ID, &item.MasterID, &item.DayOfWeek, &item.StartTime, &item.EndTime); err != nil {
			return nil, fmt.Errorf("failed to scan schedule entry: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate schedule: %w", err)
	}
	return items, nil
}

// ReplaceSchedule atomically swaps a master's weekly schedule: all existing
// rows are removed and the provided working entries inserted.
func (r *Repository) ReplaceSchedule(ctx context.Context, masterID int64, entries []ScheduleEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM schedules WHERE master_id = $1`, masterID); err != nil {
		return fmt.Errorf("failed to clear schedule: %w", err)
	}

	for _, entry := range entries {
		_, err := tx.Exec(ctx,
			`INSERT INTO schedules (master_id, day_of_week, start_time, end_time)
			VALUES ($1, $2, $3::time, $4::time)`,
			masterID, entry.DayOfWeek, entry.StartTime, entry.EndTime,
		)
		if err != nil {
			return fmt.Errorf("failed to insert schedule entry: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit schedule: %w", err)
	}
	return nil
}
