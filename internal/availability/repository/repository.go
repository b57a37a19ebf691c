package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salon_booking_backend/platform/apperr"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ScheduleWindow is a master's working window on one weekday, in minutes
// from midnight.
type ScheduleWindow struct {
	StartMinutes int
	EndMinutes   int
}

// Interval is a half-open busy interval of an existing appointment.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Repository provides the read-side queries the availability engine needs.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates an availability repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetServiceDuration returns a service's length in minutes within the
// salon's scope.
func (r *Repository) GetServiceDuration(ctx context.Context, salonID, serviceID int64) (int, error) {
	var duration int
	err := r.pool.QueryRow(ctx,
		`SELECT duration_minutes FROM services WHERE id = $1 AND salon_id = $2`,
		serviceID, salonID,
	).Scan(&duration)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, apperr.NotFound("service not found")
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get service duration: %w", err)
	}
	return duration, nil
}

// ListCandidateMasters returns the ids of the salon's masters offering the
// service. With masterID set the list narrows to that master, coming back
// empty when they do not offer the service or belong elsewhere.
func (r *Repository) ListCandidateMasters(ctx context.Context, salonID, serviceID int64, masterID *int64) ([]int64, error) {
	query := `SELECT m.id FROM masters m
		JOIN master_services ms ON ms.master_id = m.id
		WHERE m.salon_id = $1 AND ms.service_id = $2`
	args := []interface{}{salonID, serviceID}
	if masterID != nil {
		query += ` AND m.id = $3`
		args = append(args, *masterID)
	}
	query += ` ORDER BY m.id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate masters: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan master id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate master ids: %w", err)
	}
	return ids, nil
}

// GetScheduleWindow returns the master's working window for an ISO weekday,
// or nil when the day is non-working.
func (r *Repository) GetScheduleWindow(ctx context.Context, masterID int64, dayOfWeek int) (*ScheduleWindow, error) {
	query := `SELECT
			EXTRACT(HOUR FROM start_time)::int * 60 + EXTRACT(MINUTE FROM start_time)::int,
			EXTRACT(HOUR FROM end_time)::int * 60 + EXTRACT(MINUTE FROM end_time)::int
		FROM schedules WHERE master_id = $1 AND day_of_week = $2`

	var window ScheduleWindow
	err := r.pool.QueryRow(ctx, query, masterID, dayOfWeek).Scan(&window.StartMinutes, &window.EndMinutes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule window: %w", err)
	}
	return &window, nil
}

// ListMasterBusy returns the master's appointment intervals inside [from, to).
func (r *Repository) ListMasterBusy(ctx context.Context, masterID int64, from, to time.Time) ([]Interval, error) {
	query := `SELECT start_time, end_time FROM appointments
		WHERE master_id = $1 AND start_time < $3 AND end_time > $2
		ORDER BY start_time`

	return r.queryIntervals(ctx, query, masterID, from, to)
}

// ListClientBusy returns the client's appointment intervals inside [from, to)
// across all masters of the salon.
func (r *Repository) ListClientBusy(ctx context.Context, clientID int64, from, to time.Time) ([]Interval, error) {
	query := `SELECT start_time, end_time FROM appointments
		WHERE client_id = $1 AND start_time < $3 AND end_time > $2
		ORDER BY start_time`

	return r.queryIntervals(ctx, query, clientID, from, to)
}

// FindClientID resolves an external chat identity to the salon's client id,
// or nil when the client is unknown.
func (r *Repository) FindClientID(ctx context.Context, salonID, externalUserID int64) (*int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`SELECT id FROM clients WHERE salon_id = $1 AND external_user_id = $2`,
		salonID, externalUserID,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find client: %w", err)
	}
	return &id, nil
}

func (r *Repository) queryIntervals(ctx context.Context, query string, args ...interface{}) ([]Interval, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list busy intervals: %w", err)
	}
	defer rows.Close()

	intervals := make([]Interval, 0)
	for rows.Next() {
		var item Interval
		if err := rows.Scan(&item.Start, &item.End); err != nil {
			return nil, fmt.Errorf("failed to scan busy interval: %w", err)
		}
		intervals = append(intervals, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate busy intervals: %w", err)
	}
	return intervals, nil
}
