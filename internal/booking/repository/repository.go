package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salon_booking_backend/platform/apperr"
	"salon_booking_backend/platform/timeutil"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Advisory lock namespaces. Master locks are always taken before client
// locks so concurrent bookers cannot deadlock.
const (
	lockClassMaster = 1
	lockClassClient = 2
)

// Appointment is a confirmed booking row.
type Appointment struct {
	ID        int64
	SalonID   int64
	ClientID  int64
	MasterID  int64
	ServiceID int64
	StartTime time.Time
	EndTime   time.Time
}

// Detail is an appointment joined with the names the API responds with.
type Detail struct {
	Appointment
	ServiceName string
	MasterName  string
	ClientName  string
}

// CreateParams describes one booking attempt. EnforceSchedule makes the
// write fail when the interval falls outside the master's working window;
// admin paths leave it off.
type CreateParams struct {
	SalonID         int64
	ClientID        int64
	MasterID        int64
	ServiceID       int64
	StartTime       time.Time
	EndTime         time.Time
	EnforceSchedule bool
}

// UpdateParams describes an appointment rewrite. Conflict checks exclude
// the row itself.
type UpdateParams struct {
	ID              int64
	SalonID         int64
	MasterID        int64
	ServiceID       int64
	StartTime       time.Time
	EndTime         time.Time
	EnforceSchedule bool
}

const appointmentNotFoundMsg = "appointment not found"

// Repository provides database operations for appointments.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a booking repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create books an appointment. The whole check-then-insert pipeline runs in
// one transaction under advisory locks on the master and the client, so two
// concurrent attempts for the same slot serialize and exactly one commits.
func (r *Repository) Create(ctx context.Context, params CreateParams) (*Appointment, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := lockBookingEntities(ctx, tx, params.MasterID, params.ClientID); err != nil {
		return nil, err
	}
	if err := checkBookable(ctx, tx, bookableCheck{
		masterID:        params.MasterID,
		clientID:        params.ClientID,
		startTime:       params.StartTime,
		endTime:         params.EndTime,
		enforceSchedule: params.EnforceSchedule,
	}); err != nil {
		return nil, err
	}

	query := `INSERT INTO appointments (salon_id, client_id, master_id, service_id, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, salon_id, client_id, master_id, service_id, start_time, end_time`

	var saved Appointment
	err = tx.QueryRow(ctx, query,
		params.SalonID, params.ClientID, params.MasterID, params.ServiceID, params.StartTime, params.EndTime,
	).Scan(&saved.ID, &saved.SalonID, &saved.ClientID, &saved.MasterID, &saved.ServiceID, &saved.StartTime, &saved.EndTime)
	if err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit appointment: %w", err)
	}
	return &saved, nil
}

// Update rewrites an appointment under the same locking and conflict rules
// as Create, excluding the row itself from the conflict counts.
func (r *Repository) Update(ctx context.Context, params UpdateParams) (*Appointment, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var clientID int64
	err = tx.QueryRow(ctx,
		`SELECT client_id FROM appointments WHERE id = $1 AND salon_id = $2`,
		params.ID, params.SalonID,
	).Scan(&clientID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound(appointmentNotFoundMsg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load appointment: %w", err)
	}

	if err := lockBookingEntities(ctx, tx, params.MasterID, clientID); err != nil {
		return nil, err
	}
	if err := checkBookable(ctx, tx, bookableCheck{
		masterID:        params.MasterID,
		clientID:        clientID,
		startTime:       params.StartTime,
		endTime:         params.EndTime,
		excludeID:       params.ID,
		enforceSchedule: params.EnforceSchedule,
	}); err != nil {
		return nil, err
	}

	query := `UPDATE appointments
		SET master_id = $3, service_id = $4, start_time = $5, end_time = $6
		WHERE id = $1 AND salon_id = $2
		RETURNING id, salon_id, client_id, master_id, service_id, start_time, end_time`

	var saved Appointment
	err = tx.QueryRow(ctx, query,
		params.ID, params.SalonID, params.MasterID, params.ServiceID, params.StartTime, params.EndTime,
	).Scan(&saved.ID, &saved.SalonID, &saved.ClientID, &saved.MasterID, &saved.ServiceID, &saved.StartTime, &saved.EndTime)
	if err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit appointment: %w", err)
	}
	return &saved, nil
}

// Delete removes an appointment within the salon's scope.
func (r *Repository) Delete(ctx context.Context, salonID, id int64) error {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM appointments WHERE id = $1 AND salon_id = $2`, id, salonID)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(appointmentNotFoundMsg)
	}
	return nil
}

func lockBookingEntities(ctx context.Context, tx pgx.Tx, masterID, clientID int64) error {
	if _, err := tx.Exec(ctx, advisoryLockQuery, lockClassMaster, masterID); err != nil {
		return fmt.Errorf("failed to lock master: %w", err)
	}
	if _, err := tx.Exec(ctx, advisoryLockQuery, lockClassClient, clientID); err != nil {
		return fmt.Errorf("failed to lock client: %w", err)
	}
	return nil
}

const advisoryLockQuery = `SELECT pg_advisory_xact_lock($1, $2)`

const masterConflictQuery = `SELECT count(*) FROM appointments
			WHERE master_id = $1 AND start_time < $3 AND end_time > $2 AND id <> $4`

const clientConflictQuery = `SELECT count(*) FROM appointments
			WHERE client_id = $1 AND start_time < $3 AND end_time > $2 AND id <> $4`

type bookableCheck struct {
	masterID        int64
	clientID        int64
	startTime       time.Time
	endTime         time.Time
	excludeID       int64
	enforceSchedule bool
}

// checkBookable runs the conflict pipeline inside the booking transaction.
// Order matters for error reporting: working hours, then the master's
// calendar, then the client's.
func checkBookable(ctx context.Context, tx pgx.Tx, check bookableCheck) error {
	if check.enforceSchedule {
		covered, err := scheduleCovers(ctx, tx, check.masterID, check.startTime, check.endTime)
		if err != nil {
			return err
		}
		if !covered {
			return apperr.Conflict("outside working hours")
		}
	}

	masterBusy, err := countConflicts(ctx, tx, masterConflictQuery,
		check.masterID, check.startTime, check.endTime, check.excludeID)
	if err != nil {
		return err
	}
	if masterBusy > 0 {
		return apperr.Conflict("slot already taken")
	}

	clientBusy, err := countConflicts(ctx, tx, clientConflictQuery,
		check.clientID, check.startTime, check.endTime, check.excludeID)
	if err != nil {
		return err
	}
	if clientBusy > 0 {
		return apperr.Conflict("client already booked")
	}
	return nil
}

func scheduleCovers(ctx context.Context, tx pgx.Tx, masterID int64, start, end time.Time) (bool, error) {
	query := `SELECT count(*) FROM schedules
		WHERE master_id = $1 AND day_of_week = $2
			AND start_time <= $3::time AND end_time >= $4::time`

	var count int
	err := tx.QueryRow(ctx, query,
		masterID,
		timeutil.ISOWeekday(start),
		timeutil.FormatClock(timeutil.MinutesOfDay(start)),
		timeutil.FormatClock(timeutil.MinutesOfDay(end)),
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check schedule coverage: %w", err)
	}
	return count > 0, nil
}

func countConflicts(ctx context.Context, tx pgx.Tx, query string, args ...interface{}) (int, error) {
	var count int
	if err := tx.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count conflicts: %w", err)
	}
	return count, nil
}
