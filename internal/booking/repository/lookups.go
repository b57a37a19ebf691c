package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salon_booking_backend/platform/apperr"

	"github.com/jackc/pgx/v5"
)

// BookedService is the slice of a service the booking pipeline needs.
type BookedService struct {
	ID              int64
	Name            string
	DurationMinutes int
}

// BookedMaster is the slice of a master the booking pipeline needs.
type BookedMaster struct {
	ID   int64
	Name string
}

// GetService resolves a service within the salon's scope.
func (r *Repository) GetService(ctx context.Context, salonID, serviceID int64) (*BookedService, error) {
	var svc BookedService
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, duration_minutes FROM services WHERE id = $1 AND salon_id = $2`,
		serviceID, salonID,
	).Scan(&svc.ID, &svc.Name, &svc.DurationMinutes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("service not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return &svc, nil
}

// GetMaster resolves a master within the salon's scope.
func (r *Repository) GetMaster(ctx context.Context, salonID, masterID int64) (*BookedMaster, error) {
	var m BookedMaster
	err := r.pool.QueryRow(ctx,
		`SELECT id, name FROM masters WHERE id = $1 AND salon_id = $2`,
		masterID, salonID,
	).Scan(&m.ID, &m.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("master not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get master: %w", err)
	}
	return &m, nil
}

// FindServiceByName resolves a service by case-insensitive substring match,
// preferring the oldest on ties. Nil means no match.
func (r *Repository) FindServiceByName(ctx context.Context, salonID int64, name string) (*BookedService, error) {
	var svc BookedService
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, duration_minutes FROM services
			WHERE salon_id = $1 AND name ILIKE '%' || $2 || '%'
			ORDER BY id LIMIT 1`,
		salonID, name,
	).Scan(&svc.ID, &svc.Name, &svc.DurationMinutes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find service by name: %w", err)
	}
	return &svc, nil
}

// FindMasterByName resolves a master by case-insensitive substring match.
// Nil means no match.
func (r *Repository) FindMasterByName(ctx context.Context, salonID int64, name string) (*BookedMaster, error) {
	var m BookedMaster
	err := r.pool.QueryRow(ctx,
		`SELECT id, name FROM masters
			WHERE salon_id = $1 AND name ILIKE '%' || $2 || '%'
			ORDER BY id LIMIT 1`,
		salonID, name,
	).Scan(&m.ID, &m.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find master by name: %w", err)
	}
	return &m, nil
}

// FindAnyMasterForService returns the salon's first master offering the
// service. Nil means nobody offers it.
func (r *Repository) FindAnyMasterForService(ctx context.Context, salonID, serviceID int64) (*BookedMaster, error) {
	var m BookedMaster
	err := r.pool.QueryRow(ctx,
		`SELECT m.id, m.name FROM masters m
			JOIN master_services ms ON ms.master_id = m.id
			WHERE m.salon_id = $1 AND ms.service_id = $2
			ORDER BY m.id LIMIT 1`,
		salonID, serviceID,
	).Scan(&m.ID, &m.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find master for service: %w", err)
	}
	return &m, nil
}

// GetClientID resolves a client id within the salon's scope.
func (r *Repository) GetClientID(ctx context.Context, salonID, clientID int64) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`SELECT id FROM clients WHERE id = $1 AND salon_id = $2`,
		clientID, salonID,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, apperr.NotFound("client not found")
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get client: %w", err)
	}
	return id, nil
}

// UpsertClient returns the salon's client for an external chat identity,
// creating it on first contact. The stored name is kept on later calls.
func (r *Repository) UpsertClient(ctx context.Context, salonID, externalUserID int64, name string) (int64, error) {
	query := `INSERT INTO clients (salon_id, external_user_id, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (salon_id, external_user_id)
			DO UPDATE SET external_user_id = EXCLUDED.external_user_id
		RETURNING id`

	var id int64
	if err := r.pool.QueryRow(ctx, query, salonID, externalUserID, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to upsert client: %w", err)
	}
	return id, nil
}

// UpsertClientPhone stores a client's phone, creating the client with a
// placeholder name when the chat identity is new.
func (r *Repository) UpsertClientPhone(ctx context.Context, salonID, externalUserID int64, phone string) error {
	query := `INSERT INTO clients (salon_id, external_user_id, name, phone)
		VALUES ($1, $2, 'Unknown', $3)
		ON CONFLICT (salon_id, external_user_id)
			DO UPDATE SET phone = EXCLUDED.phone`

	if _, err := r.pool.Exec(ctx, query, salonID, externalUserID, phone); err != nil {
		return fmt.Errorf("failed to upsert client phone: %w", err)
	}
	return nil
}

const detailColumns = `a.id, a.salon_id, a.client_id, a.master_id, a.service_id,
		a.start_time, a.end_time, s.name, m.name, c.name`

const detailJoins = `FROM appointments a
		JOIN services s ON s.id = a.service_id
		JOIN masters m ON m.id = a.master_id
		JOIN clients c ON c.id = a.client_id`

// GetDetail returns one appointment with joined names, salon-scoped.
func (r *Repository) GetDetail(ctx context.Context, salonID, id int64) (*Detail, error) {
	query := `SELECT ` + detailColumns + ` ` + detailJoins + `
		WHERE a.id = $1 AND a.salon_id = $2`

	var d Detail
	err := r.pool.QueryRow(ctx, query, id, salonID).Scan(
		&d.ID, &d.SalonID, &d.ClientID, &d.MasterID, &d.ServiceID,
		&d.StartTime, &d.EndTime, &d.ServiceName, &d.MasterName, &d.ClientName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound(appointmentNotFoundMsg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &d, nil
}

// ListForDay returns the salon's appointments inside [from, to) with joined
// names, ordered by start.
func (r *Repository) ListForDay(ctx context.Context, salonID int64, from, to time.Time) ([]Detail, error) {
	query := `SELECT ` + detailColumns + ` ` + detailJoins + `
		WHERE a.salon_id = $1 AND a.start_time >= $2 AND a.start_time < $3
		ORDER BY a.start_time`

	return r.queryDetails(ctx, query, salonID, from, to)
}

// ListUpcomingForClient returns a chat client's future appointments in
// ascending order. An unknown client simply has none.
func (r *Repository) ListUpcomingForClient(ctx context.Context, salonID, externalUserID int64, now time.Time) ([]Detail, error) {
	query := `SELECT ` + detailColumns + ` ` + detailJoins + `
		WHERE a.salon_id = $1 AND c.external_user_id = $2 AND a.start_time >= $3
		ORDER BY a.start_time`

	return r.queryDetails(ctx, query, salonID, externalUserID, now)
}

func (r *Repository) queryDetails(ctx context.Context, query string, args ...interface{}) ([]Detail, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer rows.Close()

	items := make([]Detail, 0)
	for rows.Next() {
		var d Detail
		err := rows.Scan(
			&d.ID, &d.SalonID, &d.ClientID, &d.MasterID, &d.ServiceID,
			&d.StartTime, &d.EndTime, &d.ServiceName, &d.MasterName, &d.ClientName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan appointment: %w", err)
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate appointments: %w", err)
	}
	return items, nil
}
