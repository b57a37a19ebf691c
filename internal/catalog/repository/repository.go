package repository

import (
	"context"
	"errors"
	"fmt"

	"salon_booking_backend/platform/apperr"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Service is a bookable offering scoped to a salon.
type Service struct {
	ID              int64
	SalonID         int64
	Name            string
	Price           int
	DurationMinutes int
}

// Master is a service provider scoped to a salon.
type Master struct {
	ID             int64
	SalonID        int64
	Name           string
	Specialization string
	Description    *string
}

const (
	serviceNotFoundMsg = "service not found"
	masterNotFoundMsg  = "master not found"
)

// Repository provides database operations for the salon catalog.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a catalog repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const listServicesQuery = `SELECT id, salon_id, name, price, duration_minutes
		FROM services WHERE salon_id = $1 ORDER BY name`

// ListServices returns all services of a salon ordered by name.
func (r *Repository) ListServices(ctx context.Context, salonID int64) ([]Service, error) {
	rows, err := r.pool.Query(ctx, listServicesQuery, salonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer rows.Close()

	items := make([]Service, 0)
	for rows.Next() {
		var item Service
		if err := rows.Scan(&item.ID, &item.SalonID, &item.Name, &item.Price, &item.DurationMinutes); err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate services: %w", err)
	}
	return items, nil
}

// GetService retrieves one service within the salon's scope.
func (r *Repository) GetService(ctx context.Context, salonID, id int64) (*Service, error) {
	query := `SELECT id, salon_id, name, price, duration_minutes
		FROM services WHERE id = $1 AND salon_id = $2`

	var item Service
	err := r.pool.QueryRow(ctx, query, id, salonID).Scan(
		&item.ID, &item.SalonID, &item.Name, &item.Price, &item.DurationMinutes,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound(serviceNotFoundMsg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return &item, nil
}

// CreateService inserts a service for the salon.
func (r *Repository) CreateService(ctx context.Context, svc *Service) (*Service, error) {
	query := `INSERT INTO services (salon_id, name, price, duration_minutes)
		VALUES ($1, $2, $3, $4)
		RETURNING id, salon_id, name, price, duration_minutes`

	var saved Service
	err := r.pool.QueryRow(ctx, query, svc.SalonID, svc.Name, svc.Price, svc.DurationMinutes).Scan(
		&saved.ID, &saved.SalonID, &saved.Name, &saved.Price, &saved.DurationMinutes,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return &saved, nil
}

// UpdateService updates a service within the salon's scope.
func (r *Repository) UpdateService(ctx context.Context, svc *Service) (*Service, error) {
	query := `UPDATE services SET name = $3, price = $4, duration_minutes = $5
		WHERE id = $1 AND salon_id = $2
		RETURNING id, salon_id, name, price, duration_minutes`

	var saved Service
	err := r.pool.QueryRow(ctx, query, svc.ID, svc.SalonID, svc.Name, svc.Price, svc.DurationMinutes).Scan(
		&saved.ID, &saved.SalonID, &saved.Name, &saved.Price, &saved.DurationMinutes,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound(serviceNotFoundMsg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}
	return &saved, nil
}

// DeleteService removes a service. Services referenced by appointments are
// protected by the restrict constraint and surface as a conflict.
func (r *Repository) DeleteService(ctx context.Context, salonID, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM services WHERE id = $1 AND salon_id = $2`, id, salonID)
	if isRestrictViolation(err) {
		return apperr.Conflict("service has existing appointments")
	}
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(serviceNotFoundMsg)
	}
	return nil
}

const listMastersQuery = `SELECT id, salon_id, name, specialization, description
		FROM masters WHERE salon_id = $1 ORDER BY name`

// ListMasters returns all masters of a salon ordered by name.
func (r *Repository) ListMasters(ctx context.Context, salonID int64) ([]Master, error) {
	return r.queryMasters(ctx, listMastersQuery, salonID)
}

// ListMastersForService returns the salon's masters offering a service.
func (r *Repository) ListMastersForService(ctx context.Context, salonID, serviceID int64) ([]Master, error) {
	query := `SELECT m.id, m.salon_id, m.name, m.specialization, m.description
		FROM masters m
		JOIN master_services ms ON ms.master_id = m.id
		WHERE m.salon_id = $1 AND ms.service_id = $2
		ORDER BY m.name`

	return r.queryMasters(ctx, query, salonID, serviceID)
}

func (r *Repository) queryMasters(ctx context.Context, query string, args ...interface{}) ([]Master, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list masters: %w", err)
	}
	defer rows.Close()

	items := make([]Master, 0)
	for rows.Next() {
		var item Master
		if err := rows.Scan(&item.ID, &item.SalonID, &item.Name, &item.Specialization, &item.Description); err != nil {
			return nil, fmt.Errorf("failed to scan master: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate masters: %w", err)
	}
	return items, nil
}

// GetMaster retrieves one master within the salon's scope.
func (r *Repository) GetMaster(ctx context.Context, salonID, id int64) (*Master, error) {
	query := `SELECT id, salon_id, name, specialization, description
		FROM masters WHERE id = $1 AND salon_id = $2`

	var item Master
	err := r.pool.QueryRow(ctx, query, id, salonID).Scan(
		&item.ID, &item.SalonID, &item.Name, &item.Specialization, &item.Description,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound(masterNotFoundMsg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get master: %w", err)
	}
	return &item, nil
}

// ListServiceNamesOfMaster returns the names of a master's services.
func (r *Repository) ListServiceNamesOfMaster(ctx context.Context, masterID int64) ([]string, error) {
	query := `SELECT s.name FROM services s
		JOIN master_services ms ON ms.service_id = s.id
		WHERE ms.master_id = $1 ORDER BY s.name`

	rows, err := r.pool.Query(ctx, query, masterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list master services: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan service name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate service names: %w", err)
	}
	return names, nil
}

// CountServicesInSalon reports how many of the given service ids belong to
// the salon. Used to reject cross-tenant membership sets.
func (r *Repository) CountServicesInSalon(ctx context.Context, salonID int64, serviceIDs []int64) (int, error) {
	if len(serviceIDs) == 0 {
		return 0, nil
	}

	var count int
	query := `SELECT count(*) FROM services WHERE salon_id = $1 AND id = ANY($2)`
	if err := r.pool.QueryRow(ctx, query, salonID, serviceIDs).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count services: %w", err)
	}
	return count, nil
}

// CreateMaster inserts a master and its service memberships atomically.
func (r *Repository) CreateMaster(ctx context.Context, master *Master, serviceIDs []int64) (*Master, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO masters (salon_id, name, specialization, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, salon_id, name, specialization, description`

	var saved Master
	err = tx.QueryRow(ctx, query, master.SalonID, master.Name, master.Specialization, master.Description).Scan(
		&saved.ID, &saved.SalonID, &saved.Name, &saved.Specialization, &saved.Description,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create master: %w", err)
	}

	if err := insertMemberships(ctx, tx, saved.ID, serviceIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit master: %w", err)
	}
	return &saved, nil
}

// UpdateMaster updates a master and replaces its membership set atomically.
// Replaying the same set is idempotent.
func (r *Repository) UpdateMaster(ctx context.Context, master *Master, serviceIDs []int64) (*Master, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `UPDATE masters SET name = $3, specialization = $4, description = $5
		WHERE id = $1 AND salon_id = $2
		RETURNING id, salon_id, name, specialization, description`

	var saved Master
	err = tx.QueryRow(ctx, query, master.ID, master.SalonID, master.Name, master.Specialization, master.Description).Scan(
		&saved.ID, &saved.SalonID, &saved.Name, &saved.Specialization, &saved.Description,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound(masterNotFoundMsg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update master: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM master_services WHERE master_id = $1`, saved.ID); err != nil {
		return nil, fmt.Errorf("failed to clear master services: %w", err)
	}
	if err := insertMemberships(ctx, tx, saved.ID, serviceIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit master: %w", err)
	}
	return &saved, nil
}

// DeleteMaster removes a master. Masters referenced by appointments are
// protected by the restrict constraint and surface as a conflict.
func (r *Repository) DeleteMaster(ctx context.Context, salonID, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM masters WHERE id = $1 AND salon_id = $2`, id, salonID)
	if isRestrictViolation(err) {
		return apperr.Conflict("master has existing appointments")
	}
	if err != nil {
		return fmt.Errorf("failed to delete master: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(masterNotFoundMsg)
	}
	return nil
}

func insertMemberships(ctx context.Context, tx pgx.Tx, masterID int64, serviceIDs []int64) error {
	for _, serviceID := range serviceIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO master_services (master_id, service_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			masterID, serviceID,
		)
		if err != nil {
			return fmt.Errorf("failed to link master to service: %w", err)
		}
	}
	return nil
}

func isRestrictViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
