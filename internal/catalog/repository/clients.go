package repository

import (
	"context"
	"errors"
	"fmt"

	"salon_booking_backend/platform/apperr"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Client is a salon customer, usually created on first booking from chat.
// Admin-created clients without a chat identity carry synthetic negative
// external ids so the (salon, external_user_id) uniqueness still holds.
type Client struct {
	ID             int64
	SalonID        int64
	ExternalUserID int64
	Name           string
	Phone          *string
}

const clientNotFoundMsg = "client not found"

// ListClients returns all clients of a salon ordered by name.
func (r *Repository) ListClients(ctx context.Context, salonID int64) ([]Client, error) {
	query := `SELECT id, salon_id, external_user_id, name, phone
		FROM clients WHERE salon_id = $1 ORDER BY name`

	rows, err := r.pool.Query(ctx, query, salonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	items := make([]Client, 0)
	for rows.Next() {
		var item Client
		if err := rows.Scan(&item.ID, &item.SalonID, &item.ExternalUserID, &item.Name, &item.Phone); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clients: %w", err)
	}
	return items, nil
}

// GetClient retrieves one client within the salon's scope.
func (r *Repository) GetClient(ctx context.Context, salonID, id int64) (*Client, error) {
	query := `SELECT id, salon_id, external_user_id, name, phone
		FROM clients WHERE id = $1 AND salon_id = $2`

	var item Client
	err := r.pool.QueryRow(ctx, query, id, salonID).Scan(
		&item.ID, &item.SalonID, &item.ExternalUserID, &item.Name, &item.Phone,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound(clientNotFoundMsg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return &item, nil
}

// CreateClient inserts a client. When externalUserID is nil the next free
// synthetic negative id inside the salon is assigned within the same
// transaction so concurrent admin creates cannot collide.
func (r *Repository) CreateClient(ctx context.Context, salonID int64, externalUserID *int64, name string, phone *string) (*Client, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var externalID int64
	if externalUserID != nil {
		externalID = *externalUserID
	} else {
		query := `SELECT coalesce(least(min(external_user_id), 0), 0) - 1
			FROM clients WHERE salon_id = $1`
		if err := tx.QueryRow(ctx, query, salonID).Scan(&externalID); err != nil {
			return nil, fmt.Errorf("failed to allocate synthetic client id: %w", err)
		}
	}

	query := `INSERT INTO clients (salon_id, external_user_id, name, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING id, salon_id, external_user_id, name, phone`

	var saved Client
	err = tx.QueryRow(ctx, query, salonID, externalID, name, phone).Scan(
		&saved.ID, &saved.SalonID, &saved.ExternalUserID, &saved.Name, &saved.Phone,
	)
	if isUniqueViolation(err) {
		return nil, apperr.Conflict("client with this external id already exists")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit client: %w", err)
	}
	return &saved, nil
}

// UpdateClient updates a client within the salon's scope.
func (r *Repository) UpdateClient(ctx context.Context, client *Client) (*Client, error) {
	query := `UPDATE clients SET name = $3, phone = $4
		WHERE id = $1 AND salon_id = $2
		RETURNING id, salon_id, external_user_id, name, phone`

	var saved Client
	err := r.pool.QueryRow(ctx, query, client.ID, client.SalonID, client.Name, client.Phone).Scan(
		&saved.ID, &saved.SalonID, &saved.ExternalUserID, &saved.Name, &saved.Phone,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound(clientNotFoundMsg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return &saved, nil
}

// DeleteClient removes a client. Clients with appointment history are
// protected by the foreign key and surface as a conflict.
func (r *Repository) DeleteClient(ctx context.Context, salonID, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1 AND salon_id = $2`, id, salonID)
	if isRestrictViolation(err) {
		return apperr.Conflict("client has existing appointments")
	}
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(clientNotFoundMsg)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
