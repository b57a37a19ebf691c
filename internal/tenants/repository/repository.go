package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salon_booking_backend/platform/apperr"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Salon is a tenant account. Every catalog and booking row is scoped to
// exactly one salon.
type Salon struct {
	ID                int64
	LoginName         string
	DisplayTitle      string
	BotToken          string
	AdminPasswordHash string
	Active            bool
	Timezone          string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Location resolves the salon's business timezone, falling back to the
// provided installation default when the column holds an unknown zone.
func (s *Salon) Location(fallback *time.Location) *time.Location {
	if s.Timezone == "" {
		return fallback
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return fallback
	}
	return loc
}

const salonColumns = `id, login_name, display_title, bot_token, admin_password_hash, active, timezone, created_at, updated_at`

const salonNotFoundMsg = "salon not found"

// Repository provides database operations for salons.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a tenants repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanSalon(row pgx.Row) (*Salon, error) {
	var s Salon
	err := row.Scan(
		&s.ID, &s.LoginName, &s.DisplayTitle, &s.BotToken,
		&s.AdminPasswordHash, &s.Active, &s.Timezone, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByBotToken resolves a salon by its bot token.
func (r *Repository) GetByBotToken(ctx context.Context, token string) (*Salon, error) {
	query := `SELECT ` + salonColumns + ` FROM salons WHERE bot_token = $1`

	salon, err := scanSalon(r.pool.QueryRow(ctx, query, token))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound(salonNotFoundMsg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get salon by token: %w", err)
	}
	return salon, nil
}

// GetByLogin resolves a salon by its admin login name.
func (r *Repository) GetByLogin(ctx context.Context, loginName string) (*Salon, error) {
	query := `SELECT ` + salonColumns + ` FROM salons WHERE login_name = $1`

	salon, err := scanSalon(r.pool.QueryRow(ctx, query, loginName))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound(salonNotFoundMsg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get salon by login: %w", err)
	}
	return salon, nil
}

// GetByID retrieves a salon by ID.
func (r *Repository) GetByID(ctx context.Context, id int64) (*Salon, error) {
	query := `SELECT ` + salonColumns + ` FROM salons WHERE id = $1`

	salon, err := scanSalon(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound(salonNotFoundMsg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get salon: %w", err)
	}
	return salon, nil
}

// List returns all salons ordered by login name.
func (r *Repository) List(ctx context.Context) ([]Salon, error) {
	query := `SELECT ` + salonColumns + ` FROM salons ORDER BY login_name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list salons: %w", err)
	}
	defer rows.Close()

	items := make([]Salon, 0)
	for rows.Next() {
		salon, err := scanSalon(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salon: %w", err)
		}
		items = append(items, *salon)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate salons: %w", err)
	}
	return items, nil
}

// Create inserts a salon and returns the stored row.
func (r *Repository) Create(ctx context.Context, salon *Salon) (*Salon, error) {
	query := `
		INSERT INTO salons (login_name, display_title, bot_token, admin_password_hash, active, timezone)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + salonColumns

	saved, err := scanSalon(r.pool.QueryRow(ctx, query,
		salon.LoginName, salon.DisplayTitle, salon.BotToken,
		salon.AdminPasswordHash, salon.Active, salon.Timezone,
	))
	if isUniqueViolation(err) {
		return nil, apperr.Conflict("salon login or token already in use")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create salon: %w", err)
	}
	return saved, nil
}

// Update persists the mutable salon fields.
func (r *Repository) Update(ctx context.Context, salon *Salon) (*Salon, error) {
	query := `
		UPDATE salons SET
			display_title = $2,
			bot_token = $3,
			admin_password_hash = $4,
			active = $5,
			timezone = $6,
			updated_at = $7
		WHERE id = $1
		RETURNING ` + salonColumns

	saved, err := scanSalon(r.pool.QueryRow(ctx, query,
		salon.ID, salon.DisplayTitle, salon.BotToken,
		salon.AdminPasswordHash, salon.Active, salon.Timezone, time.Now(),
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound(salonNotFoundMsg)
	}
	if isUniqueViolation(err) {
		return nil, apperr.Conflict("salon token already in use")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update salon: %w", err)
	}
	return saved, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
