// Package db provides database connection infrastructure.
// This is part of the platform layer and contains no business logic.
package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool creates a pgx connection pool with production-ready settings.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = 1 * time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

// PoolHealth adapts a pool to the router's health-check interface.
type PoolHealth struct {
	pool *pgxpool.Pool
}

// NewPoolHealth wraps a pool for readiness checks.
func NewPoolHealth(pool *pgxpool.Pool) *PoolHealth {
	return &PoolHealth{pool: pool}
}

// Ping checks database reachability.
func (p *PoolHealth) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}
