package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool creates and pings a new pgx connection pool.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id             BIGSERIAL PRIMARY KEY,
		email          TEXT NOT NULL,
		password_hash  TEXT NOT NULL,
		role           TEXT NOT NULL CHECK (role IN ('admin', 'driver')),
		name           TEXT NOT NULL,
		phone          TEXT NOT NULL DEFAULT '',
		is_available   BOOLEAN NOT NULL DEFAULT FALSE,
		vehicle_info   TEXT NOT NULL DEFAULT '',
		license_number TEXT NOT NULL DEFAULT '',
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (email)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id                 BIGSERIAL PRIMARY KEY,
		customer_name      TEXT NOT NULL,
		customer_address   TEXT NOT NULL,
		customer_phone     TEXT NOT NULL,
		product_info       TEXT NOT NULL,
		order_value        DOUBLE PRECISION NOT NULL,
		status             TEXT NOT NULL DEFAULT 'pending',
		assigned_driver_id BIGINT,
		created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS orders_status_idx ON orders (status)`,
	`CREATE TABLE IF NOT EXISTS deliveries (
		id            BIGSERIAL PRIMARY KEY,
		order_id      BIGINT NOT NULL REFERENCES orders (id),
		driver_id     BIGINT NOT NULL,
		status        TEXT NOT NULL DEFAULT 'pending',
		pickup_time   TIMESTAMPTZ,
		delivery_time TIMESTAMPTZ,
		notes         TEXT NOT NULL DEFAULT '',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS deliveries_order_id_key ON deliveries (order_id)`,
	`CREATE INDEX IF NOT EXISTS deliveries_driver_id_idx ON deliveries (driver_id)`,
}

// EnsureSchema creates the tables and indexes if they are missing.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}
	return nil
}
