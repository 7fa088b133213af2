package database

import (
	"context"
)

const bookingsSchema = `
CREATE TABLE IF NOT EXISTS bookings (
	id               UUID PRIMARY KEY,
	rider_id         TEXT NOT NULL,
	rider_name       TEXT NOT NULL,
	pickup_location  TEXT NOT NULL,
	dropoff_location TEXT NOT NULL,
	departure_time   TIMESTAMPTZ NOT NULL,
	pool_id          TEXT,
	created_at       TIMESTAMPTZ NOT NULL,
	updated_at       TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_bookings_rider_id ON bookings (rider_id);
`

// Migrate applies the schema. Idempotent, runs on every startup.
func (p *PostgresDB) Migrate(ctx context.Context) error {
	_, err := p.ExecContext(ctx, bookingsSchema)
	return err
}
