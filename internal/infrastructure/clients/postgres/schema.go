package postgres

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS hospitals (
		id              TEXT PRIMARY KEY,
		seq             BIGSERIAL,
		name            TEXT NOT NULL,
		address         TEXT NOT NULL DEFAULT '',
		phone           TEXT NOT NULL DEFAULT '',
		email           TEXT NOT NULL DEFAULT '',
		website         TEXT NOT NULL DEFAULT '',
		latitude        DOUBLE PRECISION NOT NULL,
		longitude       DOUBLE PRECISION NOT NULL,
		type            TEXT NOT NULL,
		services        TEXT[] NOT NULL DEFAULT '{}',
		rating          DOUBLE PRECISION,
		is_emergency    BOOLEAN NOT NULL DEFAULT FALSE,
		operating_hours JSONB NOT NULL DEFAULT '{}',
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_hospitals_type ON hospitals (type)`,
	`CREATE INDEX IF NOT EXISTS idx_hospitals_is_emergency ON hospitals (is_emergency)`,
	`CREATE TABLE IF NOT EXISTS user_locations (
		id           TEXT PRIMARY KEY,
		user_id      TEXT NOT NULL UNIQUE,
		latitude     DOUBLE PRECISION NOT NULL,
		longitude    DOUBLE PRECISION NOT NULL,
		address      TEXT,
		last_updated TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// EnsureSchema creates the tables used by the service if they are missing
func (c *Client) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := c.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
