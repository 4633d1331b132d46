package repository

import (
	"context"
	"fmt"
)

// Schema migrations, applied in order. Every statement is idempotent so
// InitSchema can run on every start.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS fetches (
		id BIGSERIAL PRIMARY KEY,
		ticker TEXT NOT NULL,
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		UNIQUE (ticker, start_date, end_date)
	)`,
	`CREATE TABLE IF NOT EXISTS prices (
		id BIGSERIAL PRIMARY KEY,
		ticker TEXT NOT NULL,
		date DATE NOT NULL,
		close NUMERIC NOT NULL,
		UNIQUE (ticker, date)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_fetches_ticker ON fetches (ticker)`,
	`CREATE INDEX IF NOT EXISTS idx_prices_ticker ON prices (ticker)`,
}

// InitSchema creates the price cache tables if they do not exist yet.
func (db *Database) InitSchema(ctx context.Context) error {
	for _, stmt := range migrations {
		if _, err := db.conn.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
