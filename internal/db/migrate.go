package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// migrations run in order on startup; each statement must be re-runnable.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id              BIGSERIAL PRIMARY KEY,
		username        TEXT NOT NULL UNIQUE,
		email           TEXT NOT NULL,
		first_name      TEXT NOT NULL,
		last_name       TEXT NOT NULL,
		hashed_password TEXT NOT NULL,
		role            TEXT NOT NULL DEFAULT 'user',
		is_active       BOOLEAN NOT NULL DEFAULT TRUE,
		phone_number    TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS todos (
		id          BIGSERIAL PRIMARY KEY,
		title       TEXT NOT NULL,
		description TEXT NOT NULL,
		priority    INTEGER NOT NULL,
		completed   BOOLEAN NOT NULL DEFAULT FALSE,
		owner_id    BIGINT NOT NULL REFERENCES users (id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_todos_owner_id ON todos (owner_id)`,
}

// Migrate brings the schema up to date.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("db: migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
