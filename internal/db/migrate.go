package db

import (
	"database/sql"
	"fmt"
)

// Migrate creates any missing tables and indexes. Every statement is
// idempotent, so it runs on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		full_name     TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		created_at    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS auth_tokens (
		token      TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TEXT NOT NULL,
		expires_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_auth_tokens_user ON auth_tokens(user_id)`,

	`CREATE TABLE IF NOT EXISTS missions (
		id           TEXT PRIMARY KEY,
		user_id      TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title        TEXT NOT NULL CHECK(length(trim(title)) > 0),
		is_completed INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_missions_user_created ON missions(user_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_missions_user_completed ON missions(user_id, is_completed)`,

	// mission_id is deliberately not a foreign key: deleting a mission keeps
	// its focus history.
	`CREATE TABLE IF NOT EXISTS focus_sessions (
		id               TEXT PRIMARY KEY,
		user_id          TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		mission_id       TEXT,
		mode             TEXT NOT NULL CHECK(mode IN ('focus','short','long')),
		duration_minutes INTEGER NOT NULL CHECK(duration_minutes > 0),
		is_completed     INTEGER NOT NULL DEFAULT 1,
		created_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_focus_sessions_user_created ON focus_sessions(user_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_focus_sessions_mission ON focus_sessions(mission_id)`,

	`CREATE TABLE IF NOT EXISTS notes (
		id          TEXT PRIMARY KEY,
		user_id     TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_notes_user_created ON notes(user_id, created_at)`,
}
