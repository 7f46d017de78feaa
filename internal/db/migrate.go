package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Statements are idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id       TEXT PRIMARY KEY,
		name     TEXT NOT NULL,
		color    TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS teams (
		id       TEXT PRIMARY KEY,
		name     TEXT NOT NULL,
		color    TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS features (
		id          TEXT PRIMARY KEY,
		kind        TEXT NOT NULL CHECK(kind IN ('epic','feature')),
		name        TEXT NOT NULL,
		start_date  TEXT,
		end_date    TEXT,
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		parent_epic TEXT NOT NULL DEFAULT '',
		status      TEXT NOT NULL DEFAULT '',
		position    INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_features_project ON features(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_features_parent ON features(parent_epic)`,

	`CREATE TABLE IF NOT EXISTS feature_allocations (
		feature_id TEXT NOT NULL REFERENCES features(id) ON DELETE CASCADE,
		team_id    TEXT NOT NULL,
		load       REAL NOT NULL,
		position   INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (feature_id, position)
	)`,

	`CREATE TABLE IF NOT EXISTS scenarios (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		overrides  TEXT NOT NULL DEFAULT '{}',
		filters    TEXT NOT NULL DEFAULT '{}',
		view       TEXT NOT NULL DEFAULT '{}',
		position   INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS app_meta (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
}
