package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS export_profiles (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE,
		format      TEXT NOT NULL
		            CHECK(format IN ('csv','tsv','json','xml','txt')),
		fields      TEXT NOT NULL DEFAULT '',
		use_count   INTEGER NOT NULL DEFAULT 0,
		last_used   TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS flow_runs (
		id           TEXT PRIMARY KEY,
		profile_id   TEXT REFERENCES export_profiles(id) ON DELETE SET NULL,
		config_path  TEXT NOT NULL,
		output_path  TEXT NOT NULL DEFAULT '',
		format       TEXT NOT NULL DEFAULT '',
		field_count  INTEGER NOT NULL DEFAULT 0,
		succeeded    INTEGER NOT NULL DEFAULT 1,
		message      TEXT NOT NULL DEFAULT '',
		started_at   TEXT NOT NULL,
		finished_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_flow_runs_profile ON flow_runs(profile_id)`,
	`CREATE INDEX IF NOT EXISTS idx_flow_runs_started ON flow_runs(started_at)`,
}
