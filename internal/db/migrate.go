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
	`CREATE TABLE IF NOT EXISTS tasks (
		id                    TEXT PRIMARY KEY,
		name                  TEXT NOT NULL,
		status                TEXT NOT NULL DEFAULT 'Tasks'
		                      CHECK(status IN ('Tasks','Projects','Ideas','Not Now','Blocked','Waiting On','Done',"Won't Do")),
		mentioned             INTEGER NOT NULL DEFAULT 1 CHECK(mentioned >= 0),
		blocked_by            TEXT,
		energy                TEXT CHECK(energy IN ('Red','Yellow','Green')),
		task_type             TEXT CHECK(task_type IN ('Identity','Compound','Do It Now','Never Miss 2x','Important Not Urgent','Unblocks')),
		complete_time_minutes INTEGER CHECK(complete_time_minutes > 0),
		priority              INTEGER CHECK(priority >= 1),
		created_at            TEXT NOT NULL,
		updated_at            TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_mentioned ON tasks(mentioned)`,

	`CREATE TABLE IF NOT EXISTS reviews (
		id              TEXT PRIMARY KEY,
		week_of         TEXT NOT NULL,
		transcript      TEXT NOT NULL,
		wins            TEXT,
		struggles       TEXT,
		next_week_focus TEXT,
		tasks_completed INTEGER CHECK(tasks_completed >= 0),
		created_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_reviews_week_of ON reviews(week_of)`,

	`CREATE TABLE IF NOT EXISTS identity_statements (
		id         TEXT PRIMARY KEY,
		text       TEXT NOT NULL,
		category   TEXT,
		position   INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	)`,

	// Track where a capture came from (slack, email, cli, ...)
	`ALTER TABLE tasks ADD COLUMN source TEXT`,
}
