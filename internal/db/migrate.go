package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. The statements are portable across
// SQLite, libsql and PostgreSQL: timestamps are fixed-width UTC text and
// booleans are stored as 0/1 integers.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate re-applied ALTER TABLE ADD COLUMN statements
			// since the migration system re-runs all statements.
			if isDuplicateColumn(err) {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

func isDuplicateColumn(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "duplicate column name") ||
		(strings.Contains(msg, "column") && strings.Contains(msg, "already exists"))
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         TEXT PRIMARY KEY,
		email      TEXT NOT NULL UNIQUE,
		full_name  TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS work_sessions (
		id                 TEXT PRIMARY KEY,
		user_id            TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		start_time         TEXT NOT NULL,
		end_time           TEXT NOT NULL,
		duration_minutes   INTEGER NOT NULL CHECK(duration_minutes >= 0),
		activity_type      TEXT NOT NULL DEFAULT '',
		productivity_score DOUBLE PRECISION,
		created_at         TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_work_sessions_user_start ON work_sessions(user_id, start_time)`,

	`CREATE TABLE IF NOT EXISTS meetings (
		id               TEXT PRIMARY KEY,
		user_id          TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title            TEXT NOT NULL,
		start_time       TEXT NOT NULL,
		end_time         TEXT NOT NULL,
		duration_minutes INTEGER NOT NULL CHECK(duration_minutes >= 0),
		attendees_count  INTEGER NOT NULL DEFAULT 1,
		is_after_hours   INTEGER NOT NULL DEFAULT 0,
		created_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_meetings_user_start ON meetings(user_id, start_time)`,

	`CREATE TABLE IF NOT EXISTS emails (
		id                TEXT PRIMARY KEY,
		user_id           TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		subject           TEXT NOT NULL DEFAULT '',
		body              TEXT NOT NULL DEFAULT '',
		sent_at           TEXT NOT NULL,
		is_sent           INTEGER NOT NULL DEFAULT 1,
		is_after_hours    INTEGER NOT NULL DEFAULT 0,
		sentiment_score   DOUBLE PRECISION,
		stress_indicators TEXT NOT NULL DEFAULT '{}',
		created_at        TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_emails_user_sent ON emails(user_id, sent_at)`,

	`CREATE TABLE IF NOT EXISTS journal_entries (
		id               TEXT PRIMARY KEY,
		user_id          TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		content          TEXT NOT NULL,
		sentiment_score  DOUBLE PRECISION,
		emotion_analysis TEXT NOT NULL DEFAULT '{}',
		created_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_journal_entries_user_created ON journal_entries(user_id, created_at)`,

	`CREATE TABLE IF NOT EXISTS burnout_scores (
		id                 TEXT PRIMARY KEY,
		user_id            TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		overall_score      DOUBLE PRECISION NOT NULL,
		work_hours_score   DOUBLE PRECISION NOT NULL,
		sentiment_score    DOUBLE PRECISION NOT NULL,
		meeting_load_score DOUBLE PRECISION NOT NULL,
		email_stress_score DOUBLE PRECISION NOT NULL,
		burnout_level      TEXT NOT NULL
		                   CHECK(burnout_level IN ('low','moderate','high')),
		calculated_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_burnout_scores_user_calculated ON burnout_scores(user_id, calculated_at)`,

	// Annotator stress level alongside the sentiment columns
	`ALTER TABLE emails ADD COLUMN stress_level DOUBLE PRECISION NOT NULL DEFAULT 0`,
	`ALTER TABLE journal_entries ADD COLUMN stress_level DOUBLE PRECISION NOT NULL DEFAULT 0`,
}
