package db

import "fmt"

// sqliteMigrations is an ordered list of SQL statements to run on SQLite.
// feedback.student_key holds the case-folded student name; SQLite's LOWER
// only folds ASCII.
var sqliteMigrations = []string{
	`CREATE TABLE IF NOT EXISTS feedback (
		id                  INTEGER PRIMARY KEY AUTOINCREMENT,
		faculty_name        TEXT    NOT NULL,
		student_name        TEXT    NOT NULL,
		teaching_quality    INTEGER NOT NULL CHECK (teaching_quality >= 1 AND teaching_quality <= 5),
		communication_skill INTEGER NOT NULL CHECK (communication_skill >= 1 AND communication_skill <= 5),
		comment             TEXT,
		sentiment           TEXT    NOT NULL DEFAULT 'Neutral' CHECK (sentiment IN ('Positive', 'Negative', 'Neutral')),
		created_at          DATETIME DEFAULT CURRENT_TIMESTAMP,
		student_key         TEXT    NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_feedback_faculty ON feedback (faculty_name)`,
	`CREATE INDEX IF NOT EXISTS idx_feedback_student_key ON feedback (student_key)`,
	`CREATE TABLE IF NOT EXISTS reports (
		id                      INTEGER PRIMARY KEY AUTOINCREMENT,
		faculty_name            TEXT    NOT NULL,
		avg_teaching_quality    REAL    NOT NULL,
		avg_communication_skill REAL    NOT NULL,
		sentiment_summary       TEXT    NOT NULL DEFAULT '',
		total_feedback_count    INTEGER NOT NULL CHECK (total_feedback_count >= 0),
		positive_count          INTEGER NOT NULL CHECK (positive_count >= 0),
		negative_count          INTEGER NOT NULL CHECK (negative_count >= 0),
		neutral_count           INTEGER NOT NULL CHECK (neutral_count >= 0),
		created_at              DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_reports_faculty ON reports (faculty_name, created_at)`,
}

// postgresMigrations mirrors sqliteMigrations for Postgres.
var postgresMigrations = []string{
	`CREATE TABLE IF NOT EXISTS feedback (
		id                  BIGSERIAL PRIMARY KEY,
		faculty_name        TEXT    NOT NULL,
		student_name        TEXT    NOT NULL,
		teaching_quality    INTEGER NOT NULL CHECK (teaching_quality >= 1 AND teaching_quality <= 5),
		communication_skill INTEGER NOT NULL CHECK (communication_skill >= 1 AND communication_skill <= 5),
		comment             TEXT,
		sentiment           TEXT    NOT NULL DEFAULT 'Neutral' CHECK (sentiment IN ('Positive', 'Negative', 'Neutral')),
		created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
		student_key         TEXT    NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_feedback_faculty ON feedback (faculty_name)`,
	`CREATE INDEX IF NOT EXISTS idx_feedback_student_key ON feedback (student_key)`,
	`CREATE TABLE IF NOT EXISTS reports (
		id                      BIGSERIAL PRIMARY KEY,
		faculty_name            TEXT             NOT NULL,
		avg_teaching_quality    DOUBLE PRECISION NOT NULL,
		avg_communication_skill DOUBLE PRECISION NOT NULL,
		sentiment_summary       TEXT             NOT NULL DEFAULT '',
		total_feedback_count    INTEGER          NOT NULL CHECK (total_feedback_count >= 0),
		positive_count          INTEGER          NOT NULL CHECK (positive_count >= 0),
		negative_count          INTEGER          NOT NULL CHECK (negative_count >= 0),
		neutral_count           INTEGER          NOT NULL CHECK (neutral_count >= 0),
		created_at              TIMESTAMPTZ      NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_reports_faculty ON reports (faculty_name, created_at)`,
}

// migrate runs all migrations for the driver in order.
// Every statement is idempotent.
func (d *DB) migrate() error {
	migrations := sqliteMigrations
	if d.Driver == DriverPostgres {
		migrations = postgresMigrations
	}

	for i, m := range migrations {
		if _, err := d.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}

	return nil
}
