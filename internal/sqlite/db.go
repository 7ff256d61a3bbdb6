package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema if it doesn't exist
func (db *DB) RunMigrations() error {
	migration := `
CREATE TABLE IF NOT EXISTS kpi_records (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    project TEXT NOT NULL,
    kpi TEXT NOT NULL,
    work_package TEXT NOT NULL DEFAULT '',
    target REAL NOT NULL,
    current_value REAL NOT NULL,
    achievement_date TEXT,
    male_count INTEGER,
    female_count INTEGER,
    comments TEXT NOT NULL DEFAULT '',
    start_date TEXT,
    end_date TEXT,
    created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_project_records ON kpi_records(project);
CREATE INDEX IF NOT EXISTS idx_project_kpi ON kpi_records(project, kpi);
`

	if _, err := db.Exec(migration); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
