package db

import (
	"database/sql"
	"fmt"
)

// migrations are applied in order; schemaVersion records how many have run.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS snapshots (
		id TEXT PRIMARY KEY,
		revision INTEGER NOT NULL UNIQUE,
		created_at TEXT NOT NULL,
		record_count INTEGER NOT NULL DEFAULT 0,
		body TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_snapshots_created ON snapshots(created_at)`,
}

// Migrate brings the schema up to date. Running it again is a no-op.
func Migrate(db *sql.DB) error {
	version, err := schemaVersion(db)
	if err != nil {
		return err
	}
	for i := version; i < len(migrations); i++ {
		if _, err := db.Exec(migrations[i]); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			return fmt.Errorf("recording schema version %d: %w", i+1, err)
		}
	}
	return nil
}

func schemaVersion(db *sql.DB) (int, error) {
	var v int
	if err := db.QueryRow("PRAGMA user_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return v, nil
}
