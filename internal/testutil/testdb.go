package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/tasktracker/internal/db"
)

// NewTestDB opens an in-memory SQLite database with the snapshot schema
// applied. It is closed when the test completes.
func NewTestDB(t testing.TB) *sql.DB {
	t.Helper()
	return openTestDB(t, db.MemoryPath)
}

// NewFileTestDB opens a database file under t.TempDir() and returns it with
// its path, so a test can close and reopen it. Every pooled connection sees
// the same data, which the in-memory database does not guarantee.
func NewFileTestDB(t testing.TB) (*sql.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasktracker.db")
	return openTestDB(t, path), path
}

func openTestDB(t testing.TB, path string) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(path)
	if err != nil {
		t.Fatalf("opening test database %s: %v", path, err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
