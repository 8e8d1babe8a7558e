package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/vocuz/vocuz/internal/db"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

// NewFileTestDB opens a migrated SQLite file under t.TempDir(). Unlike
// NewTestDB it uses a real connection pool, so concurrent writers contend the
// way they do in the app.
func NewFileTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(filepath.Join(t.TempDir(), "vocuz.db"))
	if err != nil {
		t.Fatalf("failed to create file database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}
