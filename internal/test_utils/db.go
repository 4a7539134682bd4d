package test_utils

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Import the SQLite driver
)

// NewStorageDB creates an isolated in-memory SQLite database carrying the
// storage_entry schema, for exercising the SQL store without a server.
func NewStorageDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	schema := `CREATE TABLE storage_entry (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("Failed to create storage schema: %v", err)
	}

	return db
}
