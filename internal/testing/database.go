// Package testing holds helpers shared by langkit's tests.
package testing

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/teranos/langkit/store"
)

// CreateTestDB creates a migrated in-memory SQLite database. Cleanup is
// registered with t.Cleanup.
func CreateTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	// Each pooled connection would get its own in-memory database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}
	if err := store.Migrate(db, nil); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// CreateTestDBFile creates a migrated SQLite database file in a temp dir
// and returns its path.
func CreateTestDBFile(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "langkit.db")
	db, err := store.OpenWithMigrations(path, nil)
	if err != nil {
		t.Fatalf("Failed to create test database file: %v", err)
	}
	db.Close()
	return path
}

// WriteCorpus writes one sentence per line to a temp file and returns its
// path.
func WriteCorpus(t *testing.T, lines ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "corpus.txt")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("Failed to write corpus: %v", err)
	}
	return path
}
