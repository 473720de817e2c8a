package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
)

// newTestDB opens a fresh SQLite database in a temp directory and runs
// the migrations against it.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := Migrate(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

// insertTestDocument inserts a minimal document and returns its ID.
func insertTestDocument(t *testing.T, db *sql.DB, hash string) string {
	t.Helper()

	doc := &DocumentRecord{
		Filename:        "test.pdf",
		FileContent:     []byte("%PDF-1.4 test"),
		Title:           "Test Document",
		Author:          "Test Author",
		PublicationDate: "2024-01-31",
		PageCount:       10,
		FileSize:        13,
		MD5Hash:         hash,
	}
	if err := NewDocumentRepo(db).Insert(context.Background(), doc); err != nil {
		t.Fatalf("failed to insert document: %v", err)
	}
	return doc.ID
}

func TestMigrate_Idempotent(t *testing.T) {
	db := newTestDB(t)

	// Running the migrations a second time must be a no-op.
	if err := Migrate(db); err != nil {
		t.Fatalf("second Migrate() failed: %v", err)
	}
}

func TestNew_ForeignKeysEnabled(t *testing.T) {
	db := newTestDB(t)

	var enabled int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled); err != nil {
		t.Fatalf("failed to read pragma: %v", err)
	}
	if enabled != 1 {
		t.Error("foreign key enforcement is not enabled")
	}
}
