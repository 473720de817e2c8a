package storage

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// New opens a SQLite database connection at the given path.
// It enables foreign keys (required for the cascade deletes from
// documents to chunks to cards) and verifies the connection.
func New(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys (disabled by default in SQLite)
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Single writer: one document is ingested at a time.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate runs database migrations to create the required tables.
// It is idempotent and can be run multiple times safely.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			filename TEXT NOT NULL,
			file_content BLOB NOT NULL,
			markdown_content TEXT,
			title TEXT,
			author TEXT,
			publication_date TEXT,
			page_count INTEGER,
			file_size INTEGER,
			md5_hash TEXT NOT NULL UNIQUE,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			last_modified DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS chunks (
			id TEXT PRIMARY KEY,
			document_id TEXT NOT NULL,
			chunk_index INTEGER NOT NULL,
			content TEXT NOT NULL,
			kind TEXT NOT NULL,
			header_1 TEXT,
			header_2 TEXT,
			header_3 TEXT,
			header_4 TEXT,
			is_code BOOLEAN NOT NULL DEFAULT 0,
			start_page INTEGER NOT NULL,
			end_page INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (document_id) REFERENCES documents(id) ON DELETE CASCADE,
			UNIQUE (document_id, chunk_index)
		);`,
		`CREATE TABLE IF NOT EXISTS cards (
			id TEXT PRIMARY KEY,
			chunk_id TEXT NOT NULL,
			front TEXT NOT NULL,
			back TEXT NOT NULL,
			note_type TEXT NOT NULL DEFAULT 'Basic',
			tags TEXT,
			deck_name TEXT NOT NULL DEFAULT 'Default',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			last_modified DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (chunk_id) REFERENCES chunks(id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_documents_hash ON documents (md5_hash);`,
		`CREATE INDEX IF NOT EXISTS idx_chunks_document ON chunks (document_id);`,
		`CREATE INDEX IF NOT EXISTS idx_cards_chunk ON cards (chunk_id);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
