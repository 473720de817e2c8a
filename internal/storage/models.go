package storage

import "time"

// DocumentRecord represents an ingested source document in the database.
// MarkdownContent is nil until the companion markdown has been attached.
type DocumentRecord struct {
	ID              string // UUID
	Filename        string
	FileContent     []byte
	MarkdownContent *string
	Title           string
	Author          string
	PublicationDate string // ISO 8601 date (YYYY-MM-DD)
	PageCount       int
	FileSize        int64
	MD5Hash         string // Hex digest, unique per document
	CreatedAt       time.Time
	LastModified    time.Time
}

// ChunkRecord represents one persisted markdown chunk of a document.
// ChunkIndex is the zero-based position in split order and is unique per
// document. Header1-Header4 are nil when that level was not in scope.
type ChunkRecord struct {
	ID         string // UUID
	DocumentID string // Foreign key to documents.id
	ChunkIndex int
	Content    string
	Kind       string // "text" or "code"
	Header1    *string
	Header2    *string
	Header3    *string
	Header4    *string
	IsCode     bool
	StartPage  int
	EndPage    int
}

// CardRecord represents a flashcard generated from a chunk.
type CardRecord struct {
	ID       string // UUID
	ChunkID  string // Foreign key to chunks.id
	Front    string
	Back     string
	NoteType string // Defaults to "Basic"
	Tags     string // Space-separated
	DeckName string // Defaults to "Default"
}
