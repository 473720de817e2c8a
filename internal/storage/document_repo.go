package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_store.go -package=mocks github.com/bytemouse/cardify/internal/storage DocumentStore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// DocumentStore defines the interface for document storage operations.
type DocumentStore interface {
	// Insert inserts a new document. A UUID is generated if doc.ID is
	// empty. Returns ErrDuplicateHash when a document with the same
	// md5_hash already exists.
	Insert(ctx context.Context, doc *DocumentRecord) error
	// GetByID gets a document by its ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*DocumentRecord, error)
	// GetByHash gets a document by its content hash. Returns ErrNotFound
	// if not found.
	GetByHash(ctx context.Context, hash string) (*DocumentRecord, error)
	// List returns all documents ordered by creation time. File content
	// is not loaded.
	List(ctx context.Context) ([]*DocumentRecord, error)
	// UpdateMarkdown sets the markdown transcription for a document.
	UpdateMarkdown(ctx context.Context, id, markdown string) error
	// Delete removes a document; its chunks and cards cascade.
	Delete(ctx context.Context, id string) error
}

// DocumentRepo provides methods for document operations.
// It implements the DocumentStore interface.
type DocumentRepo struct {
	db *sql.DB
}

// NewDocumentRepo creates a new DocumentRepo.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// Insert inserts a new document record. Duplicate content hashes are
// rejected with ErrDuplicateHash so re-ingesting a byte-identical file
// fails on the second attempt.
func (r *DocumentRepo) Insert(ctx context.Context, doc *DocumentRecord) error {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO documents (id, filename, file_content, title, author, publication_date, page_count, file_size, md5_hash)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.ID, doc.Filename, doc.FileContent, doc.Title, doc.Author,
		doc.PublicationDate, doc.PageCount, doc.FileSize, doc.MD5Hash,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert document %s: %w", doc.Filename, ErrDuplicateHash)
		}
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}

// GetByID gets a document by its ID. Returns ErrNotFound if not found.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*DocumentRecord, error) {
	return r.getByColumn(ctx, "id", id)
}

// GetByHash gets a document by its content hash. Returns ErrNotFound if
// not found.
func (r *DocumentRepo) GetByHash(ctx context.Context, hash string) (*DocumentRecord, error) {
	return r.getByColumn(ctx, "md5_hash", hash)
}

func (r *DocumentRepo) getByColumn(ctx context.Context, column, value string) (*DocumentRecord, error) {
	var (
		doc      DocumentRecord
		markdown sql.NullString
	)

	err := r.db.QueryRowContext(ctx,
		`SELECT id, filename, file_content, markdown_content, title, author, publication_date, page_count, file_size, md5_hash
		 FROM documents WHERE `+column+` = ?`,
		value,
	).Scan(&doc.ID, &doc.Filename, &doc.FileContent, &markdown, &doc.Title,
		&doc.Author, &doc.PublicationDate, &doc.PageCount, &doc.FileSize, &doc.MD5Hash)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query document: %w", err)
	}

	if markdown.Valid {
		doc.MarkdownContent = &markdown.String
	}
	return &doc, nil
}

// List returns all documents ordered by creation time. The file blob is
// left empty; listing is for display only.
func (r *DocumentRepo) List(ctx context.Context) ([]*DocumentRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, filename, title, author, publication_date, page_count, file_size, md5_hash
		 FROM documents ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var docs []*DocumentRecord
	for rows.Next() {
		var doc DocumentRecord
		if err := rows.Scan(&doc.ID, &doc.Filename, &doc.Title, &doc.Author,
			&doc.PublicationDate, &doc.PageCount, &doc.FileSize, &doc.MD5Hash); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, &doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return docs, nil
}

// UpdateMarkdown sets the markdown transcription for a document and bumps
// last_modified. The transcription is written once per ingestion.
func (r *DocumentRepo) UpdateMarkdown(ctx context.Context, id, markdown string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE documents SET markdown_content = ?, last_modified = CURRENT_TIMESTAMP WHERE id = ?`,
		markdown, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update markdown content: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a document. Foreign keys cascade the delete to its
// chunks and their cards.
func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
