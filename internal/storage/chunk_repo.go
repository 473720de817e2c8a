package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chunk_store.go -package=mocks github.com/bytemouse/cardify/internal/storage ChunkStore

import (
	"context"
	"database/sql"
	"fmt"
)

// ChunkStore defines the interface for chunk storage operations.
type ChunkStore interface {
	// Insert inserts a single chunk. The chunk.ID must be set (UUID)
	// before calling this method. Returns ErrDuplicateOrdinal when the
	// (document_id, chunk_index) pair is already taken.
	Insert(ctx context.Context, chunk *ChunkRecord) error
	// InsertBatch inserts all chunks inside one transaction. The batch is
	// atomic: on any failure the transaction is rolled back and none of
	// the chunks remain.
	InsertBatch(ctx context.Context, chunks []*ChunkRecord) error
	// ListByDocument returns all chunks for a document, ordered by
	// chunk_index.
	ListByDocument(ctx context.Context, documentID string) ([]*ChunkRecord, error)
	// GetByID gets a chunk by its ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*ChunkRecord, error)
}

// ChunkRepo provides methods for chunk operations.
// It implements the ChunkStore interface.
type ChunkRepo struct {
	db *sql.DB
}

// NewChunkRepo creates a new ChunkRepo.
func NewChunkRepo(db *sql.DB) *ChunkRepo {
	return &ChunkRepo{db: db}
}

const insertChunkSQL = `INSERT INTO chunks
	(id, document_id, chunk_index, content, kind, header_1, header_2, header_3, header_4, is_code, start_page, end_page)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// Insert inserts a single chunk into the database.
// The chunk.ID must be set (UUID) before calling this method.
func (r *ChunkRepo) Insert(ctx context.Context, chunk *ChunkRecord) error {
	_, err := r.db.ExecContext(ctx, insertChunkSQL,
		chunk.ID, chunk.DocumentID, chunk.ChunkIndex, chunk.Content, chunk.Kind,
		chunk.Header1, chunk.Header2, chunk.Header3, chunk.Header4,
		chunk.IsCode, chunk.StartPage, chunk.EndPage,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert chunk %d: %w", chunk.ChunkIndex, ErrDuplicateOrdinal)
		}
		return fmt.Errorf("failed to insert chunk: %w", err)
	}
	return nil
}

// InsertBatch writes one document's chunk sequence in a single
// transaction, preserving the given order. All-or-nothing: a failed
// insert rolls back every chunk of the batch.
func (r *ChunkRepo) InsertBatch(ctx context.Context, chunks []*ChunkRecord) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for _, chunk := range chunks {
		_, err := tx.ExecContext(ctx, insertChunkSQL,
			chunk.ID, chunk.DocumentID, chunk.ChunkIndex, chunk.Content, chunk.Kind,
			chunk.Header1, chunk.Header2, chunk.Header3, chunk.Header4,
			chunk.IsCode, chunk.StartPage, chunk.EndPage,
		)
		if err != nil {
			_ = tx.Rollback()
			if isUniqueViolation(err) {
				return fmt.Errorf("insert chunk %d: %w", chunk.ChunkIndex, ErrDuplicateOrdinal)
			}
			return fmt.Errorf("failed to insert chunk %d: %w", chunk.ChunkIndex, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit chunk batch: %w", err)
	}
	return nil
}

// ListByDocument returns all chunks for a document ordered by chunk_index.
// Returns an empty slice if no chunks exist (not an error).
func (r *ChunkRepo) ListByDocument(ctx context.Context, documentID string) ([]*ChunkRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, document_id, chunk_index, content, kind, header_1, header_2, header_3, header_4, is_code, start_page, end_page
		 FROM chunks WHERE document_id = ? ORDER BY chunk_index`,
		documentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunks: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var chunks []*ChunkRecord
	for rows.Next() {
		chunk, err := scanChunk(rows.Scan)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return chunks, nil
}

// GetByID gets a chunk by its ID. Returns ErrNotFound if not found.
func (r *ChunkRepo) GetByID(ctx context.Context, id string) (*ChunkRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, document_id, chunk_index, content, kind, header_1, header_2, header_3, header_4, is_code, start_page, end_page
		 FROM chunks WHERE id = ?`,
		id,
	)

	chunk, err := scanChunk(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return chunk, nil
}

// scanChunk scans one chunk row, converting nullable header columns into
// nil pointers.
func scanChunk(scan func(...any) error) (*ChunkRecord, error) {
	var (
		chunk   ChunkRecord
		headers [4]sql.NullString
	)

	err := scan(&chunk.ID, &chunk.DocumentID, &chunk.ChunkIndex, &chunk.Content, &chunk.Kind,
		&headers[0], &headers[1], &headers[2], &headers[3],
		&chunk.IsCode, &chunk.StartPage, &chunk.EndPage)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan chunk: %w", err)
	}

	dst := []**string{&chunk.Header1, &chunk.Header2, &chunk.Header3, &chunk.Header4}
	for i, h := range headers {
		if h.Valid {
			v := h.String
			*dst[i] = &v
		}
	}

	return &chunk, nil
}
