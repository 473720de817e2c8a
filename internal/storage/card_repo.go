package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_card_store.go -package=mocks github.com/bytemouse/cardify/internal/storage CardStore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// CardStore defines the interface for flashcard storage operations.
type CardStore interface {
	// Insert inserts a flashcard for a chunk. A UUID is generated if
	// card.ID is empty; NoteType and DeckName fall back to their
	// defaults when empty.
	Insert(ctx context.Context, card *CardRecord) error
	// ListByChunk returns all flashcards belonging to a chunk.
	ListByChunk(ctx context.Context, chunkID string) ([]*CardRecord, error)
}

// CardRepo provides methods for flashcard operations.
// It implements the CardStore interface.
type CardRepo struct {
	db *sql.DB
}

// NewCardRepo creates a new CardRepo.
func NewCardRepo(db *sql.DB) *CardRepo {
	return &CardRepo{db: db}
}

// Insert inserts a flashcard record.
func (r *CardRepo) Insert(ctx context.Context, card *CardRecord) error {
	if card.ID == "" {
		card.ID = uuid.New().String()
	}
	if card.NoteType == "" {
		card.NoteType = "Basic"
	}
	if card.DeckName == "" {
		card.DeckName = "Default"
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO cards (id, chunk_id, front, back, note_type, tags, deck_name)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		card.ID, card.ChunkID, card.Front, card.Back, card.NoteType, card.Tags, card.DeckName,
	)
	if err != nil {
		return fmt.Errorf("failed to insert card: %w", err)
	}
	return nil
}

// ListByChunk returns all flashcards for a chunk.
// Returns an empty slice if no cards exist (not an error).
func (r *CardRepo) ListByChunk(ctx context.Context, chunkID string) ([]*CardRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, chunk_id, front, back, note_type, COALESCE(tags, ''), deck_name
		 FROM cards WHERE chunk_id = ? ORDER BY created_at, id`,
		chunkID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var cards []*CardRecord
	for rows.Next() {
		var card CardRecord
		if err := rows.Scan(&card.ID, &card.ChunkID, &card.Front, &card.Back,
			&card.NoteType, &card.Tags, &card.DeckName); err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, &card)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return cards, nil
}
