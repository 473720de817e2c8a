package storage

import (
	"context"
	"testing"
)

func TestCardRepo_InsertAndList(t *testing.T) {
	db := newTestDB(t)
	cards := NewCardRepo(db)
	ctx := context.Background()

	docID := insertTestDocument(t, db, "card-hash")
	chunk := testChunk(docID, 0)
	if err := NewChunkRepo(db).Insert(ctx, chunk); err != nil {
		t.Fatalf("failed to insert chunk: %v", err)
	}

	card := &CardRecord{
		ChunkID:  chunk.ID,
		Front:    "What is a monad?",
		Back:     "A monoid in the category of endofunctors.",
		NoteType: "Basic",
		Tags:     "fp theory",
		DeckName: "CS",
	}
	if err := cards.Insert(ctx, card); err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}
	if card.ID == "" {
		t.Fatal("Insert() did not assign an ID")
	}

	got, err := cards.ListByChunk(ctx, chunk.ID)
	if err != nil {
		t.Fatalf("ListByChunk() failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("ListByChunk() returned %d cards, want 1", len(got))
	}
	if got[0].Front != card.Front || got[0].Back != card.Back || got[0].Tags != card.Tags {
		t.Errorf("ListByChunk() = %+v, want fields of %+v", got[0], card)
	}
}

func TestCardRepo_InsertDefaults(t *testing.T) {
	db := newTestDB(t)
	cards := NewCardRepo(db)
	ctx := context.Background()

	docID := insertTestDocument(t, db, "default-hash")
	chunk := testChunk(docID, 0)
	if err := NewChunkRepo(db).Insert(ctx, chunk); err != nil {
		t.Fatalf("failed to insert chunk: %v", err)
	}

	card := &CardRecord{ChunkID: chunk.ID, Front: "Q", Back: "A"}
	if err := cards.Insert(ctx, card); err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}

	got, err := cards.ListByChunk(ctx, chunk.ID)
	if err != nil {
		t.Fatalf("ListByChunk() failed: %v", err)
	}
	if got[0].NoteType != "Basic" {
		t.Errorf("note type = %q, want Basic", got[0].NoteType)
	}
	if got[0].DeckName != "Default" {
		t.Errorf("deck name = %q, want Default", got[0].DeckName)
	}
}

func TestCardRepo_ListByChunkEmpty(t *testing.T) {
	db := newTestDB(t)

	got, err := NewCardRepo(db).ListByChunk(context.Background(), "no-such-chunk")
	if err != nil {
		t.Fatalf("ListByChunk() failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ListByChunk() returned %d cards, want 0", len(got))
	}
}
