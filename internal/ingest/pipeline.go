// Package ingest orchestrates the ingestion of one or more PDF documents:
// metadata resolution, content hashing, companion markdown discovery,
// chunk splitting, and persistence. Documents are processed strictly one
// at a time; a batch never aborts because one document failed.
package ingest

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/bytemouse/cardify/internal/contextutil"
	"github.com/bytemouse/cardify/internal/metadata"
	"github.com/bytemouse/cardify/internal/splitter"
	"github.com/bytemouse/cardify/internal/storage"
)

// Pipeline wires the metadata resolver and the record store together.
// The core never prompts: all interactive behavior lives behind the
// metadata.Resolver interface.
type Pipeline struct {
	docs     storage.DocumentStore
	chunks   storage.ChunkStore
	resolver metadata.Resolver
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(docs storage.DocumentStore, chunks storage.ChunkStore, resolver metadata.Resolver) *Pipeline {
	return &Pipeline{
		docs:     docs,
		chunks:   chunks,
		resolver: resolver,
	}
}

// Options control how a single document is ingested.
type Options struct {
	// MarkdownPath overrides companion markdown discovery. Only valid
	// when ingesting a single document; the CLI enforces that.
	MarkdownPath string
	// AllowMissingMarkdown ingests the document without chunks when no
	// companion markdown exists instead of failing.
	AllowMissingMarkdown bool
}

// Result reports what a successful ingestion produced.
type Result struct {
	DocumentID   string
	MarkdownPath string // empty when ingested without markdown
	ChunkCount   int
}

// Summary counts the outcome of a batch.
type Summary struct {
	Succeeded int
	Total     int
}

// FindMarkdown looks for a companion markdown file with the same stem as
// the document, checking the .md extension first, then .markdown.
// Returns "" when neither exists.
func FindMarkdown(pdfPath string) string {
	stem := strings.TrimSuffix(pdfPath, filepath.Ext(pdfPath))
	for _, ext := range []string{".md", ".markdown"} {
		candidate := stem + ext
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

// ProcessDocument ingests one PDF and its companion markdown: resolve
// metadata, hash and store the document, attach the markdown, split it
// into chunks, and persist the chunk sequence with ordinals equal to
// split order.
func (p *Pipeline) ProcessDocument(ctx context.Context, pdfPath string, opts Options) (*Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	info, err := os.Stat(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("file not found: %w", err)
	}
	if info.IsDir() || !strings.EqualFold(filepath.Ext(pdfPath), ".pdf") {
		return nil, fmt.Errorf("%s: %w", pdfPath, ErrNotPDF)
	}

	// Locate and read the companion markdown before touching the store,
	// so a missing transcription fails the document without leaving a
	// half-ingested record behind.
	mdPath := opts.MarkdownPath
	if mdPath != "" {
		if _, err := os.Stat(mdPath); err != nil {
			return nil, fmt.Errorf("specified markdown file not found: %w", err)
		}
	} else {
		mdPath = FindMarkdown(pdfPath)
	}

	var markdown []byte
	if mdPath == "" {
		if !opts.AllowMissingMarkdown {
			return nil, fmt.Errorf("%s: %w", pdfPath, ErrMissingMarkdown)
		}
		logger.WarnContext(ctx, "no companion markdown, ingesting without chunks", "path", pdfPath)
	} else {
		markdown, err = os.ReadFile(mdPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read markdown %s: %w", mdPath, err)
		}
	}

	hints := metadata.Hints{}
	if markdown != nil {
		hints.Title = metadata.TitleFromMarkdown(markdown, pdfPath)
	}
	meta, err := p.resolver.Resolve(ctx, pdfPath, hints)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve metadata: %w", err)
	}

	hash, err := hashFile(pdfPath)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", pdfPath, err)
	}

	doc := &storage.DocumentRecord{
		Filename:        filepath.Base(pdfPath),
		FileContent:     content,
		Title:           meta.Title,
		Author:          meta.Author,
		PublicationDate: meta.PublicationDate,
		PageCount:       meta.PageCount,
		FileSize:        int64(len(content)),
		MD5Hash:         hash,
	}
	if err := p.docs.Insert(ctx, doc); err != nil {
		// ErrDuplicateHash surfaces here on re-ingestion.
		return nil, err
	}
	logger.InfoContext(ctx, "document inserted", "id", doc.ID, "title", doc.Title, "hash", hash)

	result := &Result{DocumentID: doc.ID, MarkdownPath: mdPath}
	if markdown == nil {
		return result, nil
	}

	if err := p.docs.UpdateMarkdown(ctx, doc.ID, string(markdown)); err != nil {
		return nil, err
	}

	chunks := splitter.Split(string(markdown))
	records, err := chunkRecords(doc.ID, chunks)
	if err != nil {
		return nil, err
	}
	if err := p.chunks.InsertBatch(ctx, records); err != nil {
		return nil, err
	}
	result.ChunkCount = len(records)

	logger.InfoContext(ctx, "chunks persisted", "document_id", doc.ID, "chunks", len(records), "markdown", mdPath)
	return result, nil
}

// ProcessBatch ingests documents sequentially. Per-document failures are
// logged and counted without aborting the rest of the batch.
func (p *Pipeline) ProcessBatch(ctx context.Context, paths []string, opts Options) Summary {
	logger := contextutil.LoggerFromContext(ctx)
	summary := Summary{Total: len(paths)}

	for _, path := range paths {
		logger.InfoContext(ctx, "processing document", "path", path)

		result, err := p.ProcessDocument(ctx, path, opts)
		if err != nil {
			logger.ErrorContext(ctx, "failed to ingest document", "path", path, "error", err)
			continue
		}

		logger.InfoContext(ctx, "ingested document", "path", path, "id", result.DocumentID, "chunks", result.ChunkCount)
		summary.Succeeded++
	}

	logger.InfoContext(ctx, "batch completed", "succeeded", summary.Succeeded, "total", summary.Total)
	return summary
}

// chunkRecords converts the split sequence into store records, assigning
// each chunk the ordinal it occupied in the emitted list. Page ranges are
// validated here so an unresolved page is reported as ErrUnresolvedPage
// rather than a bare NOT NULL violation from the store.
func chunkRecords(documentID string, chunks []splitter.Chunk) ([]*storage.ChunkRecord, error) {
	records := make([]*storage.ChunkRecord, len(chunks))
	for i, c := range chunks {
		if c.StartPage == nil || c.EndPage == nil {
			return nil, fmt.Errorf("chunk %d: %w", i, ErrUnresolvedPage)
		}
		records[i] = &storage.ChunkRecord{
			ID:         uuid.New().String(),
			DocumentID: documentID,
			ChunkIndex: i,
			Content:    c.Text,
			Kind:       c.Kind,
			Header1:    c.Header1,
			Header2:    c.Header2,
			Header3:    c.Header3,
			Header4:    c.Header4,
			IsCode:     c.IsCode,
			StartPage:  *c.StartPage,
			EndPage:    *c.EndPage,
		}
	}
	return records, nil
}

// hashFile computes the MD5 digest of a file's raw bytes, used to detect
// duplicate ingestion.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
