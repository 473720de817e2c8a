// Package metadata resolves document metadata (title, author, publication
// date, page count) for a PDF being ingested. The ingestion core depends
// only on the Resolver interface so it can run without any interactive
// input.
package metadata

import "context"

// Meta holds the resolved metadata attached to a document at creation.
type Meta struct {
	Title           string
	Author          string
	PublicationDate string // ISO 8601 date (YYYY-MM-DD)
	PageCount       int
}

// Hints carries optional suggestions a resolver may surface to the user,
// such as a title derived from the companion markdown.
type Hints struct {
	Title string
}

// Resolver supplies metadata for a PDF file.
type Resolver interface {
	Resolve(ctx context.Context, pdfPath string, hints Hints) (*Meta, error)
}

// Static is a Resolver returning a fixed Meta, for tests and scripted use.
type Static struct {
	Meta Meta
}

// Resolve returns a copy of the fixed Meta.
func (s Static) Resolve(_ context.Context, _ string, _ Hints) (*Meta, error) {
	m := s.Meta
	return &m, nil
}
