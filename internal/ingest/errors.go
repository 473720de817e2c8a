package ingest

import "errors"

var (
	// ErrNotPDF is returned when an input path does not point at a PDF file.
	ErrNotPDF = errors.New("not a pdf file")
	// ErrMissingMarkdown is returned when no companion markdown file
	// exists for a document and its absence is not tolerated.
	ErrMissingMarkdown = errors.New("no companion markdown file found")
	// ErrUnresolvedPage is returned when a chunk still has no page range
	// after continuity fill, i.e. the document carries no page marker at
	// or before that chunk. Validated before any store write so the
	// failure is distinguishable from a constraint violation.
	ErrUnresolvedPage = errors.New("chunk has no resolved page range")
)
