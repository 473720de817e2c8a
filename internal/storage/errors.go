package storage

import (
	"errors"

	sqlite3 "github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateHash is returned when a document with the same content
	// hash was already ingested.
	ErrDuplicateHash = errors.New("document with identical content hash already exists")
	// ErrDuplicateOrdinal is returned when a chunk insert reuses an
	// ordinal position already taken within the same document.
	ErrDuplicateOrdinal = errors.New("chunk ordinal already exists for document")
)

// isUniqueViolation reports whether err is a SQLite unique-constraint
// failure. The caller maps it to the sentinel matching its table.
func isUniqueViolation(err error) bool {
	var serr sqlite3.Error
	if !errors.As(err, &serr) {
		return false
	}
	return serr.Code == sqlite3.ErrConstraint &&
		(serr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			serr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey)
}
