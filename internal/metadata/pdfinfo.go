package metadata

import (
	"fmt"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
)

// DateCandidate is one date found in the PDF Info dictionary.
type DateCandidate struct {
	Field string // Info dictionary key, e.g. "CreationDate"
	Label string // Display name for prompts
	Date  string // ISO 8601 date (YYYY-MM-DD)
}

// FileInfo is what the PDF itself can tell us before any prompting.
type FileInfo struct {
	Title     string
	Author    string
	PageCount int
	Dates     []DateCandidate
}

var dateFields = []struct {
	field string
	label string
}{
	{"CreationDate", "Creation Date"},
	{"ModDate", "Modification Date"},
}

// ReadFileInfo extracts the Info dictionary and page count from a PDF.
// The underlying parser panics on malformed files, so the read is fenced
// with recover and reported as an error instead.
func ReadFileInfo(path string) (info *FileInfo, err error) {
	defer func() {
		if r := recover(); r != nil {
			info = nil
			err = fmt.Errorf("malformed pdf %s: %v", path, r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	info = &FileInfo{PageCount: reader.NumPage()}

	dict := reader.Trailer().Key("Info")
	if dict.IsNull() {
		return info, nil
	}

	info.Title = strings.TrimSpace(dict.Key("Title").Text())
	info.Author = strings.TrimSpace(dict.Key("Author").Text())

	for _, df := range dateFields {
		raw := dict.Key(df.field).Text()
		if raw == "" {
			continue
		}
		date, err := ParsePDFDate(raw)
		if err != nil {
			continue
		}
		info.Dates = append(info.Dates, DateCandidate{Field: df.field, Label: df.label, Date: date})
	}

	return info, nil
}

// ParsePDFDate converts a PDF date string like "D:20240131120000+01'00'"
// into an ISO 8601 date (YYYY-MM-DD). At least YYYYMMDD must be present.
func ParsePDFDate(raw string) (string, error) {
	s := strings.TrimPrefix(raw, "D:")
	if len(s) < 8 {
		return "", fmt.Errorf("pdf date too short: %q", raw)
	}

	formatted := fmt.Sprintf("%s-%s-%s", s[:4], s[4:6], s[6:8])
	if _, err := time.Parse("2006-01-02", formatted); err != nil {
		return "", fmt.Errorf("invalid pdf date %q: %w", raw, err)
	}
	return formatted, nil
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD date.
func ValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
