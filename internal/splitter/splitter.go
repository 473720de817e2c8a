// Package splitter converts a markdown transcription into an ordered sequence
// of page-aware, header-tagged chunks. It is a pure transformation: no I/O,
// and identical input always yields an identical chunk sequence.
package splitter

import (
	"regexp"
	"strconv"
	"strings"
)

// Chunk kinds. Fenced code blocks become their own "code" chunks, everything
// else is "text".
const (
	KindText = "text"
	KindCode = "code"
)

// Chunk is a contiguous segment of a document's markdown.
// Header1-Header4 hold the active header stack at the point the segment
// appears; a nil level means no header of that depth was in scope (distinct
// from an empty header text). StartPage and EndPage stay nil when no page
// marker was seen at or before the chunk.
type Chunk struct {
	Ordinal   int
	Text      string
	Kind      string
	Header1   *string
	Header2   *string
	Header3   *string
	Header4   *string
	IsCode    bool
	StartPage *int
	EndPage   *int
}

// Headers returns the four header levels as a fixed-size array.
func (c *Chunk) Headers() [4]*string {
	return [4]*string{c.Header1, c.Header2, c.Header3, c.Header4}
}

var (
	// ATX headers, levels 1-4. Deeper headers are ordinary text.
	headerRe = regexp.MustCompile(`^(#{1,4})\s+(.*)$`)
	// Page-break markers: a page number in braces followed by two or more
	// dashes, e.g. "{7}----" meaning page 7 ends here.
	pageMarkerRe = regexp.MustCompile(`\{(\d+)\}--+`)
)

// Split parses markdown into ordered chunks. Structural boundaries are
// headers (levels 1-4) and fenced code blocks; page markers embedded in the
// text determine each chunk's provisional page range, and a forward
// continuity pass fills ranges for chunks without markers.
func Split(markdown string) []Chunk {
	var (
		chunks  []Chunk
		headers [4]*string
		buf     strings.Builder
		inCode  bool
	)

	flush := func(code bool) {
		if strings.TrimSpace(buf.String()) == "" {
			buf.Reset()
			return
		}
		kind := KindText
		if code {
			kind = KindCode
		}
		c := Chunk{
			Ordinal: len(chunks),
			Text:    buf.String(),
			Kind:    kind,
			Header1: headers[0],
			Header2: headers[1],
			Header3: headers[2],
			Header4: headers[3],
			IsCode:  code,
		}
		c.StartPage, c.EndPage = pageRange(c.Text)
		chunks = append(chunks, c)
		buf.Reset()
	}

	for _, line := range strings.SplitAfter(markdown, "\n") {
		trimmed := strings.TrimRight(line, "\n")

		if inCode {
			buf.WriteString(line)
			if isFence(trimmed) {
				inCode = false
				flush(true)
			}
			continue
		}

		if isFence(trimmed) {
			flush(false)
			inCode = true
			buf.WriteString(line)
			continue
		}

		if m := headerRe.FindStringSubmatch(trimmed); m != nil {
			flush(false)
			level := len(m[1])
			text := m[2]
			headers[level-1] = &text
			// A new header clears all deeper levels; shallower levels
			// stay in scope.
			for i := level; i < len(headers); i++ {
				headers[i] = nil
			}
			continue
		}

		buf.WriteString(line)
	}

	// An unterminated fence still yields a code chunk.
	flush(inCode)

	fillContinuity(chunks)
	return chunks
}

// isFence reports whether a line opens or closes a fenced code block.
func isFence(line string) bool {
	s := strings.TrimLeft(line, " \t")
	return strings.HasPrefix(s, "```") || strings.HasPrefix(s, "~~~")
}

// pageRange extracts the provisional page range from raw chunk text: the
// numeric value of the first marker and of the last marker. Both are nil
// when the text carries no marker.
func pageRange(text string) (start, end *int) {
	matches := pageMarkerRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil, nil
	}
	first, err := strconv.Atoi(matches[0][1])
	if err != nil {
		return nil, nil
	}
	last, err := strconv.Atoi(matches[len(matches)-1][1])
	if err != nil {
		return nil, nil
	}
	return &first, &last
}

// fillContinuity is the forward-only page fill: a running last-known end
// page backfills missing start and end pages. Chunks preceding the first
// marker in the document keep nil pages; the fill never invents a number.
//
// A markerless chunk adopts start == end == previous end page even if its
// true span covers several pages. That matches the source data's semantics
// and is kept deliberately.
func fillContinuity(chunks []Chunk) {
	var lastEnd *int
	for i := range chunks {
		c := &chunks[i]
		if c.StartPage == nil {
			c.StartPage = lastEnd
		}
		if c.EndPage == nil {
			c.EndPage = lastEnd
		}
		if c.EndPage != nil {
			lastEnd = c.EndPage
		}
	}
}
