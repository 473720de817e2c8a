package splitter

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestSplit_HeadersAndPageMarkers(t *testing.T) {
	markdown := "# A\ncontent1\n{1}----\n## B\ncontent2\n{2}----{3}----"

	want := []Chunk{
		{
			Ordinal:   0,
			Text:      "content1\n{1}----\n",
			Kind:      KindText,
			Header1:   strPtr("A"),
			StartPage: intPtr(1),
			EndPage:   intPtr(1),
		},
		{
			Ordinal:   1,
			Text:      "content2\n{2}----{3}----",
			Kind:      KindText,
			Header1:   strPtr("A"),
			Header2:   strPtr("B"),
			StartPage: intPtr(2),
			EndPage:   intPtr(3),
		},
	}

	got := Split(markdown)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Split() mismatch (-want +got):\n%s", diff)
	}
}

func TestSplit_Deterministic(t *testing.T) {
	markdown := "intro\n# One\nalpha {1}----\n## Two\n```\ncode\n```\nbeta\n### Three\ngamma {4}--{5}--\n"

	first := Split(markdown)
	second := Split(markdown)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Split() not deterministic (-first +second):\n%s", diff)
	}
}

func TestSplit_OrdinalsContiguous(t *testing.T) {
	markdown := "# A\none\n## B\ntwo\n```\nthree\n```\nfour\n#### C\nfive\n"

	chunks := Split(markdown)
	if len(chunks) < 4 {
		t.Fatalf("Split() returned %d chunks, want at least 4", len(chunks))
	}
	for i, c := range chunks {
		if c.Ordinal != i {
			t.Errorf("chunk[%d].Ordinal = %d, want %d", i, c.Ordinal, i)
		}
	}
}

func TestSplit_CodeFenceNoMarkers(t *testing.T) {
	markdown := "```go\nfmt.Println(1)\n```\n"

	chunks := Split(markdown)
	if len(chunks) != 1 {
		t.Fatalf("Split() returned %d chunks, want 1", len(chunks))
	}

	c := chunks[0]
	if c.Kind != KindCode || !c.IsCode {
		t.Errorf("chunk kind = %q, is_code = %v, want code/true", c.Kind, c.IsCode)
	}
	if c.Text != "```go\nfmt.Println(1)\n```\n" {
		t.Errorf("chunk text = %q, fence lines should be preserved", c.Text)
	}
	// No marker anywhere: pages must stay nil, never invented.
	if c.StartPage != nil || c.EndPage != nil {
		t.Errorf("chunk pages = %v/%v, want nil/nil", c.StartPage, c.EndPage)
	}
}

func TestSplit_ContinuityFill(t *testing.T) {
	markdown := "# H\nalpha\n{5}----\n## I\nbeta without any marker\n"

	chunks := Split(markdown)
	if len(chunks) != 2 {
		t.Fatalf("Split() returned %d chunks, want 2", len(chunks))
	}

	second := chunks[1]
	if second.StartPage == nil || second.EndPage == nil {
		t.Fatal("markerless chunk after a marker should inherit pages")
	}
	if *second.StartPage != 5 || *second.EndPage != 5 {
		t.Errorf("inherited pages = %d/%d, want 5/5", *second.StartPage, *second.EndPage)
	}
}

func TestSplit_ContentBeforeFirstMarkerKeepsNil(t *testing.T) {
	markdown := "preamble without headers\n# A\nbody\n{2}----\n"

	chunks := Split(markdown)
	if len(chunks) != 2 {
		t.Fatalf("Split() returned %d chunks, want 2", len(chunks))
	}

	first := chunks[0]
	if first.StartPage != nil || first.EndPage != nil {
		t.Errorf("pre-marker chunk pages = %v/%v, want nil/nil", first.StartPage, first.EndPage)
	}
	if first.Header1 != nil || first.Header2 != nil || first.Header3 != nil || first.Header4 != nil {
		t.Error("pre-header chunk should have no header levels set")
	}
}

func TestSplit_HeaderScoping(t *testing.T) {
	markdown := "# A\none\n## B\ntwo\n### C\nthree\n# D\nfour\n"

	chunks := Split(markdown)
	if len(chunks) != 4 {
		t.Fatalf("Split() returned %d chunks, want 4", len(chunks))
	}

	tests := []struct {
		name  string
		chunk Chunk
		want  [4]*string
	}{
		{"level 1 only", chunks[0], [4]*string{strPtr("A"), nil, nil, nil}},
		{"level 2 keeps level 1", chunks[1], [4]*string{strPtr("A"), strPtr("B"), nil, nil}},
		{"level 3 keeps shallower", chunks[2], [4]*string{strPtr("A"), strPtr("B"), strPtr("C"), nil}},
		{"new level 1 clears deeper", chunks[3], [4]*string{strPtr("D"), nil, nil, nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.chunk.Headers()); diff != "" {
				t.Errorf("headers mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSplit_DeepHeadersAreText(t *testing.T) {
	markdown := "# A\n##### not a boundary\nstill chunk one\n"

	chunks := Split(markdown)
	if len(chunks) != 1 {
		t.Fatalf("Split() returned %d chunks, want 1", len(chunks))
	}
	if chunks[0].Text != "##### not a boundary\nstill chunk one\n" {
		t.Errorf("level-5 header should stay in chunk text, got %q", chunks[0].Text)
	}
}

func TestSplit_SinglePageMarker(t *testing.T) {
	markdown := "# A\ntext {7}----- more text\n"

	chunks := Split(markdown)
	if len(chunks) != 1 {
		t.Fatalf("Split() returned %d chunks, want 1", len(chunks))
	}
	c := chunks[0]
	if c.StartPage == nil || c.EndPage == nil || *c.StartPage != 7 || *c.EndPage != 7 {
		t.Errorf("single marker chunk pages = %v/%v, want 7/7", c.StartPage, c.EndPage)
	}
}

func TestSplit_EmptySegmentsDropped(t *testing.T) {
	markdown := "# A\n\n## B\ncontent\n"

	chunks := Split(markdown)
	if len(chunks) != 1 {
		t.Fatalf("Split() returned %d chunks, want 1 (blank segment dropped)", len(chunks))
	}
	if chunks[0].Header2 == nil || *chunks[0].Header2 != "B" {
		t.Errorf("chunk header 2 = %v, want B", chunks[0].Header2)
	}
}

func TestSplit_EmptyInput(t *testing.T) {
	if got := Split(""); len(got) != 0 {
		t.Errorf("Split(\"\") returned %d chunks, want 0", len(got))
	}
}

func TestSplit_UnterminatedFence(t *testing.T) {
	markdown := "# A\n```\nnever closed\n"

	chunks := Split(markdown)
	if len(chunks) != 1 {
		t.Fatalf("Split() returned %d chunks, want 1", len(chunks))
	}
	if !chunks[0].IsCode {
		t.Error("unterminated fence should still yield a code chunk")
	}
}

func TestPageRange(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantStart *int
		wantEnd   *int
	}{
		{"no markers", "plain text", nil, nil},
		{"single marker", "foo {3}---- bar", intPtr(3), intPtr(3)},
		{"multiple markers", "{1}---- mid {2}---- end {9}--", intPtr(1), intPtr(9)},
		{"one dash is not a marker", "{4}-", nil, nil},
		{"braces without dashes", "{12} and ----", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := pageRange(tt.text)
			if diff := cmp.Diff(tt.wantStart, start); diff != "" {
				t.Errorf("start mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantEnd, end); diff != "" {
				t.Errorf("end mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
