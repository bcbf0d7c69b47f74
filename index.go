package cfiloc

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Span is the half-open rune range a paragraph occupies in the normalized
// buffer of an Index.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of runes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Index is a normalized, paragraph-aligned full-text view of a book.
//
// An Index is immutable once built and may be shared by concurrent readers.
// Spans partition the buffer: the first starts at 0, each ends where the next
// begins and the last ends at Len().
type Index struct {
	buffer    string
	length    int
	spans     []Span
	texts     []string
	locations []string
}

// NewIndex builds an Index over paragraphs in the given order.
func NewIndex(paragraphs []Paragraph) *Index {
	idx := &Index{
		spans:     make([]Span, 0, len(paragraphs)),
		texts:     make([]string, 0, len(paragraphs)),
		locations: make([]string, 0, len(paragraphs)),
	}

	var buf strings.Builder
	cursor := 0
	for _, p := range paragraphs {
		normalized := Normalize(p.Text)
		end := cursor + utf8.RuneCountInString(normalized)

		idx.spans = append(idx.spans, Span{Start: cursor, End: end})
		idx.texts = append(idx.texts, p.Text)
		idx.locations = append(idx.locations, p.Location)
		buf.WriteString(normalized)

		cursor = end
	}

	idx.buffer = buf.String()
	idx.length = cursor
	return idx
}

// Buffer returns the whitespace-free concatenation of all paragraphs.
func (idx *Index) Buffer() string {
	return idx.buffer
}

// Len returns the length of the buffer in runes.
func (idx *Index) Len() int {
	return idx.length
}

// Count returns the number of indexed paragraphs.
func (idx *Index) Count() int {
	return len(idx.spans)
}

// Spans returns a copy of the paragraph spans in document order.
func (idx *Index) Spans() []Span {
	spans := make([]Span, len(idx.spans))
	copy(spans, idx.spans)
	return spans
}

// Paragraph returns the i-th indexed paragraph with its raw text.
func (idx *Index) Paragraph(i int) Paragraph {
	return Paragraph{Text: idx.texts[i], Location: idx.locations[i]}
}

// owner returns the earliest paragraph whose span contains offset, treating
// both span ends as inclusive.
func (idx *Index) owner(offset int) (int, bool) {
	// Spans are contiguous, so ends are non-decreasing and the first span
	// reaching offset also starts at or before it.
	i := sort.Search(len(idx.spans), func(i int) bool {
		return idx.spans[i].End >= offset
	})
	if i == len(idx.spans) || idx.spans[i].Start > offset {
		return 0, false
	}
	return i, true
}
