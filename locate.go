package cfiloc

import (
	"strings"
	"unicode/utf8"
)

// Match is the first occurrence of a query, expressed both as absolute rune
// offsets into the normalized buffer and as paragraph-relative offsets.
type Match struct {
	StartIndex int `json:"startIndex"`
	EndIndex   int `json:"endIndex"`

	StartParagraph int `json:"startParagraph"`
	EndParagraph   int `json:"endParagraph"`

	StartText string `json:"startText"`
	EndText   string `json:"endText"`

	StartLocation string `json:"startLocation"`
	EndLocation   string `json:"endLocation"`

	StartOffset int `json:"startOffset"`
	EndOffset   int `json:"endOffset"`
}

// Range returns the CFI range covering the match.
func (m *Match) Range() Range {
	return NewRange(m.StartLocation, m.EndLocation, m.StartOffset, m.EndOffset)
}

// Locate finds the leftmost occurrence of query in the index, ignoring
// whitespace on both sides.
//
// A match endpoint that falls exactly on a paragraph boundary belongs to the
// earlier paragraph. A query that normalizes to the empty string matches at
// offset 0 of the first paragraph. Returns ENOTFOUND if the query does not
// occur or cannot be mapped to paragraphs, e.g. in an empty index.
func (idx *Index) Locate(query string) (*Match, error) {
	needle := Normalize(query)

	pos := strings.Index(idx.buffer, needle)
	if pos < 0 {
		return nil, Errorf(ENOTFOUND, "query not found")
	}

	start := utf8.RuneCountInString(idx.buffer[:pos])
	end := start + utf8.RuneCountInString(needle)

	first, ok := idx.owner(start)
	if !ok {
		return nil, Errorf(ENOTFOUND, "query not found")
	}
	last, ok := idx.owner(end)
	if !ok {
		return nil, Errorf(ENOTFOUND, "query not found")
	}

	return &Match{
		StartIndex:     start,
		EndIndex:       end,
		StartParagraph: first,
		EndParagraph:   last,
		StartText:      idx.texts[first],
		EndText:        idx.texts[last],
		StartLocation:  idx.locations[first],
		EndLocation:    idx.locations[last],
		StartOffset:    start - idx.spans[first].Start,
		EndOffset:      end - idx.spans[last].Start,
	}, nil
}
