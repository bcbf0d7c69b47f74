package cfiloc

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Paragraph is a run of book text together with the CFI of its text node.
type Paragraph struct {
	Text     string `json:"node"`
	Location string `json:"cfi"`
}

// Normalize removes every whitespace rune from text and leaves everything
// else untouched. Queries and paragraphs must go through the same function
// exactly once so that offsets line up.
func Normalize(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
}

// NormalizedLen returns the length of the normalized text in runes, the unit
// all offsets are expressed in.
func NormalizedLen(text string) int {
	return utf8.RuneCountInString(Normalize(text))
}

// Generator produces a paragraph database for a source book.
// Implementations write the JSON document described by fs.ReadSections to dst.
type Generator interface {
	Generate(ctx context.Context, src, dst string) error
}

// Loader reads the paragraphs of a generated database in document order.
type Loader interface {
	Load(ctx context.Context, path string) ([]Paragraph, error)
}

// Section is one spine document of a book and its paragraphs in order.
type Section struct {
	Href       string      `json:"href,omitempty"`
	Paragraphs []Paragraph `json:"content"`
}

// Flatten returns the paragraphs of all sections in document order.
func Flatten(sections []Section) []Paragraph {
	var n int
	for _, s := range sections {
		n += len(s.Paragraphs)
	}
	paragraphs := make([]Paragraph, 0, n)
	for _, s := range sections {
		paragraphs = append(paragraphs, s.Paragraphs...)
	}
	return paragraphs
}
