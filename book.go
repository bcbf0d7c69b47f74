package cfiloc

import (
	"context"
	"time"
)

// Book represents an EPUB that has been decomposed into paragraphs and
// stored for repeated searching.
type Book struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	SourcePath  string    `json:"sourcePath"`
	ContentHash string    `json:"contentHash"`
	Paragraphs  int       `json:"paragraphs"`
	Filter      []byte    `json:"-"` // Serialized query prefilter, optional
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate returns an error if the book contains invalid fields.
func (b *Book) Validate() error {
	if b.Name == "" {
		return Errorf(EINVALID, "book name required")
	}
	if b.SourcePath == "" {
		return Errorf(EINVALID, "book source path required")
	}
	return nil
}

// BookService represents a service for managing books.
type BookService interface {
	// CreateBook creates a new book.
	// Returns ECONFLICT if a book with the same name exists.
	CreateBook(ctx context.Context, book *Book) error

	// FindBookByID retrieves a book by ID.
	// Returns ENOTFOUND if book does not exist.
	FindBookByID(ctx context.Context, id string) (*Book, error)

	// FindBooks retrieves books matching the filter, ordered by name.
	FindBooks(ctx context.Context, filter BookFilter) ([]*Book, error)

	// DeleteBook permanently removes a book and all of its paragraphs.
	// Returns ENOTFOUND if book does not exist.
	DeleteBook(ctx context.Context, id string) error
}

// BookFilter represents a filter for FindBooks.
type BookFilter struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ParagraphService stores the ordered paragraphs of a book.
type ParagraphService interface {
	// CreateParagraphs stores paragraphs for a book, preserving their order.
	CreateParagraphs(ctx context.Context, bookID string, paragraphs []Paragraph) error

	// FindParagraphs returns the paragraphs of a book in document order.
	FindParagraphs(ctx context.Context, bookID string) ([]Paragraph, error)
}
