package mock

import (
	"context"

	"github.com/fwojciec/cfiloc"
)

var _ cfiloc.BookService = (*BookService)(nil)

// BookService is a mock implementation of cfiloc.BookService.
type BookService struct {
	CreateBookFn   func(ctx context.Context, book *cfiloc.Book) error
	FindBookByIDFn func(ctx context.Context, id string) (*cfiloc.Book, error)
	FindBooksFn    func(ctx context.Context, filter cfiloc.BookFilter) ([]*cfiloc.Book, error)
	DeleteBookFn   func(ctx context.Context, id string) error
}

func (s *BookService) CreateBook(ctx context.Context, book *cfiloc.Book) error {
	return s.CreateBookFn(ctx, book)
}

func (s *BookService) FindBookByID(ctx context.Context, id string) (*cfiloc.Book, error) {
	return s.FindBookByIDFn(ctx, id)
}

func (s *BookService) FindBooks(ctx context.Context, filter cfiloc.BookFilter) ([]*cfiloc.Book, error) {
	return s.FindBooksFn(ctx, filter)
}

func (s *BookService) DeleteBook(ctx context.Context, id string) error {
	return s.DeleteBookFn(ctx, id)
}

var _ cfiloc.ParagraphService = (*ParagraphService)(nil)

// ParagraphService is a mock implementation of cfiloc.ParagraphService.
type ParagraphService struct {
	CreateParagraphsFn func(ctx context.Context, bookID string, paragraphs []cfiloc.Paragraph) error
	FindParagraphsFn   func(ctx context.Context, bookID string) ([]cfiloc.Paragraph, error)
}

func (s *ParagraphService) CreateParagraphs(ctx context.Context, bookID string, paragraphs []cfiloc.Paragraph) error {
	return s.CreateParagraphsFn(ctx, bookID, paragraphs)
}

func (s *ParagraphService) FindParagraphs(ctx context.Context, bookID string) ([]cfiloc.Paragraph, error) {
	return s.FindParagraphsFn(ctx, bookID)
}
