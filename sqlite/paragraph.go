package sqlite

import (
	"context"
	"fmt"

	"github.com/fwojciec/cfiloc"
)

// Compile-time interface verification.
var _ cfiloc.ParagraphService = (*ParagraphService)(nil)

// ParagraphService implements cfiloc.ParagraphService using SQLite.
type ParagraphService struct {
	db *DB
}

// NewParagraphService creates a new ParagraphService.
func NewParagraphService(db *DB) *ParagraphService {
	return &ParagraphService{db: db}
}

// CreateParagraphs stores paragraphs for a book in a single transaction.
// Positions continue after any paragraphs already stored for the book.
func (s *ParagraphService) CreateParagraphs(ctx context.Context, bookID string, paragraphs []cfiloc.Paragraph) error {
	if bookID == "" {
		return cfiloc.Errorf(cfiloc.EINVALID, "book ID required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var next int
	if err := tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(position) + 1, 0) FROM paragraphs WHERE book_id = ?", bookID,
	).Scan(&next); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO paragraphs (book_id, position, text, location) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, p := range paragraphs {
		if _, err := stmt.ExecContext(ctx, bookID, next+i, p.Text, p.Location); err != nil {
			return fmt.Errorf("failed to insert paragraph %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// FindParagraphs returns the paragraphs of a book in document order.
func (s *ParagraphService) FindParagraphs(ctx context.Context, bookID string) ([]cfiloc.Paragraph, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT text, location FROM paragraphs WHERE book_id = ? ORDER BY position ASC", bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paragraphs []cfiloc.Paragraph
	for rows.Next() {
		var p cfiloc.Paragraph
		if err := rows.Scan(&p.Text, &p.Location); err != nil {
			return nil, err
		}
		paragraphs = append(paragraphs, p)
	}

	return paragraphs, rows.Err()
}
