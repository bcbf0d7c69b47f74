package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/cfiloc"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ cfiloc.BookService = (*BookService)(nil)

// BookService implements cfiloc.BookService using SQLite.
type BookService struct {
	db *DB
}

// NewBookService creates a new BookService.
func NewBookService(db *DB) *BookService {
	return &BookService{db: db}
}

// CreateBook creates a new book.
func (s *BookService) CreateBook(ctx context.Context, book *cfiloc.Book) error {
	if err := book.Validate(); err != nil {
		return err
	}

	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM books WHERE name = ?", book.Name).Scan(&exists)
	if err != nil {
		return err
	}
	if exists > 0 {
		return cfiloc.Errorf(cfiloc.ECONFLICT, "book %q already exists", book.Name)
	}

	book.ID = uuid.New().String()
	book.CreatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO books (id, name, source_path, content_hash, paragraphs, filter, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, book.ID, book.Name, book.SourcePath, book.ContentHash, book.Paragraphs, book.Filter,
		book.CreatedAt.Format(time.RFC3339))

	return err
}

const bookColumns = "id, name, source_path, content_hash, paragraphs, filter, created_at"

type scanner interface {
	Scan(dest ...any) error
}

func scanBook(row scanner) (*cfiloc.Book, error) {
	var book cfiloc.Book
	var createdAt string

	if err := row.Scan(&book.ID, &book.Name, &book.SourcePath, &book.ContentHash,
		&book.Paragraphs, &book.Filter, &createdAt); err != nil {
		return nil, err
	}

	t, err := parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}
	book.CreatedAt = t

	return &book, nil
}

// FindBookByID retrieves a book by ID.
func (s *BookService) FindBookByID(ctx context.Context, id string) (*cfiloc.Book, error) {
	book, err := scanBook(s.db.QueryRowContext(ctx, "SELECT "+bookColumns+" FROM books WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, cfiloc.Errorf(cfiloc.ENOTFOUND, "book not found")
	}
	if err != nil {
		return nil, err
	}
	return book, nil
}

// FindBooks retrieves books matching the filter, ordered by name.
func (s *BookService) FindBooks(ctx context.Context, filter cfiloc.BookFilter) ([]*cfiloc.Book, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + bookColumns + " FROM books WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}

	query.WriteString(" ORDER BY name ASC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*cfiloc.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}

	return books, rows.Err()
}

// DeleteBook permanently removes a book and, through the foreign key, its
// paragraphs.
func (s *BookService) DeleteBook(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM books WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return cfiloc.Errorf(cfiloc.ENOTFOUND, "book not found")
	}

	return nil
}

// parseRFC3339 parses an RFC3339 formatted timestamp string.
// Returns an error if parsing fails with a descriptive message including the field name.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// appendPagination appends LIMIT and OFFSET clauses to a query builder if values are > 0.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
	if offset > 0 {
		if limit <= 0 {
			query.WriteString(" LIMIT -1")
		}
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
