package main

import (
	"fmt"

	"github.com/fwojciec/cfiloc"
	"github.com/fwojciec/cfiloc/bloom"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	filter := cfiloc.BookFilter{}
	if c.Book != "" {
		filter.Name = &c.Book
	}

	books, err := deps.Books.FindBooks(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cfiloc.ErrorMessage(err))
		return err
	}

	if c.Book != "" && len(books) == 0 {
		fmt.Fprintf(deps.Stderr, "error: book %q not found. Use 'cfiloc list' to see available books.\n", c.Book)
		return cfiloc.Errorf(cfiloc.ENOTFOUND, "book %q not found", c.Book)
	}

	for _, book := range books {
		if c.Book == "" && !mayContain(book, c.Query) {
			deps.Logger.Info("skip book", "book", book.Name)
			continue
		}

		paragraphs, err := deps.Paragraphs.FindParagraphs(deps.Ctx, book.ID)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", cfiloc.ErrorMessage(err))
			return err
		}

		m, err := cfiloc.NewIndex(paragraphs).Locate(c.Query)
		if cfiloc.ErrorCode(err) == cfiloc.ENOTFOUND {
			continue
		} else if err != nil {
			return err
		}

		fmt.Fprintf(deps.Stdout, "Book: %s\n", book.Name)
		fmt.Fprintln(deps.Stdout, cfiloc.FormatMatch(m))
		return nil
	}

	fmt.Fprintln(deps.Stderr, "error: query not found")
	return cfiloc.Errorf(cfiloc.ENOTFOUND, "query not found")
}

// mayContain consults the book's stored filter. Books without a usable
// filter are always searched.
func mayContain(book *cfiloc.Book, query string) bool {
	if len(book.Filter) == 0 {
		return true
	}
	f, err := bloom.UnmarshalFilter(book.Filter)
	if err != nil {
		return true
	}
	return f.MayContain(query)
}
