package main

import (
	"fmt"

	"github.com/fwojciec/cfiloc"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return cfiloc.Errorf(cfiloc.EINVALID, "use --force to confirm deletion")
	}

	books, err := deps.Books.FindBooks(deps.Ctx, cfiloc.BookFilter{Name: &c.Name})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cfiloc.ErrorMessage(err))
		return err
	}

	if len(books) == 0 {
		fmt.Fprintf(deps.Stderr, "error: book %q not found. Use 'cfiloc list' to see available books.\n", c.Name)
		return cfiloc.Errorf(cfiloc.ENOTFOUND, "book %q not found", c.Name)
	}

	book := books[0]
	if err := deps.Books.DeleteBook(deps.Ctx, book.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cfiloc.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted book %q\n", book.Name)
	return nil
}
