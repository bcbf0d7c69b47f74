package main

import (
	"fmt"

	"github.com/fwojciec/cfiloc"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	books, err := deps.Books.FindBooks(deps.Ctx, cfiloc.BookFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cfiloc.ErrorMessage(err))
		return err
	}

	if len(books) == 0 {
		fmt.Fprintln(deps.Stdout, "No books found. Use 'cfiloc add' to add one.")
		return nil
	}

	for _, b := range books {
		fmt.Fprintf(deps.Stdout, "%s  %d paragraphs  %s\n", b.Name, b.Paragraphs, b.SourcePath)
	}

	return nil
}
