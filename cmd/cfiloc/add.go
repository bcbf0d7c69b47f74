package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/cfiloc"
	"github.com/fwojciec/cfiloc/bloom"
	"github.com/fwojciec/cfiloc/fs"
)

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	existing, err := deps.Books.FindBooks(deps.Ctx, cfiloc.BookFilter{Name: &c.Name})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cfiloc.ErrorMessage(err))
		return err
	}
	if len(existing) > 0 {
		if !c.Force {
			fmt.Fprintf(deps.Stderr, "error: book %q already exists. Use --force to replace it.\n", c.Name)
			return cfiloc.Errorf(cfiloc.ECONFLICT, "book %q already exists", c.Name)
		}
		if err := deps.Books.DeleteBook(deps.Ctx, existing[0].ID); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", cfiloc.ErrorMessage(err))
			return err
		}
	}

	source, err := filepath.Abs(c.Path)
	if err != nil {
		return err
	}

	hash, err := fs.HashFile(source)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: cannot read %s: %v\n", c.Path, err)
		return err
	}

	// Generated paragraphs are cached by content so re-adding is cheap.
	dst := fs.CachePath(deps.CacheDir, hash)
	if err := deps.Generator.Generate(deps.Ctx, source, dst); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cfiloc.ErrorMessage(err))
		return err
	}

	paragraphs, err := deps.Loader.Load(deps.Ctx, dst)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cfiloc.ErrorMessage(err))
		return err
	}

	filter, err := bloom.NewIndexFilter(cfiloc.NewIndex(paragraphs)).MarshalBinary()
	if err != nil {
		return err
	}

	book := &cfiloc.Book{
		Name:        c.Name,
		SourcePath:  source,
		ContentHash: hash,
		Paragraphs:  len(paragraphs),
		Filter:      filter,
	}
	if err := deps.Books.CreateBook(deps.Ctx, book); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cfiloc.ErrorMessage(err))
		return err
	}

	if err := deps.Paragraphs.CreateParagraphs(deps.Ctx, book.ID, paragraphs); err != nil {
		_ = deps.Books.DeleteBook(deps.Ctx, book.ID)
		fmt.Fprintf(deps.Stderr, "error: %s\n", cfiloc.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Added book %q (%d paragraphs)\n", book.Name, book.Paragraphs)
	return nil
}
