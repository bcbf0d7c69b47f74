package main_test

import (
	"context"
	"testing"

	"github.com/fwojciec/cfiloc"
	"github.com/fwojciec/cfiloc/bloom"
	main "github.com/fwojciec/cfiloc/cmd/cfiloc"
	"github.com/fwojciec/cfiloc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filterFor(t *testing.T, paragraphs []cfiloc.Paragraph) []byte {
	t.Helper()

	data, err := bloom.NewIndexFilter(cfiloc.NewIndex(paragraphs)).MarshalBinary()
	require.NoError(t, err)
	return data
}

func TestSearchCmd_Run(t *testing.T) {
	t.Parallel()

	other := []cfiloc.Paragraph{{Text: "Call me Ishmael.", Location: "/6/2!/4/2/1:0"}}

	t.Run("prints the first matching book", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Books = &mock.BookService{
			FindBooksFn: func(_ context.Context, _ cfiloc.BookFilter) ([]*cfiloc.Book, error) {
				return []*cfiloc.Book{
					{ID: "b1", Name: "hello", Filter: filterFor(t, helloWorld)},
					{ID: "b2", Name: "second", Filter: filterFor(t, helloWorld)},
				}, nil
			},
		}
		deps.Paragraphs = &mock.ParagraphService{
			FindParagraphsFn: func(_ context.Context, bookID string) ([]cfiloc.Paragraph, error) {
				assert.Equal(t, "b1", bookID)
				return helloWorld, nil
			},
		}

		err := (&main.SearchCmd{Query: "lowor"}).Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "Book: hello\n")
		assert.Contains(t, output, "Formatted CFI: epubcfi(/6/4!/4,/2/1:3,/4/1:3)\n")
	})

	t.Run("skips books the filter rules out", func(t *testing.T) {
		t.Parallel()

		var searched []string
		deps, stdout, _ := newDeps()
		deps.Books = &mock.BookService{
			FindBooksFn: func(_ context.Context, _ cfiloc.BookFilter) ([]*cfiloc.Book, error) {
				return []*cfiloc.Book{
					{ID: "b1", Name: "moby", Filter: filterFor(t, other)},
					{ID: "b2", Name: "hello", Filter: filterFor(t, helloWorld)},
				}, nil
			},
		}
		deps.Paragraphs = &mock.ParagraphService{
			FindParagraphsFn: func(_ context.Context, bookID string) ([]cfiloc.Paragraph, error) {
				searched = append(searched, bookID)
				return helloWorld, nil
			},
		}

		err := (&main.SearchCmd{Query: "Hello world"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, []string{"b2"}, searched)
		assert.Contains(t, stdout.String(), "Book: hello")
	})

	t.Run("searches books without a filter", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Books = &mock.BookService{
			FindBooksFn: func(_ context.Context, _ cfiloc.BookFilter) ([]*cfiloc.Book, error) {
				return []*cfiloc.Book{{ID: "b1", Name: "hello"}}, nil
			},
		}
		deps.Paragraphs = &mock.ParagraphService{
			FindParagraphsFn: func(_ context.Context, _ string) ([]cfiloc.Paragraph, error) {
				return helloWorld, nil
			},
		}

		err := (&main.SearchCmd{Query: "world"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Book: hello")
	})

	t.Run("searches only the named book", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Books = &mock.BookService{
			FindBooksFn: func(_ context.Context, filter cfiloc.BookFilter) ([]*cfiloc.Book, error) {
				require.NotNil(t, filter.Name)
				assert.Equal(t, "hello", *filter.Name)
				return []*cfiloc.Book{{ID: "b1", Name: "hello"}}, nil
			},
		}
		deps.Paragraphs = &mock.ParagraphService{
			FindParagraphsFn: func(_ context.Context, _ string) ([]cfiloc.Paragraph, error) {
				return helloWorld, nil
			},
		}

		err := (&main.SearchCmd{Query: "Hello", Book: "hello"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Start index: 0")
	})

	t.Run("returns ENOTFOUND for unknown book", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()
		deps.Books = &mock.BookService{
			FindBooksFn: func(_ context.Context, _ cfiloc.BookFilter) ([]*cfiloc.Book, error) {
				return nil, nil
			},
		}

		err := (&main.SearchCmd{Query: "Hello", Book: "missing"}).Run(deps)

		assert.Equal(t, cfiloc.ENOTFOUND, cfiloc.ErrorCode(err))
		assert.Contains(t, stderr.String(), "\"missing\" not found")
	})

	t.Run("returns ENOTFOUND when no book matches", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := newDeps()
		deps.Books = &mock.BookService{
			FindBooksFn: func(_ context.Context, _ cfiloc.BookFilter) ([]*cfiloc.Book, error) {
				return []*cfiloc.Book{{ID: "b1", Name: "hello"}}, nil
			},
		}
		deps.Paragraphs = &mock.ParagraphService{
			FindParagraphsFn: func(_ context.Context, _ string) ([]cfiloc.Paragraph, error) {
				return helloWorld, nil
			},
		}

		err := (&main.SearchCmd{Query: "goodbye"}).Run(deps)

		assert.Equal(t, cfiloc.ENOTFOUND, cfiloc.ErrorCode(err))
		assert.Empty(t, stdout.String())
		assert.Contains(t, stderr.String(), "query not found")
	})
}
