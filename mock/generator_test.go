package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/cfiloc"
	"github.com/fwojciec/cfiloc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Generate(t *testing.T) {
	t.Parallel()

	t.Run("delegates to GenerateFn", func(t *testing.T) {
		t.Parallel()

		var gotSrc, gotDst string
		g := &mock.Generator{
			GenerateFn: func(_ context.Context, src, dst string) error {
				gotSrc, gotDst = src, dst
				return nil
			},
		}

		err := g.Generate(context.Background(), "book.epub", "data.json")

		require.NoError(t, err)
		assert.Equal(t, "book.epub", gotSrc)
		assert.Equal(t, "data.json", gotDst)
	})
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("delegates to LoadFn", func(t *testing.T) {
		t.Parallel()

		l := &mock.Loader{
			LoadFn: func(_ context.Context, path string) ([]cfiloc.Paragraph, error) {
				return []cfiloc.Paragraph{{Text: path, Location: "/2/1"}}, nil
			},
		}

		paragraphs, err := l.Load(context.Background(), "data.json")

		require.NoError(t, err)
		assert.Equal(t, []cfiloc.Paragraph{{Text: "data.json", Location: "/2/1"}}, paragraphs)
	})
}
