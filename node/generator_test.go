package node_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/cfiloc"
	"github.com/fwojciec/cfiloc/node"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sh runs script with src and dst bound to $1 and $2.
func sh(script string) *node.Generator {
	return node.NewGenerator("sh", "-c", script, "sh")
}

func TestGenerator_Generate(t *testing.T) {
	t.Parallel()

	t.Run("passes source and destination as trailing arguments", func(t *testing.T) {
		t.Parallel()

		dst := filepath.Join(t.TempDir(), "data.json")
		g := sh(`printf '%s' "$1" > "$2"`)

		err := g.Generate(context.Background(), "book.epub", dst)

		require.NoError(t, err)
		content, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Equal(t, "book.epub", string(content))
	})

	t.Run("surfaces stderr on non-zero exit", func(t *testing.T) {
		t.Parallel()

		g := sh(`echo "cannot open $1" >&2; exit 3`)

		err := g.Generate(context.Background(), "missing.epub", filepath.Join(t.TempDir(), "data.json"))

		require.Error(t, err)
		assert.Equal(t, cfiloc.EINTERNAL, cfiloc.ErrorCode(err))
		assert.Equal(t, "failed to generate database: cannot open missing.epub", cfiloc.ErrorMessage(err))
	})

	t.Run("reports exit status when stderr is empty", func(t *testing.T) {
		t.Parallel()

		g := sh(`exit 2`)

		err := g.Generate(context.Background(), "book.epub", filepath.Join(t.TempDir(), "data.json"))

		require.Error(t, err)
		assert.Contains(t, cfiloc.ErrorMessage(err), "exit status 2")
	})

	t.Run("reports missing executable", func(t *testing.T) {
		t.Parallel()

		g := node.NewGenerator(filepath.Join(t.TempDir(), "no-such-tool"))

		err := g.Generate(context.Background(), "book.epub", "data.json")

		require.Error(t, err)
		assert.Equal(t, cfiloc.EINTERNAL, cfiloc.ErrorCode(err))
	})

	t.Run("returns context error when cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := sh(`sleep 5`).Generate(ctx, "book.epub", "data.json")

		assert.ErrorIs(t, err, context.Canceled)
	})
}
