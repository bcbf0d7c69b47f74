package fs

import (
	"context"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/cfiloc"
)

// Ensure CachedGenerator implements cfiloc.Generator at compile time.
var _ cfiloc.Generator = (*CachedGenerator)(nil)

// CachedGenerator skips generation when a file already exists at the
// destination. Freshness is not checked; callers that need it should key the
// destination by content, see CachePath.
type CachedGenerator struct {
	next cfiloc.Generator
}

// NewCachedGenerator wraps next with an existence check.
func NewCachedGenerator(next cfiloc.Generator) *CachedGenerator {
	return &CachedGenerator{next: next}
}

// Generate delegates to the wrapped generator unless dst exists.
func (g *CachedGenerator) Generate(ctx context.Context, src, dst string) error {
	if _, err := os.Stat(dst); err == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	return g.next.Generate(ctx, src, dst)
}

// CachePath returns the database path for a book with the given content hash.
func CachePath(dir, hash string) string {
	return filepath.Join(dir, hash+".json")
}

// HashFile computes the xxHash of a file's contents as a hex string.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
