package mock

import (
	"context"

	"github.com/fwojciec/cfiloc"
)

var _ cfiloc.Generator = (*Generator)(nil)

// Generator is a mock implementation of cfiloc.Generator.
type Generator struct {
	GenerateFn func(ctx context.Context, src, dst string) error
}

func (g *Generator) Generate(ctx context.Context, src, dst string) error {
	return g.GenerateFn(ctx, src, dst)
}

var _ cfiloc.Loader = (*Loader)(nil)

// Loader is a mock implementation of cfiloc.Loader.
type Loader struct {
	LoadFn func(ctx context.Context, path string) ([]cfiloc.Paragraph, error)
}

func (l *Loader) Load(ctx context.Context, path string) ([]cfiloc.Paragraph, error) {
	return l.LoadFn(ctx, path)
}
