// Package slog provides logging decorators for cfiloc services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cfiloc"
)

// Ensure LoggingGenerator implements cfiloc.Generator.
var _ cfiloc.Generator = (*LoggingGenerator)(nil)

// LoggingGenerator wraps a Generator with logging.
type LoggingGenerator struct {
	next   cfiloc.Generator
	logger *slog.Logger
}

// NewLoggingGenerator creates a new LoggingGenerator.
func NewLoggingGenerator(next cfiloc.Generator, logger *slog.Logger) *LoggingGenerator {
	return &LoggingGenerator{next: next, logger: logger}
}

// Generate delegates to the wrapped generator and logs the operation.
func (g *LoggingGenerator) Generate(ctx context.Context, src, dst string) (err error) {
	defer func(begin time.Time) {
		g.logger.Info("generate",
			"src", src,
			"dst", dst,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.Generate(ctx, src, dst)
}
