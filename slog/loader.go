package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cfiloc"
)

// Ensure LoggingLoader implements cfiloc.Loader.
var _ cfiloc.Loader = (*LoggingLoader)(nil)

// LoggingLoader wraps a Loader with logging.
type LoggingLoader struct {
	next   cfiloc.Loader
	logger *slog.Logger
}

// NewLoggingLoader creates a new LoggingLoader.
func NewLoggingLoader(next cfiloc.Loader, logger *slog.Logger) *LoggingLoader {
	return &LoggingLoader{next: next, logger: logger}
}

// Load delegates to the wrapped loader and logs the paragraph count.
func (l *LoggingLoader) Load(ctx context.Context, path string) (paragraphs []cfiloc.Paragraph, err error) {
	defer func(begin time.Time) {
		l.logger.Info("load",
			"path", path,
			"count", len(paragraphs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.Load(ctx, path)
}
