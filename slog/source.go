package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/offenesjena/vorhaben"
)

// Ensure LoggingIDSource implements vorhaben.IDSource.
var _ vorhaben.IDSource = (*LoggingIDSource)(nil)

// LoggingIDSource wraps an IDSource with logging.
type LoggingIDSource struct {
	next   vorhaben.IDSource
	logger *slog.Logger
}

// NewLoggingIDSource creates a new LoggingIDSource.
func NewLoggingIDSource(next vorhaben.IDSource, logger *slog.Logger) *LoggingIDSource {
	return &LoggingIDSource{next: next, logger: logger}
}

// Discover delegates to the wrapped source and logs the operation.
func (s *LoggingIDSource) Discover(ctx context.Context) (ids []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("id discovery",
			"count", len(ids),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Discover(ctx)
}
