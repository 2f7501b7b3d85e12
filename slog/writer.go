package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/offenesjena/vorhaben"
)

// Ensure LoggingDocumentWriter implements vorhaben.DocumentWriter.
var _ vorhaben.DocumentWriter = (*LoggingDocumentWriter)(nil)

// LoggingDocumentWriter wraps a DocumentWriter with logging.
type LoggingDocumentWriter struct {
	next   vorhaben.DocumentWriter
	logger *slog.Logger
}

// NewLoggingDocumentWriter creates a new LoggingDocumentWriter.
func NewLoggingDocumentWriter(next vorhaben.DocumentWriter, logger *slog.Logger) *LoggingDocumentWriter {
	return &LoggingDocumentWriter{next: next, logger: logger}
}

// WriteDocument delegates to the wrapped writer and logs the operation.
func (w *LoggingDocumentWriter) WriteDocument(ctx context.Context, doc *vorhaben.Document) (err error) {
	defer func(begin time.Time) {
		count := 0
		if doc != nil {
			count = len(doc.Vorhaben)
		}
		w.logger.Info("write document",
			"records", count,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteDocument(ctx, doc)
}
