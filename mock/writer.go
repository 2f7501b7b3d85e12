package mock

import (
	"context"

	"github.com/offenesjena/vorhaben"
)

var _ vorhaben.DocumentWriter = (*DocumentWriter)(nil)

// DocumentWriter is a mock implementation of vorhaben.DocumentWriter.
type DocumentWriter struct {
	WriteDocumentFn func(ctx context.Context, doc *vorhaben.Document) error
}

func (w *DocumentWriter) WriteDocument(ctx context.Context, doc *vorhaben.Document) error {
	return w.WriteDocumentFn(ctx, doc)
}
