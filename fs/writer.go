// Package fs provides file-based storage for the published document.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/offenesjena/vorhaben"
)

// Ensure JSONWriter implements vorhaben.DocumentWriter at compile time.
var _ vorhaben.DocumentWriter = (*JSONWriter)(nil)

// Validator checks an encoded document before it is written.
type Validator interface {
	Validate(data []byte) error
}

// JSONWriter writes the document as indented JSON with atomic update
// semantics. The document is written to path.tmp, then renamed to path.
type JSONWriter struct {
	path      string
	validator Validator
}

// Option configures a JSONWriter.
type Option func(*JSONWriter)

// WithValidator validates the encoded document before anything is written.
func WithValidator(v Validator) Option {
	return func(w *JSONWriter) {
		w.validator = v
	}
}

// NewJSONWriter creates a JSONWriter for the given output file.
func NewJSONWriter(path string, opts ...Option) *JSONWriter {
	w := &JSONWriter{path: path}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *JSONWriter) tempPath() string {
	return w.path + ".tmp"
}

// Encode returns the document as two-space indented JSON with a trailing
// newline.
func Encode(doc *vorhaben.Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// WriteDocument encodes, validates and writes doc. The existing output
// file is left untouched on any failure.
func (w *JSONWriter) WriteDocument(ctx context.Context, doc *vorhaben.Document) error {
	if doc == nil {
		return vorhaben.Errorf(vorhaben.EINVALID, "document required")
	}

	data, err := Encode(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	if w.validator != nil {
		if err := w.validator.Validate(data); err != nil {
			return fmt.Errorf("validate document: %w", err)
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	if err := os.WriteFile(w.tempPath(), data, 0644); err != nil {
		_ = w.Abort()
		return err
	}

	if err := os.Rename(w.tempPath(), w.path); err != nil {
		_ = w.Abort()
		return err
	}

	return nil
}

// Abort removes a leftover temporary file.
func (w *JSONWriter) Abort() error {
	err := os.Remove(w.tempPath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
