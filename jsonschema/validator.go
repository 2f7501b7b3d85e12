// Package jsonschema validates the published document against an embedded
// JSON Schema.
package jsonschema

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/offenesjena/vorhaben"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed document.schema.json
var documentSchema []byte

// Schema returns the embedded document schema.
func Schema() []byte {
	return append([]byte(nil), documentSchema...)
}

// FieldError is a single violation at a field path.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every violation found in a document.
// It unwraps to an EINVALID application error.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, fe := range e.Errors {
		fmt.Fprintf(&sb, "  %d. %s: %s\n", i+1, fe.Field, fe.Message)
	}
	return sb.String()
}

func (e *ValidationError) Unwrap() error {
	return vorhaben.Errorf(vorhaben.EINVALID, "document violates schema in %d place(s)", len(e.Errors))
}

// Validator checks encoded documents against a compiled schema.
type Validator struct {
	schema *gojsonschema.Schema
}

// NewValidator compiles the embedded document schema.
func NewValidator() (*Validator, error) {
	return NewValidatorFromSchema(documentSchema)
}

// NewValidatorFromSchema compiles a caller-supplied schema.
func NewValidatorFromSchema(schema []byte) (*Validator, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schema))
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	return &Validator{schema: s}, nil
}

// Validate returns a *ValidationError if data does not match the schema.
// Malformed JSON is reported as EINVALID.
func (v *Validator) Validate(data []byte) error {
	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return vorhaben.Errorf(vorhaben.EINVALID, "decode document: %v", err)
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		verr.Errors = append(verr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return verr
}
