// Package schemas provides JSON Schema validation for structured data crossing
// the model boundary: parsed coaching output and tool-call arguments.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed coaching.schema.json
var coachingSchema string

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ValidateCoaching validates the raw coaching JSON text emitted by the model
// against the coaching result schema.
func ValidateCoaching(doc string) error {
	return runValidation(gojsonschema.NewStringLoader(coachingSchema), gojsonschema.NewStringLoader(doc))
}

// ValidateDocument validates an arbitrary Go value against an in-memory schema.
// Used for tool-call argument validation before dispatch.
func ValidateDocument(schema map[string]any, doc any) error {
	return runValidation(gojsonschema.NewGoLoader(schema), gojsonschema.NewGoLoader(doc))
}

func runValidation(schemaLoader, documentLoader gojsonschema.JSONLoader) error {
	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation failed during load: %w", err)
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
