// Package schemas validates generated JSON against the embedded tailored-resume schema.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed tailored_resume.schema.json
var tailoredResumeSchema string

const tailoredSchemaName = "tailored_resume.schema.json"

var compiledTailored = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(tailoredResumeSchema))
})

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading the schema or decoding the document
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// Fields returns the distinct failing field paths in order
func (ve *ValidationError) Fields() []string {
	fields := make([]string, 0, len(ve.Errors))
	seen := make(map[string]bool, len(ve.Errors))
	for _, e := range ve.Errors {
		if !seen[e.Field] {
			seen[e.Field] = true
			fields = append(fields, e.Field)
		}
	}
	return fields
}

// TailoredResumeSchema returns the JSON Schema a tailored resume must satisfy
func TailoredResumeSchema() string {
	return tailoredResumeSchema
}

// ValidateTailored validates a JSON document against the tailored-resume schema.
// It returns a *ValidationError listing every violation, or a *SchemaLoadError when the
// document cannot be decoded.
func ValidateTailored(jsonContent string) error {
	schema, err := compiledTailored()
	if err != nil {
		return &SchemaLoadError{
			Path:    tailoredSchemaName,
			Message: "embedded schema is invalid",
			Cause:   err,
		}
	}

	result, err := schema.Validate(gojsonschema.NewStringLoader(jsonContent))
	if err != nil {
		return &SchemaLoadError{
			Path:    tailoredSchemaName,
			Message: "document could not be loaded",
			Cause:   err,
		}
	}
	return resultError(result)
}

func resultError(result *gojsonschema.Result) error {
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
