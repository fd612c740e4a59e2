// Package schemas provides JSON Schema validation for the bodies exchanged
// with the backend API. Schemas are embedded in the binary.
package schemas

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed json/*.schema.json
var files embed.FS

// Name identifies an embedded schema.
type Name string

const (
	JobListings        Name = "job_listings"
	Applications       Name = "applications"
	Profile            Name = "profile"
	ApplicationRequest Name = "application_request"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Schema Name
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s validation failed:\n", ve.Schema))
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or parsing the schema itself
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

var (
	compiledMu sync.Mutex
	compiled   = map[Name]*gojsonschema.Schema{}
)

func load(name Name) (*gojsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()

	if s, ok := compiled[name]; ok {
		return s, nil
	}

	path := "json/" + string(name) + ".schema.json"
	content, err := files.ReadFile(path)
	if err != nil {
		return nil, &SchemaLoadError{Path: path, Message: "schema not embedded", Cause: err}
	}

	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(content))
	if err != nil {
		return nil, &SchemaLoadError{Path: path, Message: "invalid schema", Cause: err}
	}
	compiled[name] = s
	return s, nil
}

// Validate checks a JSON document against the named schema. It returns a
// *ValidationError when the document does not conform.
func Validate(name Name, document []byte) error {
	s, err := load(name)
	if err != nil {
		return err
	}

	result, err := s.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		// the document itself is not parseable JSON
		return &ValidationError{
			Schema: name,
			Errors: []FieldError{{Field: "(root)", Message: err.Error()}},
		}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Schema: name,
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
