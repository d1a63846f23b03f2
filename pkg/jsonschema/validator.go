// Package jsonschema validates response bodies against JSON Schema documents.
package jsonschema

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/wesleyorama2/apitopy/dot"
)

// ValidationErrors represents a collection of validation errors
type ValidationErrors []error

// Error implements the error interface for ValidationErrors
func (ve ValidationErrors) Error() string {
	var sb strings.Builder
	for i, err := range ve {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Schema is a compiled schema that can be applied to many documents.
type Schema struct {
	schema *jsonschema.Schema
}

// Compile compiles schema text.
func Compile(schemaStr string) (*Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", strings.NewReader(schemaStr)); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}

	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	return &Schema{schema: schema}, nil
}

// CompileFile reads and compiles a schema file.
func CompileFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	return Compile(string(data))
}

// ValidateValue checks a decoded response. A nil value (empty body) is
// validated as JSON null. The returned errors are nil when v is valid.
func (s *Schema) ValidateValue(v *dot.Value) ValidationErrors {
	return s.validate(v.Interface())
}

func (s *Schema) validate(data interface{}) ValidationErrors {
	err := s.schema.Validate(data)
	if err == nil {
		return nil
	}

	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) {
		return extractValidationErrors(validationErr)
	}
	return ValidationErrors{err}
}

// Validate validates a JSON string against a JSON Schema
// Returns true if the JSON is valid, false otherwise
// If there's an error in the schema or JSON parsing, it returns an error
func Validate(jsonStr, schemaStr string) (bool, error) {
	schema, err := Compile(schemaStr)
	if err != nil {
		return false, err
	}

	var jsonData interface{}
	if err := json.Unmarshal([]byte(jsonStr), &jsonData); err != nil {
		return false, fmt.Errorf("invalid JSON: %w", err)
	}

	return len(schema.validate(jsonData)) == 0, nil
}

// ValidateWithErrors is Validate that also reports why the document is invalid.
func ValidateWithErrors(jsonStr, schemaStr string) (bool, ValidationErrors) {
	schema, err := Compile(schemaStr)
	if err != nil {
		return false, ValidationErrors{err}
	}

	var jsonData interface{}
	if err := json.Unmarshal([]byte(jsonStr), &jsonData); err != nil {
		return false, ValidationErrors{fmt.Errorf("invalid JSON: %w", err)}
	}

	errs := schema.validate(jsonData)
	return len(errs) == 0, errs
}

// extractValidationErrors flattens a jsonschema.ValidationError tree
func extractValidationErrors(err *jsonschema.ValidationError) ValidationErrors {
	var errors ValidationErrors

	if err.Message != "" && len(err.Causes) == 0 {
		errors = append(errors, fmt.Errorf("validation error at %s: %s", locationOf(err), err.Message))
	}

	for _, childErr := range err.Causes {
		errors = append(errors, extractValidationErrors(childErr)...)
	}

	if len(errors) == 0 {
		errors = append(errors, fmt.Errorf("validation error at %s: %s", locationOf(err), err.Message))
	}
	return errors
}

func locationOf(err *jsonschema.ValidationError) string {
	if err.InstanceLocation == "" {
		return "/"
	}
	return err.InstanceLocation
}
