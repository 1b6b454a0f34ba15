// Package schema provides JSON Schema building and validation utilities.
//
// The metadata block the model is asked to emit is described once as a
// schema (see validate.MetadataSchema) and used in both directions: the raw
// map is embedded in the outbound prompt so the model knows the expected
// shape, and the compiled form validates what actually came back.
//
//	s := schema.MustCompile(schema.Object(map[string]*schema.Property{
//	    "title": schema.String("Video title"),
//	    "tags":  schema.Array("Search tags", map[string]any{"type": "string"}),
//	}, "title", "tags"))
//
//	err := s.Validate(parsed)
package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema represents a JSON Schema definition.
// It provides both the raw map representation (for serialization/prompts)
// and a compiled validator (for runtime validation).
type Schema struct {
	raw      map[string]any
	compiled *jsonschema.Schema
}

// Raw returns the underlying map[string]any representation.
// This is useful for serialization and embedding in prompts.
func (s *Schema) Raw() map[string]any {
	if s == nil {
		return nil
	}
	return s.raw
}

// Validate validates the given data against the schema.
// Returns nil if valid, or an error describing the validation failure.
func (s *Schema) Validate(data map[string]any) error {
	if s == nil || s.compiled == nil {
		return nil
	}
	err := s.compiled.Validate(data)
	if err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}

// ValidationError wraps a JSON Schema validation error with a cleaner message.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("schema validation failed: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Compile compiles a raw schema map into a Schema with a compiled validator.
// Returns an error if the schema is invalid.
func Compile(raw map[string]any) (*Schema, error) {
	if raw == nil {
		return nil, nil
	}

	// Marshal the schema to JSON for the compiler
	schemaJSON, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	// Unmarshal into the format expected by jsonschema
	schemaData, err := jsonschema.UnmarshalJSON(strings.NewReader(string(schemaJSON)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}

	// Compile the schema
	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", schemaData); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	compiled, err := c.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	return &Schema{
		raw:      raw,
		compiled: compiled,
	}, nil
}

// MustCompile is like Compile but panics on error.
// Use this for schemas defined at init time.
func MustCompile(raw map[string]any) *Schema {
	s, err := Compile(raw)
	if err != nil {
		panic(err)
	}
	return s
}

// -----------------------------------------------------------------------------
// Schema Builders
// -----------------------------------------------------------------------------

// Object creates an object schema with the given properties.
// Pass property names as variadic arguments to mark them as required.
//
// Example:
//
//	schema.Object(map[string]*schema.Property{
//	    "title":      schema.String("Video title"),
//	    "categoryId": schema.String("Category ID").Pattern(`^[0-9]+$`),
//	}, "title", "categoryId")
func Object(properties map[string]*Property, required ...string) map[string]any {
	props := make(map[string]any, len(properties))
	for name, prop := range properties {
		props[name] = prop.build()
	}

	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}

	if len(required) > 0 {
		schema["required"] = required
	}

	return schema
}

// Property represents a property in an object schema.
type Property struct {
	typ         string
	description string
	enum        []any
	constVal    any
	minLength   *int
	maxLength   *int
	pattern     string
	items       map[string]any
}

func (p *Property) build() map[string]any {
	m := map[string]any{}

	if p.typ != "" {
		m["type"] = p.typ
	}
	if p.description != "" {
		m["description"] = p.description
	}
	if len(p.enum) > 0 {
		m["enum"] = p.enum
	}
	if p.constVal != nil {
		m["const"] = p.constVal
	}
	if p.minLength != nil {
		m["minLength"] = *p.minLength
	}
	if p.maxLength != nil {
		m["maxLength"] = *p.maxLength
	}
	if p.pattern != "" {
		m["pattern"] = p.pattern
	}
	if p.items != nil {
		m["items"] = p.items
	}

	return m
}

// String creates a string property.
//
// Example:
//
//	schema.String("Video title")
//	schema.String("Video title").MaxLength(100)
//	schema.String("Default language").Const("en")
func String(description string) *Property {
	return &Property{typ: "string", description: description}
}

// Array creates an array property with the given item schema.
//
// Example:
//
//	// Array of strings
//	schema.Array("Search tags", map[string]any{"type": "string"})
func Array(description string, items map[string]any) *Property {
	return &Property{typ: "array", description: description, items: items}
}

// Enum sets allowed values for the property.
//
// Example:
//
//	schema.String("Privacy").Enum("public", "unlisted", "private")
func (p *Property) Enum(values ...any) *Property {
	p.enum = values
	return p
}

// Const pins the property to a single allowed value.
//
// Example:
//
//	schema.String("Default audio language").Const("en-US")
func (p *Property) Const(value any) *Property {
	p.constVal = value
	return p
}

// Pattern sets a regex pattern for string validation.
//
// Example:
//
//	schema.String("Category ID").Pattern(`^[0-9]+$`)
func (p *Property) Pattern(pattern string) *Property {
	p.pattern = pattern
	return p
}

// MinLength sets the minimum length for string properties.
func (p *Property) MinLength(min int) *Property {
	p.minLength = &min
	return p
}

// MaxLength sets the maximum length for string properties.
//
// Example:
//
//	schema.String("Video title").MaxLength(100)
func (p *Property) MaxLength(max int) *Property {
	p.maxLength = &max
	return p
}
