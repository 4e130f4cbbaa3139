package structured

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"
)

// SchemaValidator validates JSON data against a JSONSchema.
type SchemaValidator interface {
	Validate(data []byte, schema *JSONSchema) error
}

// ParseError represents a validation error with a JSON field path.
type ParseError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationErrors aggregates multiple validation errors. It is the error
// type returned when a backend payload cannot be coerced to the declared
// schema.
type ValidationErrors struct {
	Errors []ParseError `json:"errors"`
}

// Error implements the error interface.
func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var msgs []string
	for _, err := range e.Errors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed with %d errors: %s", len(e.Errors), strings.Join(msgs, "; "))
}

// DefaultValidator is the default implementation of SchemaValidator.
type DefaultValidator struct {
	formatValidators map[StringFormat]func(string) bool
}

// NewValidator creates a new DefaultValidator with built-in format validators.
func NewValidator() *DefaultValidator {
	v := &DefaultValidator{
		formatValidators: make(map[StringFormat]func(string) bool),
	}
	v.registerBuiltinFormats()
	return v
}

func (v *DefaultValidator) registerBuiltinFormats() {
	v.formatValidators[FormatEmail] = func(s string) bool {
		pattern := `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
		matched, _ := regexp.MatchString(pattern, s)
		return matched
	}
	v.formatValidators[FormatURI] = func(s string) bool {
		pattern := `^[a-zA-Z][a-zA-Z0-9+.-]*://`
		matched, _ := regexp.MatchString(pattern, s)
		return matched
	}
	v.formatValidators[FormatUUID] = func(s string) bool {
		pattern := `^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`
		matched, _ := regexp.MatchString(pattern, s)
		return matched
	}
	v.formatValidators[FormatDateTime] = func(s string) bool {
		pattern := `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(.\d+)?(Z|[+-]\d{2}:\d{2})?$`
		matched, _ := regexp.MatchString(pattern, s)
		return matched
	}
	v.formatValidators[FormatDate] = func(s string) bool {
		pattern := `^\d{4}-\d{2}-\d{2}$`
		matched, _ := regexp.MatchString(pattern, s)
		return matched
	}
}

// RegisterFormat registers a custom format validator.
func (v *DefaultValidator) RegisterFormat(format StringFormat, validator func(string) bool) {
	v.formatValidators[format] = validator
}

// Validate validates JSON data against a schema.
func (v *DefaultValidator) Validate(data []byte, schema *JSONSchema) error {
	if schema == nil {
		return nil
	}

	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return &ValidationErrors{
			Errors: []ParseError{{Path: "", Message: fmt.Sprintf("invalid JSON: %v", err)}},
		}
	}

	var errors []ParseError
	v.validateValue(value, schema, "", &errors)

	if len(errors) > 0 {
		return &ValidationErrors{Errors: errors}
	}
	return nil
}

func (v *DefaultValidator) validateValue(value any, schema *JSONSchema, path string, errors *[]ParseError) {
	if schema == nil {
		return
	}

	// null is valid for any non-required position; required-ness is checked
	// at the enclosing object, so a literal null never fails the type check.
	// It represents "attribute not stated in the source text".
	if value == nil {
		return
	}

	if len(schema.Enum) > 0 {
		found := false
		for _, enumVal := range schema.Enum {
			if equalValues(value, enumVal) {
				found = true
				break
			}
		}
		if !found {
			*errors = append(*errors, ParseError{
				Path:    path,
				Message: fmt.Sprintf("value must be one of: %v", schema.Enum),
			})
			return
		}
	}

	switch schema.Type {
	case TypeString:
		v.validateString(value, schema, path, errors)
	case TypeNumber:
		v.validateNumber(value, schema, path, errors, false)
	case TypeInteger:
		v.validateNumber(value, schema, path, errors, true)
	case TypeBoolean:
		if _, ok := value.(bool); !ok {
			*errors = append(*errors, ParseError{
				Path:    path,
				Message: fmt.Sprintf("expected boolean, got %s", jsonTypeName(value)),
			})
		}
	case TypeObject:
		v.validateObject(value, schema, path, errors)
	case TypeArray:
		v.validateArray(value, schema, path, errors)
	case TypeNull:
		*errors = append(*errors, ParseError{
			Path:    path,
			Message: fmt.Sprintf("expected null, got %s", jsonTypeName(value)),
		})
	}
}

func (v *DefaultValidator) validateString(value any, schema *JSONSchema, path string, errors *[]ParseError) {
	s, ok := value.(string)
	if !ok {
		*errors = append(*errors, ParseError{
			Path:    path,
			Message: fmt.Sprintf("expected string, got %s", jsonTypeName(value)),
		})
		return
	}

	if schema.MinLength != nil && len(s) < *schema.MinLength {
		*errors = append(*errors, ParseError{
			Path:    path,
			Message: fmt.Sprintf("string length %d is less than minimum %d", len(s), *schema.MinLength),
		})
	}
	if schema.MaxLength != nil && len(s) > *schema.MaxLength {
		*errors = append(*errors, ParseError{
			Path:    path,
			Message: fmt.Sprintf("string length %d exceeds maximum %d", len(s), *schema.MaxLength),
		})
	}
	if schema.Pattern != "" {
		matched, err := regexp.MatchString(schema.Pattern, s)
		if err != nil || !matched {
			*errors = append(*errors, ParseError{
				Path:    path,
				Message: fmt.Sprintf("string does not match pattern %q", schema.Pattern),
			})
		}
	}
	if schema.Format != "" {
		if validate, ok := v.formatValidators[schema.Format]; ok && !validate(s) {
			*errors = append(*errors, ParseError{
				Path:    path,
				Message: fmt.Sprintf("string does not match format %q", schema.Format),
			})
		}
	}
}

func (v *DefaultValidator) validateNumber(value any, schema *JSONSchema, path string, errors *[]ParseError, integer bool) {
	f, ok := value.(float64)
	if !ok {
		want := "number"
		if integer {
			want = "integer"
		}
		*errors = append(*errors, ParseError{
			Path:    path,
			Message: fmt.Sprintf("expected %s, got %s", want, jsonTypeName(value)),
		})
		return
	}

	if integer && f != math.Trunc(f) {
		*errors = append(*errors, ParseError{
			Path:    path,
			Message: fmt.Sprintf("expected integer, got %v", f),
		})
		return
	}

	if schema.Minimum != nil && f < *schema.Minimum {
		*errors = append(*errors, ParseError{
			Path:    path,
			Message: fmt.Sprintf("value %v is less than minimum %v", f, *schema.Minimum),
		})
	}
	if schema.Maximum != nil && f > *schema.Maximum {
		*errors = append(*errors, ParseError{
			Path:    path,
			Message: fmt.Sprintf("value %v exceeds maximum %v", f, *schema.Maximum),
		})
	}
}

func (v *DefaultValidator) validateObject(value any, schema *JSONSchema, path string, errors *[]ParseError) {
	obj, ok := value.(map[string]any)
	if !ok {
		*errors = append(*errors, ParseError{
			Path:    path,
			Message: fmt.Sprintf("expected object, got %s", jsonTypeName(value)),
		})
		return
	}

	for _, required := range schema.Required {
		val, present := obj[required]
		if !present || val == nil {
			*errors = append(*errors, ParseError{
				Path:    joinPath(path, required),
				Message: "required field is missing",
			})
		}
	}

	for name, propSchema := range schema.Properties {
		propValue, present := obj[name]
		if !present {
			continue
		}
		v.validateValue(propValue, propSchema, joinPath(path, name), errors)
	}

	// Unknown fields are dropped at unmarshal time, not rejected, unless the
	// schema explicitly forbids them.
	if schema.AdditionalProperties != nil && !*schema.AdditionalProperties {
		for name := range obj {
			if _, declared := schema.Properties[name]; !declared {
				*errors = append(*errors, ParseError{
					Path:    joinPath(path, name),
					Message: "unexpected field",
				})
			}
		}
	}
}

func (v *DefaultValidator) validateArray(value any, schema *JSONSchema, path string, errors *[]ParseError) {
	arr, ok := value.([]any)
	if !ok {
		*errors = append(*errors, ParseError{
			Path:    path,
			Message: fmt.Sprintf("expected array, got %s", jsonTypeName(value)),
		})
		return
	}

	if schema.MinItems != nil && len(arr) < *schema.MinItems {
		*errors = append(*errors, ParseError{
			Path:    path,
			Message: fmt.Sprintf("array length %d is less than minimum %d", len(arr), *schema.MinItems),
		})
	}
	if schema.MaxItems != nil && len(arr) > *schema.MaxItems {
		*errors = append(*errors, ParseError{
			Path:    path,
			Message: fmt.Sprintf("array length %d exceeds maximum %d", len(arr), *schema.MaxItems),
		})
	}

	if schema.Items != nil {
		for i, item := range arr {
			v.validateValue(item, schema.Items, fmt.Sprintf("%s[%d]", path, i), errors)
		}
	}
}

func equalValues(a, b any) bool {
	// JSON numbers decode as float64; compare numerics loosely.
	af, aok := a.(float64)
	if bi, ok := b.(int); ok && aok {
		return af == float64(bi)
	}
	return a == b
}

func jsonTypeName(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", value)
	}
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
