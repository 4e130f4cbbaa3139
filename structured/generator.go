package structured

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// SchemaGenerator generates a JSONSchema from a Go type via reflection.
type SchemaGenerator struct {
	// visited tracks types currently being processed to handle recursion.
	visited map[reflect.Type]bool
}

// NewSchemaGenerator creates a new SchemaGenerator instance.
func NewSchemaGenerator() *SchemaGenerator {
	return &SchemaGenerator{
		visited: make(map[reflect.Type]bool),
	}
}

// GenerateSchema generates a JSON Schema from a Go type.
// It supports structs, slices, maps, pointers and primitive types. Struct
// fields use the `json` tag for the property name and the `jsonschema` tag
// for constraints.
//
// Supported jsonschema tag options:
//   - required: mark the field as required
//   - enum=a|b|c: enum values
//   - minimum=0 / maximum=100: numeric bounds
//   - minLength=1 / maxLength=100: string length bounds
//   - minItems=1 / maxItems=10: array length bounds
//   - pattern=^[a-z]+$: regex pattern for strings
//   - format=email: string format (email, uri, uuid, date-time, date)
//   - description=...: field description, forwarded to the extraction
//     backend; must be the last option since it may contain commas
func (g *SchemaGenerator) GenerateSchema(t reflect.Type) (*JSONSchema, error) {
	// Reset the visited map for each top-level call.
	g.visited = make(map[reflect.Type]bool)
	return g.generateSchema(t)
}

func (g *SchemaGenerator) generateSchema(t reflect.Type) (*JSONSchema, error) {
	if t == nil {
		return nil, fmt.Errorf("cannot generate schema for nil type")
	}

	if t.Kind() == reflect.Ptr {
		return g.generateSchema(t.Elem())
	}

	if g.visited[t] {
		// Recursive type: return a bare object placeholder.
		return &JSONSchema{Type: TypeObject}, nil
	}

	switch t.Kind() {
	case reflect.String:
		return NewStringSchema(), nil

	case reflect.Bool:
		return NewBooleanSchema(), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return NewIntegerSchema(), nil

	case reflect.Float32, reflect.Float64:
		return NewNumberSchema(), nil

	case reflect.Slice, reflect.Array:
		elemSchema, err := g.generateSchema(t.Elem())
		if err != nil {
			return nil, fmt.Errorf("failed to generate schema for array element: %w", err)
		}
		return NewArraySchema(elemSchema), nil

	case reflect.Map:
		// Maps become open objects; property names are unknown statically.
		if _, err := g.generateSchema(t.Elem()); err != nil {
			return nil, fmt.Errorf("failed to generate schema for map value: %w", err)
		}
		allowed := true
		schema := NewObjectSchema()
		schema.AdditionalProperties = &allowed
		return schema, nil

	case reflect.Struct:
		return g.generateStructSchema(t)

	case reflect.Interface:
		// Interfaces map to any type.
		return &JSONSchema{}, nil

	default:
		return nil, fmt.Errorf("unsupported type: %s", t.Kind())
	}
}

func (g *SchemaGenerator) generateStructSchema(t reflect.Type) (*JSONSchema, error) {
	g.visited[t] = true
	defer delete(g.visited, t)

	schema := NewObjectSchema().WithTitle(t.Name())

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name := jsonFieldName(field)
		if name == "" {
			continue
		}

		fieldSchema, err := g.generateSchema(field.Type)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}

		required, err := applySchemaTag(fieldSchema, field.Tag.Get("jsonschema"))
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}

		schema.AddProperty(name, fieldSchema)
		if required {
			schema.AddRequired(name)
		}
	}

	return schema, nil
}

// jsonFieldName resolves the JSON property name for a struct field.
// Fields tagged json:"-" are skipped.
func jsonFieldName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" {
		return field.Name
	}
	name := strings.Split(tag, ",")[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

// applySchemaTag parses a jsonschema struct tag into schema constraints.
// It returns whether the field is required.
func applySchemaTag(schema *JSONSchema, tag string) (bool, error) {
	if tag == "" {
		return false, nil
	}

	// description may contain commas, so split it off first; everything
	// after "description=" belongs to the description.
	if idx := strings.Index(tag, "description="); idx >= 0 {
		schema.Description = tag[idx+len("description="):]
		tag = strings.TrimSuffix(tag[:idx], ",")
	}

	required := false
	for _, opt := range strings.Split(tag, ",") {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			continue
		}
		if opt == "required" {
			required = true
			continue
		}

		key, value, found := strings.Cut(opt, "=")
		if !found {
			return false, fmt.Errorf("invalid jsonschema option %q", opt)
		}

		switch key {
		case "enum":
			values := strings.Split(value, "|")
			schema.Enum = make([]any, 0, len(values))
			for _, v := range values {
				schema.Enum = append(schema.Enum, v)
			}
		case "format":
			schema.Format = StringFormat(value)
		case "pattern":
			schema.Pattern = value
		case "minLength":
			n, err := strconv.Atoi(value)
			if err != nil {
				return false, fmt.Errorf("invalid minLength %q", value)
			}
			schema.MinLength = &n
		case "maxLength":
			n, err := strconv.Atoi(value)
			if err != nil {
				return false, fmt.Errorf("invalid maxLength %q", value)
			}
			schema.MaxLength = &n
		case "minItems":
			n, err := strconv.Atoi(value)
			if err != nil {
				return false, fmt.Errorf("invalid minItems %q", value)
			}
			schema.MinItems = &n
		case "maxItems":
			n, err := strconv.Atoi(value)
			if err != nil {
				return false, fmt.Errorf("invalid maxItems %q", value)
			}
			schema.MaxItems = &n
		case "minimum":
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return false, fmt.Errorf("invalid minimum %q", value)
			}
			schema.Minimum = &f
		case "maximum":
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return false, fmt.Errorf("invalid maximum %q", value)
			}
			schema.Maximum = &f
		default:
			return false, fmt.Errorf("unknown jsonschema option %q", key)
		}
	}

	return required, nil
}
