// Package structured provides JSON Schema modeling, generation and
// validation for schema-constrained LLM output.
//
// The schema model (JSONSchema) describes the shape a backend response must
// conform to: field names, types, optionality and natural-language
// descriptions that are forwarded to the model. SchemaGenerator derives a
// schema from a Go type by reflection, honoring `json` and `jsonschema`
// struct tags. DefaultValidator checks an untyped payload against a schema
// and reports field-level errors with JSON paths.
//
// Validation is purely structural: a value that is type-valid but
// semantically implausible (a country that does not exist) passes.
package structured
