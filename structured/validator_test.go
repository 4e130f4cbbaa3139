package structured

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func personSchema(t *testing.T) *JSONSchema {
	t.Helper()
	schema, err := NewSchemaGenerator().GenerateSchema(reflect.TypeOf(person{}))
	require.NoError(t, err)
	return schema
}

func TestValidate_ValidPayloads(t *testing.T) {
	t.Parallel()

	schema := personSchema(t)
	validator := NewValidator()

	tests := []struct {
		name string
		json string
	}{
		{"all fields present", `{"name":"Riyadh","lastname":null,"country":"Bangladesh","email":"riyadhgenai@gmail.com"}`},
		{"all fields null", `{"name":null,"lastname":null,"country":null,"email":null}`},
		{"empty object", `{}`},
		{"unknown fields tolerated", `{"name":"Bob","nickname":"Bobby"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, validator.Validate([]byte(tt.json), schema))
		})
	}
}

func TestValidate_TypeMismatch(t *testing.T) {
	t.Parallel()

	schema := personSchema(t)
	validator := NewValidator()

	err := validator.Validate([]byte(`{"name":42,"country":["Bangladesh"]}`), schema)
	require.Error(t, err)

	verr, ok := err.(*ValidationErrors)
	require.True(t, ok)
	require.Len(t, verr.Errors, 2)

	paths := []string{verr.Errors[0].Path, verr.Errors[1].Path}
	assert.ElementsMatch(t, []string{"name", "country"}, paths)
}

func TestValidate_RequiredField(t *testing.T) {
	t.Parallel()

	schema, err := NewSchemaGenerator().GenerateSchema(reflect.TypeOf(personList{}))
	require.NoError(t, err)
	validator := NewValidator()

	err = validator.Validate([]byte(`{}`), schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "people")

	// Explicit null does not satisfy a required field either.
	err = validator.Validate([]byte(`{"people":null}`), schema)
	require.Error(t, err)

	assert.NoError(t, validator.Validate([]byte(`{"people":[]}`), schema))
}

func TestValidate_NestedArrayPaths(t *testing.T) {
	t.Parallel()

	schema, err := NewSchemaGenerator().GenerateSchema(reflect.TypeOf(personList{}))
	require.NoError(t, err)
	validator := NewValidator()

	err = validator.Validate([]byte(`{"people":[{"name":"Riyadh"},{"name":7}]}`), schema)
	require.Error(t, err)

	verr, ok := err.(*ValidationErrors)
	require.True(t, ok)
	require.Len(t, verr.Errors, 1)
	assert.Equal(t, "people[1].name", verr.Errors[0].Path)
}

func TestValidate_StringConstraints(t *testing.T) {
	t.Parallel()

	validator := NewValidator()
	schema := NewObjectSchema().
		AddProperty("email", NewStringSchema().WithFormat(FormatEmail)).
		AddProperty("code", NewStringSchema().WithMinLength(2).WithMaxLength(4))

	assert.NoError(t, validator.Validate([]byte(`{"email":"a@b.io","code":"abc"}`), schema))

	err := validator.Validate([]byte(`{"email":"not-an-email","code":"toolong"}`), schema)
	require.Error(t, err)
	verr := err.(*ValidationErrors)
	assert.Len(t, verr.Errors, 2)
}

func TestValidate_Enum(t *testing.T) {
	t.Parallel()

	validator := NewValidator()
	schema := NewObjectSchema().
		AddProperty("status", NewStringSchema().WithEnum("success", "failure"))

	assert.NoError(t, validator.Validate([]byte(`{"status":"success"}`), schema))
	assert.Error(t, validator.Validate([]byte(`{"status":"unknown"}`), schema))
}

func TestValidate_AdditionalPropertiesForbidden(t *testing.T) {
	t.Parallel()

	validator := NewValidator()
	closed := false
	schema := NewObjectSchema().
		AddProperty("name", NewStringSchema())
	schema.AdditionalProperties = &closed

	err := validator.Validate([]byte(`{"name":"ok","extra":1}`), schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extra")
}

func TestValidate_IntegerRejectsFraction(t *testing.T) {
	t.Parallel()

	validator := NewValidator()
	schema := NewObjectSchema().AddProperty("age", NewIntegerSchema())

	assert.NoError(t, validator.Validate([]byte(`{"age":30}`), schema))
	assert.Error(t, validator.Validate([]byte(`{"age":30.5}`), schema))
}

func TestValidate_InvalidJSON(t *testing.T) {
	t.Parallel()

	err := NewValidator().Validate([]byte(`{truncated`), NewObjectSchema())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestValidate_NilSchemaIsNoop(t *testing.T) {
	t.Parallel()

	assert.NoError(t, NewValidator().Validate([]byte(`"anything"`), nil))
}
