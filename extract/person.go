package extract

import (
	"context"

	"github.com/BaSui01/extractflow/llm"
)

// Person is one individual mentioned in a piece of text. Every attribute is
// optional: a nil field means the source text does not state it, which is a
// valid result, never an error. The jsonschema descriptions are forwarded to
// the backend as part of the schema and guide what the model extracts.
type Person struct {
	Name     *string `json:"name,omitempty" jsonschema:"description=The name of the person"`
	LastName *string `json:"lastname,omitempty" jsonschema:"description=The lastname of the person if known"`
	Country  *string `json:"country,omitempty" jsonschema:"description=The country of the person if known"`
	Email    *string `json:"email,omitempty" jsonschema:"description=The email of the person if known"`
}

// PersonList collects every distinct person mentioned in a text. Order
// follows appearance in the source but is not guaranteed stable across calls.
type PersonList struct {
	People []Person `json:"people" jsonschema:"required,description=One entry per distinct person mentioned in the text"`
}

// ExtractOne extracts a single Person record from text.
func ExtractOne(ctx context.Context, provider llm.Provider, text string, opts ...Option) (*Person, error) {
	e, err := New[Person](provider, opts...)
	if err != nil {
		return nil, err
	}
	return e.Extract(ctx, text)
}

// ExtractMany extracts every person mentioned in text.
func ExtractMany(ctx context.Context, provider llm.Provider, text string, opts ...Option) (*PersonList, error) {
	e, err := New[PersonList](provider, opts...)
	if err != nil {
		return nil, err
	}
	return e.Extract(ctx, text)
}
