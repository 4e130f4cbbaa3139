package extract_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/extractflow/extract"
	"github.com/BaSui01/extractflow/structured"
	"github.com/BaSui01/extractflow/testutil"
	"github.com/BaSui01/extractflow/testutil/fixtures"
	"github.com/BaSui01/extractflow/testutil/mocks"
	"github.com/BaSui01/extractflow/types"
)

func TestNew_NilProvider(t *testing.T) {
	t.Parallel()

	_, err := extract.New[extract.Person](nil)
	assert.Error(t, err)
}

func TestExtract_SinglePerson(t *testing.T) {
	t.Parallel()

	provider := mocks.NewSuccessProvider(fixtures.PayloadSinglePerson)
	person, err := extract.ExtractOne(testutil.TestContext(t), provider, fixtures.ReviewSinglePerson)
	require.NoError(t, err)

	require.NotNil(t, person.Name)
	assert.Equal(t, "Riyadh", *person.Name)
	require.NotNil(t, person.Country)
	assert.Equal(t, "Bangladesh", *person.Country)
	assert.Nil(t, person.LastName, "lastname is not stated in the text")
	assert.Nil(t, person.Email)
}

func TestExtract_NoPersonInformation(t *testing.T) {
	t.Parallel()

	// Text without person information yields a record with every attribute
	// absent; that is a valid result, not an error.
	provider := mocks.NewSuccessProvider(fixtures.PayloadNoPerson)
	person, err := extract.ExtractOne(testutil.TestContext(t), provider, "The weather is nice today.")
	require.NoError(t, err)

	assert.Nil(t, person.Name)
	assert.Nil(t, person.LastName)
	assert.Nil(t, person.Country)
	assert.Nil(t, person.Email)
}

func TestExtract_EmptyObjectPayload(t *testing.T) {
	t.Parallel()

	provider := mocks.NewSuccessProvider(`{}`)
	person, err := extract.ExtractOne(testutil.TestContext(t), provider, "no people here")
	require.NoError(t, err)
	assert.Nil(t, person.Name)
}

func TestExtract_TwoPeople(t *testing.T) {
	t.Parallel()

	provider := mocks.NewSuccessProvider(fixtures.PayloadTwoPeople)
	list, err := extract.ExtractMany(testutil.TestContext(t), provider, fixtures.ReviewTwoPeople)
	require.NoError(t, err)

	require.Len(t, list.People, 2)

	first, second := list.People[0], list.People[1]
	require.NotNil(t, first.Name)
	assert.Equal(t, "Riyadh", *first.Name)
	require.NotNil(t, first.Country)
	assert.Equal(t, "Bangladesh", *first.Country)
	require.NotNil(t, first.Email)
	assert.Equal(t, "riyadhgenai@gmail.com", *first.Email)

	require.NotNil(t, second.Name)
	assert.Equal(t, "Bob", *second.Name)
	require.NotNil(t, second.LastName)
	assert.Equal(t, "Smith", *second.LastName)
	require.NotNil(t, second.Country)
	assert.Equal(t, "USA", *second.Country)
}

func TestExtract_TypeMismatchRejected(t *testing.T) {
	t.Parallel()

	provider := mocks.NewSuccessProvider(`{"name":42,"country":"Bangladesh"}`)
	_, err := extract.ExtractOne(testutil.TestContext(t), provider, fixtures.ReviewSinglePerson)
	require.Error(t, err)

	var verr *structured.ValidationErrors
	require.True(t, errors.As(err, &verr))
	require.NotEmpty(t, verr.Errors)
	assert.Equal(t, "name", verr.Errors[0].Path)
}

func TestExtract_UnknownFieldsDropped(t *testing.T) {
	t.Parallel()

	provider := mocks.NewSuccessProvider(`{"name":"Emily","nickname":"Em","country":"Canada"}`)
	person, err := extract.ExtractOne(testutil.TestContext(t), provider, fixtures.ReviewThirdPerson)
	require.NoError(t, err)

	require.NotNil(t, person.Name)
	assert.Equal(t, "Emily", *person.Name)
	require.NotNil(t, person.Country)
	assert.Equal(t, "Canada", *person.Country)
}

func TestExtract_EmptyTextShortCircuits(t *testing.T) {
	t.Parallel()

	provider := mocks.NewMockProvider()
	person, err := extract.ExtractOne(testutil.TestContext(t), provider, "   \n\t ")
	require.NoError(t, err)

	assert.Nil(t, person.Name)
	assert.Equal(t, 0, provider.CallCount(), "empty input must not reach the backend")
}

func TestExtract_BackendErrorPassedThrough(t *testing.T) {
	t.Parallel()

	backendErr := &types.Error{
		Code:       types.ErrRateLimited,
		Message:    "rate limit exceeded",
		HTTPStatus: 429,
		Retryable:  true,
		Provider:   "mock",
	}
	provider := mocks.NewErrorProvider(backendErr)

	_, err := extract.ExtractOne(testutil.TestContext(t), provider, fixtures.ReviewSinglePerson)
	require.Error(t, err)

	var terr *types.Error
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, types.ErrRateLimited, terr.Code, "backend errors pass through unmodified")
	assert.Equal(t, 1, provider.CallCount(), "no retry at this layer")
}

func TestExtract_MarkdownFencedReply(t *testing.T) {
	t.Parallel()

	provider := mocks.NewSuccessProvider("Here is the extraction:\n```json\n" +
		fixtures.PayloadSinglePerson + "\n```\nLet me know if you need more.")
	person, err := extract.ExtractOne(testutil.TestContext(t), provider, fixtures.ReviewSinglePerson)
	require.NoError(t, err)

	require.NotNil(t, person.Name)
	assert.Equal(t, "Riyadh", *person.Name)
}

func TestExtract_RequestShape(t *testing.T) {
	t.Parallel()

	provider := mocks.NewSuccessProvider(fixtures.PayloadSinglePerson)
	extractor, err := extract.New[extract.Person](provider,
		extract.WithModel("llama-3.1-8b-instant"),
		extract.WithMaxTokens(512),
	)
	require.NoError(t, err)

	_, err = extractor.Extract(testutil.TestContext(t), fixtures.ReviewSinglePerson)
	require.NoError(t, err)

	call := provider.LastCall()
	require.NotNil(t, call)
	req := call.Request

	assert.Equal(t, "llama-3.1-8b-instant", req.Model)
	assert.Equal(t, 512, req.MaxTokens)
	assert.NotEmpty(t, req.TraceID)
	require.NotNil(t, req.Temperature)
	assert.Zero(t, *req.Temperature, "extraction defaults to deterministic sampling")

	require.Len(t, req.Messages, 2)
	system := req.Messages[0]
	assert.Equal(t, types.RoleSystem, system.Role)
	assert.Contains(t, system.Content, "expert extraction algorithm")
	assert.Contains(t, system.Content, "return null")
	assert.Contains(t, system.Content, `"lastname"`, "schema is embedded in the system prompt")

	user := req.Messages[1]
	assert.Equal(t, types.RoleUser, user.Role)
	assert.Equal(t, fixtures.ReviewSinglePerson, user.Content, "input text is sent verbatim")
}

func TestExtract_TemperatureOverride(t *testing.T) {
	t.Parallel()

	provider := mocks.NewSuccessProvider(fixtures.PayloadSinglePerson)
	_, err := extract.ExtractOne(testutil.TestContext(t), provider, fixtures.ReviewSinglePerson,
		extract.WithTemperature(0.7))
	require.NoError(t, err)

	req := provider.LastCall().Request
	require.NotNil(t, req.Temperature)
	assert.InDelta(t, 0.7, float64(*req.Temperature), 0.001)
}

func TestExtract_ListRequiresPeopleField(t *testing.T) {
	t.Parallel()

	// A reply without the required "people" field is a schema violation.
	provider := mocks.NewSuccessProvider(`{}`)
	_, err := extract.ExtractMany(testutil.TestContext(t), provider, fixtures.ReviewTwoPeople)
	require.Error(t, err)

	var verr *structured.ValidationErrors
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, err.Error(), "people")
}

func TestExtractor_Schema(t *testing.T) {
	t.Parallel()

	extractor, err := extract.New[extract.Person](mocks.NewMockProvider())
	require.NoError(t, err)

	schema := extractor.Schema()
	require.NotNil(t, schema)
	assert.Equal(t, structured.TypeObject, schema.Type)
	assert.Len(t, schema.Properties, 4)
	assert.Empty(t, schema.Required, "every person attribute is optional")
	assert.Equal(t, "The name of the person", schema.Properties["name"].Description)
}
