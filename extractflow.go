// Package extractflow provides a top-level convenience entry point for
// extracting structured records from text with minimal boilerplate.
//
// Usage:
//
//	import "github.com/BaSui01/extractflow"
//
//	person, err := extractflow.Person(ctx, reviewText)
//	people, err := extractflow.People(ctx, articleText)
//
// The API key is read from GROQ_API_KEY unless overridden with [WithAPIKey].
// For anything beyond one-off calls, build an extract.Extractor directly.
package extractflow

import (
	"context"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/BaSui01/extractflow/extract"
	"github.com/BaSui01/extractflow/llm"
	"github.com/BaSui01/extractflow/llm/providers"
	"github.com/BaSui01/extractflow/llm/providers/groq"
	"github.com/BaSui01/extractflow/types"
)

// Option configures the provider built by the convenience functions.
type Option func(*settings)

type settings struct {
	apiKey   string
	model    string
	provider llm.Provider
	logger   *zap.Logger
}

// WithAPIKey overrides the GROQ_API_KEY environment variable.
func WithAPIKey(key string) Option {
	return func(s *settings) { s.apiKey = key }
}

// WithModel overrides the default model.
func WithModel(model string) Option {
	return func(s *settings) { s.model = model }
}

// WithProvider uses a pre-built provider instead of constructing one.
func WithProvider(p llm.Provider) Option {
	return func(s *settings) { s.provider = p }
}

// WithLogger sets a custom zap logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// NewProvider builds the Groq provider the convenience functions use. The
// credential is resolved before any request: a missing key is a configuration
// error, never a backend call.
func NewProvider(opts ...Option) (llm.Provider, error) {
	s := settings{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&s)
	}

	if s.provider != nil {
		return s.provider, nil
	}

	apiKey := s.apiKey
	if apiKey == "" {
		apiKey = os.Getenv("GROQ_API_KEY")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, types.NewError(types.ErrMissingCredential,
			"no API key configured: set GROQ_API_KEY or pass WithAPIKey")
	}

	return groq.New(providers.GroqConfig{
		BaseProviderConfig: providers.BaseProviderConfig{
			APIKey: apiKey,
			Model:  s.model,
		},
	}, s.logger), nil
}

// Person extracts a single person record from text.
func Person(ctx context.Context, text string, opts ...Option) (*extract.Person, error) {
	provider, err := NewProvider(opts...)
	if err != nil {
		return nil, err
	}
	return extract.ExtractOne(ctx, provider, text)
}

// People extracts every person mentioned in text.
func People(ctx context.Context, text string, opts ...Option) (*extract.PersonList, error) {
	provider, err := NewProvider(opts...)
	if err != nil {
		return nil, err
	}
	return extract.ExtractMany(ctx, provider, text)
}
