// Package groq implements the Groq LLM provider.
// Groq exposes an OpenAI-compatible API at api.groq.com/openai/v1, so the
// implementation is a thin configuration of the openaicompat base.
package groq

import (
	"go.uber.org/zap"

	"github.com/BaSui01/extractflow/llm/providers"
	"github.com/BaSui01/extractflow/llm/providers/openaicompat"
)

// DefaultBaseURL is the Groq OpenAI-compatible endpoint root.
const DefaultBaseURL = "https://api.groq.com/openai/v1"

// DefaultModel is used when neither request nor config specify a model.
const DefaultModel = "llama-3.1-8b-instant"

// Provider implements llm.Provider for Groq.
type Provider struct {
	*openaicompat.Provider
}

// New creates a new Groq provider instance.
func New(cfg providers.GroqConfig, logger *zap.Logger) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Provider{
		Provider: openaicompat.New(openaicompat.Config{
			ProviderName:  "groq",
			APIKey:        cfg.APIKey,
			BaseURL:       cfg.BaseURL,
			DefaultModel:  cfg.Model,
			FallbackModel: DefaultModel,
			Timeout:       cfg.Timeout,
		}, logger),
	}
}
