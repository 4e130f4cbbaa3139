package providers

import "time"

// BaseProviderConfig holds the configuration fields shared by every provider.
// Provider-specific configs embed it so APIKey, BaseURL, Model and Timeout
// are not redefined per provider.
type BaseProviderConfig struct {
	APIKey  string        `json:"api_key" yaml:"api_key"`
	BaseURL string        `json:"base_url" yaml:"base_url"`
	Model   string        `json:"model,omitempty" yaml:"model,omitempty"`
	Timeout time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// GroqConfig configures the Groq provider.
type GroqConfig struct {
	BaseProviderConfig `yaml:",inline"`
}
