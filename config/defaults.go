package config

import "time"

// Default backend settings. Groq speaks the OpenAI wire format.
const (
	DefaultProvider = "groq"
	DefaultModel    = "llama-3.1-8b-instant"
	DefaultTimeout  = 30 * time.Second
)

// DefaultConfig returns the built-in defaults. YAML and env values override
// these during Load.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider: DefaultProvider,
			Model:    DefaultModel,
			Timeout:  DefaultTimeout,
		},
		Log: LogConfig{
			Level:       "info",
			Format:      "console",
			OutputPaths: []string{"stderr"},
		},
		Metrics: MetricsConfig{
			Enabled: false,
		},
	}
}
