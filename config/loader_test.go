package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/extractflow/types"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, "groq", cfg.LLM.Provider)
	assert.Equal(t, "llama-3.1-8b-instant", cfg.LLM.Model)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Empty(t, cfg.LLM.APIKey)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfigFile(t, `
llm:
  api_key: file-key
  model: llama-3.3-70b-versatile
  timeout: 10s
  max_tokens: 1024
log:
  level: debug
  format: json
metrics:
  enabled: true
`)

	cfg, err := NewLoader().WithConfigPath(path).Load()
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.LLM.APIKey)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.LLM.Model)
	assert.Equal(t, 10*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 1024, cfg.LLM.MaxTokens)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")

	cfg, err := NewLoader().
		WithConfigPath(filepath.Join(t.TempDir(), "does-not-exist.yaml")).
		Load()
	require.NoError(t, err)
	assert.Equal(t, "groq", cfg.LLM.Provider)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeConfigFile(t, "llm: [not a mapping")

	_, err := NewLoader().WithConfigPath(path).Load()
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
llm:
  model: from-file
`)
	t.Setenv("EXTRACTFLOW_LLM_MODEL", "from-env")
	t.Setenv("EXTRACTFLOW_LLM_TIMEOUT", "5s")
	t.Setenv("EXTRACTFLOW_LOG_LEVEL", "warn")
	t.Setenv("EXTRACTFLOW_METRICS_ENABLED", "true")

	cfg, err := NewLoader().WithConfigPath(path).Load()
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.LLM.Model)
	assert.Equal(t, 5*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_GroqKeyFallback(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "groq-env-key")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, "groq-env-key", cfg.LLM.APIKey)
}

func TestLoad_SpecificKeyWinsOverGroqKey(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "generic")
	t.Setenv("EXTRACTFLOW_LLM_API_KEY", "specific")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, "specific", cfg.LLM.APIKey)
}

func TestLoad_CustomEnvPrefix(t *testing.T) {
	t.Setenv("MYAPP_LLM_MODEL", "custom-model")

	cfg, err := NewLoader().WithEnvPrefix("MYAPP").Load()
	require.NoError(t, err)
	assert.Equal(t, "custom-model", cfg.LLM.Model)
}

func TestLoad_ValidatorRejects(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")

	_, err := NewLoader().
		WithValidator(func(c *Config) error { return c.ValidateCredential() }).
		Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MISSING_CREDENTIAL")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"empty provider", func(c *Config) { c.LLM.Provider = "" }, true},
		{"negative timeout", func(c *Config) { c.LLM.Timeout = -time.Second }, true},
		{"negative max tokens", func(c *Config) { c.LLM.MaxTokens = -1 }, true},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"json log format", func(c *Config) { c.Log.Format = "json" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, types.ErrInvalidConfig, types.GetErrorCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateCredential(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	err := cfg.ValidateCredential()
	require.Error(t, err)
	assert.Equal(t, types.ErrMissingCredential, types.GetErrorCode(err))
	assert.True(t, types.IsConfigError(err), "missing credential is a config error, not a backend error")

	cfg.LLM.APIKey = "gsk_test"
	assert.NoError(t, cfg.ValidateCredential())

	cfg.LLM.APIKey = "   "
	assert.Error(t, cfg.ValidateCredential(), "whitespace-only key is missing")
}

func TestMustLoad_PanicsOnBadFile(t *testing.T) {
	path := writeConfigFile(t, "llm: [broken")
	assert.Panics(t, func() { MustLoad(path) })
}
