package llm

import (
	"context"
	"time"

	"github.com/BaSui01/extractflow/types"
)

// ResponseFormat asks the backend to constrain its output shape. Type is one
// of "text", "json_object" or "json_schema"; Schema carries the JSON Schema
// for the "json_schema" mode on backends that support it.
type ResponseFormat struct {
	Type   string `json:"type"`
	Schema any    `json:"json_schema,omitempty"`
}

// ChatRequest is a provider-independent chat completion request.
type ChatRequest struct {
	TraceID   string          `json:"trace_id,omitempty"`
	Model     string          `json:"model,omitempty"`
	Messages  []types.Message `json:"messages"`
	MaxTokens int             `json:"max_tokens,omitempty"`

	// Temperature is a pointer so an explicit 0 (deterministic sampling,
	// the extraction default) is distinguishable from "not set".
	Temperature    *float32          `json:"temperature,omitempty"`
	TopP           float32           `json:"top_p,omitempty"`
	Stop           []string          `json:"stop,omitempty"`
	ResponseFormat *ResponseFormat   `json:"response_format,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

// ChatUsage reports token accounting for a completed request.
type ChatUsage struct {
	PromptTokens     int `json:"prompt_tokens,omitempty"`
	CompletionTokens int `json:"completion_tokens,omitempty"`
	TotalTokens      int `json:"total_tokens,omitempty"`
}

// ChatChoice is one candidate completion.
type ChatChoice struct {
	Index        int           `json:"index"`
	FinishReason string        `json:"finish_reason,omitempty"`
	Message      types.Message `json:"message"`
}

// ChatResponse is a provider-independent chat completion response.
type ChatResponse struct {
	ID        string       `json:"id,omitempty"`
	Provider  string       `json:"provider,omitempty"`
	Model     string       `json:"model"`
	Choices   []ChatChoice `json:"choices"`
	Usage     ChatUsage    `json:"usage,omitempty"`
	CreatedAt time.Time    `json:"created_at,omitempty"`
}

// StreamChunk is one incremental delta of a streaming completion.
type StreamChunk struct {
	ID           string        `json:"id,omitempty"`
	Provider     string        `json:"provider,omitempty"`
	Model        string        `json:"model,omitempty"`
	Index        int           `json:"index,omitempty"`
	Delta        types.Message `json:"delta"`
	FinishReason string        `json:"finish_reason,omitempty"`
	Usage        *ChatUsage    `json:"usage,omitempty"`
	Err          *types.Error  `json:"error,omitempty"`
}

// Float32Ptr returns a pointer to v, for optional request fields.
func Float32Ptr(v float32) *float32 { return &v }

// HealthStatus reports the outcome of a provider health probe.
type HealthStatus struct {
	Healthy bool          `json:"healthy"`
	Latency time.Duration `json:"latency"`
}

// Provider is the uniform adapter interface for hosted LLM backends.
// Each call is a single stateless request/response round trip; no retry or
// backoff is performed at this layer.
type Provider interface {
	// Completion issues a synchronous chat request and blocks until the full
	// response arrives or an error is returned.
	Completion(ctx context.Context, req *ChatRequest) (*ChatResponse, error)

	// Stream issues a streaming chat request and returns a channel of deltas.
	Stream(ctx context.Context, req *ChatRequest) (<-chan StreamChunk, error)

	// HealthCheck performs a lightweight reachability probe.
	HealthCheck(ctx context.Context) (*HealthStatus, error)

	// Name returns the unique provider identifier.
	Name() string
}
