package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BaSui01/extractflow/internal/metrics"
	"github.com/BaSui01/extractflow/llm"
	"github.com/BaSui01/extractflow/structured"
	"github.com/BaSui01/extractflow/types"
)

// extractionInstruction is the fixed system instruction sent with every
// extraction request. The model must never fabricate attribute values.
const extractionInstruction = "You are an expert extraction algorithm. " +
	"Only extract relevant information from the text. " +
	"If you do not know the value of an attribute asked to extract, " +
	"return null for the attribute's value."

// Option configures an Extractor.
type Option func(*options)

type options struct {
	model       string
	temperature *float32
	maxTokens   int
	logger      *zap.Logger
	metrics     *metrics.Collector
}

// WithModel overrides the provider's default model.
func WithModel(model string) Option {
	return func(o *options) { o.model = model }
}

// WithTemperature overrides the default sampling temperature of 0.
func WithTemperature(t float32) Option {
	return func(o *options) { o.temperature = &t }
}

// WithMaxTokens caps the completion length.
func WithMaxTokens(n int) Option {
	return func(o *options) { o.maxTokens = n }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMetrics wires a metrics collector. Extraction runs without one by
// default.
func WithMetrics(collector *metrics.Collector) Option {
	return func(o *options) { o.metrics = collector }
}

// Extractor sends text to an LLM backend and returns validated records of
// type T. It holds no mutable state; each Extract call is an independent
// round trip, so a single Extractor is safe for concurrent use.
type Extractor[T any] struct {
	provider   llm.Provider
	schema     *structured.JSONSchema
	schemaJSON string
	schemaName string
	validator  structured.SchemaValidator
	logger     *zap.Logger
	metrics    *metrics.Collector

	model       string
	temperature float32
	maxTokens   int
}

// New creates an Extractor for type T. The JSON Schema for T is generated by
// reflection from its json and jsonschema struct tags.
func New[T any](provider llm.Provider, opts ...Option) (*Extractor[T], error) {
	if provider == nil {
		return nil, fmt.Errorf("provider cannot be nil")
	}

	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	var zero T
	t := reflect.TypeOf(zero)
	schema, err := structured.NewSchemaGenerator().GenerateSchema(t)
	if err != nil {
		return nil, fmt.Errorf("failed to generate schema for %T: %w", zero, err)
	}

	schemaJSON, err := schema.ToJSONIndent()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema for %T: %w", zero, err)
	}

	// Deterministic output by default: extraction wants the same record for
	// the same text, not creative variation.
	temperature := float32(0)
	if o.temperature != nil {
		temperature = *o.temperature
	}

	schemaName := schema.Title
	if schemaName == "" {
		schemaName = t.String()
	}

	return &Extractor[T]{
		provider:    provider,
		schema:      schema,
		schemaJSON:  string(schemaJSON),
		schemaName:  schemaName,
		validator:   structured.NewValidator(),
		logger:      o.logger,
		metrics:     o.metrics,
		model:       o.model,
		temperature: temperature,
		maxTokens:   o.maxTokens,
	}, nil
}

// Schema returns the generated JSON Schema for T.
func (e *Extractor[T]) Schema() *structured.JSONSchema {
	return e.schema
}

// Extract sends text to the backend and returns the validated record.
// Empty or whitespace-only input short-circuits to a zero-value record (all
// attributes absent) without a network call. Backend errors are returned
// unmodified; no retry is attempted at this layer.
func (e *Extractor[T]) Extract(ctx context.Context, text string) (*T, error) {
	if strings.TrimSpace(text) == "" {
		return new(T), nil
	}

	traceID := uuid.NewString()
	req := &llm.ChatRequest{
		TraceID: traceID,
		Model:   e.model,
		Messages: []types.Message{
			types.NewSystemMessage(e.buildSystemPrompt()),
			types.NewUserMessage(text),
		},
		Temperature: llm.Float32Ptr(e.temperature),
		MaxTokens:   e.maxTokens,
	}

	start := time.Now()
	resp, err := e.provider.Completion(ctx, req)
	elapsed := time.Since(start)

	if err != nil {
		e.metrics.ObserveExtraction(e.schemaName, metrics.OutcomeBackendError, elapsed)
		e.logger.Warn("extraction backend call failed",
			zap.String("trace_id", traceID),
			zap.String("provider", e.provider.Name()),
			zap.Error(err),
		)
		return nil, err
	}

	if len(resp.Choices) == 0 {
		e.metrics.ObserveExtraction(e.schemaName, metrics.OutcomeBackendError, elapsed)
		return nil, &types.Error{
			Code:     types.ErrUpstreamError,
			Message:  "backend returned no choices",
			Provider: e.provider.Name(),
		}
	}

	e.metrics.AddTokens(e.provider.Name(), resp.Usage.PromptTokens, resp.Usage.CompletionTokens)

	raw := resp.Choices[0].Message.Content
	payload := extractJSON(raw)

	if err := e.validator.Validate([]byte(payload), e.schema); err != nil {
		e.metrics.ObserveExtraction(e.schemaName, metrics.OutcomeValidationError, elapsed)
		e.metrics.IncValidationFailure(e.schemaName)
		e.logger.Warn("backend payload failed schema validation",
			zap.String("trace_id", traceID),
			zap.String("schema", e.schemaName),
			zap.Error(err),
		)
		return nil, err
	}

	var value T
	if err := json.Unmarshal([]byte(payload), &value); err != nil {
		e.metrics.ObserveExtraction(e.schemaName, metrics.OutcomeValidationError, elapsed)
		e.metrics.IncValidationFailure(e.schemaName)
		return nil, &structured.ValidationErrors{
			Errors: []structured.ParseError{{Message: fmt.Sprintf("JSON parse error: %v", err)}},
		}
	}

	e.metrics.ObserveExtraction(e.schemaName, metrics.OutcomeOK, elapsed)
	e.logger.Debug("extraction completed",
		zap.String("trace_id", traceID),
		zap.String("schema", e.schemaName),
		zap.Duration("elapsed", elapsed),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)

	return &value, nil
}

// buildSystemPrompt combines the extraction instruction with the target
// schema and strict JSON-only output rules.
func (e *Extractor[T]) buildSystemPrompt() string {
	var sb strings.Builder
	sb.WriteString(extractionInstruction)
	sb.WriteString("\n\n")
	sb.WriteString("Respond with valid JSON that conforms to the following JSON Schema. ")
	sb.WriteString("Do not include any text before or after the JSON and do not wrap it in markdown code blocks.\n\n")
	sb.WriteString(e.schemaJSON)
	return sb.String()
}

var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(.*?)\\n?```")

// extractJSON pulls the JSON payload out of a model reply that may contain
// markdown fences or surrounding prose.
func extractJSON(response string) string {
	response = strings.TrimSpace(response)

	if strings.Contains(response, "```") {
		if matches := fencedJSON.FindStringSubmatch(response); len(matches) > 1 {
			return strings.TrimSpace(matches[1])
		}
	}

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start >= 0 && end > start {
		return response[start : end+1]
	}

	start = strings.Index(response, "[")
	end = strings.LastIndex(response, "]")
	if start >= 0 && end > start {
		return response[start : end+1]
	}

	return response
}
