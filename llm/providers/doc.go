// Package providers contains configuration structs and shared helpers for
// the concrete LLM provider implementations: OpenAI-compatible wire types,
// message conversion, HTTP status to error-code mapping, and model selection.
package providers
