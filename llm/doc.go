// Package llm defines the provider abstraction used to reach hosted
// text-generation backends: the Provider interface, chat request/response
// types, and per-request credential overrides.
//
// Providers are stateless apart from their HTTP client handle and are safe
// for concurrent use. Timeouts are imposed by the transport, not by callers.
package llm
