// Package openaicompat implements the shared provider base for backends
// that speak the OpenAI chat-completions wire format. Concrete providers
// (groq) embed this and only override what differs: name, base URL,
// default model and headers.
package openaicompat
