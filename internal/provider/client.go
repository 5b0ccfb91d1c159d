// Package provider defines the unified interface for hosted LLM backends.
//
// The agent core talks to a single Client interface; concrete providers
// (Gemini's native API, an OpenAI-compatible routing endpoint, Anthropic)
// register themselves in the registry and are selected by name at runtime.
package provider

import "context"

// Client is the unified interface for hosted LLM backends.
// Implementations must be safe for concurrent use.
type Client interface {
	// Complete sends a request and returns the full response.
	// The context controls cancellation and timeouts.
	Complete(ctx context.Context, req Request) (*Response, error)

	// Provider returns the provider name (e.g. "gemini", "openrouter").
	Provider() string
}
