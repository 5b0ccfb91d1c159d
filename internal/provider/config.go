package provider

import (
	"fmt"
	"time"
)

// Config holds provider-independent client configuration.
// Provider-specific knobs live in Options.
type Config struct {
	// Model is the model identifier, e.g. "gemini-2.0-flash-001".
	Model string `json:"model" yaml:"model"`

	// APIKey authenticates against the hosted API.
	// Providers fall back to their conventional env var when empty.
	APIKey string `json:"api_key" yaml:"api_key"`

	// BaseURL overrides the provider's default endpoint. Optional.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// MaxTokens limits response length. 0 uses the provider default.
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`

	// Temperature controls response randomness.
	Temperature float64 `json:"temperature" yaml:"temperature"`

	// Timeout is the maximum duration for a completion request.
	// 0 uses the default (2 minutes).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// RequestsPerSecond caps the client-side request rate.
	// 0 disables rate limiting.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`

	// Options holds provider-specific configuration not covered above.
	Options map[string]any `json:"options" yaml:"options"`
}

// DefaultTimeout applies when Config.Timeout is zero.
const DefaultTimeout = 2 * time.Minute

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("%w: model is required", ErrInvalidRequest)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout must be >= 0, got %v", ErrInvalidRequest, c.Timeout)
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: requests_per_second must be >= 0, got %v", ErrInvalidRequest, c.RequestsPerSecond)
	}
	return nil
}

// GetStringOption returns a string option by key, or def when absent.
func (c *Config) GetStringOption(key, def string) string {
	if c.Options == nil {
		return def
	}
	if v, ok := c.Options[key].(string); ok && v != "" {
		return v
	}
	return def
}

// GetBoolOption returns a bool option by key, or def when absent.
func (c *Config) GetBoolOption(key string, def bool) bool {
	if c.Options == nil {
		return def
	}
	if v, ok := c.Options[key].(bool); ok {
		return v
	}
	return def
}
