package gemini

import (
	"github.com/Isaac-Flath/agent-example/internal/provider"
)

func init() {
	provider.Register("gemini", newFromProviderConfig)
}

// newFromProviderConfig creates a Client from a provider.Config.
// This is the factory function registered with the provider registry.
func newFromProviderConfig(cfg provider.Config) (provider.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := make([]Option, 0, 8)
	opts = append(opts, WithModel(cfg.Model))
	if cfg.APIKey != "" {
		opts = append(opts, WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, WithTimeout(cfg.Timeout))
	}
	if cfg.RequestsPerSecond > 0 {
		opts = append(opts, WithRateLimit(cfg.RequestsPerSecond))
	}
	return NewClient(opts...), nil
}
