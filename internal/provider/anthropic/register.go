package anthropic

import (
	"fmt"
	"os"

	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/Isaac-Flath/agent-example/internal/provider"
)

func init() {
	provider.Register("anthropic", newFromProviderConfig)
}

func newFromProviderConfig(cfg provider.Config) (provider.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.APIKey == "" && os.Getenv("ANTHROPIC_API_KEY") == "" {
		return nil, fmt.Errorf("%w: set ANTHROPIC_API_KEY", provider.ErrMissingAPIKey)
	}

	opts := make([]option.RequestOption, 0, 2)
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return NewClient(cfg.Model, opts...), nil
}
