// Package config loads agent configuration from a YAML file, the environment,
// and defaults, in increasing precedence of env over file over defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the current directory when no --config flag is
// given.
const DefaultFile = "agent.yaml"

// Config holds all agent settings. Zero values use defaults where noted.
type Config struct {
	// Provider selects the registered backend: "gemini", "openrouter",
	// "anthropic". Default: "gemini".
	Provider string `yaml:"provider"`

	// Model is the model identifier. Empty uses the provider default.
	Model string `yaml:"model"`

	// BaseURL overrides the provider endpoint. Optional.
	BaseURL string `yaml:"base_url"`

	// Workdir is the scoped directory all tools operate in.
	// Default: current directory.
	Workdir string `yaml:"workdir"`

	// MaxIterations caps the agent loop. Default: 20.
	MaxIterations int `yaml:"max_iterations"`

	// MaxTokens limits response length. 0 uses the provider default.
	MaxTokens int `yaml:"max_tokens"`

	// Temperature controls response randomness.
	Temperature float64 `yaml:"temperature"`

	// Timeout is the per-request limit. 0 uses the provider default.
	Timeout time.Duration `yaml:"timeout"`

	// RequestsPerSecond caps the client-side request rate. 0 disables.
	RequestsPerSecond float64 `yaml:"requests_per_second"`

	// Verbose prints tool call arguments during the loop.
	Verbose bool `yaml:"verbose"`
}

// Default returns a Config with defaults applied.
func Default() Config {
	return Config{
		Provider:      "gemini",
		MaxIterations: 20,
	}
}

// Load reads path (YAML) over defaults and then applies env overrides.
// A missing file is not an error when path is the default location.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// No config file; env and defaults apply.
	default:
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}

	cfg.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadFromEnv populates fields from AGENT_* environment variables,
// taking precedence over existing values.
func (c *Config) LoadFromEnv() {
	if v := os.Getenv("AGENT_PROVIDER"); v != "" {
		c.Provider = v
	}
	if v := os.Getenv("AGENT_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("AGENT_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("AGENT_WORKDIR"); v != "" {
		c.Workdir = v
	}
	if v := os.Getenv("AGENT_MAX_ITERATIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxIterations = n
		}
	}
	if v := os.Getenv("AGENT_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxTokens = n
		}
	}
	if v := os.Getenv("AGENT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Timeout = d
		}
	}
	if v := os.Getenv("AGENT_VERBOSE"); v == "true" || v == "1" {
		c.Verbose = true
	}
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	if c.Provider == "" {
		return fmt.Errorf("provider is required")
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("max_iterations must be > 0, got %d", c.MaxIterations)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0, got %v", c.Timeout)
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second must be >= 0, got %v", c.RequestsPerSecond)
	}
	return nil
}
