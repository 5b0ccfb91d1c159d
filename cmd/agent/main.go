// Command agent forwards a natural-language prompt to a hosted LLM, executes
// the tool calls the model requests against a scoped directory, and prints
// the model's final answer.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Isaac-Flath/agent-example/internal/config"
	"github.com/Isaac-Flath/agent-example/internal/prompt"
	"github.com/Isaac-Flath/agent-example/internal/provider"
	"github.com/Isaac-Flath/agent-example/internal/runner"
	"github.com/Isaac-Flath/agent-example/tools"

	// Registered providers.
	providerAnthropic "github.com/Isaac-Flath/agent-example/internal/provider/anthropic"
	providerGemini "github.com/Isaac-Flath/agent-example/internal/provider/gemini"
	providerOpenRouter "github.com/Isaac-Flath/agent-example/internal/provider/openrouter"
)

var flags struct {
	configPath string
	provider   string
	model      string
	workdir    string
	verbose    bool
}

func main() {
	root := &cobra.Command{
		Use:           "agent",
		Short:         "AI coding agent over hosted LLM APIs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to YAML config file")
	root.PersistentFlags().StringVar(&flags.provider, "provider", "", "LLM provider (gemini, openrouter, anthropic)")
	root.PersistentFlags().StringVar(&flags.model, "model", "", "model identifier")
	root.PersistentFlags().StringVar(&flags.workdir, "workdir", "", "scoped directory for all file operations")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "print tool call arguments")

	root.AddCommand(runCmd())
	root.AddCommand(chatCmd())
	root.AddCommand(providersCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig merges file, env, and flag settings (flags win).
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return cfg, err
	}
	if flags.provider != "" {
		cfg.Provider = flags.provider
	}
	if flags.model != "" {
		cfg.Model = flags.model
	}
	if flags.workdir != "" {
		cfg.Workdir = flags.workdir
	}
	if flags.verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

// defaultModelFor supplies each provider's default model when the config
// leaves the model unset.
func defaultModelFor(name string) string {
	switch name {
	case "gemini":
		return providerGemini.DefaultModel
	case "openrouter":
		return providerOpenRouter.DefaultModel
	case "anthropic":
		return providerAnthropic.DefaultModel
	}
	return ""
}

// buildRunner wires the configured provider client and the tool registry.
func buildRunner(cfg config.Config) (*runner.Runner, error) {
	// fsops resolves the scope root from the env on first use.
	if cfg.Workdir != "" {
		if err := os.Setenv("AGENT_WORKDIR", cfg.Workdir); err != nil {
			return nil, err
		}
	}

	model := cfg.Model
	if model == "" {
		model = defaultModelFor(cfg.Provider)
	}
	client, err := provider.New(cfg.Provider, provider.Config{
		Model:             model,
		BaseURL:           cfg.BaseURL,
		Timeout:           cfg.Timeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
	})
	if err != nil {
		return nil, err
	}

	r := runner.New(client, tools.Registry(), prompt.System)
	r.MaxIterations = cfg.MaxIterations
	r.MaxTokens = cfg.MaxTokens
	r.Temperature = cfg.Temperature
	r.Verbose = cfg.Verbose
	return r, nil
}
