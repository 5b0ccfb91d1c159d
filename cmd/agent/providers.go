package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Isaac-Flath/agent-example/internal/provider"
)

func providersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List registered LLM providers",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range provider.Available() {
				fmt.Printf("%s (default model: %s)\n", name, defaultModelFor(name))
			}
		},
	}
}
