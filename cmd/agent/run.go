package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Isaac-Flath/agent-example/internal/runner"
)

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run \"prompt\"",
		Short: "Run a single prompt through the agent loop",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			r, err := buildRunner(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			final, err := r.Run(ctx, args[0])
			return reportRunResult(os.Stdout, final, err)
		},
	}
}

// reportRunResult prints the loop outcome. Hitting the iteration cap is
// reported here once and swallowed so the CLI error path does not repeat it.
func reportRunResult(w io.Writer, final string, err error) error {
	if err != nil {
		if errors.Is(err, runner.ErrMaxIterations) {
			fmt.Fprintln(w, "Maximum iterations reached.")
			return nil
		}
		return err
	}
	fmt.Fprintln(w, "Final response:")
	fmt.Fprintln(w, final)
	return nil
}
