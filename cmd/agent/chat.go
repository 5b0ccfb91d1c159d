package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Isaac-Flath/agent-example/internal/provider"
	"github.com/Isaac-Flath/agent-example/internal/runner"
)

var (
	youLabel   = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Render("You")
	agentLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Render("Agent")
)

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Interactive multi-turn session with the agent",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			r, err := buildRunner(cfg)
			if err != nil {
				return err
			}
			return chatLoop(r)
		},
	}
}

func chatLoop(r *runner.Runner) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigch)
	go func() {
		<-sigch
		fmt.Println("\nExiting...")
		cancel()
	}()

	// stdin reader goroutine -> lines into channel
	scanner := bufio.NewScanner(os.Stdin)
	inputCh := make(chan string)
	go func() {
		for scanner.Scan() {
			inputCh <- scanner.Text()
		}
		close(inputCh)
	}()

	fmt.Println("Chat with the agent (Ctrl-C to quit)")

	var conv []provider.Message
	for {
		fmt.Printf("%s: ", youLabel)
		var (
			user string
			ok   bool
		)
		select {
		case <-ctx.Done():
			return scanner.Err()
		case user, ok = <-inputCh:
			if !ok {
				return scanner.Err()
			}
		}
		if strings.TrimSpace(user) == "" {
			continue
		}

		conv = append(conv, provider.TextMessage(provider.RoleUser, user))
		updated, final, err := r.RunConversation(ctx, conv)
		conv = updated
		if err != nil {
			if errors.Is(err, runner.ErrMaxIterations) {
				fmt.Println("Maximum iterations reached.")
				continue
			}
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		fmt.Printf("%s: %s\n", agentLabel, final)
	}
}
