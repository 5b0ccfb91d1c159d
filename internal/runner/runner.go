package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/Isaac-Flath/agent-example/internal/provider"
	"github.com/Isaac-Flath/agent-example/internal/telemetry"
	"github.com/Isaac-Flath/agent-example/tools"
)

// DefaultMaxIterations bounds the agent loop so a confused model cannot spin
// forever.
const DefaultMaxIterations = 20

// ErrMaxIterations is returned when the loop cap is reached without a final
// text answer.
var ErrMaxIterations = errors.New("maximum iterations reached")

// Runner drives the agent loop: send conversation, execute requested tool
// calls, feed results back, repeat until the model answers in text.
type Runner struct {
	Client        provider.Client
	Tools         []tools.ToolDefinition
	SystemPrompt  string
	MaxIterations int
	MaxTokens     int
	Temperature   float64
	Verbose       bool

	// Out receives tool-call traces during the loop. Defaults to os.Stderr.
	Out io.Writer
}

// New returns a Runner with defaults applied.
func New(client provider.Client, toolDefs []tools.ToolDefinition, systemPrompt string) *Runner {
	return &Runner{
		Client:        client,
		Tools:         toolDefs,
		SystemPrompt:  systemPrompt,
		MaxIterations: DefaultMaxIterations,
		Out:           os.Stderr,
	}
}

// Run executes the loop for a single user prompt and returns the model's
// final text answer.
func (r *Runner) Run(ctx context.Context, userPrompt string) (string, error) {
	conv := []provider.Message{provider.TextMessage(provider.RoleUser, userPrompt)}
	_, final, err := r.RunConversation(ctx, conv)
	return final, err
}

// RunConversation executes the loop over an existing conversation and returns
// the updated conversation plus the final text answer. The returned
// conversation is valid even on error so callers can persist or inspect it.
func (r *Runner) RunConversation(ctx context.Context, conv []provider.Message) ([]provider.Message, string, error) {
	maxIter := r.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}
	out := r.Out
	if out == nil {
		out = os.Stderr
	}

	runID, ok := telemetry.RunIDFromContext(ctx)
	if !ok {
		runID = uuid.NewString()
		ctx = telemetry.WithRunID(ctx, runID)
	}

	decls := tools.Declarations(r.Tools)

	for iteration := 0; iteration < maxIter; iteration++ {
		resp, err := r.Client.Complete(ctx, provider.Request{
			SystemPrompt: r.SystemPrompt,
			Messages:     conv,
			MaxTokens:    r.MaxTokens,
			Temperature:  r.Temperature,
			Tools:        decls,
		})
		if err != nil {
			return conv, "", err
		}

		telemetry.Emit("step", map[string]any{
			"run_id":        runID,
			"iteration":     iteration,
			"model":         resp.Model,
			"input_tokens":  resp.Usage.InputTokens,
			"output_tokens": resp.Usage.OutputTokens,
			"tool_calls":    len(resp.ToolCalls),
			"finish_reason": resp.FinishReason,
		})

		// Append the assistant message before inspecting tool calls so the
		// history the model sees next turn matches what it produced.
		conv = append(conv, provider.Message{
			Role:      provider.RoleAssistant,
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})

		if len(resp.ToolCalls) == 0 {
			telemetry.Emit("run_done", map[string]any{
				"run_id":     runID,
				"iterations": iteration + 1,
			})
			return conv, resp.Content, nil
		}

		// Execute tool calls in order and append each result immediately so
		// call and result stay adjacent in the conversation.
		for _, tc := range resp.ToolCalls {
			conv = append(conv, r.execTool(ctx, out, tc))
		}
	}

	telemetry.Emit("run_done", map[string]any{
		"run_id":     runID,
		"iterations": maxIter,
		"error":      ErrMaxIterations.Error(),
	})
	return conv, "", ErrMaxIterations
}

// execTool dispatches a single tool call against the whitelist and returns
// the tool result message. Tool failures become error results fed back to
// the model; the loop never aborts on them.
func (r *Runner) execTool(ctx context.Context, out io.Writer, tc provider.ToolCall) provider.Message {
	if r.Verbose {
		fmt.Fprintf(out, " - Calling function: %s(%s)\n", tc.Name, string(tc.Arguments))
	} else {
		fmt.Fprintf(out, " - Calling function: %s\n", tc.Name)
	}

	var def *tools.ToolDefinition
	for i := range r.Tools {
		if r.Tools[i].Name == tc.Name {
			def = &r.Tools[i]
			break
		}
	}

	runID, _ := telemetry.RunIDFromContext(ctx)
	emit := func(durationMs int64, outputSize int, errStr string) {
		fields := map[string]any{
			"run_id":      runID,
			"tool_name":   tc.Name,
			"duration_ms": durationMs,
			"input_size":  len(tc.Arguments),
			"output_size": outputSize,
		}
		if errStr != "" {
			fields["error"] = errStr
		} else {
			fields["error"] = nil
		}
		telemetry.Emit("tool_exec", fields)
	}

	start := time.Now()

	if def == nil {
		emit(time.Since(start).Milliseconds(), 0, "unknown function")
		return provider.ToolResultMessage(tc, fmt.Sprintf("unknown function: %s", tc.Name), true)
	}

	result, err := def.Function(ctx, tc.Arguments)
	if err != nil {
		// Emit a generic error string to avoid leaking payloads in telemetry;
		// the detailed message still reaches the model in the tool result.
		emit(time.Since(start).Milliseconds(), 0, "tool error")
		return provider.ToolResultMessage(tc, err.Error(), true)
	}
	emit(time.Since(start).Milliseconds(), len(result), "")
	return provider.ToolResultMessage(tc, result, false)
}
