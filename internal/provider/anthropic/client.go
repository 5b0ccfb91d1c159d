// Package anthropic adapts the official Anthropic SDK to provider.Client.
package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/Isaac-Flath/agent-example/internal/provider"
)

// DefaultModel is used when no model is configured.
const DefaultModel = string(anthropic.ModelClaude3_7SonnetLatest)

// defaultMaxTokens applies when the request does not set a limit; the
// Messages API requires an explicit value.
const defaultMaxTokens = 1024

// Client wraps the Anthropic SDK client.
type Client struct {
	model string
	sdk   anthropic.Client
}

// NewClient creates a Client. The SDK reads ANTHROPIC_API_KEY from the env
// unless an explicit key is passed via options.
func NewClient(model string, opts ...option.RequestOption) *Client {
	if model == "" {
		model = DefaultModel
	}
	return &Client{model: model, sdk: anthropic.NewClient(opts...)}
}

// Provider returns the provider name.
func (c *Client) Provider() string { return "anthropic" }

// Complete sends the conversation and returns the model's reply, including
// any requested tool calls.
func (c *Client) Complete(ctx context.Context, req provider.Request) (*provider.Response, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(maxTokens),
		Messages:  encodeMessages(req.Messages),
	}
	if req.SystemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.SystemPrompt}}
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}
	for _, t := range req.Tools {
		schema, err := decodeSchema(t.Parameters)
		if err != nil {
			return nil, provider.NewError("anthropic", "complete", fmt.Errorf("tool %s: %w", t.Name, err), false)
		}
		params.Tools = append(params.Tools, anthropic.ToolUnionParam{OfTool: &anthropic.ToolParam{
			Name:        t.Name,
			Description: anthropic.String(t.Description),
			InputSchema: schema,
		}})
	}

	start := time.Now()
	msg, err := c.sdk.Messages.New(ctx, params)
	if err != nil {
		return nil, provider.NewError("anthropic", "complete", err, true)
	}

	resp := &provider.Response{
		Model:        model,
		FinishReason: string(msg.StopReason),
		Duration:     time.Since(start),
		Usage: provider.TokenUsage{
			InputTokens:  int(msg.Usage.InputTokens),
			OutputTokens: int(msg.Usage.OutputTokens),
			TotalTokens:  int(msg.Usage.InputTokens + msg.Usage.OutputTokens),
		},
	}
	var texts []string
	for _, block := range msg.Content {
		switch v := block.AsAny().(type) {
		case anthropic.TextBlock:
			if v.Text != "" {
				texts = append(texts, v.Text)
			}
		case anthropic.ToolUseBlock:
			resp.ToolCalls = append(resp.ToolCalls, provider.ToolCall{
				ID:        v.ID,
				Name:      v.Name,
				Arguments: json.RawMessage(v.JSON.Input.Raw()),
			})
		}
	}
	resp.Content = strings.Join(texts, "\n")
	return resp, nil
}

// encodeMessages maps neutral messages onto Messages API params. Tool results
// travel as tool_result blocks inside user messages; assistant tool calls are
// reconstructed as tool_use blocks so history round-trips faithfully.
func encodeMessages(msgs []provider.Message) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case provider.RoleAssistant:
			blocks := make([]anthropic.ContentBlockParamUnion, 0, len(m.ToolCalls)+1)
			if m.Content != "" {
				blocks = append(blocks, anthropic.NewTextBlock(m.Content))
			}
			for _, tc := range m.ToolCalls {
				var input any
				_ = json.Unmarshal(tc.Arguments, &input)
				blocks = append(blocks, anthropic.ContentBlockParamUnion{OfToolUse: &anthropic.ToolUseBlockParam{
					ID:    tc.ID,
					Name:  tc.Name,
					Input: input,
				}})
			}
			out = append(out, anthropic.NewAssistantMessage(blocks...))
		case provider.RoleTool:
			out = append(out, anthropic.NewUserMessage(anthropic.NewToolResultBlock(m.ToolCallID, m.Content, m.IsError)))
		default:
			out = append(out, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}
	return out
}

// decodeSchema converts a raw JSON Schema into the SDK's input schema form.
func decodeSchema(raw json.RawMessage) (anthropic.ToolInputSchemaParam, error) {
	var s struct {
		Properties map[string]any `json:"properties"`
		Required   []string       `json:"required"`
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &s); err != nil {
			return anthropic.ToolInputSchemaParam{}, fmt.Errorf("decode schema: %w", err)
		}
	}
	return anthropic.ToolInputSchemaParam{
		Properties: s.Properties,
		Required:   s.Required,
	}, nil
}
