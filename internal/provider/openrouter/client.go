// Package openrouter implements provider.Client against an OpenAI-compatible
// chat completions endpoint. OpenRouter fronts many hosted models behind one
// API, so this provider is the "bring any model" variant: point it at a model
// id and it routes the request.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/Isaac-Flath/agent-example/internal/provider"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "anthropic/claude-3.5-sonnet"

const defaultBaseURL = "https://openrouter.ai/api"

// Client talks to an OpenAI-compatible /v1/chat/completions endpoint.
type Client struct {
	model   string
	apiKey  string
	baseURL string
	httpc   *http.Client
	limiter *rate.Limiter
}

// Option configures the Client.
type Option func(*Client)

// WithModel sets the default model id, e.g. "openai/gpt-4o".
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// WithAPIKey sets the API key. Defaults to OPENROUTER_API_KEY from the env.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithBaseURL overrides the API endpoint. Any OpenAI-compatible server works.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpc.Timeout = d }
}

// WithRateLimit caps the client-side request rate at rps requests per second.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// NewClient creates an OpenRouter client with the given options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		model:   DefaultModel,
		apiKey:  os.Getenv("OPENROUTER_API_KEY"),
		baseURL: defaultBaseURL,
		httpc:   &http.Client{Timeout: provider.DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Provider returns the provider name.
func (c *Client) Provider() string { return "openrouter" }

// Complete sends the conversation and returns the model's reply, including
// any requested tool calls.
func (c *Client) Complete(ctx context.Context, req provider.Request) (*provider.Response, error) {
	if c.apiKey == "" {
		return nil, provider.NewError("openrouter", "complete", fmt.Errorf("%w: set OPENROUTER_API_KEY", provider.ErrMissingAPIKey), false)
	}
	model := req.Model
	if model == "" {
		model = c.model
	}

	body := chatRequest{
		Model:    model,
		Messages: encodeMessages(req),
	}
	if len(req.Tools) > 0 {
		body.ToolChoice = "auto"
		for _, t := range req.Tools {
			body.Tools = append(body.Tools, chatTool{
				Type:     "function",
				Function: chatToolFunction{Name: t.Name, Description: t.Description, Parameters: t.Parameters},
			})
		}
	}
	if req.MaxTokens > 0 {
		body.MaxTokens = req.MaxTokens
	}
	if req.Temperature > 0 {
		body.Temperature = req.Temperature
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, provider.NewError("openrouter", "complete", err, false)
		}
	}

	j, _ := json.Marshal(body)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(j))
	if err != nil {
		return nil, provider.NewError("openrouter", "complete", err, false)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	httpResp, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, provider.NewError("openrouter", "complete", err, true)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, provider.NewError("openrouter", "complete", err, true)
	}
	if httpResp.StatusCode >= 300 {
		return nil, provider.StatusError("openrouter", "complete", httpResp.StatusCode, string(respBody))
	}

	var out chatResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, provider.NewError("openrouter", "complete", fmt.Errorf("decode response: %w", err), false)
	}
	if out.Error != nil {
		return nil, provider.NewError("openrouter", "complete", fmt.Errorf("API error: %s", out.Error.Message), false)
	}
	if len(out.Choices) == 0 {
		return nil, provider.NewError("openrouter", "complete", fmt.Errorf("no choices in response"), false)
	}

	resp := decodeChoice(out.Choices[0])
	if out.Usage != nil {
		resp.Usage = provider.TokenUsage{
			InputTokens:  out.Usage.PromptTokens,
			OutputTokens: out.Usage.CompletionTokens,
			TotalTokens:  out.Usage.TotalTokens,
		}
	}
	resp.Model = model
	resp.Duration = time.Since(start)
	return resp, nil
}

func encodeMessages(req provider.Request) []chatMessage {
	msgs := make([]chatMessage, 0, len(req.Messages)+1)
	if req.SystemPrompt != "" {
		msgs = append(msgs, chatMessage{Role: "system", Content: req.SystemPrompt})
	}
	for _, m := range req.Messages {
		cm := chatMessage{Role: string(m.Role), Content: m.Content}
		for _, tc := range m.ToolCalls {
			wtc := chatToolCall{ID: tc.ID, Type: "function"}
			wtc.Function.Name = tc.Name
			wtc.Function.Arguments = string(tc.Arguments)
			cm.ToolCalls = append(cm.ToolCalls, wtc)
		}
		if m.Role == provider.RoleTool {
			cm.ToolCallID = m.ToolCallID
			cm.Name = m.Name
		}
		msgs = append(msgs, cm)
	}
	return msgs
}

func decodeChoice(ch chatChoice) *provider.Response {
	resp := &provider.Response{
		Content:      ch.Message.Content,
		FinishReason: ch.FinishReason,
	}
	for _, tc := range ch.Message.ToolCalls {
		// Some providers return arguments as a JSON-encoded string; keep the
		// raw bytes either way and let the tool layer unmarshal.
		args := json.RawMessage(tc.Function.Arguments)
		if len(args) == 0 {
			args = json.RawMessage(`{}`)
		}
		resp.ToolCalls = append(resp.ToolCalls, provider.ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: args,
		})
	}
	return resp
}
