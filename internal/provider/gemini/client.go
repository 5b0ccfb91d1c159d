// Package gemini implements provider.Client against Google's native
// generativelanguage REST API (generateContent with function calling).
//
// The API does not assign tool-call IDs; the client mints one per
// functionCall part so the rest of the system can correlate results
// uniformly. Tool results are matched by function name on the wire,
// which is the native Gemini convention.
package gemini

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

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/Isaac-Flath/agent-example/internal/provider"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.0-flash-001"

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// Client talks to the Gemini generateContent endpoint.
type Client struct {
	model   string
	apiKey  string
	baseURL string
	httpc   *http.Client
	limiter *rate.Limiter
}

// Option configures the Client.
type Option func(*Client)

// WithModel sets the default model.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// WithAPIKey sets the API key. Defaults to GEMINI_API_KEY from the env.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithBaseURL overrides the API endpoint, e.g. for tests.
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

// NewClient creates a Gemini client with the given options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		model:   DefaultModel,
		apiKey:  os.Getenv("GEMINI_API_KEY"),
		baseURL: defaultBaseURL,
		httpc:   &http.Client{Timeout: provider.DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Provider returns the provider name.
func (c *Client) Provider() string { return "gemini" }

// Complete sends the conversation and returns the model's reply, including
// any requested tool calls.
func (c *Client) Complete(ctx context.Context, req provider.Request) (*provider.Response, error) {
	if c.apiKey == "" {
		return nil, provider.NewError("gemini", "complete", fmt.Errorf("%w: set GEMINI_API_KEY", provider.ErrMissingAPIKey), false)
	}
	model := req.Model
	if model == "" {
		model = c.model
	}

	wire, err := encodeRequest(req)
	if err != nil {
		return nil, provider.NewError("gemini", "complete", err, false)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, provider.NewError("gemini", "complete", err, false)
		}
	}

	body, _ := json.Marshal(wire)
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, provider.NewError("gemini", "complete", err, false)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	start := time.Now()
	httpResp, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, provider.NewError("gemini", "complete", err, true)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, provider.NewError("gemini", "complete", err, true)
	}
	if httpResp.StatusCode >= 300 {
		return nil, provider.StatusError("gemini", "complete", httpResp.StatusCode, string(respBody))
	}

	var out generateContentResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, provider.NewError("gemini", "complete", fmt.Errorf("decode response: %w", err), false)
	}
	if out.Error != nil {
		return nil, provider.NewError("gemini", "complete", fmt.Errorf("API error %d (%s): %s", out.Error.Code, out.Error.Status, out.Error.Message), false)
	}
	if len(out.Candidates) == 0 {
		return nil, provider.NewError("gemini", "complete", fmt.Errorf("no candidates in response"), false)
	}

	resp := decodeResponse(out)
	resp.Model = model
	resp.Duration = time.Since(start)
	return resp, nil
}

// encodeRequest maps the neutral request onto generateContent wire types.
func encodeRequest(req provider.Request) (*generateContentRequest, error) {
	wire := &generateContentRequest{}

	if req.SystemPrompt != "" {
		wire.SystemInstruction = &content{Parts: []part{{Text: req.SystemPrompt}}}
	}

	for _, m := range req.Messages {
		ct, err := encodeMessage(m)
		if err != nil {
			return nil, err
		}
		wire.Contents = append(wire.Contents, ct)
	}

	if len(req.Tools) > 0 {
		decl := toolDecl{}
		for _, t := range req.Tools {
			decl.FunctionDeclarations = append(decl.FunctionDeclarations, functionDeclaration{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			})
		}
		wire.Tools = []toolDecl{decl}
	}

	if req.MaxTokens > 0 || req.Temperature > 0 {
		gc := &generationConfig{MaxOutputTokens: req.MaxTokens}
		if req.Temperature > 0 {
			temp := req.Temperature
			gc.Temperature = &temp
		}
		wire.GenerationConfig = gc
	}
	return wire, nil
}

func encodeMessage(m provider.Message) (content, error) {
	switch m.Role {
	case provider.RoleUser:
		return content{Role: "user", Parts: []part{{Text: m.Content}}}, nil
	case provider.RoleAssistant:
		ct := content{Role: "model"}
		if m.Content != "" {
			ct.Parts = append(ct.Parts, part{Text: m.Content})
		}
		for _, tc := range m.ToolCalls {
			ct.Parts = append(ct.Parts, part{FunctionCall: &functionCall{Name: tc.Name, Args: tc.Arguments}})
		}
		if len(ct.Parts) == 0 {
			ct.Parts = []part{{Text: ""}}
		}
		return ct, nil
	case provider.RoleTool:
		payload := map[string]any{"result": m.Content}
		if m.IsError {
			payload = map[string]any{"error": m.Content}
		}
		// Function responses travel in a user-role content.
		return content{Role: "user", Parts: []part{{FunctionResponse: &functionResponse{Name: m.Name, Response: payload}}}}, nil
	default:
		return content{}, fmt.Errorf("unsupported role %q", m.Role)
	}
}

// decodeResponse flattens the first candidate into the neutral response.
func decodeResponse(out generateContentResponse) *provider.Response {
	cand := out.Candidates[0]

	resp := &provider.Response{FinishReason: cand.FinishReason}
	var texts []string
	for _, p := range cand.Content.Parts {
		if p.Text != "" {
			texts = append(texts, p.Text)
		}
		if p.FunctionCall != nil {
			args := p.FunctionCall.Args
			if len(args) == 0 {
				args = json.RawMessage(`{}`)
			}
			resp.ToolCalls = append(resp.ToolCalls, provider.ToolCall{
				ID:        uuid.NewString(),
				Name:      p.FunctionCall.Name,
				Arguments: args,
			})
		}
	}
	resp.Content = strings.Join(texts, "\n")

	if out.UsageMetadata != nil {
		resp.Usage = provider.TokenUsage{
			InputTokens:  out.UsageMetadata.PromptTokenCount,
			OutputTokens: out.UsageMetadata.CandidatesTokenCount,
			TotalTokens:  out.UsageMetadata.TotalTokenCount,
		}
	}
	return resp
}
