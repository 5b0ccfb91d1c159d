package runner_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/Isaac-Flath/agent-example/internal/provider"
	"github.com/Isaac-Flath/agent-example/internal/runner"
	"github.com/Isaac-Flath/agent-example/tools"
)

// scriptedClient returns canned responses in order and records each request
// it receives.
type scriptedClient struct {
	responses []*provider.Response
	err       error
	requests  []provider.Request
}

func (s *scriptedClient) Complete(ctx context.Context, req provider.Request) (*provider.Response, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	i := len(s.requests) - 1
	if i >= len(s.responses) {
		return s.responses[len(s.responses)-1], nil
	}
	return s.responses[i], nil
}

func (s *scriptedClient) Provider() string { return "scripted" }

func textResponse(text string) *provider.Response {
	return &provider.Response{Content: text, FinishReason: "stop"}
}

func toolCallResponse(calls ...provider.ToolCall) *provider.Response {
	return &provider.Response{ToolCalls: calls, FinishReason: "tool_calls"}
}

// echoTool returns its "value" argument, so tests can verify dispatch without
// touching the filesystem.
var echoTool = tools.ToolDefinition{
	Name:        "echo",
	Description: "echoes the value argument",
	InputSchema: json.RawMessage(`{"type":"object","properties":{"value":{"type":"string"}}}`),
	Function: func(ctx context.Context, input json.RawMessage) (string, error) {
		var in struct {
			Value string `json:"value"`
		}
		if err := json.Unmarshal(input, &in); err != nil {
			return "", err
		}
		return "echo: " + in.Value, nil
	},
}

var failTool = tools.ToolDefinition{
	Name:        "always_fails",
	Description: "fails unconditionally",
	InputSchema: json.RawMessage(`{"type":"object"}`),
	Function: func(ctx context.Context, input json.RawMessage) (string, error) {
		return "", fmt.Errorf("deliberate failure")
	},
}

func newRunner(client provider.Client, defs ...tools.ToolDefinition) *runner.Runner {
	r := runner.New(client, defs, "test system prompt")
	r.Out = &bytes.Buffer{}
	return r
}

func TestRun_FinalAnswerFirstTurn(t *testing.T) {
	client := &scriptedClient{responses: []*provider.Response{textResponse("the answer")}}
	r := newRunner(client, echoTool)

	final, err := r.Run(context.Background(), "question")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if final != "the answer" {
		t.Fatalf("final = %q", final)
	}

	req := client.requests[0]
	if req.SystemPrompt != "test system prompt" {
		t.Fatalf("system prompt not forwarded: %q", req.SystemPrompt)
	}
	if len(req.Tools) != 1 || req.Tools[0].Name != "echo" {
		t.Fatalf("tool declarations not forwarded: %+v", req.Tools)
	}
	if len(req.Messages) != 1 || req.Messages[0].Content != "question" {
		t.Fatalf("messages = %+v", req.Messages)
	}
}

func TestRun_ToolDispatchAndAdjacency(t *testing.T) {
	call := provider.ToolCall{ID: "c1", Name: "echo", Arguments: json.RawMessage(`{"value":"hi"}`)}
	client := &scriptedClient{responses: []*provider.Response{
		toolCallResponse(call),
		textResponse("done"),
	}}
	r := newRunner(client, echoTool)

	conv, final, err := r.RunConversation(context.Background(),
		[]provider.Message{provider.TextMessage(provider.RoleUser, "go")})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if final != "done" {
		t.Fatalf("final = %q", final)
	}

	// user, assistant(tool call), tool result, assistant(final)
	if len(conv) != 4 {
		t.Fatalf("conversation length = %d: %+v", len(conv), conv)
	}
	if conv[1].Role != provider.RoleAssistant || len(conv[1].ToolCalls) != 1 {
		t.Fatalf("assistant tool-call turn missing: %+v", conv[1])
	}
	result := conv[2]
	if result.Role != provider.RoleTool || result.ToolCallID != "c1" || result.Name != "echo" {
		t.Fatalf("tool result not adjacent to call: %+v", result)
	}
	if result.Content != "echo: hi" || result.IsError {
		t.Fatalf("tool result = %+v", result)
	}

	// Second request must include the full history produced so far.
	if len(client.requests[1].Messages) != 3 {
		t.Fatalf("second request messages = %d", len(client.requests[1].Messages))
	}
}

func TestRun_MultipleToolCallsInOrder(t *testing.T) {
	calls := []provider.ToolCall{
		{ID: "c1", Name: "echo", Arguments: json.RawMessage(`{"value":"first"}`)},
		{ID: "c2", Name: "echo", Arguments: json.RawMessage(`{"value":"second"}`)},
	}
	client := &scriptedClient{responses: []*provider.Response{
		toolCallResponse(calls...),
		textResponse("ok"),
	}}
	r := newRunner(client, echoTool)

	conv, _, err := r.RunConversation(context.Background(),
		[]provider.Message{provider.TextMessage(provider.RoleUser, "go")})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if conv[2].Content != "echo: first" || conv[3].Content != "echo: second" {
		t.Fatalf("results out of order: %q then %q", conv[2].Content, conv[3].Content)
	}
	if conv[2].ToolCallID != "c1" || conv[3].ToolCallID != "c2" {
		t.Fatalf("result ids = %q, %q", conv[2].ToolCallID, conv[3].ToolCallID)
	}
}

func TestRun_UnknownToolIsErrorResult(t *testing.T) {
	call := provider.ToolCall{ID: "c1", Name: "nope", Arguments: json.RawMessage(`{}`)}
	client := &scriptedClient{responses: []*provider.Response{
		toolCallResponse(call),
		textResponse("recovered"),
	}}
	r := newRunner(client, echoTool)

	conv, final, err := r.RunConversation(context.Background(),
		[]provider.Message{provider.TextMessage(provider.RoleUser, "go")})
	if err != nil {
		t.Fatalf("unknown tool must not abort the loop: %v", err)
	}
	if final != "recovered" {
		t.Fatalf("final = %q", final)
	}
	result := conv[2]
	if !result.IsError {
		t.Fatal("expected error result")
	}
	if result.Content != "unknown function: nope" {
		t.Fatalf("content = %q", result.Content)
	}
}

func TestRun_ToolFailureFedBack(t *testing.T) {
	call := provider.ToolCall{ID: "c1", Name: "always_fails", Arguments: json.RawMessage(`{}`)}
	client := &scriptedClient{responses: []*provider.Response{
		toolCallResponse(call),
		textResponse("noted"),
	}}
	r := newRunner(client, failTool)

	conv, _, err := r.RunConversation(context.Background(),
		[]provider.Message{provider.TextMessage(provider.RoleUser, "go")})
	if err != nil {
		t.Fatalf("tool failure must not abort the loop: %v", err)
	}
	result := conv[2]
	if !result.IsError || result.Content != "deliberate failure" {
		t.Fatalf("result = %+v", result)
	}
}

func TestRun_MaxIterations(t *testing.T) {
	call := provider.ToolCall{ID: "c1", Name: "echo", Arguments: json.RawMessage(`{"value":"again"}`)}
	client := &scriptedClient{responses: []*provider.Response{toolCallResponse(call)}}
	r := newRunner(client, echoTool)
	r.MaxIterations = 3

	_, _, err := r.RunConversation(context.Background(),
		[]provider.Message{provider.TextMessage(provider.RoleUser, "go")})
	if !errors.Is(err, runner.ErrMaxIterations) {
		t.Fatalf("expected ErrMaxIterations, got %v", err)
	}
	if len(client.requests) != 3 {
		t.Fatalf("expected 3 completion calls, got %d", len(client.requests))
	}
}

func TestRun_ContextReachesTools(t *testing.T) {
	type ctxKey struct{}
	var seen any
	markTool := tools.ToolDefinition{
		Name:        "mark",
		Description: "records the context value it runs with",
		InputSchema: json.RawMessage(`{"type":"object"}`),
		Function: func(ctx context.Context, input json.RawMessage) (string, error) {
			seen = ctx.Value(ctxKey{})
			return "ok", nil
		},
	}

	call := provider.ToolCall{ID: "c1", Name: "mark", Arguments: json.RawMessage(`{}`)}
	client := &scriptedClient{responses: []*provider.Response{
		toolCallResponse(call),
		textResponse("done"),
	}}
	r := newRunner(client, markTool)

	ctx := context.WithValue(context.Background(), ctxKey{}, "marker")
	if _, err := r.Run(ctx, "go"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if seen != "marker" {
		t.Fatalf("caller context did not reach the tool, saw %v", seen)
	}
}

func TestRun_ProviderErrorPropagates(t *testing.T) {
	sentinel := errors.New("upstream down")
	client := &scriptedClient{err: sentinel}
	r := newRunner(client, echoTool)

	_, err := r.Run(context.Background(), "go")
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected provider error, got %v", err)
	}
}

func TestRun_VerboseTraceIncludesArguments(t *testing.T) {
	call := provider.ToolCall{ID: "c1", Name: "echo", Arguments: json.RawMessage(`{"value":"traced"}`)}
	client := &scriptedClient{responses: []*provider.Response{
		toolCallResponse(call),
		textResponse("ok"),
	}}

	var buf bytes.Buffer
	r := runner.New(client, []tools.ToolDefinition{echoTool}, "sys")
	r.Out = &buf
	r.Verbose = true

	if _, err := r.Run(context.Background(), "go"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	trace := buf.String()
	if !bytes.Contains([]byte(trace), []byte(`echo({"value":"traced"})`)) {
		t.Fatalf("verbose trace missing arguments: %q", trace)
	}
}
