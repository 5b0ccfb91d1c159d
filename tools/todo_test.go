package tools_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Isaac-Flath/agent-example/tools"
)

// The todo tools share one todos.json at the scope root, so the lifecycle is
// exercised in a single sequential test.
func TestTodoTools_Lifecycle(t *testing.T) {
	storePath := filepath.Join(sharedDir, "todos.json")
	if err := os.RemoveAll(storePath); err != nil {
		t.Fatalf("reset store: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(storePath) })

	// Empty list first.
	out, err := tools.TodoListDefinition.Function(context.Background(), json.RawMessage(`{}`))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "No todos found") {
		t.Fatalf("expected empty-list message, got %q", out)
	}

	// Add two items.
	b, _ := json.Marshal(tools.TodoAddInput{Task: "write tests"})
	out, err = tools.TodoAddDefinition.Function(context.Background(), b)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if out != "✅ Added: write tests" {
		t.Fatalf("got %q", out)
	}

	b, _ = json.Marshal(tools.TodoAddInput{Task: "ship it"})
	if _, err := tools.TodoAddDefinition.Function(context.Background(), b); err != nil {
		t.Fatalf("add: %v", err)
	}

	// Both pending.
	out, err = tools.TodoListDefinition.Function(context.Background(), json.RawMessage(`{}`))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "1. ○ write tests") || !strings.Contains(out, "2. ○ ship it") {
		t.Fatalf("got %q", out)
	}

	// Complete the first.
	b, _ = json.Marshal(tools.TodoDoneInput{Index: 1})
	out, err = tools.TodoDoneDefinition.Function(context.Background(), b)
	if err != nil {
		t.Fatalf("done: %v", err)
	}
	if out != "🎉 Completed: write tests" {
		t.Fatalf("got %q", out)
	}

	out, err = tools.TodoListDefinition.Function(context.Background(), json.RawMessage(`{}`))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "✓") || !strings.Contains(out, "~~write tests~~") {
		t.Fatalf("completed item not marked: %q", out)
	}

	// Out-of-range index is a normal result, not an error.
	b, _ = json.Marshal(tools.TodoDoneInput{Index: 99})
	out, err = tools.TodoDoneDefinition.Function(context.Background(), b)
	if err != nil {
		t.Fatalf("out-of-range must be a normal result: %v", err)
	}
	if out != "❌ Invalid todo number" {
		t.Fatalf("got %q", out)
	}
}

func TestTodoAdd_EmptyTaskRejected(t *testing.T) {
	b, _ := json.Marshal(tools.TodoAddInput{Task: ""})
	if _, err := tools.TodoAddDefinition.Function(context.Background(), b); err == nil {
		t.Fatal("expected error for empty task")
	}
}
