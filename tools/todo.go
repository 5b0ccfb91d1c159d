package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/Isaac-Flath/agent-example/internal/fsops"
	"github.com/Isaac-Flath/agent-example/internal/todo"
)

// Todo tools operate on the todos.json store inside the scoped directory,
// so the model manages the list directly instead of executing the todo app.

type TodoAddInput struct {
	Task string `json:"task" jsonschema_description:"The task description to add to the todo list."`
}

type TodoListInput struct{}

type TodoDoneInput struct {
	Index int `json:"index" jsonschema_description:"The number of the todo item to mark as complete (starting from 1)."`
}

var TodoAddDefinition = ToolDefinition{
	Name:        "todo_add",
	Description: "Add a new todo item to the todo list.",
	InputSchema: TodoAddInputSchema,
	Function:    TodoAdd,
}

var TodoListDefinition = ToolDefinition{
	Name:        "todo_list",
	Description: "List all todo items showing their status (completed or pending).",
	InputSchema: TodoListInputSchema,
	Function:    TodoList,
}

var TodoDoneDefinition = ToolDefinition{
	Name:        "todo_done",
	Description: "Mark a todo item as complete by its number (1-based index).",
	InputSchema: TodoDoneInputSchema,
	Function:    TodoDone,
}

var (
	TodoAddInputSchema  = GenerateSchema[TodoAddInput]()
	TodoListInputSchema = GenerateSchema[TodoListInput]()
	TodoDoneInputSchema = GenerateSchema[TodoDoneInput]()
)

func todoStore() (*todo.Store, error) {
	root, err := fsops.ScopeRoot()
	if err != nil {
		return nil, err
	}
	return todo.NewStore(filepath.Join(root, todo.DefaultFile)), nil
}

// TodoAdd appends a pending task to the store.
func TodoAdd(ctx context.Context, input json.RawMessage) (string, error) {
	var in TodoAddInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", err
	}
	if in.Task == "" {
		return "", fmt.Errorf("task is required")
	}

	store, err := todoStore()
	if err != nil {
		return "", err
	}
	if err := store.Add(in.Task); err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ Added: %s", in.Task), nil
}

// TodoList renders the current list for the model.
func TodoList(ctx context.Context, input json.RawMessage) (string, error) {
	store, err := todoStore()
	if err != nil {
		return "", err
	}
	items, err := store.Load()
	if err != nil {
		return "", err
	}
	return todo.RenderPlain(items), nil
}

// TodoDone marks an item complete by 1-based index. An out-of-range index is
// reported as a normal result so the model can correct itself.
func TodoDone(ctx context.Context, input json.RawMessage) (string, error) {
	var in TodoDoneInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", err
	}

	store, err := todoStore()
	if err != nil {
		return "", err
	}
	task, err := store.Complete(in.Index)
	if err != nil {
		if errors.Is(err, todo.ErrInvalidIndex) {
			return "❌ Invalid todo number", nil
		}
		return "", err
	}
	return fmt.Sprintf("🎉 Completed: %s", task), nil
}
