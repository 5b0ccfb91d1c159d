package tools

import (
	"context"
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// ToolDefinition binds a tool name and description to its JSON parameter
// schema and local implementation. Function receives the loop's context so
// long-running tools stop when the caller cancels.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema json.RawMessage
	Function    func(ctx context.Context, input json.RawMessage) (string, error)
}

// GenerateSchema derives a JSON Schema for T's fields. Descriptions come from
// jsonschema_description struct tags.
func GenerateSchema[T any]() json.RawMessage {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)
	b, err := json.Marshal(schema)
	if err != nil {
		panic(err)
	}
	return b
}
