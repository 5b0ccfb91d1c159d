package tools

import "github.com/Isaac-Flath/agent-example/internal/provider"

// Registry returns all tool definitions wired for the agent.
func Registry() []ToolDefinition {
	return []ToolDefinition{
		ListFilesDefinition,
		GetFileContentDefinition,
		OverwriteFileDefinition,
		ReplaceStrFileDefinition,
		RunPythonFileDefinition,
		TodoAddDefinition,
		TodoListDefinition,
		TodoDoneDefinition,
	}
}

// Declarations converts definitions to the provider-neutral tool form.
func Declarations(defs []ToolDefinition) []provider.Tool {
	out := make([]provider.Tool, 0, len(defs))
	for _, d := range defs {
		out = append(out, provider.Tool{
			Name:        d.Name,
			Description: d.Description,
			Parameters:  d.InputSchema,
		})
	}
	return out
}
