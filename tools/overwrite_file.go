package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Isaac-Flath/agent-example/internal/fsops"
)

type OverwriteFileInput struct {
	FilePath string `json:"file_path" jsonschema_description:"Path to the file to write, relative to the working directory."`
	Content  string `json:"content" jsonschema_description:"Content to write to the file"`
}

var OverwriteFileDefinition = ToolDefinition{
	Name:        "overwrite_file",
	Description: "Writes content to a file within the working directory. Creates the file if it doesn't exist.",
	InputSchema: OverwriteFileInputSchema,
	Function:    OverwriteFile,
}

var OverwriteFileInputSchema = GenerateSchema[OverwriteFileInput]()

// OverwriteFile writes content through fsops, creating parent directories as
// needed. Existing content is replaced wholesale.
func OverwriteFile(ctx context.Context, input json.RawMessage) (string, error) {
	var in OverwriteFileInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", err
	}
	if in.FilePath == "" {
		return "", fmt.Errorf("file_path is required")
	}

	if err := fsops.WriteFile(in.FilePath, in.Content); err != nil {
		return "", err
	}
	return fmt.Sprintf("Successfully wrote to %q", in.FilePath), nil
}
