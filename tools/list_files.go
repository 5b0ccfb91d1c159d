package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Isaac-Flath/agent-example/internal/fsops"
)

type ListFilesInput struct {
	Directory string `json:"directory,omitempty" jsonschema_description:"The directory to list files from, relative to the working directory. If not provided, lists files in the working directory itself."`
}

var ListFilesDefinition = ToolDefinition{
	Name:        "list_files",
	Description: "Lists files and directories in the specified directory, constrained to the working directory.",
	InputSchema: ListFilesInputSchema,
	Function:    ListFiles,
}

var ListFilesInputSchema = GenerateSchema[ListFilesInput]()

// ListFiles lists non-recursive entries via fsops and renders one line per
// entry, with directories marked.
func ListFiles(ctx context.Context, input json.RawMessage) (string, error) {
	var in ListFilesInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", err
	}

	entries, err := fsops.ListDir(in.Directory)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "No files found in directory", nil
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir {
			lines = append(lines, fmt.Sprintf("- %s (dir)", e.Name))
		} else {
			lines = append(lines, fmt.Sprintf("- %s", e.Name))
		}
	}
	return strings.Join(lines, "\n"), nil
}
