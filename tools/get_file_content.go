package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/Isaac-Flath/agent-example/internal/fsops"
)

type GetFileContentInput struct {
	FilePath string `json:"file_path" jsonschema_description:"The path to the file whose content should be read, relative to the working directory."`
}

// MaxChars caps file content returned to the model.
const MaxChars = 100_000

var GetFileContentDefinition = ToolDefinition{
	Name:        "get_file_content",
	Description: fmt.Sprintf("Reads and returns the first %d characters of the content from a specified file within the working directory.", MaxChars),
	InputSchema: GetFileContentInputSchema,
	Function:    GetFileContent,
}

var GetFileContentInputSchema = GenerateSchema[GetFileContentInput]()

// GetFileContent reads a file via fsops (scope policy applied) and truncates
// at MaxChars with a trailing notice so the model knows content was cut.
func GetFileContent(ctx context.Context, input json.RawMessage) (string, error) {
	var in GetFileContentInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", err
	}
	if in.FilePath == "" {
		return "", fmt.Errorf("file_path is required")
	}

	content, err := fsops.ReadFile(in.FilePath)
	if err != nil {
		return "", err
	}

	// The cap counts characters, not bytes, so multibyte content is never
	// cut mid-rune.
	if utf8.RuneCountInString(content) > MaxChars {
		runes := []rune(content)
		content = string(runes[:MaxChars]) + fmt.Sprintf("\n[...File %q truncated at %d characters]", in.FilePath, MaxChars)
	}
	return content, nil
}
