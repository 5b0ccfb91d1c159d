package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/Isaac-Flath/agent-example/internal/fsops"
)

type ReplaceStrFileInput struct {
	FilePath string `json:"file_path" jsonschema_description:"Path to the file to modify, relative to the working directory."`
	OldStr   string `json:"old_str" jsonschema_description:"The string to find and replace."`
	NewStr   string `json:"new_str" jsonschema_description:"The string to replace with."`
}

var ReplaceStrFileDefinition = ToolDefinition{
	Name:        "replace_str_file",
	Description: "Replaces all occurrences of a string in a file and shows the diff of changes.",
	InputSchema: ReplaceStrFileInputSchema,
	Function:    ReplaceStrFile,
}

var ReplaceStrFileInputSchema = GenerateSchema[ReplaceStrFileInput]()

// ReplaceStrFile replaces every occurrence of old_str with new_str and returns
// a unified diff of the change. An absent old_str leaves the file untouched
// and reports back to the model as a normal result, not an error. Identical
// old and new strings are a no-op replace that still reports success.
func ReplaceStrFile(ctx context.Context, input json.RawMessage) (string, error) {
	var in ReplaceStrFileInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", err
	}
	if in.FilePath == "" {
		return "", fmt.Errorf("file_path is required")
	}
	// An empty old_str would match everywhere; reject as ambiguous.
	if in.OldStr == "" {
		return "", fmt.Errorf("old_str must not be empty")
	}

	original, err := fsops.ReadFile(in.FilePath)
	if err != nil {
		return "", err
	}

	if !strings.Contains(original, in.OldStr) {
		return fmt.Sprintf("String %q not found in file %q", in.OldStr, in.FilePath), nil
	}

	updated := strings.ReplaceAll(original, in.OldStr, in.NewStr)

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(updated),
		FromFile: "a/" + in.FilePath,
		ToFile:   "b/" + in.FilePath,
		Context:  3,
	})
	if err != nil {
		return "", fmt.Errorf("diff: %w", err)
	}

	if err := fsops.WriteFile(in.FilePath, updated); err != nil {
		return "", err
	}

	if diff == "" {
		return fmt.Sprintf("Successfully replaced %q with %q in %s", in.OldStr, in.NewStr, in.FilePath), nil
	}
	return diff, nil
}
