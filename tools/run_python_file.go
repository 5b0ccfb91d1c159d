package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Isaac-Flath/agent-example/internal/script"
)

type RunPythonFileInput struct {
	FilePath string   `json:"file_path" jsonschema_description:"Path to the Python file to execute, relative to the working directory."`
	Args     []string `json:"args,omitempty" jsonschema_description:"Optional command-line arguments to pass to the script."`
}

var RunPythonFileDefinition = ToolDefinition{
	Name:        "run_python_file",
	Description: "Executes a Python file within the working directory and returns its output. Execution is time-limited.",
	InputSchema: RunPythonFileInputSchema,
	Function:    RunPythonFile,
}

var RunPythonFileInputSchema = GenerateSchema[RunPythonFileInput]()

// RunPythonFile executes a .py file inside the scoped directory. Script
// failures (non-zero exit, timeout) are reported in the result text so the
// model can react; only dispatch-level problems surface as errors. The
// caller's context propagates to the interpreter, so cancelling the run
// kills the script.
func RunPythonFile(ctx context.Context, input json.RawMessage) (string, error) {
	var in RunPythonFileInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", err
	}
	if in.FilePath == "" {
		return "", fmt.Errorf("file_path is required")
	}

	res, err := script.RunPython(ctx, "", in.FilePath, in.Args, 0)
	if err != nil {
		return "", err
	}
	return res.Format(in.FilePath), nil
}
