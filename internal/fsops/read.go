package fsops

import (
	"os"

	"github.com/Isaac-Flath/agent-example/internal/safety"
)

// ReadFile reads a file addressed by a relative path under the scoped directory.
// It validates the path via safety and returns a ToolError on policy violations.
func ReadFile(relPath string) (string, error) {
	root, err := ScopeRoot()
	if err != nil {
		return "", err
	}

	absPath, err := safety.ValidateRelPath(root, relPath)
	if err != nil {
		return "", err // propagate ToolError or standard error
	}

	fi, err := os.Stat(absPath)
	if err != nil {
		return "", err
	}
	if fi.IsDir() {
		return "", safety.ToolError{Code: "ERR_NOT_A_FILE", Message: "path is a directory"}
	}

	b, err := os.ReadFile(absPath)
	if err != nil {
		return "", err // standard error for I/O issues (not policy)
	}
	return string(b), nil
}
