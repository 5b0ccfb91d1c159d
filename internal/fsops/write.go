package fsops

import (
	"os"
	"path/filepath"

	"github.com/Isaac-Flath/agent-example/internal/safety"
)

// WriteFile writes content to a file addressed by a relative path under the
// scoped directory. It validates the path via safety and creates parent
// directories as needed.
func WriteFile(relPath, content string) error {
	root, err := ScopeRoot()
	if err != nil {
		return err
	}

	absPath, err := safety.ValidateWritePath(root, relPath)
	if err != nil {
		return err // propagate ToolError unchanged
	}

	dir := filepath.Dir(absPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	return os.WriteFile(absPath, []byte(content), 0o644)
}
