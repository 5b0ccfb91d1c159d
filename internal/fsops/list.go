package fsops

import (
	"os"
	"sort"

	"github.com/Isaac-Flath/agent-example/internal/safety"
)

// Entry is a single directory listing entry.
type Entry struct {
	Name  string
	IsDir bool
}

// ListDir lists non-recursive entries for a relative directory path under the
// scoped directory, sorted by name for deterministic output.
func ListDir(relDir string) ([]Entry, error) {
	root, err := ScopeRoot()
	if err != nil {
		return nil, err
	}

	if relDir == "" {
		relDir = "."
	}
	absDir, err := safety.ValidateRelPath(root, relDir)
	if err != nil {
		return nil, err
	}

	fi, err := os.Stat(absDir)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return nil, safety.ToolError{Code: "ERR_NOT_A_DIR", Message: "path is not a directory"}
	}

	entries, err := os.ReadDir(absDir)
	if err != nil {
		return nil, err
	}

	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, Entry{Name: e.Name(), IsDir: e.IsDir()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Resolve validates relPath for reading and returns its absolute location
// inside the scoped directory. Used by callers that need the real path,
// e.g. the script runner.
func Resolve(relPath string) (string, error) {
	root, err := ScopeRoot()
	if err != nil {
		return "", err
	}
	return safety.ValidateRelPath(root, relPath)
}
