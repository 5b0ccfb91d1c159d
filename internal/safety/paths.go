// Package safety provides helpers for scoped file access.
package safety

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ToolError is a machine-readable error body surfaced back to the model as JSON.
type ToolError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error returns a compact, single-line JSON string to keep tool results small.
func (e ToolError) Error() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// ResolveScopeRoot resolves the absolute scoped directory all tools operate in.
// An empty root defaults to the current working directory.
func ResolveScopeRoot(root string) (string, error) {
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		root = cwd
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("abs(%q): %w", root, err)
	}

	// Resolve symlinks where possible so boundary checks are reliable.
	// If EvalSymlinks fails (e.g. non-existent root), keep the absolute path.
	if r, err := filepath.EvalSymlinks(abs); err == nil {
		abs = r
	}
	return abs, nil
}

// ValidateRelPath resolves relPath against absRoot and returns an absolute path
// inside the scoped directory. It rejects absolute inputs, parent traversal,
// and symlink escapes, and denies access under .git/ and .agent/.
// On violation, returns a ToolError.
func ValidateRelPath(absRoot, relPath string) (string, error) {
	if filepath.IsAbs(relPath) {
		return "", ToolError{Code: "ERR_PATH_OUTSIDE_SCOPE", Message: "absolute paths are not allowed"}
	}

	cleaned := filepath.Clean(relPath)
	if cleaned == "" {
		cleaned = "."
	}

	candidate := filepath.Join(absRoot, cleaned)

	// Best-effort symlink resolution.
	// 1) Resolve the whole candidate if it exists.
	// 2) Otherwise resolve the deepest existing ancestor (the parent dir)
	//    and rejoin the final segment. This reveals escapes via a symlinked parent.
	if resolved, err := filepath.EvalSymlinks(candidate); err == nil {
		candidate = resolved
	} else {
		parent := filepath.Dir(candidate)
		if resolvedParent, err2 := filepath.EvalSymlinks(parent); err2 == nil {
			candidate = filepath.Join(resolvedParent, filepath.Base(candidate))
		}
	}

	// Boundary check using filepath.Rel (robust against partial prefix matches)
	rel, err := filepath.Rel(absRoot, candidate)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", ToolError{Code: "ERR_PATH_OUTSIDE_SCOPE", Message: "requested path resolves outside the scoped directory"}
	}

	relClean := filepath.ToSlash(rel)
	if relClean == ".git" || strings.HasPrefix(relClean, ".git/") || relClean == ".agent" || strings.HasPrefix(relClean, ".agent/") {
		return "", ToolError{Code: "ERR_DENIED_PATH", Message: "access under .git/ or .agent/ is not allowed"}
	}

	return candidate, nil
}

// ValidateWritePath validates relPath for writing under absRoot. In addition to
// the read-side rules it refuses to write through an existing symlink, so a
// link planted inside the scope cannot redirect writes elsewhere.
func ValidateWritePath(absRoot, relPath string) (string, error) {
	abs, err := ValidateRelPath(absRoot, relPath)
	if err != nil {
		return "", err
	}

	if fi, err := os.Lstat(abs); err == nil && fi.Mode()&os.ModeSymlink != 0 {
		return "", ToolError{Code: "ERR_DENIED_WRITE", Message: "refusing to write through a symlink"}
	}
	return abs, nil
}
