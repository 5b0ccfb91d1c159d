// Package script executes Python scripts inside the scoped directory.
package script

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/Isaac-Flath/agent-example/internal/fsops"
	"github.com/Isaac-Flath/agent-example/internal/safety"
)

// DefaultTimeout bounds script execution.
const DefaultTimeout = 30 * time.Second

// DefaultInterpreter is the Python binary looked up in PATH.
const DefaultInterpreter = "python3"

// Result captures the outcome of a script run.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	TimedOut bool
}

// RunPython executes a .py file addressed by a relative path under the scoped
// directory, with optional arguments and the given timeout (0 uses the
// default). The interpreter runs with the scoped directory as its cwd.
func RunPython(ctx context.Context, interpreter, relPath string, args []string, timeout time.Duration) (*Result, error) {
	if !strings.HasSuffix(relPath, ".py") {
		return nil, safety.ToolError{Code: "ERR_NOT_PYTHON", Message: fmt.Sprintf("%q is not a Python file", relPath)}
	}

	absPath, err := fsops.Resolve(relPath)
	if err != nil {
		return nil, err
	}
	root, err := fsops.ScopeRoot()
	if err != nil {
		return nil, err
	}

	if interpreter == "" {
		interpreter = DefaultInterpreter
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Run with a path relative to the scope root so tracebacks stay readable.
	relArg, err := filepath.Rel(root, absPath)
	if err != nil {
		relArg = absPath
	}
	cmd := exec.CommandContext(ctx, interpreter, append([]string{relArg}, args...)...)
	cmd.Dir = root

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	res := &Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		res.TimedOut = true
		res.ExitCode = -1
		return res, nil
	}
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		// Interpreter missing or not startable.
		return nil, fmt.Errorf("run %s: %w", interpreter, runErr)
	}
	return res, nil
}

// Format renders a Result the way the agent reports script output.
func (r *Result) Format(relPath string) string {
	var b strings.Builder
	if r.TimedOut {
		fmt.Fprintf(&b, "Script %q timed out\n", relPath)
	}
	if r.Stdout != "" {
		b.WriteString("STDOUT:\n")
		b.WriteString(r.Stdout)
		if !strings.HasSuffix(r.Stdout, "\n") {
			b.WriteByte('\n')
		}
	}
	if r.Stderr != "" {
		b.WriteString("STDERR:\n")
		b.WriteString(r.Stderr)
		if !strings.HasSuffix(r.Stderr, "\n") {
			b.WriteByte('\n')
		}
	}
	if r.ExitCode != 0 && !r.TimedOut {
		fmt.Fprintf(&b, "Process exited with code %d\n", r.ExitCode)
	}
	if b.Len() == 0 {
		return "No output produced."
	}
	return strings.TrimRight(b.String(), "\n")
}
