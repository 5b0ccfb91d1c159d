package script_test

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Isaac-Flath/agent-example/internal/safety"
	"github.com/Isaac-Flath/agent-example/internal/script"
)

var sharedDir string

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "script-tests-")
	if err != nil {
		panic(err)
	}
	_ = os.Setenv("AGENT_WORKDIR", dir)
	sharedDir = dir

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func requirePython(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath(script.DefaultInterpreter); err != nil {
		t.Skipf("%s not available", script.DefaultInterpreter)
	}
}

func writeScript(t *testing.T, name, body string) string {
	t.Helper()
	rel := filepath.Join(t.Name(), name)
	abs := filepath.Join(sharedDir, rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if err := os.WriteFile(abs, []byte(body), 0o644); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	return rel
}

func TestRunPython_NonPythonRejected(t *testing.T) {
	_, err := script.RunPython(context.Background(), "", "script.sh", nil, 0)
	var te safety.ToolError
	if !errors.As(err, &te) || te.Code != "ERR_NOT_PYTHON" {
		t.Fatalf("expected ERR_NOT_PYTHON, got %v", err)
	}
}

func TestRunPython_EscapeRejected(t *testing.T) {
	_, err := script.RunPython(context.Background(), "", "../outside.py", nil, 0)
	var te safety.ToolError
	if !errors.As(err, &te) || te.Code != "ERR_PATH_OUTSIDE_SCOPE" {
		t.Fatalf("expected ERR_PATH_OUTSIDE_SCOPE, got %v", err)
	}
}

func TestRunPython_CapturesStdoutStderr(t *testing.T) {
	requirePython(t)
	rel := writeScript(t, "both.py", "import sys\nprint('to stdout')\nprint('to stderr', file=sys.stderr)\n")

	res, err := script.RunPython(context.Background(), "", rel, nil, 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.Contains(res.Stdout, "to stdout") {
		t.Fatalf("stdout = %q", res.Stdout)
	}
	if !strings.Contains(res.Stderr, "to stderr") {
		t.Fatalf("stderr = %q", res.Stderr)
	}
	if res.ExitCode != 0 || res.TimedOut {
		t.Fatalf("result = %+v", res)
	}
}

func TestRunPython_ExitCode(t *testing.T) {
	requirePython(t)
	rel := writeScript(t, "exit.py", "raise SystemExit(2)\n")

	res, err := script.RunPython(context.Background(), "", rel, nil, 0)
	if err != nil {
		t.Fatalf("non-zero exit must not be an error: %v", err)
	}
	if res.ExitCode != 2 {
		t.Fatalf("exit code = %d", res.ExitCode)
	}
}

func TestRunPython_Timeout(t *testing.T) {
	requirePython(t)
	rel := writeScript(t, "sleep.py", "import time\ntime.sleep(10)\n")

	res, err := script.RunPython(context.Background(), "", rel, nil, 200*time.Millisecond)
	if err != nil {
		t.Fatalf("timeout must not be an error: %v", err)
	}
	if !res.TimedOut {
		t.Fatalf("expected timeout, got %+v", res)
	}
}

func TestRunPython_CancelKillsProcess(t *testing.T) {
	requirePython(t)
	rel := writeScript(t, "cancel.py", "import time\ntime.sleep(30)\n")

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(200 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	res, err := script.RunPython(ctx, "", rel, nil, 0)
	if err != nil {
		t.Fatalf("cancellation must not be an error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Fatalf("process outlived cancellation: %v", elapsed)
	}
	if res.ExitCode == 0 {
		t.Fatalf("expected non-zero exit after kill, got %+v", res)
	}
}

func TestRunPython_CwdIsScopeRoot(t *testing.T) {
	requirePython(t)
	rel := writeScript(t, "cwd.py", "import os\nprint(os.getcwd())\n")

	res, err := script.RunPython(context.Background(), "", rel, nil, 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want, _ := filepath.EvalSymlinks(sharedDir)
	got := strings.TrimSpace(res.Stdout)
	if gotResolved, err := filepath.EvalSymlinks(got); err == nil {
		got = gotResolved
	}
	if got != want {
		t.Fatalf("cwd = %q, want %q", got, want)
	}
}

func TestResult_Format(t *testing.T) {
	tests := []struct {
		name string
		res  script.Result
		want string
	}{
		{
			name: "no output",
			res:  script.Result{},
			want: "No output produced.",
		},
		{
			name: "stdout only",
			res:  script.Result{Stdout: "hello\n"},
			want: "STDOUT:\nhello",
		},
		{
			name: "stdout and stderr",
			res:  script.Result{Stdout: "out\n", Stderr: "warn\n"},
			want: "STDOUT:\nout\nSTDERR:\nwarn",
		},
		{
			name: "non-zero exit",
			res:  script.Result{Stderr: "boom\n", ExitCode: 1},
			want: "STDERR:\nboom\nProcess exited with code 1",
		},
		{
			name: "timed out",
			res:  script.Result{TimedOut: true, ExitCode: -1},
			want: `Script "slow.py" timed out`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.res.Format("slow.py"); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}
