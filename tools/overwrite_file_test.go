package tools_test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Isaac-Flath/agent-example/tools"
)

func TestOverwriteFile_CreatesParents(t *testing.T) {
	p := rel(t, "nested", "deep", "out.txt")

	b, _ := json.Marshal(tools.OverwriteFileInput{FilePath: p, Content: "payload"})
	out, err := tools.OverwriteFileDefinition.Function(context.Background(), b)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out != fmt.Sprintf("Successfully wrote to %q", p) {
		t.Fatalf("got %q", out)
	}

	got, err := os.ReadFile(filepath.Join(sharedDir, p))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != "payload" {
		t.Fatalf("content = %q", got)
	}
}

func TestOverwriteFile_ReplacesExisting(t *testing.T) {
	p := rel(t, "file.txt")
	if err := os.MkdirAll(filepath.Join(sharedDir, rel(t)), 0o755); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if err := os.WriteFile(filepath.Join(sharedDir, p), []byte("old"), 0o644); err != nil {
		t.Fatalf("prepare: %v", err)
	}

	b, _ := json.Marshal(tools.OverwriteFileInput{FilePath: p, Content: "new"})
	if _, err := tools.OverwriteFileDefinition.Function(context.Background(), b); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	got, _ := os.ReadFile(filepath.Join(sharedDir, p))
	if string(got) != "new" {
		t.Fatalf("content = %q", got)
	}
}

func TestOverwriteFile_EscapeRejected(t *testing.T) {
	b, _ := json.Marshal(tools.OverwriteFileInput{FilePath: "../escape.txt", Content: "x"})
	_, err := tools.OverwriteFileDefinition.Function(context.Background(), b)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "ERR_PATH_OUTSIDE_SCOPE") {
		t.Fatalf("expected ERR_PATH_OUTSIDE_SCOPE, got: %v", err)
	}
}

func TestOverwriteFile_DeniedDir(t *testing.T) {
	b, _ := json.Marshal(tools.OverwriteFileInput{FilePath: ".git/config", Content: "x"})
	_, err := tools.OverwriteFileDefinition.Function(context.Background(), b)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "ERR_DENIED_PATH") {
		t.Fatalf("expected ERR_DENIED_PATH, got: %v", err)
	}
}
