package telemetry_test

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Isaac-Flath/agent-example/internal/telemetry"
)

func TestObserveEnabled(t *testing.T) {
	t.Setenv("AGENT_OBSERVE_JSON", "")
	if telemetry.ObserveEnabled() {
		t.Fatal("expected disabled when unset")
	}
	t.Setenv("AGENT_OBSERVE_JSON", "0")
	if telemetry.ObserveEnabled() {
		t.Fatal("expected disabled when 0")
	}
	t.Setenv("AGENT_OBSERVE_JSON", "1")
	if !telemetry.ObserveEnabled() {
		t.Fatal("expected enabled when 1")
	}
}

func TestEmit_DisabledWritesNothing(t *testing.T) {
	t.Setenv("AGENT_OBSERVE_JSON", "")
	t.Chdir(t.TempDir())

	telemetry.Emit("step", map[string]any{"iteration": 0})
	if _, err := os.Stat(filepath.Join(".agent", "events.jsonl")); !os.IsNotExist(err) {
		t.Fatalf("events file should not exist, stat err = %v", err)
	}
}

func TestEmit_AppendsJSONLines(t *testing.T) {
	t.Setenv("AGENT_OBSERVE_JSON", "1")
	t.Chdir(t.TempDir())

	telemetry.Emit("step", map[string]any{"iteration": 0, "tool_calls": 2})
	telemetry.Emit("run_done", map[string]any{"iterations": 1})

	f, err := os.Open(filepath.Join(".agent", "events.jsonl"))
	if err != nil {
		t.Fatalf("open events: %v", err)
	}
	defer f.Close()

	var events []map[string]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var m map[string]any
		if err := json.Unmarshal(sc.Bytes(), &m); err != nil {
			t.Fatalf("line not valid JSON: %v", err)
		}
		events = append(events, m)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events", len(events))
	}
	if events[0]["event"] != "step" || events[1]["event"] != "run_done" {
		t.Fatalf("events = %v", events)
	}
	if events[0]["time"] == nil || events[0]["iteration"] == nil {
		t.Fatalf("missing fields: %v", events[0])
	}
}

func TestEmit_DoesNotMutateCallerMap(t *testing.T) {
	t.Setenv("AGENT_OBSERVE_JSON", "1")
	t.Chdir(t.TempDir())

	fields := map[string]any{"k": "v"}
	telemetry.Emit("step", fields)
	if len(fields) != 1 {
		t.Fatalf("caller map mutated: %v", fields)
	}
}

func TestRunIDContext(t *testing.T) {
	if _, ok := telemetry.RunIDFromContext(context.Background()); ok {
		t.Fatal("expected no run id on fresh context")
	}

	ctx := telemetry.WithRunID(context.Background(), "run-1")
	id, ok := telemetry.RunIDFromContext(ctx)
	if !ok || id != "run-1" {
		t.Fatalf("got %q, %v", id, ok)
	}

	empty := telemetry.WithRunID(context.Background(), "")
	if _, ok := telemetry.RunIDFromContext(empty); ok {
		t.Fatal("empty run id must report absent")
	}
}
