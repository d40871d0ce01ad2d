package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	if ParseLevel("debug") != slog.LevelDebug {
		t.Fatalf("expected debug")
	}
	if ParseLevel("nonsense") != slog.LevelInfo {
		t.Fatalf("expected fallback to info")
	}
	if ParseLevel("") != slog.LevelInfo {
		t.Fatalf("expected default info")
	}
}

func TestConsoleSkipsDebugWhenQuiet(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, false)
	c.Debug("hidden")
	c.Info("Rolling back changes...")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug must be hidden: %q", out)
	}
	if !strings.Contains(out, "Rolling back changes...") {
		t.Fatalf("info line missing: %q", out)
	}
}

func TestConsoleFormatsAttrs(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, true)
	c.Debug("spawn", "command", "go")
	if !strings.Contains(buf.String(), "command=go") {
		t.Fatalf("attrs missing: %q", buf.String())
	}
}

func TestStructuredStepKind(t *testing.T) {
	var buf bytes.Buffer
	s := NewStructured(NewJSON(&buf, slog.LevelDebug))
	s.Step("Initialize")
	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec["msg"] != "Initialize" || rec["kind"] != "step" {
		t.Fatalf("unexpected record: %v", rec)
	}
}

func TestRecorderMessages(t *testing.T) {
	r := NewRecorder()
	r.Step("A")
	r.Info("x")
	r.Step("B")
	got := r.Messages("step")
	if len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Fatalf("unexpected steps: %v", got)
	}
	if len(r.Entries()) != 3 {
		t.Fatalf("unexpected entries: %v", r.Entries())
	}
}
