package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestNew_JSON_IncludesAppAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatJSON, App: "lost-found-search", Writer: &buf})

	l.With(map[string]any{"session_id": "s-1"}).Info("list fetched", map[string]any{
		"count": 3,
		"err":   errors.New("boom"),
	})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid json line %q: %v", buf.String(), err)
	}
	if entry["app"] != "lost-found-search" {
		t.Fatalf("expected app field, got %#v", entry["app"])
	}
	if entry["session_id"] != "s-1" {
		t.Fatalf("expected session_id field, got %#v", entry["session_id"])
	}
	if entry["err"] != "boom" {
		t.Fatalf("expected error rendered as string, got %#v", entry["err"])
	}
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Warn, Format: FormatText, Writer: &buf})

	l.Info("hidden", nil)
	l.Warn("shown", nil)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Fatalf("expected warn line, got %q", out)
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	if ParseLevel("WARNING") != Warn || ParseLevel("") != Info || ParseLevel("nope") != Info {
		t.Fatalf("unexpected ParseLevel results")
	}
	if ParseFormat("json") != FormatJSON || ParseFormat("x") != FormatText {
		t.Fatalf("unexpected ParseFormat results")
	}
}

func TestMulti_FansOut(t *testing.T) {
	var a, b bytes.Buffer
	l := Multi(
		New(Options{Format: FormatJSON, Writer: &a}),
		New(Options{Format: FormatJSON, Writer: &b}),
	)
	l.With(map[string]any{"k": "v"}).Info("hello", nil)

	if !strings.Contains(a.String(), "hello") || !strings.Contains(b.String(), "hello") {
		t.Fatalf("expected both sinks to receive the entry")
	}
}
