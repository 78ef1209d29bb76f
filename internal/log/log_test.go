package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"DEBUG":     DEBUG,
		"WARN":      WARN,
		"ERROR":     ERROR,
		"CRITICAL":  CRITICAL,
		"":          INFO,
		"nonsense":  INFO,
		"Debug":     INFO, // case-sensitive, falls back to INFO
	}
	for s, want := range cases {
		if got := ParseLevel(s); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", s, got, want)
		}
	}
}

func TestLevelString(t *testing.T) {
	if got := WARN.String(); got != "WARN" {
		t.Errorf("WARN.String() = %q", got)
	}
	if got := Level(99).String(); got != "UNKNOWN" {
		t.Errorf("Level(99).String() = %q", got)
	}
}

func TestLoggerFiltersBelowThreshold(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "eppproxy-test")
	l.SetLevel(WARN)

	if err := l.Info("should be dropped"); err != nil {
		t.Fatalf("Info: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output below threshold, got %q", buf.String())
	}

	if err := l.Warn("should appear"); err != nil {
		t.Fatalf("Warn: %v", err)
	}
	if !strings.Contains(buf.String(), "should appear") {
		t.Errorf("output missing message: %q", buf.String())
	}
}

func TestLoggerWritesKVFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "eppproxy-test")
	if err := l.Info("command sent", KV("registry", "test"), KV("clTRID", "clt-1")); err != nil {
		t.Fatalf("Info: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"command sent", "test", "clt-1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}
}

func TestKVErr(t *testing.T) {
	p := KVErr(ErrNotOpen)
	if p.Name != "error" {
		t.Errorf("KVErr name = %q, want error", p.Name)
	}
	if !strings.Contains(p.Value, "not open") {
		t.Errorf("KVErr value = %q", p.Value)
	}
}

func TestLoggerRejectsWriteAfterNilWriter(t *testing.T) {
	l := New(nil, "eppproxy-test")
	if err := l.Info("x"); err != ErrNotOpen {
		t.Fatalf("Info with nil writer = %v, want ErrNotOpen", err)
	}
}

func TestKVLoggerBindsFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "eppproxy-test")
	kv := l.With(KV("registry", "as207960"))

	if err := kv.Error("connection lost", KV("clTRID", "clt-7")); err != nil {
		t.Fatalf("Error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"connection lost", "as207960", "clt-7"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}
}

func TestKVLoggerCritical(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "eppproxy-test")
	kv := l.With()
	if err := kv.Critical("registry unreachable"); err != nil {
		t.Fatalf("Critical: %v", err)
	}
	if !strings.Contains(buf.String(), "registry unreachable") {
		t.Errorf("output missing message: %q", buf.String())
	}
}
