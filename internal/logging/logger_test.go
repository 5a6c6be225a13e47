package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   Debug,
		"Info":    Info,
		"":        Info,
		"warn":    Warn,
		"warning": Warn,
		"ERROR":   Error,
	}
	for s, want := range cases {
		got, err := ParseLevel(s)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", s, err)
		}
		if got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", s, got, want)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatalf("ParseLevel accepted an unknown level")
	}
}

func TestTextOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New(Info, Text, &buf)
	l.Debug("hidden")
	l.Info("packet received", F("bytes", 4), F("rssi", -72.5))
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug entry leaked through an info logger: %q", out)
	}
	if !strings.Contains(out, "[INFO] packet received bytes=4 rssi=-72.5") {
		t.Fatalf("unexpected text entry: %q", out)
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New(Debug, JSON, &buf).With(F("device", "/dev/cc1101.0.0"))
	l.Warn("config drifted", F("pushes", 2))

	line := strings.TrimSpace(buf.String())
	// Strip the stdlib timestamp prefix up to the JSON payload.
	if i := strings.IndexByte(line, '{'); i >= 0 {
		line = line[i:]
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(line), &payload); err != nil {
		t.Fatalf("entry is not valid JSON: %v (%q)", err, line)
	}
	if payload["level"] != "WARN" || payload["msg"] != "config drifted" {
		t.Fatalf("unexpected payload: %v", payload)
	}
	if payload["device"] != "/dev/cc1101.0.0" {
		t.Fatalf("With field missing: %v", payload)
	}
	if payload["pushes"] != float64(2) {
		t.Fatalf("entry field missing: %v", payload)
	}
}

func TestWithDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := New(Info, Text, &buf)
	_ = parent.With(F("child", 1))
	parent.Info("plain")
	if strings.Contains(buf.String(), "child") {
		t.Fatalf("child field leaked into parent logger: %q", buf.String())
	}
}
