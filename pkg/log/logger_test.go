// Copyright (C) 2026  ReefControl contributors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{"Warn", WARN},
		{"WARNING", WARN},
		{"error", ERROR},
		{"bogus", INFO},
		{"", INFO},
	}
	for _, tc := range tests {
		if got := ParseLevel(tc.in); got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New("test")
	l.SetWriter(&buf)
	l.SetLevel(WARN)

	l.Debug("dropped")
	l.Info("dropped")
	l.Warn("kept warn")
	l.Error("kept error")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("filtered message leaked: %q", out)
	}
	if !strings.Contains(out, "kept warn") || !strings.Contains(out, "kept error") {
		t.Fatalf("messages missing: %q", out)
	}
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New("heater")
	l.SetWriter(&buf)
	l.SetLevel(DEBUG)

	l.Info("target %.1f", 25.0)
	out := buf.String()
	if !strings.Contains(out, "[INFO ] heater: target 25.0") {
		t.Fatalf("unexpected line: %q", out)
	}
}

func TestTextFields(t *testing.T) {
	var buf bytes.Buffer
	l := New("axis")
	l.SetWriter(&buf)

	l.WithFields(INFO, "motion", Fields{"steps": 100, "axis": "X"})
	out := buf.String()
	// Field keys are sorted.
	if !strings.Contains(out, "{axis=X, steps=100}") {
		t.Fatalf("unexpected fields: %q", out)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New("sensors")
	l.SetWriter(&buf)
	l.json = true

	l.WithFields(WARN, "probe lost", Fields{"probe": 2})

	var entry struct {
		Level   string                 `json:"level"`
		Logger  string                 `json:"logger"`
		Message string                 `json:"message"`
		Fields  map[string]interface{} `json:"fields"`
	}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if entry.Level != "WARN" || entry.Logger != "sensors" || entry.Message != "probe lost" {
		t.Fatalf("entry = %+v", entry)
	}
	if entry.Fields["probe"] != float64(2) {
		t.Fatalf("fields = %v", entry.Fields)
	}
}

func TestWithPrefixSharesSettings(t *testing.T) {
	var buf bytes.Buffer
	l := New("root")
	l.SetWriter(&buf)
	l.SetLevel(ERROR)

	child := l.WithPrefix("child")
	child.Warn("dropped")
	child.Error("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("child ignored inherited level: %q", out)
	}
	if !strings.Contains(out, "child: kept") {
		t.Fatalf("child message missing: %q", out)
	}
}
