// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestNewWithWriterText(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, Config{})

	logger.Info("hello", "component", "test")

	out := buf.String()
	if out == "" {
		t.Fatal("expected output")
	}
	if !bytes.Contains(buf.Bytes(), []byte("component=test")) {
		t.Errorf("output = %q, want text attributes", out)
	}
}

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, Config{JSON: true})

	logger.Info("hello", "component", "test")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output %q is not JSON: %v", buf.String(), err)
	}
	if record["msg"] != "hello" || record["component"] != "test" {
		t.Errorf("record = %v", record)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, Config{Level: slog.LevelWarn})

	logger.Info("suppressed")
	if buf.Len() != 0 {
		t.Errorf("info output = %q, want suppressed below warn", buf.String())
	}

	logger.Warn("emitted")
	if buf.Len() == 0 {
		t.Error("expected warn output")
	}
}

func TestNewNopDiscards(t *testing.T) {
	// Must not panic and must not write anywhere observable.
	NewNop().Error("ignored")
}
