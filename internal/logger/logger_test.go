package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	t.Run("verbose enables debug", func(t *testing.T) {
		Init(true)
		defer Init(false)

		if GetLevel() != LevelDebug {
			t.Errorf("expected LevelDebug, got %v", GetLevel())
		}
	})

	t.Run("default shows warnings only", func(t *testing.T) {
		Init(false)

		if GetLevel() != LevelWarn {
			t.Errorf("expected LevelWarn, got %v", GetLevel())
		}
	})
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	Init(false)

	Debug("debug message")
	Info("info message")
	Warn("warn message")
	Error("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") {
		t.Error("debug message should be filtered at LevelWarn")
	}
	if strings.Contains(out, "info message") {
		t.Error("info message should be filtered at LevelWarn")
	}
	if !strings.Contains(out, "[WARN]") || !strings.Contains(out, "warn message") {
		t.Errorf("warn message missing from output: %q", out)
	}
	if !strings.Contains(out, "[ERROR]") || !strings.Contains(out, "error message") {
		t.Errorf("error message missing from output: %q", out)
	}
}

func TestVerboseOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	Init(true)
	defer Init(false)

	Debug("installing %s", "nginx")

	if !strings.Contains(buf.String(), "[DEBUG]") || !strings.Contains(buf.String(), "installing nginx") {
		t.Errorf("debug output missing: %q", buf.String())
	}
}

func TestInfoFields(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	SetLevel(LevelDebug)
	defer Init(false)

	InfoFields("node check", map[string]interface{}{
		"major": 20,
		"found": true,
	})

	out := buf.String()
	// Keys are sorted for deterministic output
	if !strings.Contains(out, "node check found=true major=20") {
		t.Errorf("unexpected fields output: %q", out)
	}
}

func TestLogError(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	Init(false)

	LogError(nil, "should not log")
	if buf.Len() != 0 {
		t.Errorf("nil error should produce no output, got %q", buf.String())
	}
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if tt.level.String() != tt.expected {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, tt.level.String(), tt.expected)
		}
	}
}
