// File: logger_test.go
// Title: Logger Tests
// Description: Tests for levels, formatters, immutable derivation and timers.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-19

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	mdwerror "github.com/msto63/khamseena/foundation/core/error"
)

func newBufferLogger(format Format, level Level) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return NewWithConfig(Config{Level: level, Format: format, Output: buf}), buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"trace", LevelTrace, false},
		{"DEBUG", LevelDebug, false},
		{" info ", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"err", LevelError, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"text", FormatText, false},
		{"console", FormatText, false},
		{"JSON", FormatJSON, false},
		{"logfmt", FormatLogfmt, false},
		{"xml", FormatText, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(FormatText, LevelWarn)

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("output contains filtered entries: %q", out)
	}
	if !strings.Contains(out, "[WRN]") || !strings.Contains(out, "shown") {
		t.Errorf("output missing warn entry: %q", out)
	}
}

func TestLogger_JSONFields(t *testing.T) {
	logger, buf := newBufferLogger(FormatJSON, LevelDebug)
	logger = logger.WithName("khc").WithField("component", "khamseena-parser")

	logger.Debug("parsed", Fields{"statements": 3})

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if decoded["component"] != "khamseena-parser" {
		t.Errorf("component = %v", decoded["component"])
	}
	if decoded["statements"] != float64(3) {
		t.Errorf("statements = %v", decoded["statements"])
	}
	if decoded["logger"] != "khc" {
		t.Errorf("logger = %v", decoded["logger"])
	}
	if decoded["level"] != "debug" {
		t.Errorf("level = %v", decoded["level"])
	}
}

func TestLogger_WithFieldDoesNotMutateParent(t *testing.T) {
	parent, buf := newBufferLogger(FormatLogfmt, LevelInfo)
	_ = parent.WithField("component", "child")

	parent.Info("from parent")

	if strings.Contains(buf.String(), "component=") {
		t.Errorf("parent logger picked up child field: %q", buf.String())
	}
}

func TestLogger_LogfmtSortedFields(t *testing.T) {
	logger, buf := newBufferLogger(FormatLogfmt, LevelInfo)
	logger.Info("stage", Fields{"zeta": 1, "alpha": "a"})

	out := buf.String()
	a := strings.Index(out, "alpha=")
	z := strings.Index(out, "zeta=")
	if a < 0 || z < 0 || a > z {
		t.Errorf("fields not sorted in %q", out)
	}
	if !strings.Contains(out, `message="stage"`) {
		t.Errorf("missing quoted message in %q", out)
	}
}

func TestLogger_LogError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantLevel string
	}{
		{"low severity", mdwerror.New("bad char").WithCode(mdwerror.CodeLexical), "INF"},
		{"medium severity", mdwerror.New("odd"), "WRN"},
		{"high severity", mdwerror.New("broken").WithCode(mdwerror.CodeSemanticFatal), "ERR"},
		{"plain error", errors.New("plain"), "ERR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferLogger(FormatText, LevelTrace)
			logger.LogError(tt.err)
			if !strings.Contains(buf.String(), "["+tt.wantLevel+"]") {
				t.Errorf("LogError() output %q, want level %s", buf.String(), tt.wantLevel)
			}
		})
	}

	logger, buf := newBufferLogger(FormatText, LevelTrace)
	logger.LogError(nil)
	if buf.Len() != 0 {
		t.Errorf("LogError(nil) wrote %q", buf.String())
	}
}

func TestTimer(t *testing.T) {
	logger, buf := newBufferLogger(FormatJSON, LevelDebug)

	timer := logger.StartTimer("tokenize").WithField("bytes", 12)
	if d := timer.Stop(); d < 0 {
		t.Errorf("Stop() = %v", d)
	}
	if d := timer.Stop(); d != 0 {
		t.Errorf("second Stop() = %v, want 0", d)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1", len(lines))
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded["message"] != "tokenize completed" {
		t.Errorf("message = %v", decoded["message"])
	}
	if decoded["operation"] != "tokenize" {
		t.Errorf("operation = %v", decoded["operation"])
	}
}

func TestTimer_StopWithError(t *testing.T) {
	logger, buf := newBufferLogger(FormatText, LevelInfo)
	logger.StartTimer("analyze").StopWithError(errors.New("boom"))

	out := buf.String()
	if !strings.Contains(out, "[ERR]") || !strings.Contains(out, "analyze failed") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	if logger.IsLevelEnabled(LevelError) {
		t.Error("Discard() logger should not enable error level")
	}
	logger.Error("nothing")
}
