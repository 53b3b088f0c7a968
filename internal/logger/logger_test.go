package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{" INFO ", slog.LevelInfo, true},
		{"", slog.LevelInfo, true},
		{"warning", slog.LevelWarn, true},
		{"err", slog.LevelError, true},
		{"loud", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLevel(tt.in)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ParseLevel(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{}, slog.LevelWarn, &buf)

	l.Info("hidden")
	l.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("output = %q", out)
	}
}

func TestNewFiltersDisabledTags(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{DisabledTags: []string{"Select"}}, slog.LevelDebug, &buf)

	l.With(TagKey, "select").Debug("drag began")
	l.Debug("record tag", TagKey, "select")
	l.With(TagKey, "editor").Debug("undo")
	l.Debug("untagged")

	out := buf.String()
	if strings.Contains(out, "drag began") || strings.Contains(out, "record tag") {
		t.Errorf("disabled tag was logged: %q", out)
	}
	if !strings.Contains(out, "undo") || !strings.Contains(out, "untagged") {
		t.Errorf("enabled messages missing: %q", out)
	}
}

func TestGetDefaultsToDiscard(t *testing.T) {
	if Get() == nil {
		t.Fatal("Get() = nil")
	}
	// must not panic before Init
	Debugf("value %d", 1)
	WithTag("test").Info("quiet")
}
