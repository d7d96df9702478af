package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestHumanHandlerOutput(t *testing.T) {
	var buf bytes.Buffer
	h := NewHumanHandler(&buf, &HumanHandlerOptions{Level: slog.LevelInfo})
	log := slog.New(h)

	log.Info("run started", slog.String("filter", "CompositeFilter"))

	out := buf.String()
	if !strings.Contains(out, "ℹ run started") {
		t.Errorf("output %q missing level prefix and message", out)
	}
	if !strings.Contains(out, "filter=CompositeFilter") {
		t.Errorf("output %q missing attribute", out)
	}
}

func TestHumanHandlerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	h := NewHumanHandler(&buf, &HumanHandlerOptions{Level: slog.LevelWarn})

	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("Enabled(Info) = true with Warn threshold")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("Enabled(Error) = false with Warn threshold")
	}
}

func TestHumanHandlerWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := NewHumanHandler(&buf, nil)
	log := slog.New(h).With("filter", "MappedFilter")

	log.Info("record rejected")

	if !strings.Contains(buf.String(), "filter=MappedFilter") {
		t.Errorf("output %q missing inherited attribute", buf.String())
	}
}

func TestLevelPrefix(t *testing.T) {
	tests := []struct {
		level slog.Level
		want  string
	}{
		{level: slog.LevelError, want: "✗"},
		{level: slog.LevelWarn, want: "⚠"},
		{level: slog.LevelInfo, want: "ℹ"},
		{level: slog.LevelDebug, want: "·"},
	}
	for _, tt := range tests {
		if got := levelPrefix(tt.level); got != tt.want {
			t.Errorf("levelPrefix(%v) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{d: 250 * time.Microsecond, want: "250µs"},
		{d: 42 * time.Millisecond, want: "42ms"},
		{d: 1500 * time.Millisecond, want: "1.50s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
