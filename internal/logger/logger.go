// Package logger provides structured logging functionality.
// It wraps the standard log/slog package for consistent logging across the
// runtime. All helpers use structured logging with consistent field names
// (snake_case).
//
// The package supports two output formats:
//   - JSON (default): machine-readable structured logging
//   - Human: human-readable console output with level prefixes
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Logger is the default logger instance.
var Logger *slog.Logger

func init() {
	// Initialize with JSON handler for structured logging
	Logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// OutputFormat represents the log output format.
type OutputFormat int

const (
	// FormatJSON is the default machine-readable JSON format
	FormatJSON OutputFormat = iota
	// FormatHuman is a human-readable console format with level prefixes
	FormatHuman
)

// SetLevel configures the logging level, keeping the JSON format.
func SetLevel(level slog.Level) {
	SetLevelAndFormat(level, FormatJSON)
}

// SetLevelAndFormat sets both the log level and the output format.
func SetLevelAndFormat(level slog.Level, format OutputFormat) {
	switch format {
	case FormatHuman:
		Logger = slog.New(NewHumanHandler(os.Stderr, &HumanHandlerOptions{
			Level: level,
		}))
	default:
		Logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))
	}
}

// Info logs an informational message.
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

// WithFilter returns a logger with filter context.
func WithFilter(filterName string) *slog.Logger {
	return Logger.With("filter", filterName)
}

// RunMetrics contains throughput metrics for one processing run.
type RunMetrics struct {
	// RecordsProcessed is the number of records read from the input
	RecordsProcessed int
	// RecordsPassed is the number of records that passed the filter chain
	RecordsPassed int
	// RecordsRejected is the number of records rejected by the filter chain
	RecordsRejected int
	// Duration is the total run time
	Duration time.Duration
	// RecordsPerSecond is the throughput
	RecordsPerSecond float64
}

// LogRunMetrics logs processing throughput after a run completes.
func LogRunMetrics(m RunMetrics) {
	Logger.Info("run metrics",
		slog.Int("records_processed", m.RecordsProcessed),
		slog.Int("records_passed", m.RecordsPassed),
		slog.Int("records_rejected", m.RecordsRejected),
		slog.Duration("duration", m.Duration),
		slog.Float64("records_per_second", m.RecordsPerSecond),
	)
}

// HumanHandlerOptions configures the human-readable log handler.
type HumanHandlerOptions struct {
	// Level is the minimum log level to output
	Level slog.Level
}

// HumanHandler is a slog handler that outputs human-readable log messages.
type HumanHandler struct {
	opts   HumanHandlerOptions
	writer io.Writer
	attrs  []slog.Attr
}

// NewHumanHandler creates a new human-readable log handler.
func NewHumanHandler(w io.Writer, opts *HumanHandlerOptions) *HumanHandler {
	if opts == nil {
		opts = &HumanHandlerOptions{Level: slog.LevelInfo}
	}
	return &HumanHandler{
		opts:   *opts,
		writer: w,
	}
}

// Enabled returns true if the handler is enabled for the given level.
func (h *HumanHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level
}

// Handle outputs a log record in human-readable format.
func (h *HumanHandler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder

	sb.WriteString(r.Time.Format("15:04:05"))
	sb.WriteString(" ")
	sb.WriteString(levelPrefix(r.Level))
	sb.WriteString(" ")
	sb.WriteString(r.Message)

	var attrs []string
	for _, a := range h.attrs {
		attrs = append(attrs, formatAttr(a))
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, formatAttr(a))
		return true
	})
	if len(attrs) > 0 {
		sb.WriteString(" ")
		sb.WriteString(strings.Join(attrs, " "))
	}

	sb.WriteString("\n")
	_, err := h.writer.Write([]byte(sb.String()))
	return err
}

// WithAttrs returns a new handler with the given attributes added.
func (h *HumanHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandler := &HumanHandler{
		opts:   h.opts,
		writer: h.writer,
		attrs:  make([]slog.Attr, len(h.attrs)+len(attrs)),
	}
	copy(newHandler.attrs, h.attrs)
	copy(newHandler.attrs[len(h.attrs):], attrs)
	return newHandler
}

// WithGroup returns the handler unchanged; groups are flattened in the
// human format.
func (h *HumanHandler) WithGroup(_ string) slog.Handler {
	return h
}

// levelPrefix returns a human-readable prefix for the log level.
func levelPrefix(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "✗"
	case level >= slog.LevelWarn:
		return "⚠"
	case level >= slog.LevelInfo:
		return "ℹ"
	default:
		return "·"
	}
}

// formatAttr formats a single attribute for display.
func formatAttr(a slog.Attr) string {
	if d, ok := a.Value.Any().(time.Duration); ok {
		return fmt.Sprintf("%s=%s", a.Key, formatDuration(d))
	}
	if f, ok := a.Value.Any().(float64); ok {
		return fmt.Sprintf("%s=%.2f", a.Key, f)
	}
	return fmt.Sprintf("%s=%v", a.Key, a.Value)
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}
