// Package logging provides structured logging using Go's slog package.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const (
	// RunIDKey is the context key for run IDs.
	RunIDKey ContextKey = "run_id"
)

var (
	// defaultLogger is the global logger instance.
	defaultLogger *slog.Logger
)

func init() {
	// stdout carries rendered documents, so logs default to stderr.
	InitLogger(os.Stderr, LevelInfo, FormatText)
}

// Level represents a log level.
type Level int

const (
	// LevelDebug is for debug messages.
	LevelDebug Level = iota
	// LevelInfo is for informational messages.
	LevelInfo
	// LevelWarn is for warning messages.
	LevelWarn
	// LevelError is for error messages.
	LevelError
)

// Format represents a log output format.
type Format int

const (
	// FormatJSON outputs logs in JSON format.
	FormatJSON Format = iota
	// FormatText outputs logs in human-readable text format.
	FormatText
)

// ParseLevel maps a flag value such as "debug" onto a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// ParseFormat maps a flag value ("json" or "text") onto a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "text", "":
		return FormatText, nil
	}
	return FormatText, fmt.Errorf("unknown log format %q", s)
}

// InitLogger initializes the global logger writing to w with the specified
// level and format.
func InitLogger(w io.Writer, level Level, format Format) {
	var slogLevel slog.Level
	switch level {
	case LevelDebug:
		slogLevel = slog.LevelDebug
	case LevelInfo:
		slogLevel = slog.LevelInfo
	case LevelWarn:
		slogLevel = slog.LevelWarn
	case LevelError:
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: slogLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Customize timestamp format
			if a.Key == slog.TimeKey {
				return slog.String(slog.TimeKey, a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	}

	var handler slog.Handler
	if format == FormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// NewRunID returns a fresh identifier for one CLI invocation or batch run.
func NewRunID() string {
	return uuid.NewString()
}

// WithRunID adds a run ID to the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// GetRunID retrieves the run ID from the context.
func GetRunID(ctx context.Context) string {
	if runID, ok := ctx.Value(RunIDKey).(string); ok {
		return runID
	}
	return ""
}

// LoggerFromContext returns a logger with context values attached.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	logger := defaultLogger
	if runID := GetRunID(ctx); runID != "" {
		logger = logger.With("run_id", runID)
	}
	return logger
}

// Helper functions for common logging patterns

// DebugContext logs a debug message with context.
func DebugContext(ctx context.Context, msg string, args ...any) {
	LoggerFromContext(ctx).Debug(msg, args...)
}

// InfoContext logs an info message with context.
func InfoContext(ctx context.Context, msg string, args ...any) {
	LoggerFromContext(ctx).Info(msg, args...)
}

// WarnContext logs a warning message with context.
func WarnContext(ctx context.Context, msg string, args ...any) {
	LoggerFromContext(ctx).Warn(msg, args...)
}

// ErrorContext logs an error message with context.
func ErrorContext(ctx context.Context, msg string, args ...any) {
	LoggerFromContext(ctx).Error(msg, args...)
}

// DocumentParsed logs a successfully interpreted markup document.
func DocumentParsed(ctx context.Context, source, digest string, fields int, args ...any) {
	allArgs := []any{
		"source", source,
		"digest", digest,
		"fields", fields,
	}
	allArgs = append(allArgs, args...)
	LoggerFromContext(ctx).Debug("document_parsed", allArgs...)
}

// DocumentFailed logs a markup document that could not be interpreted.
func DocumentFailed(ctx context.Context, source string, err error, args ...any) {
	allArgs := []any{
		"source", source,
		"error", err.Error(),
	}
	allArgs = append(allArgs, args...)
	LoggerFromContext(ctx).Error("document_failed", allArgs...)
}

// BundleWritten logs a written output bundle with a human-readable size.
func BundleWritten(ctx context.Context, path string, files int, size int64, args ...any) {
	allArgs := []any{
		"path", path,
		"files", files,
		"size", humanize.Bytes(uint64(max(size, 0))),
	}
	allArgs = append(allArgs, args...)
	LoggerFromContext(ctx).Info("bundle_written", allArgs...)
}
