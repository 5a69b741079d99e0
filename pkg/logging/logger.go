package logging

import (
	"context"
	"log/slog"
	"os"
)

type contextKey string

const requestIDKey contextKey = "requestID"

var logger *slog.Logger

func init() {
	// Compact console handler by default; switch to JSON for production
	// with SetJSONOutput.
	logger = slog.New(NewCompactHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// SetLevel changes the logging level, keeping compact console output.
func SetLevel(level slog.Level) {
	logger = slog.New(NewCompactHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}

// SetJSONOutput switches to structured JSON output.
func SetJSONOutput(level slog.Level) {
	logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}

// WithRequestID stores a request ID on the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestID retrieves the request ID from the context, if any.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

func withRequestID(ctx context.Context, args []any) []any {
	if id := RequestID(ctx); id != "" {
		return append([]any{"requestID", id}, args...)
	}
	return args
}

// Debug logs internal component behavior.
func Debug(msg string, args ...any) {
	logger.Debug(msg, args...)
}

// DebugContext logs at DEBUG level with request context.
func DebugContext(ctx context.Context, msg string, args ...any) {
	logger.DebugContext(ctx, msg, withRequestID(ctx, args)...)
}

// Info logs user-facing operations.
func Info(msg string, args ...any) {
	logger.Info(msg, args...)
}

// InfoContext logs at INFO level with request context.
func InfoContext(ctx context.Context, msg string, args ...any) {
	logger.InfoContext(ctx, msg, withRequestID(ctx, args)...)
}

// Warn logs conditions worth monitoring.
func Warn(msg string, args ...any) {
	logger.Warn(msg, args...)
}

// WarnContext logs at WARN level with request context.
func WarnContext(ctx context.Context, msg string, args ...any) {
	logger.WarnContext(ctx, msg, withRequestID(ctx, args)...)
}

// Error logs logical bugs that should not happen.
func Error(msg string, args ...any) {
	logger.Error(msg, args...)
}

// ErrorContext logs at ERROR level with request context.
func ErrorContext(ctx context.Context, msg string, args ...any) {
	logger.ErrorContext(ctx, msg, withRequestID(ctx, args)...)
}

// Fatal logs at ERROR level and exits.
func Fatal(msg string, args ...any) {
	logger.Error(msg, args...)
	os.Exit(1)
}
