package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const operationIDKey contextKey = "operation_id"

var (
	logger *slog.Logger
	once   sync.Once
)

// ParseLevel maps DEBUG, INFO, WARN and ERROR (any case) to a slog level.
// Anything else is INFO.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Init initializes the global logger with the given level. Output goes to
// stderr so stdout stays free for command output.
func Init(level string) {
	InitWithWriter(os.Stderr, level)
}

// InitWithWriter is Init with an explicit destination. Only the first call
// of Init or InitWithWriter has any effect.
func InitWithWriter(w io.Writer, level string) {
	once.Do(func() {
		opts := &slog.HandlerOptions{
			Level: ParseLevel(level),
		}
		logger = slog.New(slog.NewTextHandler(w, opts))
	})
}

// GetLogger returns the global logger.
func GetLogger() *slog.Logger {
	if logger == nil {
		Init("INFO")
	}
	return logger
}

// WithOperation returns a new context carrying a fresh operation ID, used to
// correlate the log lines of one file operation.
func WithOperation(ctx context.Context) context.Context {
	return context.WithValue(ctx, operationIDKey, uuid.NewString())
}

// OperationIDFromContext extracts the operation ID from context.
func OperationIDFromContext(ctx context.Context) string {
	if v := ctx.Value(operationIDKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// LoggerForContext returns a logger instance with the operation ID from context.
func LoggerForContext(ctx context.Context) *slog.Logger {
	base := GetLogger()
	if id := OperationIDFromContext(ctx); id != "" {
		return base.With("operation_id", id)
	}
	return base
}

// LogAttrs logs a message with slog.Attr attributes.
func LogAttrs(ctx context.Context, level slog.Level, msg string, attrs ...slog.Attr) {
	log := LoggerForContext(ctx)
	log.LogAttrs(ctx, level, msg, attrs...)
}

func Debug(ctx context.Context, msg string, attrs ...slog.Attr) {
	LogAttrs(ctx, slog.LevelDebug, msg, attrs...)
}

func Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}
