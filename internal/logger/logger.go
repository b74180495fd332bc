package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

var defaultLogger *slog.Logger

type ctxKey struct{}

// WithRequestID returns a context whose log records carry request_id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// RequestID returns the id stored by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// requestHandler adds the request id of the record's context, if any.
type requestHandler struct {
	slog.Handler
}

func (h requestHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := RequestID(ctx); id != "" {
		r.AddAttrs(slog.String("request_id", id))
	}
	return h.Handler.Handle(ctx, r)
}

func (h requestHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return requestHandler{h.Handler.WithAttrs(attrs)}
}

func (h requestHandler) WithGroup(name string) slog.Handler {
	return requestHandler{h.Handler.WithGroup(name)}
}

// Initialize sets up the global logger writing to stdout
func Initialize(level, format string) {
	InitializeWithWriter(os.Stdout, level, format)
}

// InitializeWithWriter sets up the global logger writing to w. format is
// "json" or "text".
func InitializeWithWriter(w io.Writer, level, format string) {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler = slog.NewTextHandler(w, opts)
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	}

	defaultLogger = slog.New(requestHandler{handler})
	slog.SetDefault(defaultLogger)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func get() *slog.Logger {
	if defaultLogger == nil {
		Initialize("info", "text")
	}
	return defaultLogger
}

func Debug(msg string, args ...any) { get().Debug(msg, args...) }
func Info(msg string, args ...any)  { get().Info(msg, args...) }
func Warn(msg string, args ...any)  { get().Warn(msg, args...) }
func Error(msg string, args ...any) { get().Error(msg, args...) }

func InfoContext(ctx context.Context, msg string, args ...any) {
	get().InfoContext(ctx, msg, args...)
}

func ErrorContext(ctx context.Context, msg string, args ...any) {
	get().ErrorContext(ctx, msg, args...)
}

// EnterMethod logs entry into a service operation at debug level.
func EnterMethod(method string, args ...any) {
	get().Debug("→ Method entered", append([]any{"method", method, "event", "enter"}, args...)...)
}

// ExitMethod logs a successful return from a service operation.
func ExitMethod(method string, args ...any) {
	get().Debug("← Method exited", append([]any{"method", method, "event", "exit"}, args...)...)
}

// ExitMethodWithError logs a failed return. Expected rejections such as
// validation errors pass through here too, so it stays at warn.
func ExitMethodWithError(method string, err error, args ...any) {
	get().Warn("← Method exited with error", append([]any{"method", method, "event", "exit", "error", err}, args...)...)
}

// StoreCall logs one attempt of a remote store operation.
func StoreCall(operation string, attempt int, args ...any) {
	get().Debug("→ Store call", append([]any{"operation", operation, "attempt", attempt}, args...)...)
}

// StoreResult logs the outcome of the attempt announced by StoreCall.
func StoreResult(operation string, attempt int, err error, args ...any) {
	all := append([]any{"operation", operation, "attempt", attempt}, args...)
	if err != nil {
		get().Warn("← Store call failed", append(all, "error", err)...)
		return
	}
	get().Debug("← Store call succeeded", all...)
}

// Reconcile logs a half-applied mutation that an operator has to repair by
// hand. Records always carry reconcile=true at error level.
func Reconcile(ctx context.Context, operation string, err error, args ...any) {
	all := append([]any{"operation", operation, "reconcile", true, "error", err}, args...)
	get().ErrorContext(ctx, "Partial failure requires manual reconciliation", all...)
}
