package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ParseLevel maps a level name to a slog level. Unknown names mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// New builds a logger writing to w. format is "json" or "text".
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// Init creates a stderr logger and makes it the slog default. Stdout is left
// for report output.
func Init(level, format string) *slog.Logger {
	l := New(os.Stderr, level, format)
	slog.SetDefault(l)
	return l
}

// EngineLogger adapts a slog logger to the printf-style interface the
// projection engine logs through.
type EngineLogger struct {
	l *slog.Logger
}

// NewEngineLogger wraps l. A nil logger uses the slog default.
func NewEngineLogger(l *slog.Logger) *EngineLogger {
	if l == nil {
		l = slog.Default()
	}
	return &EngineLogger{l: l}
}

func (e *EngineLogger) Debugf(format string, args ...any) { e.log(slog.LevelDebug, format, args) }
func (e *EngineLogger) Infof(format string, args ...any)  { e.log(slog.LevelInfo, format, args) }
func (e *EngineLogger) Warnf(format string, args ...any)  { e.log(slog.LevelWarn, format, args) }
func (e *EngineLogger) Errorf(format string, args ...any) { e.log(slog.LevelError, format, args) }

func (e *EngineLogger) log(level slog.Level, format string, args []any) {
	ctx := context.Background()
	if !e.l.Enabled(ctx, level) {
		return
	}
	e.l.Log(ctx, level, fmt.Sprintf(format, args...), "component", "engine")
}
