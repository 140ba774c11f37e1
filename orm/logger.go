package orm

import (
	"context"
	"log/slog"
)

// Logger is the interface for query logging.
type Logger interface {
	Log(ctx context.Context, query string, args ...any)
}

// SlogLogger writes every statement to an *slog.Logger at debug level.
type SlogLogger struct {
	L *slog.Logger
}

// Log implements Logger.
func (s SlogLogger) Log(ctx context.Context, query string, args ...any) {
	l := s.L
	if l == nil {
		l = slog.Default()
	}
	l.DebugContext(ctx, "sql", slog.String("query", query), slog.Any("args", args))
}

var _ Logger = SlogLogger{}
