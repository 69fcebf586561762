package chainr

import (
	"log/slog"

	"go.uber.org/zap"
)

// Logger receives step progress while a chain runs. Attributes are
// alternating key-value pairs, as with log/slog:
//
//	logger.Debug("step finished", "index", 2, "operation", "shift")
//
// Each step gets a child logger carrying its index and operation. Starts and
// finishes are logged at debug level; timeouts, cancellations and recovered
// panics at error level.
type Logger interface {
	Debug(msg string, attrs ...any)
	Info(msg string, attrs ...any)
	Warn(msg string, attrs ...any)
	Error(msg string, attrs ...any)
	With(attrs ...any) Logger
}

// NopLogger discards everything. Chains run with it unless WithLogger is given.
type NopLogger struct{}

// Debug implements Logger.
func (NopLogger) Debug(string, ...any) {}

// Info implements Logger.
func (NopLogger) Info(string, ...any) {}

// Warn implements Logger.
func (NopLogger) Warn(string, ...any) {}

// Error implements Logger.
func (NopLogger) Error(string, ...any) {}

// With implements Logger.
func (n NopLogger) With(...any) Logger { return n }

// SlogAdapter sends step progress to a *slog.Logger.
type SlogAdapter struct {
	l *slog.Logger
}

// NewSlogAdapter wraps l, falling back to slog.Default() when l is nil.
func NewSlogAdapter(l *slog.Logger) *SlogAdapter {
	if l == nil {
		l = slog.Default()
	}
	return &SlogAdapter{l: l}
}

// Debug implements Logger.
func (s *SlogAdapter) Debug(msg string, attrs ...any) { s.l.Debug(msg, attrs...) }

// Info implements Logger.
func (s *SlogAdapter) Info(msg string, attrs ...any) { s.l.Info(msg, attrs...) }

// Warn implements Logger.
func (s *SlogAdapter) Warn(msg string, attrs ...any) { s.l.Warn(msg, attrs...) }

// Error implements Logger.
func (s *SlogAdapter) Error(msg string, attrs ...any) { s.l.Error(msg, attrs...) }

// With implements Logger.
func (s *SlogAdapter) With(attrs ...any) Logger { return &SlogAdapter{l: s.l.With(attrs...)} }

// ZapAdapter sends step progress to a *zap.SugaredLogger using its
// key-value ("w") methods. The MCP server hands each tool call's logger to
// its chain this way:
//
//	result, err := chainr.TransformWithOptions(
//		chainr.WithChainParsed(c),
//		chainr.WithInputParsed(doc),
//		chainr.WithLogger(chainr.NewZapAdapter(z.Sugar())),
//	)
type ZapAdapter struct {
	l *zap.SugaredLogger
}

// NewZapAdapter wraps l, falling back to a no-op logger when l is nil.
func NewZapAdapter(l *zap.SugaredLogger) *ZapAdapter {
	if l == nil {
		l = zap.NewNop().Sugar()
	}
	return &ZapAdapter{l: l}
}

// Debug implements Logger.
func (z *ZapAdapter) Debug(msg string, attrs ...any) { z.l.Debugw(msg, attrs...) }

// Info implements Logger.
func (z *ZapAdapter) Info(msg string, attrs ...any) { z.l.Infow(msg, attrs...) }

// Warn implements Logger.
func (z *ZapAdapter) Warn(msg string, attrs ...any) { z.l.Warnw(msg, attrs...) }

// Error implements Logger.
func (z *ZapAdapter) Error(msg string, attrs ...any) { z.l.Errorw(msg, attrs...) }

// With implements Logger.
func (z *ZapAdapter) With(attrs ...any) Logger { return &ZapAdapter{l: z.l.With(attrs...)} }

var (
	_ Logger = NopLogger{}
	_ Logger = (*SlogAdapter)(nil)
	_ Logger = (*ZapAdapter)(nil)
)
