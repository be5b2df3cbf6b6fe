package logger

import (
	"context"
	"log/slog"
)

// Interface is the structured logger handed to every component. Key/value
// pairs follow slog conventions; an "error" value is rendered by the handler.
type Interface interface {
	Debugw(msg string, keysAndValues ...any)
	Infow(msg string, keysAndValues ...any)
	Warnw(msg string, keysAndValues ...any)
	Errorw(msg string, keysAndValues ...any)

	// With returns a logger that adds keysAndValues to every record.
	With(keysAndValues ...any) Interface
	// Named scopes the logger to a component. Nested names are joined with
	// dots, so Named("billing").Named("webhook") logs logger=billing.webhook.
	Named(name string) Interface
}

// componentKey is the attribute carrying the component name.
const componentKey = "logger"

type slogLogger struct {
	// base carries the With attributes; logger adds the component name.
	base   *slog.Logger
	name   string
	logger *slog.Logger
}

func newSlogLogger(base *slog.Logger, name string) *slogLogger {
	l := &slogLogger{base: base, name: name, logger: base}
	if name != "" {
		l.logger = base.With(componentKey, name)
	}
	return l
}

// NewLogger wraps the process-wide logger configured by Init.
func NewLogger() Interface {
	return newSlogLogger(Get(), "")
}

// NewNopLogger returns a logger that discards everything. Used by tests and
// by the terminal review command when logs would corrupt the screen.
func NewNopLogger() Interface {
	return newSlogLogger(slog.New(discardHandler{}), "")
}

func (l *slogLogger) Debugw(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l *slogLogger) Infow(msg string, keysAndValues ...any) {
	l.logger.Info(msg, keysAndValues...)
}

func (l *slogLogger) Warnw(msg string, keysAndValues ...any) {
	l.logger.Warn(msg, keysAndValues...)
}

func (l *slogLogger) Errorw(msg string, keysAndValues ...any) {
	l.logger.Error(msg, keysAndValues...)
}

func (l *slogLogger) With(keysAndValues ...any) Interface {
	return newSlogLogger(l.base.With(keysAndValues...), l.name)
}

func (l *slogLogger) Named(name string) Interface {
	switch {
	case name == "":
		return l
	case l.name == "":
		return newSlogLogger(l.base, name)
	default:
		return newSlogLogger(l.base, l.name+"."+name)
	}
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool { return false }

func (discardHandler) Handle(context.Context, slog.Record) error { return nil }

func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h discardHandler) WithGroup(string) slog.Handler { return h }
