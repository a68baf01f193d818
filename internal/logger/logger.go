// Package logger defines the narrow structured-logging interface business
// modules take by dependency injection, backed by zap.
package logger

import (
	"context"

	"go.uber.org/zap"
)

// Logger is the interface business modules depend on. Every call takes a
// context first so a future implementation can pull trace/request IDs out
// of it without changing call sites.
type Logger interface {
	Debug(ctx context.Context, msg string, kv ...any)
	Info(ctx context.Context, msg string, kv ...any)
	Warn(ctx context.Context, msg string, kv ...any)
	Error(ctx context.Context, msg string, kv ...any)
	With(kv ...any) Logger
}

type zapLogger struct {
	z *zap.SugaredLogger
}

// New builds a zap logger wrapped as a Logger: zap's development config
// when debug is set, its production config otherwise.
func New(debug bool) (Logger, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	z, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &zapLogger{z: z.Sugar()}, nil
}

func (l *zapLogger) Debug(_ context.Context, msg string, kv ...any) { l.z.Debugw(msg, kv...) }
func (l *zapLogger) Info(_ context.Context, msg string, kv ...any)  { l.z.Infow(msg, kv...) }
func (l *zapLogger) Warn(_ context.Context, msg string, kv ...any)  { l.z.Warnw(msg, kv...) }
func (l *zapLogger) Error(_ context.Context, msg string, kv ...any) { l.z.Errorw(msg, kv...) }

func (l *zapLogger) With(kv ...any) Logger {
	return &zapLogger{z: l.z.With(kv...)}
}

type nopLogger struct{}

// Nop returns a Logger that discards everything, for use in tests.
func Nop() Logger { return nopLogger{} }

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (nopLogger) With(...any) Logger                    { return nopLogger{} }
