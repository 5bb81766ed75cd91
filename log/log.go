// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package log provides the structured logger used by the consensus and
// context packages and the commands, backed by go.uber.org/zap. It trims the
// interface down to what those callers actually use.
package log

import "go.uber.org/zap"

// Field is a structured key-value pair attached to a log line.
type Field = zap.Field

// Logger is the structured logging interface every collaborator takes
// instead of a concrete *zap.Logger, so tests can substitute NoOp().
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
}

// F builds a structured field from an arbitrary key/value pair, so callers
// only ever import this package rather than zap directly.
func F(key string, value interface{}) Field { return zap.Any(key, value) }

type zapLogger struct {
	z *zap.Logger
}

// New wraps a *zap.Logger, e.g. one built via zap.NewProduction() or
// zap.NewDevelopment(), per the environment's config.log_level.
func New(z *zap.Logger) Logger {
	return &zapLogger{z: z}
}

// NewProduction returns a JSON-structured, info-level-and-above logger
// suitable for production use.
func NewProduction() (Logger, error) {
	z, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return New(z), nil
}

func (l *zapLogger) Debug(msg string, fields ...Field) { l.z.Debug(msg, fields...) }
func (l *zapLogger) Info(msg string, fields ...Field)  { l.z.Info(msg, fields...) }
func (l *zapLogger) Warn(msg string, fields ...Field)  { l.z.Warn(msg, fields...) }
func (l *zapLogger) Error(msg string, fields ...Field) { l.z.Error(msg, fields...) }
func (l *zapLogger) With(fields ...Field) Logger       { return New(l.z.With(fields...)) }

type noOpLogger struct{}

// NoOp returns a Logger that discards everything, used in tests and as
// the default when no Logger is supplied.
func NoOp() Logger { return noOpLogger{} }

func (noOpLogger) Debug(string, ...Field)  {}
func (noOpLogger) Info(string, ...Field)   {}
func (noOpLogger) Warn(string, ...Field)   {}
func (noOpLogger) Error(string, ...Field)  {}
func (noOpLogger) With(...Field) Logger    { return noOpLogger{} }
