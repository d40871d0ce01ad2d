package logger

import (
	"context"
	"log/slog"
)

// LevelSuccess sits between info and warn so success lines survive info filtering.
const LevelSuccess = slog.Level(2)

// Structured adapts *slog.Logger to the command logger contract.
// Step and success lines carry a "kind" attribute.
type Structured struct {
	l *slog.Logger
}

// NewStructured wraps l; nil means slog.Default().
func NewStructured(l *slog.Logger) *Structured {
	if l == nil {
		l = slog.Default()
	}
	return &Structured{l: l}
}

func (s *Structured) Info(msg string, args ...any)    { s.l.Info(msg, args...) }
func (s *Structured) Warning(msg string, args ...any) { s.l.Warn(msg, args...) }
func (s *Structured) Error(msg string, args ...any)   { s.l.Error(msg, args...) }
func (s *Structured) Debug(msg string, args ...any)   { s.l.Debug(msg, args...) }

func (s *Structured) Success(msg string, args ...any) {
	s.l.Log(context.Background(), LevelSuccess, msg, append([]any{"kind", "success"}, args...)...)
}

func (s *Structured) Step(msg string, args ...any) {
	s.l.Info(msg, append([]any{"kind", "step"}, args...)...)
}
