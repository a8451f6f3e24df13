// Package corotasklog adapts a github.com/joeycumines/logiface logger to
// the corotask.Logger interface, so a scheduler's lifecycle events flow into
// whatever backend the host has already configured for logiface (zerolog,
// logrus, stumpy, or — by default — slog via logiface-slog).
package corotasklog

import (
	"github.com/joeycumines/logiface"

	"github.com/joeycumines/go-corotask"
)

// Adapter wraps a *logiface.Logger[E] as a corotask.Logger.
type Adapter[E logiface.Event] struct {
	logger *logiface.Logger[E]
}

// New wraps logger for use as a corotask.Logger. A nil logger yields an
// Adapter whose builders are all no-ops, matching logiface's own
// nil-receiver-safe convention.
func New[E logiface.Event](logger *logiface.Logger[E]) *Adapter[E] {
	return &Adapter[E]{logger: logger}
}

func (a *Adapter[E]) Debug() corotask.LogEvent { return &builderEvent[E]{b: a.logger.Debug()} }
func (a *Adapter[E]) Info() corotask.LogEvent  { return &builderEvent[E]{b: a.logger.Info()} }
func (a *Adapter[E]) Warn() corotask.LogEvent  { return &builderEvent[E]{b: a.logger.Warning()} }
func (a *Adapter[E]) Error() corotask.LogEvent { return &builderEvent[E]{b: a.logger.Err()} }

// builderEvent adapts a *logiface.Builder[E] to corotask.LogEvent. Builder
// methods are nil-receiver-safe in logiface (a disabled level yields a nil
// *Builder[E] that silently no-ops), so no extra nil checks are needed here.
type builderEvent[E logiface.Event] struct {
	b *logiface.Builder[E]
}

func (e *builderEvent[E]) Str(key, val string) corotask.LogEvent {
	e.b = e.b.Str(key, val)
	return e
}

func (e *builderEvent[E]) Int(key string, val int) corotask.LogEvent {
	e.b = e.b.Int(key, val)
	return e
}

func (e *builderEvent[E]) Err(err error) corotask.LogEvent {
	e.b = e.b.Err(err)
	return e
}

func (e *builderEvent[E]) Log(msg string) {
	e.b.Log(msg)
}
