package corotasklog

import (
	"log/slog"

	"github.com/joeycumines/logiface"
	islog "github.com/joeycumines/logiface-slog"

	"github.com/joeycumines/go-corotask"
)

// NewSlog builds a corotask.Logger: a logiface logger backed by the given
// slog.Handler, wrapped via Adapter. A Scheduler does not use it unless it
// is passed to WithLogger or SetLogger (the scheduler's own default is a
// no-op logger); hosts that already have a logiface pipeline configured for
// a different backend (zerolog, logrus, stumpy) should use New directly
// instead.
func NewSlog(handler slog.Handler) corotask.Logger {
	return New[*islog.Event](logiface.New[*islog.Event](islog.NewLogger(handler)))
}
