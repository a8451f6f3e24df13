package corotask

// Logger is the scheduler's pluggable structured-logging interface. The
// scheduler logs task creation and task destruction, both at debug level;
// it does not log task resumption or completion, driver entry or exit, or
// contract violations. Its shape mirrors the fluent builder of
// github.com/joeycumines/logiface closely enough that a thin adapter (see
// the corotasklog sub-package) can back it with a real *logiface.Logger[E].
type Logger interface {
	Debug() LogEvent
	Info() LogEvent
	Warn() LogEvent
	Error() LogEvent
}

// LogEvent is a single in-flight log record being built up field by field.
// It is not safe for concurrent use — consistent with the scheduler's own
// single-driving-goroutine invariant.
type LogEvent interface {
	Str(key, val string) LogEvent
	Int(key string, val int) LogEvent
	Err(err error) LogEvent
	Log(msg string)
}

// noopLogger is the default Logger: it discards everything. Constructing
// event values still happens (the fluent calls execute), but Log is a no-op,
// so no formatting or allocation work beyond that is performed for a caller
// that never calls WithLogger.
type noopLogger struct{}

func (noopLogger) Debug() LogEvent { return noopLogEvent{} }
func (noopLogger) Info() LogEvent  { return noopLogEvent{} }
func (noopLogger) Warn() LogEvent  { return noopLogEvent{} }
func (noopLogger) Error() LogEvent { return noopLogEvent{} }

type noopLogEvent struct{}

func (noopLogEvent) Str(string, string) LogEvent  { return noopLogEvent{} }
func (noopLogEvent) Int(string, int) LogEvent     { return noopLogEvent{} }
func (noopLogEvent) Err(error) LogEvent           { return noopLogEvent{} }
func (noopLogEvent) Log(string)                   {}

// SetLogger replaces s's logger after construction. Prefer WithLogger at
// construction time; SetLogger exists for hosts that resolve their logging
// backend after the scheduler already exists (e.g. from a DI container).
func (s *Scheduler) SetLogger(l Logger) {
	if l == nil {
		l = noopLogger{}
	}
	s.logger = l
}
