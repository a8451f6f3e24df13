package corotask

import "time"

// schedulerOptions holds configuration resolved at Scheduler construction.
type schedulerOptions struct {
	initialReadyCapacity  int
	driverParkGranularity time.Duration
	clock                 Clock
	logger                Logger
	metricsEnabled        bool
}

// Option configures a Scheduler instance.
type Option interface {
	applyScheduler(*schedulerOptions)
}

// optionFunc implements Option.
type optionFunc struct {
	apply func(*schedulerOptions)
}

func (o *optionFunc) applyScheduler(opts *schedulerOptions) {
	o.apply(opts)
}

// WithInitialReadyCapacity hints the initial capacity of the ready deque.
// Purely a preallocation hint; it has no effect on scheduling semantics.
func WithInitialReadyCapacity(n int) Option {
	return &optionFunc{func(opts *schedulerOptions) {
		if n > 0 {
			opts.initialReadyCapacity = n
		}
	}}
}

// WithDriverParkGranularity sets the minimum remaining idle duration before
// the driver will park on Clock.SleepUntil; shorter waits are spent polling
// the clock in the driver loop instead. The default, zero, always parks when idle and a sleeper
// exists, matching spec.md §6's documented default.
func WithDriverParkGranularity(d time.Duration) Option {
	return &optionFunc{func(opts *schedulerOptions) {
		opts.driverParkGranularity = d
	}}
}

// WithClock overrides the scheduler's time source, for deterministic tests.
func WithClock(c Clock) Option {
	return &optionFunc{func(opts *schedulerOptions) {
		if c != nil {
			opts.clock = c
		}
	}}
}

// WithLogger overrides the scheduler's structured logger. The default is a
// no-op logger; see SetLogger and the corotasklog sub-package for a
// logiface-backed implementation.
func WithLogger(l Logger) Option {
	return &optionFunc{func(opts *schedulerOptions) {
		if l != nil {
			opts.logger = l
		}
	}}
}

// WithMetrics enables the scheduler's lifecycle counters, retrievable via
// Scheduler.Metrics. Disabled by default; enabling costs a handful of
// integer increments per driver iteration.
func WithMetrics(enabled bool) Option {
	return &optionFunc{func(opts *schedulerOptions) {
		opts.metricsEnabled = enabled
	}}
}

// resolveOptions applies opts over the documented defaults.
func resolveOptions(opts []Option) *schedulerOptions {
	cfg := &schedulerOptions{
		clock:  SystemClock,
		logger: noopLogger{},
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyScheduler(cfg)
	}
	return cfg
}
