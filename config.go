package corotask

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the environment-driven defaults for a Scheduler. Every field
// is optional: the zero value produces the same defaults as New() with no
// options, per spec.md §6 ("none are required; all optional").
type Config struct {
	InitialReadyCapacity  int           `env:"COROTASK_INITIAL_READY_CAPACITY" envDefault:"0"`
	DriverParkGranularity time.Duration `env:"COROTASK_DRIVER_PARK_GRANULARITY" envDefault:"0"`
	LogLevel              string        `env:"COROTASK_LOG_LEVEL" envDefault:""`
	MetricsEnabled        bool          `env:"COROTASK_METRICS_ENABLED" envDefault:"false"`
}

// LoadConfig reads a Config from the process environment using
// github.com/caarlos0/env, the way dmitrymomot-foundation/core/config loads
// its typed configuration structs.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, WrapError("corotask: loading config", err)
	}
	return cfg, nil
}

// MustLoadConfig is LoadConfig, panicking on error. Intended for startup
// code paths where a misconfigured environment should fail fast.
func MustLoadConfig() Config {
	cfg, err := LoadConfig()
	if err != nil {
		panic(err)
	}
	return cfg
}

// NewFromConfig constructs a Scheduler from cfg, plus any additional
// options, which take precedence over cfg's values.
func NewFromConfig(cfg Config, opts ...Option) *Scheduler {
	base := []Option{
		WithInitialReadyCapacity(cfg.InitialReadyCapacity),
		WithDriverParkGranularity(cfg.DriverParkGranularity),
		WithMetrics(cfg.MetricsEnabled),
	}
	return New(append(base, opts...)...)
}
