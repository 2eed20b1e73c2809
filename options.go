package debounce

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/romdo/go-debounce/v2/clock"
)

// Option is a function that can be used to configure the debounced function.
type Option func(*config)

type config struct {
	leading  bool
	trailing bool
	maxing   bool
	maxWait  time.Duration
	clock    clock.Clock
	sched    clock.Scheduler
	logger   zerolog.Logger
	onError  func(error)
}

func defaultConfig() config {
	src := clock.Real()

	return config{
		trailing: true,
		clock:    src,
		sched:    src,
		logger:   zerolog.Nop(),
	}
}

// WithLeading controls whether the function is invoked on the first call of
// a burst. It is disabled by default.
//
// When only leading is used, a burst of calls immediately invokes the function,
// any subsequent calls will be ignored until the wait duration has passed
// without calls.
func WithLeading(enabled bool) Option {
	return func(c *config) {
		c.leading = enabled
	}
}

// WithTrailing controls whether the function is invoked once the wait
// duration has passed since the last call. It is enabled by default.
//
// If both leading and trailing are enabled, a burst of calls immediately
// invokes the function, followed by another invocation after the wait duration
// has passed since the last call. If only a single call is made, only one
// invocation will occur.
func WithTrailing(enabled bool) Option {
	return func(c *config) {
		c.trailing = enabled
	}
}

// WithMaxWait returns an option that will cause the debounced function to be
// invoked at least every maxWait duration, even if the function is called
// repeatedly within the wait duration.
//
// Without a max wait, the debounced function might never be invoked if the it
// is called repeatedly within the wait duration.
//
// A negative maxWait is treated as zero, and a maxWait shorter than the wait
// duration is raised to the wait duration.
func WithMaxWait(maxWait time.Duration) Option {
	return func(c *config) {
		c.maxing = true
		c.maxWait = maxWait
	}
}

// WithClock sets the source of "now" readings. Defaults to the wall clock.
func WithClock(clk clock.Clock) Option {
	return func(c *config) {
		if clk != nil {
			c.clock = clk
		}
	}
}

// WithScheduler sets the scheduler used to run deferred invocations. Defaults
// to time.AfterFunc.
func WithScheduler(s clock.Scheduler) Option {
	return func(c *config) {
		if s != nil {
			c.sched = s
		}
	}
}

// WithSource sets both the clock and the scheduler, typically to a
// *clock.Fake in tests.
func WithSource(src clock.Source) Option {
	return func(c *config) {
		if src != nil {
			c.clock = src
			c.sched = src
		}
	}
}

// WithLogger sets the logger used to trace edge decisions at debug level.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithErrorHandler sets a function that receives errors returned by the
// wrapped function when it is invoked from a timer, where there is no caller
// to return them to. Without a handler such errors are logged.
//
// The handler runs while the debouncer is locked, so it must not call back
// into the same debouncer.
func WithErrorHandler(f func(error)) Option {
	return func(c *config) {
		c.onError = f
	}
}
