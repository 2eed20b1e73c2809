package debounce

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/romdo/go-debounce/v2/clock"
)

// Func is a function that can be wrapped by a Debouncer. The receiver and
// arguments are those of the call being resolved, forwarded verbatim.
type Func[A, R any] func(recv any, args ...A) (R, error)

// Debouncer wraps a single function so that bursts of calls collapse into at
// most one invocation on the leading edge and one on the trailing edge of
// each burst.
//
// Every invocation of the wrapped function happens synchronously from within
// Call, Invoke, Flush, or the timer callback, with the Debouncer locked. The
// wrapped function must therefore not call back into the same Debouncer.
type Debouncer[A, R any] struct {
	// Configuration
	wait     time.Duration
	fn       Func[A, R]
	leading  bool
	trailing bool
	maxing   bool
	maxWait  time.Duration
	clock    clock.Clock
	sched    clock.Scheduler
	log      zerolog.Logger
	onError  func(error)

	// State
	mux        sync.Mutex
	dirty      bool
	args       []A
	recv       any
	lastCall   time.Time
	lastInvoke time.Time
	result     R
	timer      clock.Timer
	gen        uint64
}

// NewDebouncer creates a new Debouncer for fn which waits for wait to pass
// without calls before invoking fn on the trailing edge.
//
// A negative wait is treated as zero. It returns an error wrapping
// ErrInvalidArgument if fn is nil.
func NewDebouncer[A, R any](
	wait time.Duration,
	fn Func[A, R],
	opts ...Option,
) (*Debouncer[A, R], error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: function is nil", ErrInvalidArgument)
	}

	c := defaultConfig()
	for _, opt := range opts {
		opt(&c)
	}

	if wait < 0 {
		wait = 0
	}

	d := &Debouncer[A, R]{
		wait:     wait,
		fn:       fn,
		leading:  c.leading,
		trailing: c.trailing,
		maxing:   c.maxing,
		clock:    c.clock,
		sched:    c.sched,
		log:      c.logger,
		onError:  c.onError,
	}

	if d.maxing {
		d.maxWait = max(c.maxWait, wait)
	}

	return d, nil
}

// Invoke is Call without a receiver.
func (d *Debouncer[A, R]) Invoke(args ...A) (R, error) {
	return d.Call(nil, args...)
}

// Call requests an invocation of the wrapped function with the given receiver
// and arguments. Depending on configuration and timing the function is
// invoked immediately, or a deferred invocation is arranged using the most
// recent receiver and arguments.
//
// It returns the result of the most recent invocation, which is that of this
// call if it invoked the function. An error is only returned if the function
// was invoked by this call and failed.
//
// With a maximum wait set and trailing disabled, a call that exceeds the
// maximum wait mid-burst does not invoke, and resets the returned result to
// the zero value of R.
func (d *Debouncer[A, R]) Call(recv any, args ...A) (R, error) {
	d.mux.Lock()
	defer d.mux.Unlock()

	now := d.clock.Now()
	invoking := d.shouldInvoke(now)

	d.args = args
	d.recv = recv
	d.dirty = true
	d.lastCall = now

	if invoking {
		if d.timer == nil {
			return d.leadingEdge(now)
		}

		if d.maxing {
			d.log.Debug().Dur("max_wait", d.maxWait).Msg("max wait exceeded")

			if !d.trailing {
				d.rescheduleTimer(now)

				var zero R
				d.result = zero

				return d.result, nil
			}

			d.lastInvoke = now
			d.rescheduleTimer(now)

			return d.invoke(now)
		}
	}

	if d.timer == nil {
		d.rescheduleTimer(now)
	}

	return d.result, nil
}

// Cancel discards any pending invocation and resets the timing state, so the
// next call starts a new burst. The result of the last invocation is kept.
//
// Once Cancel returns, no invocation arranged before it will take place.
func (d *Debouncer[A, R]) Cancel() {
	d.mux.Lock()
	defer d.mux.Unlock()

	if d.timer != nil {
		d.log.Debug().Msg("cancel pending invocation")
	}

	d.stopTimer()
	d.lastCall = time.Time{}
	d.lastInvoke = time.Time{}
	d.clear()
}

// Flush immediately performs any pending trailing invocation and returns its
// result. With nothing pending, it returns the result of the last invocation
// without invoking anything.
func (d *Debouncer[A, R]) Flush() (R, error) {
	d.mux.Lock()
	defer d.mux.Unlock()

	if d.timer == nil {
		return d.result, nil
	}

	d.log.Debug().Msg("flush")

	return d.trailingEdge(d.clock.Now())
}

// Pending reports whether a deferred invocation is currently scheduled.
func (d *Debouncer[A, R]) Pending() bool {
	d.mux.Lock()
	defer d.mux.Unlock()

	return d.timer != nil
}

// shouldInvoke reports whether a call at now should resolve to an invocation.
// It must be called before lastCall is updated for the call at now.
func (d *Debouncer[A, R]) shouldInvoke(now time.Time) bool {
	if d.lastCall.IsZero() {
		return true
	}

	// A negative elapsed time means the clock moved backwards; treat it as
	// the end of the burst.
	sinceCall := now.Sub(d.lastCall)
	if sinceCall >= d.wait || sinceCall < 0 {
		return true
	}

	return d.maxing && now.Sub(d.lastInvoke) >= d.maxWait
}

func (d *Debouncer[A, R]) leadingEdge(now time.Time) (R, error) {
	d.lastInvoke = now
	d.rescheduleTimer(now)

	if !d.leading {
		return d.result, nil
	}

	d.log.Debug().Msg("leading edge")

	return d.invoke(now)
}

// trailingEdge must be called with the mutex held.
func (d *Debouncer[A, R]) trailingEdge(now time.Time) (R, error) {
	d.stopTimer()

	if d.trailing && d.dirty {
		d.log.Debug().Msg("trailing edge")

		return d.invoke(now)
	}

	d.clear()

	return d.result, nil
}

// invoke calls the wrapped function with the pending arguments, consuming
// them. The result is stored only if the function succeeds. It must be called
// with the mutex held.
func (d *Debouncer[A, R]) invoke(now time.Time) (R, error) {
	recv, args := d.recv, d.args
	d.clear()
	d.lastInvoke = now

	res, err := d.fn(recv, args...)
	if err != nil {
		return res, err
	}
	d.result = res

	return res, nil
}

// clear drops the pending receiver and arguments. It should only be called
// while the mutex is already locked.
func (d *Debouncer[A, R]) clear() {
	d.dirty = false
	d.args = nil
	d.recv = nil
}

func (d *Debouncer[A, R]) handleError(err error) {
	if d.onError != nil {
		d.onError(err)

		return
	}

	d.log.Error().Err(err).Msg("debounced function failed")
}
