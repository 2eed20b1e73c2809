package debounce

import (
	"time"
)

// NewMutable returns a debounced function like New, but it allows callback
// function f to be changed, as a new callback function is passed to each
// invocation of the debounced function.
//
// The returned cancel function can be used to cancel any pending invocation of
// f, but is not required to be called, so can be ignored if not needed.
//
// Only the very last f passed to the debounced function is called when the
// delay expires and the callback function is invoked. Previous f values are
// discarded. A nil f still counts as a call, but nothing is run for it.
//
// Both debounced and cancel functions are safe for concurrent use in
// goroutines, and can both be called multiple times.
func NewMutable(
	wait time.Duration,
	opts ...Option,
) (debounced func(f func()), cancel func()) {
	d := mustDebouncer(NewDebouncer(wait, runLast, opts...))

	debounced = func(f func()) {
		_, _ = d.Invoke(f)
	}

	return debounced, d.Cancel
}

// NewMutableWithMaxWait is a combination of NewMutable and NewWithMaxWait.
//
// When either of the wait or maxWait durations expire, the last f passed to the
// debounced function is called.
func NewMutableWithMaxWait(
	wait, maxWait time.Duration,
	opts ...Option,
) (debounced func(f func()), cancel func()) {
	opts = append(opts[:len(opts):len(opts)], WithMaxWait(maxWait))

	return NewMutable(wait, opts...)
}

func runLast(_ any, fns ...func()) (struct{}, error) {
	if n := len(fns); n > 0 && fns[n-1] != nil {
		fns[n-1]()
	}

	return struct{}{}, nil
}
