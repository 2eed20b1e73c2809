// Package debounce provides functions to debounce function calls, i.e., to
// ensure that a function is only executed after a certain amount of time has
// passed since the last call.
//
// Debouncing can be useful in scenarios where function calls may be triggered
// rapidly, such as in response to user input, but the underlying operation is
// expensive and only needs to be performed once per batch of calls.
//
// Debouncer is the general form: it forwards a receiver and arguments, returns
// results, and supports leading and trailing edges, a maximum wait, Cancel,
// Flush and Pending. New and NewMutable are shorthands for plain func()
// callbacks.
package debounce

import (
	"time"
)

// New returns a debounced function that delays invoking f until after wait time
// has elapsed since the last time the debounced function was invoked.
//
// The returned cancel function can be used to cancel any pending invocation of
// f, but is not required to be called, so can be ignored if not needed.
//
// Both debounced and cancel functions are safe for concurrent use in
// goroutines, and can both be called multiple times.
//
// New panics with an error wrapping ErrInvalidArgument if f is nil.
func New(
	wait time.Duration,
	f func(),
	opts ...Option,
) (debounced func(), cancel func()) {
	var fn Func[struct{}, struct{}]
	if f != nil {
		fn = func(any, ...struct{}) (struct{}, error) {
			f()

			return struct{}{}, nil
		}
	}

	d := mustDebouncer(NewDebouncer(wait, fn, opts...))

	debounced = func() {
		_, _ = d.Invoke()
	}

	return debounced, d.Cancel
}

// NewWithMaxWait returns a debounced function like New, but with a maximum wait
// time of maxWait, which is the maximum time f is allowed to be delayed before
// it is invoked.
func NewWithMaxWait(
	wait, maxWait time.Duration,
	f func(),
	opts ...Option,
) (debounced func(), cancel func()) {
	opts = append(opts[:len(opts):len(opts)], WithMaxWait(maxWait))

	return New(wait, f, opts...)
}

func mustDebouncer[A, R any](d *Debouncer[A, R], err error) *Debouncer[A, R] {
	if err != nil {
		panic(err)
	}

	return d
}
