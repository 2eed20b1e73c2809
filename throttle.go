package debounce

import (
	"time"
)

// NewThrottle returns a Debouncer that invokes fn at most once per wait
// duration: immediately on the first call, and then with the latest arguments
// at the end of each wait period in which further calls were made.
//
// It is a Debouncer with leading and trailing edges enabled and a maximum wait
// equal to wait. Leading and trailing can be overridden with opts.
func NewThrottle[A, R any](
	wait time.Duration,
	fn Func[A, R],
	opts ...Option,
) (*Debouncer[A, R], error) {
	base := []Option{
		WithLeading(true),
		WithTrailing(true),
		WithMaxWait(wait),
	}

	return NewDebouncer(wait, fn, append(base, opts...)...)
}
