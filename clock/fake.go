package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake is a manually driven Source. Time only moves when Advance or Set is
// called, and due callbacks run synchronously on the goroutine doing so.
type Fake struct {
	mux    sync.Mutex
	now    time.Time
	seq    uint64
	timers []*fakeTimer
}

type fakeTimer struct {
	fake *Fake
	when time.Time
	seq  uint64
	f    func()
}

// NewFake returns a Fake whose clock reads start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

// Now returns the fake's current time.
func (c *Fake) Now() time.Time {
	c.mux.Lock()
	defer c.mux.Unlock()

	return c.now
}

// AfterFunc registers f to run once the fake has been advanced by d. A
// non-positive d makes f due on the next Advance, including Advance(0).
func (c *Fake) AfterFunc(d time.Duration, f func()) Timer {
	c.mux.Lock()
	defer c.mux.Unlock()

	if d < 0 {
		d = 0
	}

	c.seq++
	t := &fakeTimer{fake: c, when: c.now.Add(d), seq: c.seq, f: f}
	c.timers = append(c.timers, t)

	return t
}

// Pending returns the number of registered timers that have not yet fired
// or been stopped.
func (c *Fake) Pending() int {
	c.mux.Lock()
	defer c.mux.Unlock()

	return len(c.timers)
}

// Advance moves the clock forward by d, running every timer that falls due
// on the way in deadline order. While a callback runs, Now reports that
// timer's deadline. Timers registered by callbacks are run too if they fall
// due before the end of the window.
func (c *Fake) Advance(d time.Duration) {
	c.mux.Lock()
	target := c.now.Add(d)
	c.mux.Unlock()

	c.Set(target)
}

// Set moves the clock to t, running due timers as Advance does. Setting a
// time before the current one moves the clock backwards without running
// anything.
func (c *Fake) Set(t time.Time) {
	for {
		c.mux.Lock()
		next := c.popDue(t)
		if next == nil {
			c.now = t
			c.mux.Unlock()

			return
		}
		c.now = next.when
		c.mux.Unlock()

		next.f()
	}
}

// popDue removes and returns the earliest timer due at or before t. It must
// be called with the mutex held.
func (c *Fake) popDue(t time.Time) *fakeTimer {
	if len(c.timers) == 0 {
		return nil
	}

	sort.SliceStable(c.timers, func(i, j int) bool {
		a, b := c.timers[i], c.timers[j]
		if a.when.Equal(b.when) {
			return a.seq < b.seq
		}

		return a.when.Before(b.when)
	})

	next := c.timers[0]
	if next.when.After(t) {
		return nil
	}
	c.timers = c.timers[1:]

	return next
}

func (t *fakeTimer) Stop() bool {
	c := t.fake
	c.mux.Lock()
	defer c.mux.Unlock()

	for i, other := range c.timers {
		if other == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)

			return true
		}
	}

	return false
}
