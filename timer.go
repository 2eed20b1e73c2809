package debounce

import (
	"time"
)

// rescheduleTimer replaces any scheduled timer with one that fires when the
// current quiet period ends, or earlier if maxWait would otherwise be
// exceeded. It must be called with the mutex held.
func (d *Debouncer[A, R]) rescheduleTimer(now time.Time) {
	d.stopTimer()

	remaining := d.wait - now.Sub(d.lastCall)
	if remaining > d.wait {
		remaining = d.wait
	}
	if d.maxing {
		remaining = min(remaining, d.maxWait-now.Sub(d.lastInvoke))
	}
	remaining = max(remaining, 0)

	d.log.Trace().Dur("remaining", remaining).Msg("schedule timer")

	// Timer callbacks from time.AfterFunc may already be waiting on the mutex
	// when the timer is stopped, so each one carries the generation it was
	// scheduled under and is ignored if that is no longer current.
	gen := d.gen
	d.timer = d.sched.AfterFunc(remaining, func() {
		d.timerExpired(gen)
	})
}

// stopTimer stops and forgets any scheduled timer. It must be called with the
// mutex held.
func (d *Debouncer[A, R]) stopTimer() {
	d.gen++

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer[A, R]) timerExpired(gen uint64) {
	d.mux.Lock()
	defer d.mux.Unlock()

	if gen != d.gen || d.timer == nil {
		return
	}
	d.timer = nil

	now := d.clock.Now()
	if !d.shouldInvoke(now) {
		d.rescheduleTimer(now)

		return
	}

	if _, err := d.trailingEdge(now); err != nil {
		d.handleError(err)
	}
}
