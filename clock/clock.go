// Package clock abstracts the two time services a debouncer depends on:
// reading the current time, and running a callback after a delay.
//
// Production code uses Real, which is backed by the time package. Tests use
// NewFake, which only moves forward when told to and fires callbacks
// synchronously from Advance.
package clock

import (
	"time"
)

// Clock provides "now" readings.
type Clock interface {
	Now() time.Time
}

// Timer is a handle to a callback registered with a Scheduler.
type Timer interface {
	// Stop prevents the callback from running. It returns false if the
	// callback has already run or the timer was already stopped.
	Stop() bool
}

// Scheduler runs a callback once after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Source is both a Clock and a Scheduler.
type Source interface {
	Clock
	Scheduler
}

type realSource struct{}

// Real returns a Source backed by time.Now and time.AfterFunc. Callbacks run
// on their own goroutine.
func Real() Source {
	return realSource{}
}

func (realSource) Now() time.Time {
	return time.Now()
}

func (realSource) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
