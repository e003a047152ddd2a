// Package clock abstracts time for the schedulers so tests can drive firings
// deterministically instead of sleeping on real timers.
package clock

import "time"

// Timer is the cancellable handle returned by AfterFunc.
type Timer interface {
	// Stop prevents the timer from firing. It reports whether the call
	// stopped the timer before it fired; a firing already in flight is
	// unaffected.
	Stop() bool
}

// Clock provides the reference "now" and delayed-callback scheduling.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// System returns a Clock backed by the wall clock and time.AfterFunc.
func System() Clock { return systemClock{} }
