// Package focus runs the per-owner Pomodoro state machine: Focus, Paused,
// Break, then gone. Elapsed time is tracked by a small pure value type so the
// arithmetic is testable without timers.
package focus

import "time"

// Stopwatch accounts for active time across pause/resume cycles. The zero
// value is not meaningful; use newStopwatch.
type Stopwatch struct {
	StartedAt time.Time
	// PausedAt marks the open pause interval; zero when running.
	PausedAt time.Time
	// TotalPaused accumulates closed pause intervals.
	TotalPaused time.Duration
}

func newStopwatch(now time.Time) Stopwatch {
	return Stopwatch{StartedAt: now}
}

// Paused reports whether a pause interval is open.
func (w Stopwatch) Paused() bool { return !w.PausedAt.IsZero() }

// Elapsed is the active (non-paused) time since start. The currently open
// pause interval is excluded until Resume folds it into TotalPaused, so the
// same formula holds in every phase.
func (w Stopwatch) Elapsed(now time.Time) time.Duration {
	paused := w.TotalPaused
	if w.Paused() {
		paused += now.Sub(w.PausedAt)
	}
	return now.Sub(w.StartedAt) - paused
}

// Remaining is the active time left until nominal is reached, floored at zero.
func (w Stopwatch) Remaining(now time.Time, nominal time.Duration) time.Duration {
	r := nominal - w.Elapsed(now)
	if r < 0 {
		return 0
	}
	return r
}

// Pause opens a pause interval. No-op when already paused.
func (w Stopwatch) Pause(now time.Time) Stopwatch {
	if w.Paused() {
		return w
	}
	w.PausedAt = now
	return w
}

// Resume closes the open pause interval. No-op when not paused.
func (w Stopwatch) Resume(now time.Time) Stopwatch {
	if !w.Paused() {
		return w
	}
	w.TotalPaused += now.Sub(w.PausedAt)
	w.PausedAt = time.Time{}
	return w
}
