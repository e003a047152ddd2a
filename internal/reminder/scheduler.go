// Package reminder arms one-shot reminder callbacks and manages the
// single-active-per-owner table of interval reminders. Timers live only in
// memory: a process restart drops everything pending, by design.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"remi/internal/clock"
	"remi/internal/delivery"
	"remi/internal/logging"
	"remi/internal/observability"
)

// Interval bounds in minutes.
const (
	MinIntervalMinutes = 1
	MaxIntervalMinutes = 1440
)

// Snooze offsets offered on every one-shot firing.
const (
	SnoozeShortMinutes = 15
	SnoozeLongMinutes  = 60
)

var (
	// ErrInvalidInterval rejects recurrence periods outside [1, 1440] minutes.
	ErrInvalidInterval = errors.New("interval must be between 1 and 1440 minutes")

	// ErrIntervalActive means the owner already has an interval reminder.
	// The caller must explicitly replace or stop it; it is never superseded
	// silently.
	ErrIntervalActive = errors.New("an interval reminder is already active for this owner")
)

const deliverTimeout = 30 * time.Second

// Scheduler owns the one-shot and interval reminder tables.
type Scheduler struct {
	clock   clock.Clock
	sink    delivery.Sink
	logger  logging.Logger
	metrics *observability.Metrics

	mu        sync.Mutex
	oneShots  map[int64]*Handle
	intervals map[string]*intervalEntry
	nextID    atomic.Int64
}

// NewScheduler creates a Scheduler. The clock and sink are required; logger
// and metrics may be nil.
func NewScheduler(clk clock.Clock, sink delivery.Sink, logger logging.Logger, metrics *observability.Metrics) *Scheduler {
	return &Scheduler{
		clock:     clk,
		sink:      sink,
		logger:    logging.OrNop(logger),
		metrics:   metrics,
		oneShots:  make(map[int64]*Handle),
		intervals: make(map[string]*intervalEntry),
	}
}

// Handle identifies one armed one-shot reminder.
type Handle struct {
	id      int64
	OwnerID string
	Text    string
	FireAt  time.Time

	s     *Scheduler
	timer clock.Timer
}

// Stop cancels the reminder before it fires. It reports whether the callback
// was still pending; a firing already in flight is unaffected.
func (h *Handle) Stop() bool {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	if _, ok := h.s.oneShots[h.id]; !ok {
		return false
	}
	delete(h.s.oneShots, h.id)
	return h.timer.Stop()
}

// ScheduleOneShot arms a reminder that fires once at fireAt. A fireAt in the
// past fires immediately (zero delay).
func (s *Scheduler) ScheduleOneShot(ownerID, text string, fireAt time.Time) *Handle {
	now := s.clock.Now()
	delay := fireAt.Sub(now)
	if delay < 0 {
		delay = 0
	}

	h := &Handle{
		id:      s.nextID.Add(1),
		OwnerID: ownerID,
		Text:    text,
		FireAt:  fireAt,
		s:       s,
	}

	s.mu.Lock()
	s.oneShots[h.id] = h
	h.timer = s.clock.AfterFunc(delay, func() { s.fireOneShot(h) })
	s.mu.Unlock()

	s.metrics.ReminderScheduled()
	s.logger.Info("reminder: armed one-shot for %s at %s", ownerID, fireAt.Format(time.RFC3339))
	return h
}

// Snooze re-enters the scheduler with a firing time of now plus the given
// number of minutes.
func (s *Scheduler) Snooze(ownerID, text string, minutes int) *Handle {
	return s.ScheduleOneShot(ownerID, text, s.clock.Now().Add(time.Duration(minutes)*time.Minute))
}

// fireOneShot delivers the reminder and discards it. One-shot delivery
// failures are logged and dropped without retry.
func (s *Scheduler) fireOneShot(h *Handle) {
	s.mu.Lock()
	if _, ok := s.oneShots[h.id]; !ok {
		s.mu.Unlock()
		return // stopped while the firing was in flight
	}
	delete(s.oneShots, h.id)
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
	defer cancel()

	msg := delivery.Message{Text: h.Text, Actions: delivery.ReminderActions()}
	if err := s.sink.Deliver(ctx, h.OwnerID, msg); err != nil {
		s.metrics.DeliveryFailed()
		s.logger.Warn("reminder: one-shot delivery to %s failed: %v", h.OwnerID, err)
		return
	}
	s.metrics.ReminderFired()
}

// PendingOneShots reports the number of armed one-shot reminders for an owner.
func (s *Scheduler) PendingOneShots(ownerID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, h := range s.oneShots {
		if h.OwnerID == ownerID {
			n++
		}
	}
	return n
}

type intervalEntry struct {
	ownerID         string
	text            string
	intervalMinutes int
	startedAt       time.Time
	firings         int
	timer           clock.Timer
}

// IntervalStatus is the live view of an owner's interval reminder.
type IntervalStatus struct {
	Text            string
	IntervalMinutes int
	StartedAt       time.Time
	Elapsed         time.Duration
	Firings         int
}

// StartInterval arms a recurring reminder that re-delivers text every
// intervalMinutes. At most one interval reminder exists per owner.
func (s *Scheduler) StartInterval(ownerID, text string, intervalMinutes int) error {
	if intervalMinutes < MinIntervalMinutes || intervalMinutes > MaxIntervalMinutes {
		return fmt.Errorf("%w: got %d", ErrInvalidInterval, intervalMinutes)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, active := s.intervals[ownerID]; active {
		return ErrIntervalActive
	}

	e := &intervalEntry{
		ownerID:         ownerID,
		text:            text,
		intervalMinutes: intervalMinutes,
		startedAt:       s.clock.Now(),
	}
	s.intervals[ownerID] = e
	s.armIntervalLocked(e)

	s.metrics.IntervalStarted()
	s.logger.Info("reminder: started interval for %s every %dm", ownerID, intervalMinutes)
	return nil
}

// ReplaceInterval stops any active interval reminder for the owner and starts
// a new one. The replacement is explicit; StartInterval never does this.
func (s *Scheduler) ReplaceInterval(ownerID, text string, intervalMinutes int) error {
	s.StopInterval(ownerID)
	return s.StartInterval(ownerID, text, intervalMinutes)
}

// StopInterval cancels the owner's interval reminder. It reports whether one
// was active.
func (s *Scheduler) StopInterval(ownerID string) bool {
	s.mu.Lock()
	e, ok := s.intervals[ownerID]
	if ok {
		delete(s.intervals, ownerID)
		e.timer.Stop()
	}
	s.mu.Unlock()

	if ok {
		s.metrics.IntervalStopped()
		s.logger.Info("reminder: stopped interval for %s after %d firings", ownerID, e.firings)
	}
	return ok
}

// IntervalStatus returns the live status of the owner's interval reminder.
func (s *Scheduler) IntervalStatus(ownerID string) (IntervalStatus, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.intervals[ownerID]
	if !ok {
		return IntervalStatus{}, false
	}
	return IntervalStatus{
		Text:            e.text,
		IntervalMinutes: e.intervalMinutes,
		StartedAt:       e.startedAt,
		Elapsed:         s.clock.Now().Sub(e.startedAt),
		Firings:         e.firings,
	}, true
}

// HasInterval reports whether the owner has an active interval reminder.
func (s *Scheduler) HasInterval(ownerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.intervals[ownerID]
	return ok
}

func (s *Scheduler) armIntervalLocked(e *intervalEntry) {
	d := time.Duration(e.intervalMinutes) * time.Minute
	e.timer = s.clock.AfterFunc(d, func() { s.fireInterval(e) })
}

// fireInterval delivers one interval firing and re-arms. A delivery failure
// tears the reminder down immediately: no retry, no further firings.
func (s *Scheduler) fireInterval(e *intervalEntry) {
	s.mu.Lock()
	if s.intervals[e.ownerID] != e {
		s.mu.Unlock()
		return // stopped or replaced while the firing was in flight
	}
	e.firings++
	firings := e.firings
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
	defer cancel()

	msg := delivery.Message{Text: e.text, Actions: delivery.ReminderActions()}
	if err := s.sink.Deliver(ctx, e.ownerID, msg); err != nil {
		s.metrics.DeliveryFailed()
		s.logger.Warn("reminder: interval delivery to %s failed, tearing down: %v", e.ownerID, err)
		s.teardownInterval(e)
		return
	}
	s.metrics.ReminderFired()
	s.logger.Debug("reminder: interval firing %d for %s", firings, e.ownerID)

	s.mu.Lock()
	if s.intervals[e.ownerID] == e {
		s.armIntervalLocked(e)
	}
	s.mu.Unlock()
}

func (s *Scheduler) teardownInterval(e *intervalEntry) {
	s.mu.Lock()
	if s.intervals[e.ownerID] == e {
		delete(s.intervals, e.ownerID)
		e.timer.Stop()
		s.mu.Unlock()
		s.metrics.IntervalStopped()
		return
	}
	s.mu.Unlock()
}

// Shutdown cancels every pending timer. Pending reminders are lost; the
// scheduler is intentionally non-durable.
func (s *Scheduler) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, h := range s.oneShots {
		h.timer.Stop()
		delete(s.oneShots, id)
	}
	for owner, e := range s.intervals {
		e.timer.Stop()
		delete(s.intervals, owner)
		s.metrics.IntervalStopped()
	}
	s.logger.Info("reminder: scheduler shut down")
}
