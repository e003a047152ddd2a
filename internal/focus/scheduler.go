package focus

import (
	"context"
	"errors"
	"sync"
	"time"

	"remi/internal/clock"
	"remi/internal/delivery"
	"remi/internal/logging"
	"remi/internal/observability"
)

// Nominal phase durations.
const (
	DefaultFocusDuration = 25 * time.Minute
	DefaultBreakDuration = 5 * time.Minute
)

// Phase is the session state. Idle is represented by the absence of a table
// entry, not a phase value.
type Phase string

const (
	PhaseFocus  Phase = "focus"
	PhasePaused Phase = "paused"
	PhaseBreak  Phase = "break"
)

var (
	// ErrSessionActive means the owner already has a session. The caller
	// must explicitly stop it first; it is never replaced silently.
	ErrSessionActive = errors.New("a focus session is already active for this owner")

	// ErrNoSession means the owner has no active session.
	ErrNoSession = errors.New("no active focus session for this owner")

	// ErrNotPausable is returned for pause outside the Focus phase.
	ErrNotPausable = errors.New("session is not in the focus phase")

	// ErrNotPaused is returned for resume outside the Paused phase.
	ErrNotPaused = errors.New("session is not paused")
)

const deliverTimeout = 30 * time.Second

// Scheduler owns the per-owner focus-session table.
type Scheduler struct {
	clock   clock.Clock
	sink    delivery.Sink
	logger  logging.Logger
	metrics *observability.Metrics

	// FocusDuration and BreakDuration default to 25 and 5 minutes.
	FocusDuration time.Duration
	BreakDuration time.Duration

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	ownerID string
	phase   Phase
	watch   Stopwatch
	timer   clock.Timer

	// focusActive is the completed focus time, fixed once the session
	// transitions to Break.
	focusActive time.Duration
}

// Status is a point-in-time view of an owner's session.
type Status struct {
	Phase     Phase
	Elapsed   time.Duration
	Remaining time.Duration
}

// NewScheduler creates a Scheduler with the default durations. The clock and
// sink are required; logger and metrics may be nil.
func NewScheduler(clk clock.Clock, sink delivery.Sink, logger logging.Logger, metrics *observability.Metrics) *Scheduler {
	return &Scheduler{
		clock:         clk,
		sink:          sink,
		logger:        logging.OrNop(logger),
		metrics:       metrics,
		FocusDuration: DefaultFocusDuration,
		BreakDuration: DefaultBreakDuration,
		sessions:      make(map[string]*session),
	}
}

// Start begins a Focus phase for the owner. At most one session exists per
// owner; a second start is rejected, never silently replacing the first.
func (s *Scheduler) Start(ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, active := s.sessions[ownerID]; active {
		return ErrSessionActive
	}

	now := s.clock.Now()
	sess := &session{
		ownerID: ownerID,
		phase:   PhaseFocus,
		watch:   newStopwatch(now),
	}
	s.sessions[ownerID] = sess
	sess.timer = s.clock.AfterFunc(s.FocusDuration, func() { s.focusTimeout(sess) })

	s.metrics.FocusStarted()
	s.logger.Info("focus: started session for %s (%s)", ownerID, s.FocusDuration)
	return nil
}

// Pause suspends the Focus phase: the armed callback is cancelled and the
// open pause interval starts counting.
func (s *Scheduler) Pause(ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[ownerID]
	if !ok {
		return ErrNoSession
	}
	if sess.phase != PhaseFocus {
		return ErrNotPausable
	}

	sess.timer.Stop()
	sess.watch = sess.watch.Pause(s.clock.Now())
	sess.phase = PhasePaused
	s.logger.Debug("focus: paused session for %s", ownerID)
	return nil
}

// Resume folds the open pause interval into the total and re-arms the
// callback for exactly the remaining active time. After any number of
// pause/resume cycles the session fires at the intended cumulative active
// duration.
func (s *Scheduler) Resume(ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[ownerID]
	if !ok {
		return ErrNoSession
	}
	if sess.phase != PhasePaused {
		return ErrNotPaused
	}

	now := s.clock.Now()
	sess.watch = sess.watch.Resume(now)
	sess.phase = PhaseFocus
	remaining := sess.watch.Remaining(now, s.FocusDuration)
	sess.timer = s.clock.AfterFunc(remaining, func() { s.focusTimeout(sess) })
	s.logger.Debug("focus: resumed session for %s, %s remaining", ownerID, remaining)
	return nil
}

// Stop ends the session from any phase and reports the total active
// (non-paused) time.
func (s *Scheduler) Stop(ownerID string) (time.Duration, error) {
	s.mu.Lock()
	sess, ok := s.sessions[ownerID]
	if !ok {
		s.mu.Unlock()
		return 0, ErrNoSession
	}
	delete(s.sessions, ownerID)
	sess.timer.Stop()

	var active time.Duration
	if sess.phase == PhaseBreak {
		active = sess.focusActive
	} else {
		active = sess.watch.Elapsed(s.clock.Now())
	}
	s.mu.Unlock()

	s.metrics.FocusEnded()
	s.logger.Info("focus: stopped session for %s after %s active", ownerID, active)
	return active, nil
}

// Status returns the live view of the owner's session.
func (s *Scheduler) Status(ownerID string) (Status, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[ownerID]
	if !ok {
		return Status{}, false
	}

	now := s.clock.Now()
	nominal := s.FocusDuration
	if sess.phase == PhaseBreak {
		nominal = s.BreakDuration
	}
	return Status{
		Phase:     sess.phase,
		Elapsed:   sess.watch.Elapsed(now),
		Remaining: sess.watch.Remaining(now, nominal),
	}, true
}

// Active reports whether the owner has a session in any phase.
func (s *Scheduler) Active(ownerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[ownerID]
	return ok
}

// focusTimeout handles the natural end of the Focus phase: notify, switch to
// Break, arm the break timer. A delivery failure tears the session down.
func (s *Scheduler) focusTimeout(sess *session) {
	s.mu.Lock()
	if s.sessions[sess.ownerID] != sess || sess.phase != PhaseFocus {
		s.mu.Unlock()
		return // stopped or paused while the firing was in flight
	}
	now := s.clock.Now()
	sess.focusActive = sess.watch.Elapsed(now)
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
	defer cancel()

	msg := delivery.Message{Text: "Focus session complete. Time for a 5 minute break."}
	if err := s.sink.Deliver(ctx, sess.ownerID, msg); err != nil {
		s.metrics.DeliveryFailed()
		s.logger.Warn("focus: completion delivery to %s failed, tearing down: %v", sess.ownerID, err)
		s.teardown(sess)
		return
	}

	s.mu.Lock()
	if s.sessions[sess.ownerID] != sess {
		s.mu.Unlock()
		return
	}
	sess.phase = PhaseBreak
	sess.watch = newStopwatch(s.clock.Now())
	sess.timer = s.clock.AfterFunc(s.BreakDuration, func() { s.breakTimeout(sess) })
	s.mu.Unlock()

	s.logger.Info("focus: %s entered break", sess.ownerID)
}

// breakTimeout handles the natural end of the Break phase: notify and remove
// the entry. The owner is idle afterwards either way.
func (s *Scheduler) breakTimeout(sess *session) {
	s.mu.Lock()
	if s.sessions[sess.ownerID] != sess || sess.phase != PhaseBreak {
		s.mu.Unlock()
		return
	}
	delete(s.sessions, sess.ownerID)
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
	defer cancel()

	msg := delivery.Message{Text: "Break over. Ready for the next focus cycle when you are."}
	if err := s.sink.Deliver(ctx, sess.ownerID, msg); err != nil {
		s.metrics.DeliveryFailed()
		s.logger.Warn("focus: break-end delivery to %s failed: %v", sess.ownerID, err)
	}

	s.metrics.FocusEnded()
	s.metrics.FocusCompleted()
	s.logger.Info("focus: session for %s completed", sess.ownerID)
}

func (s *Scheduler) teardown(sess *session) {
	s.mu.Lock()
	if s.sessions[sess.ownerID] == sess {
		delete(s.sessions, sess.ownerID)
		sess.timer.Stop()
		s.mu.Unlock()
		s.metrics.FocusEnded()
		return
	}
	s.mu.Unlock()
}

// Shutdown cancels every session timer. Sessions are lost; the scheduler is
// intentionally non-durable.
func (s *Scheduler) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for owner, sess := range s.sessions {
		sess.timer.Stop()
		delete(s.sessions, owner)
		s.metrics.FocusEnded()
	}
	s.logger.Info("focus: scheduler shut down")
}
