package focus

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"remi/internal/clock"
	"remi/internal/delivery"
)

var epoch = time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

type recordingSink struct {
	mu       sync.Mutex
	messages []string
	fail     bool
}

func (s *recordingSink) Deliver(_ context.Context, _ string, msg delivery.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("owner unreachable")
	}
	s.messages = append(s.messages, msg.Text)
	return nil
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

func (s *recordingSink) last() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.messages[len(s.messages)-1]
}

func (s *recordingSink) setFail(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = fail
}

func newTestScheduler() (*Scheduler, *clock.Fake, *recordingSink) {
	clk := clock.NewFake(epoch)
	sink := &recordingSink{}
	return NewScheduler(clk, sink, nil, nil), clk, sink
}

func TestStartThenStatus(t *testing.T) {
	s, _, _ := newTestScheduler()

	if err := s.Start("u1"); err != nil {
		t.Fatal(err)
	}
	status, ok := s.Status("u1")
	if !ok {
		t.Fatal("no status for a started session")
	}
	if status.Phase != PhaseFocus {
		t.Fatalf("phase = %s, want focus", status.Phase)
	}
	if status.Remaining != DefaultFocusDuration {
		t.Fatalf("remaining = %v, want %v", status.Remaining, DefaultFocusDuration)
	}
}

func TestStartIsExclusivePerOwner(t *testing.T) {
	s, _, _ := newTestScheduler()

	if err := s.Start("u1"); err != nil {
		t.Fatal(err)
	}
	if err := s.Start("u1"); !errors.Is(err, ErrSessionActive) {
		t.Fatalf("second Start = %v, want ErrSessionActive", err)
	}
	if err := s.Start("u2"); err != nil {
		t.Fatalf("Start for other owner = %v", err)
	}
}

func TestPauseFreezesTheCountdown(t *testing.T) {
	s, clk, sink := newTestScheduler()

	if err := s.Start("u1"); err != nil {
		t.Fatal(err)
	}
	clk.Advance(8 * time.Minute)
	if err := s.Pause("u1"); err != nil {
		t.Fatal(err)
	}

	// Paused time is free: nothing fires no matter how long it lasts.
	clk.Advance(3 * time.Hour)
	if sink.count() != 0 {
		t.Fatal("paused session fired")
	}

	status, _ := s.Status("u1")
	if status.Phase != PhasePaused {
		t.Fatalf("phase = %s, want paused", status.Phase)
	}
	if status.Elapsed != 8*time.Minute {
		t.Fatalf("elapsed = %v, want 8m", status.Elapsed)
	}
	if status.Remaining != 17*time.Minute {
		t.Fatalf("remaining = %v, want 17m", status.Remaining)
	}
}

func TestResumeFiresAtCumulativeActiveDuration(t *testing.T) {
	s, clk, sink := newTestScheduler()

	if err := s.Start("u1"); err != nil {
		t.Fatal(err)
	}
	clk.Advance(8 * time.Minute)
	if err := s.Pause("u1"); err != nil {
		t.Fatal(err)
	}
	clk.Advance(time.Hour)
	if err := s.Resume("u1"); err != nil {
		t.Fatal(err)
	}

	clk.Advance(17*time.Minute - time.Second)
	if sink.count() != 0 {
		t.Fatal("session completed before 25 active minutes")
	}
	clk.Advance(time.Second)
	if sink.count() != 1 {
		t.Fatalf("delivered %d, want completion notification", sink.count())
	}
	if !strings.Contains(sink.last(), "break") {
		t.Fatalf("completion message %q should mention the break", sink.last())
	}

	status, _ := s.Status("u1")
	if status.Phase != PhaseBreak {
		t.Fatalf("phase = %s, want break", status.Phase)
	}
}

func TestRepeatedPauseResumeCycles(t *testing.T) {
	s, clk, sink := newTestScheduler()

	if err := s.Start("u1"); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		clk.Advance(4 * time.Minute) // 5 × 4m = 20m active
		if err := s.Pause("u1"); err != nil {
			t.Fatal(err)
		}
		clk.Advance(10 * time.Minute)
		if err := s.Resume("u1"); err != nil {
			t.Fatal(err)
		}
	}

	clk.Advance(5 * time.Minute)
	if sink.count() != 1 {
		t.Fatalf("delivered %d after 25 cumulative active minutes, want 1", sink.count())
	}
}

func TestBreakEndsTheSession(t *testing.T) {
	s, clk, sink := newTestScheduler()

	if err := s.Start("u1"); err != nil {
		t.Fatal(err)
	}
	clk.Advance(DefaultFocusDuration)
	if sink.count() != 1 {
		t.Fatalf("delivered %d, want focus completion", sink.count())
	}

	clk.Advance(DefaultBreakDuration)
	if sink.count() != 2 {
		t.Fatalf("delivered %d, want break-end notification", sink.count())
	}
	if s.Active("u1") {
		t.Fatal("session still active after the break")
	}
}

func TestStopReportsActiveTime(t *testing.T) {
	s, clk, _ := newTestScheduler()

	if err := s.Start("u1"); err != nil {
		t.Fatal(err)
	}
	clk.Advance(10 * time.Minute)

	active, err := s.Stop("u1")
	if err != nil {
		t.Fatal(err)
	}
	if active != 10*time.Minute {
		t.Fatalf("active = %v, want 10m", active)
	}
	if s.Active("u1") {
		t.Fatal("session survived Stop")
	}
}

func TestStopWhilePausedExcludesPausedTime(t *testing.T) {
	s, clk, _ := newTestScheduler()

	if err := s.Start("u1"); err != nil {
		t.Fatal(err)
	}
	clk.Advance(8 * time.Minute)
	if err := s.Pause("u1"); err != nil {
		t.Fatal(err)
	}
	clk.Advance(time.Hour)

	active, err := s.Stop("u1")
	if err != nil {
		t.Fatal(err)
	}
	if active != 8*time.Minute {
		t.Fatalf("active = %v, want 8m", active)
	}
}

func TestStopDuringBreakReportsFullFocusTime(t *testing.T) {
	s, clk, _ := newTestScheduler()

	if err := s.Start("u1"); err != nil {
		t.Fatal(err)
	}
	clk.Advance(DefaultFocusDuration)
	clk.Advance(2 * time.Minute) // partway through the break

	active, err := s.Stop("u1")
	if err != nil {
		t.Fatal(err)
	}
	if active != DefaultFocusDuration {
		t.Fatalf("active = %v, want the completed focus time", active)
	}
}

func TestPhaseTransitionErrors(t *testing.T) {
	s, clk, _ := newTestScheduler()

	if err := s.Pause("u1"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("Pause with no session = %v, want ErrNoSession", err)
	}
	if err := s.Resume("u1"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("Resume with no session = %v, want ErrNoSession", err)
	}
	if _, err := s.Stop("u1"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("Stop with no session = %v, want ErrNoSession", err)
	}

	if err := s.Start("u1"); err != nil {
		t.Fatal(err)
	}
	if err := s.Resume("u1"); !errors.Is(err, ErrNotPaused) {
		t.Fatalf("Resume while focused = %v, want ErrNotPaused", err)
	}

	clk.Advance(DefaultFocusDuration) // into the break
	if err := s.Pause("u1"); !errors.Is(err, ErrNotPausable) {
		t.Fatalf("Pause during break = %v, want ErrNotPausable", err)
	}
}

func TestCompletionDeliveryFailureTearsDown(t *testing.T) {
	s, clk, sink := newTestScheduler()
	sink.setFail(true)

	if err := s.Start("u1"); err != nil {
		t.Fatal(err)
	}
	clk.Advance(DefaultFocusDuration)

	if s.Active("u1") {
		t.Fatal("session survived a completion delivery failure")
	}
	if clk.PendingTimers() != 0 {
		t.Fatalf("%d timers still armed after teardown", clk.PendingTimers())
	}
}

func TestCustomDurations(t *testing.T) {
	s, clk, sink := newTestScheduler()
	s.FocusDuration = 50 * time.Minute
	s.BreakDuration = 10 * time.Minute

	if err := s.Start("u1"); err != nil {
		t.Fatal(err)
	}
	clk.Advance(25 * time.Minute)
	if sink.count() != 0 {
		t.Fatal("custom-length session completed at the default duration")
	}
	clk.Advance(25 * time.Minute)
	if sink.count() != 1 {
		t.Fatalf("delivered %d at 50 minutes, want 1", sink.count())
	}
}
