package reminder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"remi/internal/clock"
	"remi/internal/delivery"
)

var epoch = time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

// recordingSink captures delivered messages and can be told to fail.
type recordingSink struct {
	mu       sync.Mutex
	messages []delivery.Message
	owners   []string
	fail     bool
}

func (s *recordingSink) Deliver(_ context.Context, ownerID string, msg delivery.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("owner unreachable")
	}
	s.messages = append(s.messages, msg)
	s.owners = append(s.owners, ownerID)
	return nil
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

func (s *recordingSink) last() delivery.Message {
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

func TestOneShotFiresAtScheduledTime(t *testing.T) {
	s, clk, sink := newTestScheduler()

	s.ScheduleOneShot("u1", "buy milk", epoch.Add(10*time.Minute))

	clk.Advance(9*time.Minute + 59*time.Second)
	if sink.count() != 0 {
		t.Fatal("reminder fired early")
	}

	clk.Advance(time.Second)
	if sink.count() != 1 {
		t.Fatalf("delivered %d messages, want 1", sink.count())
	}
	msg := sink.last()
	if msg.Text != "buy milk" {
		t.Fatalf("delivered %q, want %q", msg.Text, "buy milk")
	}
	if len(msg.Actions) != 3 {
		t.Fatalf("got %d actions, want acknowledge and two snoozes", len(msg.Actions))
	}
	if s.PendingOneShots("u1") != 0 {
		t.Fatal("fired reminder still pending")
	}
}

func TestOneShotInPastFiresImmediately(t *testing.T) {
	s, clk, sink := newTestScheduler()

	s.ScheduleOneShot("u1", "overdue", epoch.Add(-time.Hour))
	clk.Advance(0)

	if sink.count() != 1 {
		t.Fatalf("delivered %d messages, want 1", sink.count())
	}
}

func TestOneShotStopCancels(t *testing.T) {
	s, clk, sink := newTestScheduler()

	h := s.ScheduleOneShot("u1", "buy milk", epoch.Add(10*time.Minute))
	if !h.Stop() {
		t.Fatal("Stop on a pending reminder should report true")
	}
	if h.Stop() {
		t.Fatal("second Stop should report false")
	}

	clk.Advance(time.Hour)
	if sink.count() != 0 {
		t.Fatal("stopped reminder fired")
	}
}

func TestOneShotDeliveryFailureIsDropped(t *testing.T) {
	s, clk, sink := newTestScheduler()
	sink.setFail(true)

	s.ScheduleOneShot("u1", "buy milk", epoch.Add(time.Minute))
	clk.Advance(2 * time.Minute)

	// No retry is scheduled.
	if clk.PendingTimers() != 0 {
		t.Fatalf("%d timers still pending after failed one-shot", clk.PendingTimers())
	}
}

func TestSnoozeReschedules(t *testing.T) {
	s, clk, sink := newTestScheduler()

	s.Snooze("u1", "buy milk", SnoozeShortMinutes)
	clk.Advance(14 * time.Minute)
	if sink.count() != 0 {
		t.Fatal("snoozed reminder fired early")
	}
	clk.Advance(time.Minute)
	if sink.count() != 1 {
		t.Fatalf("delivered %d messages, want 1", sink.count())
	}
}

func TestIntervalBounds(t *testing.T) {
	s, _, _ := newTestScheduler()

	for _, minutes := range []int{0, -5, 1441} {
		err := s.StartInterval("u1", "stretch", minutes)
		if !errors.Is(err, ErrInvalidInterval) {
			t.Fatalf("StartInterval(%d) = %v, want ErrInvalidInterval", minutes, err)
		}
	}

	for _, minutes := range []int{1, 60, 1440} {
		if err := s.StartInterval("u1", "stretch", minutes); err != nil {
			t.Fatalf("StartInterval(%d) = %v, want nil", minutes, err)
		}
		s.StopInterval("u1")
	}
}

func TestIntervalFiresRepeatedly(t *testing.T) {
	s, clk, sink := newTestScheduler()

	if err := s.StartInterval("u1", "drink water", 30); err != nil {
		t.Fatal(err)
	}

	clk.Advance(90 * time.Minute)
	if sink.count() != 3 {
		t.Fatalf("delivered %d firings in 90 minutes, want 3", sink.count())
	}

	status, ok := s.IntervalStatus("u1")
	if !ok {
		t.Fatal("interval disappeared")
	}
	if status.Firings != 3 {
		t.Fatalf("status.Firings = %d, want 3", status.Firings)
	}
	if status.Elapsed != 90*time.Minute {
		t.Fatalf("status.Elapsed = %v, want 90m", status.Elapsed)
	}
}

func TestIntervalExclusivityPerOwner(t *testing.T) {
	s, _, _ := newTestScheduler()

	if err := s.StartInterval("u1", "drink water", 30); err != nil {
		t.Fatal(err)
	}
	err := s.StartInterval("u1", "stretch", 10)
	if !errors.Is(err, ErrIntervalActive) {
		t.Fatalf("second StartInterval = %v, want ErrIntervalActive", err)
	}

	// A different owner is unaffected.
	if err := s.StartInterval("u2", "stretch", 10); err != nil {
		t.Fatalf("StartInterval for other owner = %v", err)
	}
}

func TestReplaceIntervalSwapsExplicitly(t *testing.T) {
	s, clk, sink := newTestScheduler()

	if err := s.StartInterval("u1", "drink water", 30); err != nil {
		t.Fatal(err)
	}
	if err := s.ReplaceInterval("u1", "stretch", 10); err != nil {
		t.Fatalf("ReplaceInterval = %v", err)
	}

	status, _ := s.IntervalStatus("u1")
	if status.Text != "stretch" || status.IntervalMinutes != 10 {
		t.Fatalf("status = %+v, want replacement", status)
	}

	clk.Advance(10 * time.Minute)
	if sink.count() != 1 || sink.last().Text != "stretch" {
		t.Fatalf("first firing after replace = %+v", sink.messages)
	}
}

func TestStopIntervalReportsActivity(t *testing.T) {
	s, _, _ := newTestScheduler()

	if s.StopInterval("u1") {
		t.Fatal("StopInterval with nothing active should report false")
	}
	if err := s.StartInterval("u1", "drink water", 30); err != nil {
		t.Fatal(err)
	}
	if !s.StopInterval("u1") {
		t.Fatal("StopInterval with an active interval should report true")
	}
	if s.HasInterval("u1") {
		t.Fatal("interval survived StopInterval")
	}
}

func TestIntervalDeliveryFailureTearsDown(t *testing.T) {
	s, clk, sink := newTestScheduler()

	if err := s.StartInterval("u1", "drink water", 30); err != nil {
		t.Fatal(err)
	}
	clk.Advance(30 * time.Minute)
	if sink.count() != 1 {
		t.Fatalf("delivered %d, want 1", sink.count())
	}

	sink.setFail(true)
	clk.Advance(30 * time.Minute)

	if s.HasInterval("u1") {
		t.Fatal("interval survived a delivery failure")
	}
	if clk.PendingTimers() != 0 {
		t.Fatalf("%d timers still armed after teardown", clk.PendingTimers())
	}
}

func TestShutdownCancelsEverything(t *testing.T) {
	s, clk, sink := newTestScheduler()

	s.ScheduleOneShot("u1", "buy milk", epoch.Add(10*time.Minute))
	if err := s.StartInterval("u2", "drink water", 30); err != nil {
		t.Fatal(err)
	}

	s.Shutdown()
	clk.Advance(2 * time.Hour)

	if sink.count() != 0 {
		t.Fatalf("delivered %d messages after shutdown, want 0", sink.count())
	}
}
