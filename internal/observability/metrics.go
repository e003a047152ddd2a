// Package observability exposes prometheus counters for scheduler activity.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics aggregates the scheduler-facing instruments. A nil *Metrics is
// valid and records nothing, so tests can pass nil.
type Metrics struct {
	remindersScheduled prometheus.Counter
	remindersFired     prometheus.Counter
	deliveryFailures   prometheus.Counter
	intervalsActive    prometheus.Gauge
	focusActive        prometheus.Gauge
	focusCompleted     prometheus.Counter
}

// NewMetrics registers the remi instruments on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		remindersScheduled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "remi_reminders_scheduled_total",
			Help: "One-shot reminders armed.",
		}),
		remindersFired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "remi_reminders_fired_total",
			Help: "Reminder firings delivered, one-shot and interval.",
		}),
		deliveryFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "remi_delivery_failures_total",
			Help: "Notification deliveries that failed.",
		}),
		intervalsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "remi_interval_reminders_active",
			Help: "Interval reminders currently armed.",
		}),
		focusActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "remi_focus_sessions_active",
			Help: "Focus sessions currently running or paused.",
		}),
		focusCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "remi_focus_sessions_completed_total",
			Help: "Focus sessions that reached the end of their break.",
		}),
	}
	reg.MustRegister(
		m.remindersScheduled, m.remindersFired, m.deliveryFailures,
		m.intervalsActive, m.focusActive, m.focusCompleted,
	)
	return m
}

func (m *Metrics) ReminderScheduled() {
	if m != nil {
		m.remindersScheduled.Inc()
	}
}

func (m *Metrics) ReminderFired() {
	if m != nil {
		m.remindersFired.Inc()
	}
}

func (m *Metrics) DeliveryFailed() {
	if m != nil {
		m.deliveryFailures.Inc()
	}
}

func (m *Metrics) IntervalStarted() {
	if m != nil {
		m.intervalsActive.Inc()
	}
}

func (m *Metrics) IntervalStopped() {
	if m != nil {
		m.intervalsActive.Dec()
	}
}

func (m *Metrics) FocusStarted() {
	if m != nil {
		m.focusActive.Inc()
	}
}

func (m *Metrics) FocusEnded() {
	if m != nil {
		m.focusActive.Dec()
	}
}

func (m *Metrics) FocusCompleted() {
	if m != nil {
		m.focusCompleted.Inc()
	}
}
