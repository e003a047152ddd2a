// Package assistant is the turn engine: it classifies an utterance, resolves
// its time expression, and routes the result into the schedulers, the task
// store, or the open-conversation responder. All state mutation for a turn
// runs synchronously to completion; only timer firings are asynchronous.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"remi/internal/clock"
	"remi/internal/delivery"
	"remi/internal/focus"
	"remi/internal/intent"
	"remi/internal/logging"
	"remi/internal/reminder"
	"remi/internal/session"
	"remi/internal/store"
	"remi/internal/temporal"
)

// Bag key for a rejected interval request awaiting a replace/keep decision.
const keyPendingInterval = "pending_interval"

type pendingInterval struct {
	text    string
	minutes int
}

// Reply is the user-facing outcome of one turn.
type Reply struct {
	Text   string
	Intent intent.Type
}

// Engine wires the classification core to the schedulers and collaborators.
type Engine struct {
	Classifier *intent.Classifier
	Clock      clock.Clock
	Reminders  *reminder.Scheduler
	Focus      *focus.Scheduler
	Sessions   *session.Manager
	Store      *store.Store
	Responder  Responder
	Logger     logging.Logger
}

// NewEngine builds an Engine; logger and responder may be nil.
func NewEngine(clk clock.Clock, rem *reminder.Scheduler, foc *focus.Scheduler, sessions *session.Manager, st *store.Store, responder Responder, logger logging.Logger) *Engine {
	if responder == nil {
		responder = CannedResponder{}
	}
	return &Engine{
		Classifier: intent.New(),
		Clock:      clk,
		Reminders:  rem,
		Focus:      foc,
		Sessions:   sessions,
		Store:      st,
		Responder:  responder,
		Logger:     logging.OrNop(logger),
	}
}

// HandleTurn processes one utterance for one owner and returns the reply.
// Classification, resolution, and scheduling errors never escape; they become
// short corrective guidance.
func (e *Engine) HandleTurn(ctx context.Context, ownerID, text string) Reply {
	text = strings.TrimSpace(text)
	if text == "" {
		return Reply{Text: replyEmpty, Intent: intent.Unclassified}
	}

	if e.Store != nil {
		if _, err := e.Store.EnsureUser(ownerID); err != nil {
			e.Logger.Warn("assistant: ensure user %s: %v", ownerID, err)
		}
	}

	bag := e.Sessions.Bag(ownerID)
	now := e.Clock.Now()

	// A pending "awaiting time" draft consumes the whole turn.
	if bag.GetBool(session.KeyAwaitingTime) {
		return e.handleTimeAnswer(bag, ownerID, text, now)
	}

	// Explicit commands outrank classification.
	if reply, ok := e.handleCommand(bag, ownerID, text); ok {
		return reply
	}

	c := e.Classifier.ClassifyAt(text, now)
	switch c.Type {
	case intent.ExplicitReminder:
		if c.Recurring {
			return e.startInterval(bag, ownerID, c.Subject, c.Time.IntervalMinutes)
		}
		return e.scheduleOneShot(ownerID, c.Subject, c.Time.At)

	case intent.ReminderWithoutTime:
		bag.Set(session.KeyPendingReminder, PendingReminderDraft{
			RawText:        text,
			NormalizedText: strings.ToLower(text),
			OriginalText:   c.Subject,
		})
		bag.Set(session.KeyAwaitingTime, true)
		return Reply{Text: replyAskTime, Intent: c.Type}

	case intent.Task:
		return e.createTask(ownerID, c)

	case intent.Habit:
		return e.createHabit(ownerID, c)

	default:
		answer, err := e.Responder.Respond(ctx, ownerID, text)
		if err != nil {
			e.Logger.Error("assistant: responder failed for %s: %v", ownerID, err)
			return Reply{Text: replyApology, Intent: c.Type}
		}
		return Reply{Text: answer, Intent: c.Type}
	}
}

// handleTimeAnswer resolves the follow-up utterance against the pending
// reminder draft. An unresolvable answer keeps the draft alive and repeats
// the guidance; "cancel" drops it.
func (e *Engine) handleTimeAnswer(bag *session.Bag, ownerID, text string, now time.Time) Reply {
	if isCancel(text) {
		bag.Delete(session.KeyPendingReminder)
		bag.Delete(session.KeyAwaitingTime)
		return Reply{Text: replyDraftCancelled, Intent: intent.ReminderWithoutTime}
	}

	draftVal, ok := bag.Get(session.KeyPendingReminder)
	draft, castOK := draftVal.(PendingReminderDraft)
	if !ok || !castOK {
		// The draft vanished (eviction); start over rather than guessing.
		bag.Delete(session.KeyAwaitingTime)
		return Reply{Text: replyDraftLost, Intent: intent.Unclassified}
	}

	res, resolved := temporal.Resolve(text, now)
	if !resolved {
		return Reply{Text: replyTimeGuidance, Intent: intent.ReminderWithoutTime}
	}

	bag.Delete(session.KeyPendingReminder)
	bag.Delete(session.KeyAwaitingTime)

	if res.IsRecurrence() {
		return e.startInterval(bag, ownerID, draft.OriginalText, res.IntervalMinutes)
	}
	return e.scheduleOneShot(ownerID, draft.OriginalText, res.At)
}

func (e *Engine) scheduleOneShot(ownerID, text string, fireAt time.Time) Reply {
	if text == "" {
		text = "your reminder"
	}
	e.Reminders.ScheduleOneShot(ownerID, text, fireAt)
	return Reply{
		Text:   fmt.Sprintf(replyOneShotSet, text, formatInstant(fireAt, e.Clock.Now())),
		Intent: intent.ExplicitReminder,
	}
}

func (e *Engine) startInterval(bag *session.Bag, ownerID, text string, minutes int) Reply {
	if text == "" {
		text = "your reminder"
	}
	err := e.Reminders.StartInterval(ownerID, text, minutes)
	switch {
	case err == nil:
		return Reply{
			Text:   fmt.Sprintf(replyIntervalSet, text, minutes),
			Intent: intent.ExplicitReminder,
		}
	case errors.Is(err, reminder.ErrIntervalActive):
		// Park the request; the owner must choose explicitly.
		bag.Set(keyPendingInterval, pendingInterval{text: text, minutes: minutes})
		status, _ := e.Reminders.IntervalStatus(ownerID)
		return Reply{
			Text:   fmt.Sprintf(replyIntervalConflict, status.Text, status.IntervalMinutes),
			Intent: intent.ExplicitReminder,
		}
	default:
		e.Logger.Debug("assistant: interval rejected for %s: %v", ownerID, err)
		return Reply{Text: replyIntervalBounds, Intent: intent.ExplicitReminder}
	}
}

func (e *Engine) createTask(ownerID string, c intent.Classification) Reply {
	subject := c.Subject
	if subject == "" {
		subject = "task"
	}
	t := store.Task{
		OwnerID:   ownerID,
		Text:      subject,
		CreatedAt: e.Clock.Now(),
	}
	if c.Time != nil && !c.Time.IsRecurrence() {
		t.DueAt = c.Time.At
	}
	if e.Store != nil {
		t.ID = e.Store.NextID("task")
		if err := e.Store.SaveTask(t); err != nil {
			e.Logger.Error("assistant: save task for %s: %v", ownerID, err)
			return Reply{Text: replyApology, Intent: intent.Task}
		}
	}
	if t.DueAt.IsZero() {
		return Reply{Text: fmt.Sprintf(replyTaskNoDue, subject), Intent: intent.Task}
	}
	return Reply{
		Text:   fmt.Sprintf(replyTaskSet, subject, formatInstant(t.DueAt, e.Clock.Now())),
		Intent: intent.Task,
	}
}

func (e *Engine) createHabit(ownerID string, c intent.Classification) Reply {
	subject := c.Subject
	if subject == "" {
		subject = "habit"
	}
	if e.Store != nil {
		h := store.Habit{
			ID:        e.Store.NextID("habit"),
			OwnerID:   ownerID,
			Text:      subject,
			CreatedAt: e.Clock.Now(),
		}
		if err := e.Store.SaveHabit(h); err != nil {
			e.Logger.Error("assistant: save habit for %s: %v", ownerID, err)
			return Reply{Text: replyApology, Intent: intent.Habit}
		}
	}
	return Reply{Text: fmt.Sprintf(replyHabitSet, subject), Intent: intent.Habit}
}

// HandleAction processes a delivery affordance: acknowledge or snooze.
func (e *Engine) HandleAction(ownerID, actionID, text string) Reply {
	switch actionID {
	case delivery.ActionAcknowledge.ID:
		return Reply{Text: replyAcknowledged, Intent: intent.ExplicitReminder}
	case delivery.ActionSnooze15.ID:
		e.Reminders.Snooze(ownerID, text, reminder.SnoozeShortMinutes)
		return Reply{Text: fmt.Sprintf(replySnoozed, reminder.SnoozeShortMinutes), Intent: intent.ExplicitReminder}
	case delivery.ActionSnooze60.ID:
		e.Reminders.Snooze(ownerID, text, reminder.SnoozeLongMinutes)
		return Reply{Text: fmt.Sprintf(replySnoozed, reminder.SnoozeLongMinutes), Intent: intent.ExplicitReminder}
	default:
		return Reply{Text: replyUnknownAction, Intent: intent.Unclassified}
	}
}

func isCancel(text string) bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "cancel", "never mind", "nevermind", "forget it", "no":
		return true
	}
	return false
}

// formatInstant renders a firing time compactly: time-of-day for today,
// otherwise day and time.
func formatInstant(at, now time.Time) string {
	if at.Year() == now.Year() && at.YearDay() == now.YearDay() {
		return at.Format("15:04")
	}
	return at.Format("Mon Jan 2 at 15:04")
}
