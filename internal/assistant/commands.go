package assistant

import (
	"fmt"
	"strings"
	"time"

	"remi/internal/focus"
	"remi/internal/intent"
	"remi/internal/session"
)

// handleCommand short-circuits explicit control phrases before classification
// runs: focus-session control, interval-reminder control, and listings. The
// boolean reports whether the turn was consumed.
func (e *Engine) handleCommand(bag *session.Bag, ownerID, text string) (Reply, bool) {
	cmd := strings.ToLower(strings.TrimSpace(strings.TrimRight(text, "!.")))

	switch cmd {
	case "start focus", "focus", "start a focus session", "pomodoro":
		return e.cmdStartFocus(ownerID), true
	case "pause", "pause focus":
		return e.cmdPauseFocus(ownerID), true
	case "resume", "resume focus", "continue":
		return e.cmdResumeFocus(ownerID), true
	case "stop focus", "end focus":
		return e.cmdStopFocus(ownerID), true
	case "focus status":
		return e.cmdFocusStatus(ownerID), true
	case "stop reminder", "stop reminders", "stop the reminder":
		return e.cmdStopInterval(bag, ownerID), true
	case "reminder status":
		return e.cmdIntervalStatus(ownerID), true
	case "replace it", "replace":
		return e.cmdReplaceInterval(bag, ownerID), true
	case "keep it":
		bag.Delete(keyPendingInterval)
		return Reply{Text: replyKept, Intent: intent.ExplicitReminder}, true
	case "my tasks", "list tasks", "show tasks":
		return e.cmdListTasks(ownerID), true
	}
	return Reply{}, false
}

func (e *Engine) cmdStartFocus(ownerID string) Reply {
	if err := e.Focus.Start(ownerID); err != nil {
		return Reply{Text: replyFocusActive, Intent: intent.GeneralChat}
	}
	return Reply{Text: replyFocusStarted, Intent: intent.GeneralChat}
}

func (e *Engine) cmdPauseFocus(ownerID string) Reply {
	switch err := e.Focus.Pause(ownerID); err {
	case nil:
		return Reply{Text: replyFocusPaused, Intent: intent.GeneralChat}
	case focus.ErrNoSession:
		return Reply{Text: replyNoFocus, Intent: intent.GeneralChat}
	default:
		return Reply{Text: replyNotPausable, Intent: intent.GeneralChat}
	}
}

func (e *Engine) cmdResumeFocus(ownerID string) Reply {
	switch err := e.Focus.Resume(ownerID); err {
	case nil:
		status, _ := e.Focus.Status(ownerID)
		return Reply{Text: fmt.Sprintf(replyFocusResumed, formatDuration(status.Remaining)), Intent: intent.GeneralChat}
	case focus.ErrNoSession:
		return Reply{Text: replyNoFocus, Intent: intent.GeneralChat}
	default:
		return Reply{Text: replyNotPaused, Intent: intent.GeneralChat}
	}
}

func (e *Engine) cmdStopFocus(ownerID string) Reply {
	active, err := e.Focus.Stop(ownerID)
	if err != nil {
		return Reply{Text: replyNoFocus, Intent: intent.GeneralChat}
	}
	return Reply{Text: fmt.Sprintf(replyFocusStopped, formatDuration(active)), Intent: intent.GeneralChat}
}

func (e *Engine) cmdFocusStatus(ownerID string) Reply {
	status, ok := e.Focus.Status(ownerID)
	if !ok {
		return Reply{Text: replyNoFocus, Intent: intent.GeneralChat}
	}
	return Reply{
		Text: fmt.Sprintf(replyFocusStatus, status.Phase,
			formatDuration(status.Elapsed), formatDuration(status.Remaining)),
		Intent: intent.GeneralChat,
	}
}

func (e *Engine) cmdStopInterval(bag *session.Bag, ownerID string) Reply {
	status, _ := e.Reminders.IntervalStatus(ownerID)
	if !e.Reminders.StopInterval(ownerID) {
		return Reply{Text: replyNoInterval, Intent: intent.ExplicitReminder}
	}

	// A parked replacement request takes over once the old one is gone.
	if pending, ok := bag.Get(keyPendingInterval); ok {
		bag.Delete(keyPendingInterval)
		if p, castOK := pending.(pendingInterval); castOK {
			return e.startInterval(bag, ownerID, p.text, p.minutes)
		}
	}
	return Reply{Text: fmt.Sprintf(replyIntervalStopped, status.Firings), Intent: intent.ExplicitReminder}
}

func (e *Engine) cmdIntervalStatus(ownerID string) Reply {
	status, ok := e.Reminders.IntervalStatus(ownerID)
	if !ok {
		return Reply{Text: replyNoInterval, Intent: intent.ExplicitReminder}
	}
	return Reply{
		Text: fmt.Sprintf(replyIntervalStatus, status.Text, status.IntervalMinutes,
			formatDuration(status.Elapsed), status.Firings),
		Intent: intent.ExplicitReminder,
	}
}

func (e *Engine) cmdReplaceInterval(bag *session.Bag, ownerID string) Reply {
	pending, ok := bag.Get(keyPendingInterval)
	if !ok {
		return Reply{Text: replyNothingPending, Intent: intent.ExplicitReminder}
	}
	bag.Delete(keyPendingInterval)
	p, castOK := pending.(pendingInterval)
	if !castOK {
		return Reply{Text: replyNothingPending, Intent: intent.ExplicitReminder}
	}
	if err := e.Reminders.ReplaceInterval(ownerID, p.text, p.minutes); err != nil {
		e.Logger.Error("assistant: replace interval for %s: %v", ownerID, err)
		return Reply{Text: replyApology, Intent: intent.ExplicitReminder}
	}
	return Reply{Text: fmt.Sprintf(replyIntervalReplaced, p.text, p.minutes), Intent: intent.ExplicitReminder}
}

// cmdListTasks reads the persisted task list. This view is deliberately
// independent of the in-memory timers: what will fire and what is listed can
// disagree, and that is accepted.
func (e *Engine) cmdListTasks(ownerID string) Reply {
	if e.Store == nil {
		return Reply{Text: replyTasksEmpty, Intent: intent.Task}
	}
	tasks, err := e.Store.ListTasks(ownerID)
	if err != nil {
		e.Logger.Error("assistant: list tasks for %s: %v", ownerID, err)
		return Reply{Text: replyApology, Intent: intent.Task}
	}
	if len(tasks) == 0 {
		return Reply{Text: replyTasksEmpty, Intent: intent.Task}
	}

	var b strings.Builder
	b.WriteString("Your tasks:\n")
	for i, t := range tasks {
		if t.DueAt.IsZero() {
			fmt.Fprintf(&b, "%d. %s\n", i+1, t.Text)
			continue
		}
		fmt.Fprintf(&b, "%d. %s — due %s\n", i+1, t.Text, t.DueAt.Format("Mon Jan 2 15:04"))
	}
	return Reply{Text: strings.TrimRight(b.String(), "\n"), Intent: intent.Task}
}

// formatDuration renders durations in friendly minute precision ("17m",
// "1h05m"), keeping seconds only under a minute.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh%02dm", h, m)
}
