package assistant

// User-facing reply templates. Scheduling and resolution problems surface as
// short corrective guidance; internal errors surface only as the apology.
const (
	replyEmpty          = "Say something like 'remind me to buy milk at 17:30'."
	replyAskTime        = "When should I remind you? Try 17:30, 'in 10 minutes', or 'tomorrow'."
	replyTimeGuidance   = "I couldn't catch a time. Specify it as HH:MM or 'in N minutes'."
	replyDraftCancelled = "Okay, dropped that reminder."
	replyDraftLost      = "I lost track of that reminder. Please start again."
	replyOneShotSet     = "Got it. I'll remind you about \"%s\" at %s."
	replyIntervalSet    = "Okay, I'll remind you about \"%s\" every %d minutes. Say 'stop reminder' to end it."
	replyIntervalBounds = "Interval reminders work between 1 minute and 24 hours. Try 'every 30 minutes'."
	replyIntervalConflict = "You already have an interval reminder running (\"%s\", every %d minutes). Say 'replace it' to swap, 'stop reminder' to end it, or 'keep it' to leave things as they are."
	replyIntervalReplaced = "Replaced. I'll remind you about \"%s\" every %d minutes."
	replyIntervalStopped  = "Stopped your interval reminder after %d firings."
	replyNoInterval       = "You don't have an interval reminder running."
	replyIntervalStatus   = "\"%s\" every %d minutes — running for %s, fired %d times."
	replyNothingPending   = "Nothing pending to decide on."
	replyKept             = "Okay, keeping things as they are."

	replyFocusStarted  = "Focus session started: 25 minutes. Say 'pause' or 'stop focus' anytime."
	replyFocusActive   = "A focus session is already running. Say 'stop focus' first if you want a fresh one."
	replyFocusPaused   = "Paused. Say 'resume' when you're ready."
	replyFocusResumed  = "Back to it. %s of focus left."
	replyFocusStopped  = "Focus session stopped after %s of active focus."
	replyFocusStatus   = "Focus session: %s phase, %s elapsed, %s remaining."
	replyNoFocus       = "No focus session running. Say 'start focus' to begin."
	replyNotPausable   = "There's nothing to pause right now."
	replyNotPaused     = "The session isn't paused."

	replyTaskSet       = "Task noted: \"%s\", due %s."
	replyTaskNoDue     = "Task noted: \"%s\"."
	replyTasksEmpty    = "No tasks on your list."
	replyHabitSet      = "New habit tracked: \"%s\". I'll hold you to it."
	replyAcknowledged  = "Done. Reminder acknowledged."
	replySnoozed       = "Snoozed for %d minutes."
	replyUnknownAction = "I don't recognize that action."
	replyApology       = "Something went wrong on my side. Please try again."
)
