package intent

import (
	"remi/internal/temporal"
)

// rule is one priority step: a predicate plus extractor. Evaluation stops at
// the first rule that claims the utterance.
type rule struct {
	name  string
	apply func(in input) (Classification, bool)
}

// orderedRules returns the rule cascade. The reminder family (interval,
// trigger+time, precise-time+verb, trigger-without-time) always outranks the
// task heuristics, so a reminder trigger is never downgraded to Task.
func orderedRules() []rule {
	return []rule{
		{name: "interval_reminder", apply: matchIntervalReminder},
		{name: "trigger_with_time", apply: matchTriggerWithTime},
		{name: "precise_time_with_verb", apply: matchPreciseTimeWithVerb},
		{name: "trigger_without_time", apply: matchTriggerWithoutTime},
		{name: "task", apply: matchTask},
		{name: "habit", apply: matchHabit},
		{name: "general_chat", apply: matchGeneralChat},
	}
}

// matchIntervalReminder claims recurring-interval phrases ("every 30 minutes").
func matchIntervalReminder(in input) (Classification, bool) {
	if !in.hasRes || in.time.Kind != temporal.KindInterval {
		return Classification{}, false
	}
	return Classification{
		Type:      ExplicitReminder,
		Time:      in.time,
		Recurring: true,
		Subject:   in.subject(),
	}, true
}

// matchTriggerWithTime claims an explicit trigger phrase co-occurring with a
// resolvable clock time, relative offset, or named day.
func matchTriggerWithTime(in input) (Classification, bool) {
	if !in.hasTrigger() || !in.hasRes {
		return Classification{}, false
	}
	return Classification{
		Type:    ExplicitReminder,
		Time:    in.time,
		Subject: in.subject(),
	}, true
}

// matchPreciseTimeWithVerb claims trigger-less utterances that pair an action
// verb with a precise firing moment: an explicit HH:MM ("friday call mom at
// 17:30") or a minute/hour offset ("in an hour call mom"). Day-granularity
// expressions fall through to the task rule instead.
func matchPreciseTimeWithVerb(in input) (Classification, bool) {
	if in.hasTrigger() || !in.hasRes || !in.hasCuratedVerb() {
		return Classification{}, false
	}
	precise := in.time.HasClock ||
		(in.time.Kind == temporal.KindRelative &&
			(in.time.Unit == temporal.UnitMinute || in.time.Unit == temporal.UnitHour))
	if !precise {
		return Classification{}, false
	}
	return Classification{
		Type:    ExplicitReminder,
		Time:    in.time,
		Subject: in.subject(),
	}, true
}

// matchTriggerWithoutTime claims a trigger phrase with no resolvable time.
// The caller must prompt for a time; the utterance is never silently dropped.
func matchTriggerWithoutTime(in input) (Classification, bool) {
	if !in.hasTrigger() {
		return Classification{}, false
	}
	return Classification{
		Type:    ReminderWithoutTime,
		Subject: in.subject(),
	}, true
}

// matchTask claims utterances pairing time context (a resolvable expression
// or a temporal keyword) with an action verb, curated or suffix-detected.
// Inputs of two words or fewer need a verb to count, which suppresses noise
// like "tomorrow gym".
func matchTask(in input) (Classification, bool) {
	if !in.hasRes && !in.hasTemporalKeyword() {
		return Classification{}, false
	}
	if len(in.words) <= 2 && !in.hasCuratedVerb() && !in.hasSuffixVerb() {
		return Classification{}, false
	}
	if !in.hasVerb() {
		return Classification{}, false
	}
	return Classification{
		Type:    Task,
		Time:    in.time,
		Subject: in.subject(),
	}, true
}

// matchHabit claims repetition and self-improvement phrasing.
func matchHabit(in input) (Classification, bool) {
	if !in.hasHabitKeyword() {
		return Classification{}, false
	}
	subject := in.raw
	for _, kw := range habitKeywords {
		if containsWord(in.lower, kw) {
			subject = temporal.StripSpans(in.raw, kw)
			break
		}
	}
	return Classification{
		Type:    Habit,
		Subject: subject,
	}, true
}

// matchGeneralChat claims exact greeting/farewell/direct-question templates.
// Exact matching keeps this rule safe to run last: "good morning" is small
// talk even though "morning" counts as time context elsewhere.
func matchGeneralChat(in input) (Classification, bool) {
	for _, tpl := range chatTemplates {
		if in.lower == tpl {
			return Classification{
				Type:    GeneralChat,
				Subject: in.raw,
			}, true
		}
	}
	return Classification{}, false
}
