// Package intent decides what a raw utterance asks for: a reminder (with or
// without a usable time), a deadline task, a habit, small talk, or nothing it
// recognizes. Rules run in a strict priority order; the first match wins.
package intent

import (
	"strings"
	"time"

	"remi/internal/temporal"
)

// Type enumerates classification outcomes.
type Type string

const (
	// ExplicitReminder is a reminder with a resolved time or recurrence.
	ExplicitReminder Type = "explicit_reminder"
	// ReminderWithoutTime is a reminder trigger with no resolvable time; the
	// caller must prompt for one. Never reclassified as Task.
	ReminderWithoutTime Type = "reminder_without_time"
	// Task is a deadline-bound item without a reminder trigger.
	Task Type = "task"
	// Habit is a recurring personal-improvement item.
	Habit Type = "habit"
	// GeneralChat is a greeting, farewell, or direct question.
	GeneralChat Type = "general_chat"
	// Unclassified means no rule matched.
	Unclassified Type = "unclassified"
)

// Classification is the structured result of classifying one utterance.
type Classification struct {
	Type Type

	// Time is the resolved temporal expression, when one exists.
	Time *temporal.Result

	// Recurring is set for interval reminders.
	Recurring bool

	// Subject is the residual semantic payload after the trigger verb and
	// the matched time span are stripped.
	Subject string
}

// Classifier evaluates the ordered rule list against utterances.
type Classifier struct {
	// Now supplies the reference instant for time resolution; injectable
	// for tests.
	Now func() time.Time

	rules []rule
}

// New returns a Classifier using the wall clock.
func New() *Classifier {
	return &Classifier{
		Now:   time.Now,
		rules: orderedRules(),
	}
}

// Classify evaluates the rules at the classifier's reference time.
func (c *Classifier) Classify(text string) Classification {
	return c.ClassifyAt(text, c.Now())
}

// ClassifyAt evaluates the rules against an explicit reference instant.
func (c *Classifier) ClassifyAt(text string, now time.Time) Classification {
	in := newInput(text, now)
	for _, r := range c.rules {
		if result, ok := r.apply(in); ok {
			return result
		}
	}
	return Classification{Type: Unclassified, Subject: strings.TrimSpace(text)}
}

// input precomputes the shared features every rule consults.
type input struct {
	raw    string
	lower  string
	words  []string
	now    time.Time
	time   *temporal.Result
	hasRes bool

	triggerSpan string
}

func newInput(text string, now time.Time) input {
	normalized := strings.TrimSpace(text)
	lower := strings.ToLower(normalized)
	res, ok := temporal.Resolve(normalized, now)

	in := input{
		raw:    normalized,
		lower:  lower,
		words:  strings.Fields(lower),
		now:    now,
		time:   res,
		hasRes: ok,
	}
	for _, phrase := range triggerPhrases {
		if strings.Contains(lower, phrase) {
			in.triggerSpan = phrase
			break
		}
	}
	return in
}

func (in input) hasTrigger() bool { return in.triggerSpan != "" }

// hasCuratedVerb reports whether any whole word matches the verb catalogue.
func (in input) hasCuratedVerb() bool {
	for _, w := range in.words {
		word := strings.Trim(w, ".,!?;:")
		for _, v := range actionVerbs {
			if word == v {
				return true
			}
		}
	}
	return false
}

// hasSuffixVerb is the morphological fallback, consulted only when no curated
// verb matched. Temporal keywords are excluded: "morning" and "evening" end
// in -ing but are time tokens, not verbs.
func (in input) hasSuffixVerb() bool {
	for _, w := range in.words {
		word := strings.Trim(w, ".,!?;:")
		if len(word) < minSuffixWordLen || isTemporalWord(word) {
			continue
		}
		for _, suffix := range verbSuffixes {
			if strings.HasSuffix(word, suffix) {
				return true
			}
		}
	}
	return false
}

func isTemporalWord(word string) bool {
	for _, kw := range temporalKeywords {
		if word == kw {
			return true
		}
	}
	return false
}

func (in input) hasVerb() bool {
	return in.hasCuratedVerb() || in.hasSuffixVerb()
}

func (in input) hasTemporalKeyword() bool {
	for _, kw := range temporalKeywords {
		if containsWord(in.lower, kw) {
			return true
		}
	}
	return false
}

func (in input) hasDayToken() bool {
	for _, kw := range dayTokens {
		if containsWord(in.lower, kw) {
			return true
		}
	}
	return false
}

func (in input) hasHabitKeyword() bool {
	for _, kw := range habitKeywords {
		if containsWord(in.lower, kw) {
			return true
		}
	}
	return false
}

// subject strips the trigger phrase and the matched time spans from the
// utterance, leaving the semantic payload.
func (in input) subject() string {
	spans := []string{in.triggerSpan}
	if in.hasRes {
		spans = append(spans, in.time.Spans...)
		if len(in.time.Spans) == 0 {
			spans = append(spans, in.time.Matched)
		}
	}
	return temporal.StripSpans(in.raw, spans...)
}

// containsWord reports whether phrase occurs in text on word boundaries.
func containsWord(text, phrase string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], phrase)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(phrase)
		beforeOK := start == 0 || !isWordChar(text[start-1])
		afterOK := end == len(text) || !isWordChar(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '\''
}
