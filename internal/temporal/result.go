// Package temporal extracts time expressions from free-form utterances and
// resolves them against a reference instant. It is the leaf dependency of the
// intent classifier: it never touches the wall clock itself.
package temporal

import "time"

// Kind discriminates the supported time-expression families.
type Kind int

const (
	// KindClockTime is an absolute HH:MM expression ("at 17:30", "9:15").
	KindClockTime Kind = iota
	// KindRelative is an offset from now ("in 10 minutes", "in an hour").
	KindRelative
	// KindNamedDay is a calendar day reference ("tomorrow", "next week").
	KindNamedDay
	// KindInterval is a recurrence, not a timestamp ("every 30 minutes").
	KindInterval
)

// Unit is a relative-offset unit.
type Unit string

const (
	UnitMinute Unit = "minute"
	UnitHour   Unit = "hour"
	UnitDay    Unit = "day"
	UnitWeek   Unit = "week"
	UnitMonth  Unit = "month"
	UnitYear   Unit = "year"
)

// NamedDay enumerates the supported calendar-day references.
type NamedDay string

const (
	DayTomorrow      NamedDay = "tomorrow"
	DayAfterTomorrow NamedDay = "day-after-tomorrow"
	DayNextWeek      NamedDay = "next-week"
	DayNextMonth     NamedDay = "next-month"
	DayNextYear      NamedDay = "next-year"
	DayThisWeek      NamedDay = "this-week"
	DayThisMonth     NamedDay = "this-month"
)

// DefaultNamedDayHour is the time-of-day used for named-day expressions that
// carry no explicit clock time.
const DefaultNamedDayHour = 9

// Result is the outcome of resolving a time expression.
type Result struct {
	Kind Kind

	// At is the concrete firing instant. Unset for KindInterval.
	At time.Time

	// Hour/Minute are set for KindClockTime, and for KindNamedDay when an
	// explicit clock time accompanied the day reference.
	Hour   int
	Minute int

	// HasClock reports that an explicit HH:MM was present in the text, even
	// when the result kind is KindNamedDay ("tomorrow at 17:30").
	HasClock bool

	// Amount/Unit are set for KindRelative and KindInterval.
	Amount int
	Unit   Unit

	// Day is set for KindNamedDay.
	Day NamedDay

	// IntervalMinutes is the recurrence period for KindInterval.
	IntervalMinutes int

	// Matched is the exact text span the expression was extracted from,
	// used to anchor residual-text stripping.
	Matched string

	// Spans lists every matched span, including secondary tokens such as a
	// named-day word accompanying a clock time. StripSpans removes them all.
	Spans []string
}

// IsRecurrence reports whether the result describes an interval rather than a
// single firing instant.
func (r *Result) IsRecurrence() bool { return r.Kind == KindInterval }
