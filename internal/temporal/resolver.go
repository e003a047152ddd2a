package temporal

import (
	"regexp"
	"strings"
	"time"
)

// Recurrence periods outside this range are rejected.
const (
	MinIntervalMinutes = 1
	MaxIntervalMinutes = 1440
)

const numberWordAlt = `a couple of|a couple|a few|an|a|one|two|three|four|five|six|seven|eight|nine|ten`

// Pattern precedence, first match wins:
// interval > clock time > single-unit relative > numeric relative > named day.
var (
	intervalPattern = regexp.MustCompile(`(?i)\bevery\s+(?:(\d+|` + numberWordAlt + `)\s+)?(minute|hour)s?\b`)

	clockPattern = regexp.MustCompile(`(?i)(?:\b(?:at|by|around)\s+)?\b([01]?\d|2[0-3]):([0-5]\d)\b`)

	wordRelativePattern = regexp.MustCompile(`(?i)\b(?:in|after|within)\s+(` + numberWordAlt + `)\s+(minute|hour|day|week|month|year)s?\b`)

	numericRelativePattern = regexp.MustCompile(`(?i)\b(?:in|after|within)\s+(\d+)\s+(minute|hour|day|week|month|year)s?\b`)

	namedDayPatterns = []struct {
		re  *regexp.Regexp
		day NamedDay
	}{
		{regexp.MustCompile(`(?i)\bday after tomorrow\b`), DayAfterTomorrow},
		{regexp.MustCompile(`(?i)\btomorrow\b`), DayTomorrow},
		{regexp.MustCompile(`(?i)\bnext week\b`), DayNextWeek},
		{regexp.MustCompile(`(?i)\bnext month\b`), DayNextMonth},
		{regexp.MustCompile(`(?i)\bnext year\b`), DayNextYear},
		{regexp.MustCompile(`(?i)\bthis week\b`), DayThisWeek},
		{regexp.MustCompile(`(?i)\bthis month\b`), DayThisMonth},
	}
)

// Resolve extracts the highest-precedence time expression from text and
// resolves it against now. The boolean is false when no supported pattern
// matches, or when a recurrence falls outside the allowed period range.
func Resolve(text string, now time.Time) (*Result, bool) {
	if strings.TrimSpace(text) == "" {
		return nil, false
	}

	if r, ok := resolveInterval(text); ok {
		return r, true
	}
	if r, ok := resolveClock(text, now); ok {
		return r, true
	}
	if m := wordRelativePattern.FindStringSubmatch(text); m != nil {
		return resolveRelative(m[0], parseAmount(m[1]), Unit(strings.ToLower(m[2])), now), true
	}
	if m := numericRelativePattern.FindStringSubmatch(text); m != nil {
		return resolveRelative(m[0], parseAmount(m[1]), Unit(strings.ToLower(m[2])), now), true
	}
	if r, ok := resolveNamedDay(text, now, DefaultNamedDayHour, 0); ok {
		return r, true
	}
	return nil, false
}

// HasExpression reports whether text contains any resolvable time expression,
// without committing to a reference instant.
func HasExpression(text string) bool {
	_, ok := Resolve(text, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
	return ok
}

func resolveInterval(text string) (*Result, bool) {
	m := intervalPattern.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	amount := parseAmount(m[1])
	unit := Unit(strings.ToLower(m[2]))

	minutes := amount
	if unit == UnitHour {
		minutes = amount * 60
	}
	if minutes < MinIntervalMinutes || minutes > MaxIntervalMinutes {
		return nil, false
	}

	return &Result{
		Kind:            KindInterval,
		Amount:          amount,
		Unit:            unit,
		IntervalMinutes: minutes,
		Matched:         m[0],
	}, true
}

func resolveClock(text string, now time.Time) (*Result, bool) {
	m := clockPattern.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	hour := atoiSafe(m[1])
	minute := atoiSafe(m[2])

	// "tomorrow at 17:30": a named-day token alongside the clock time anchors
	// the day; the clock time supplies the time-of-day.
	if r, ok := resolveNamedDay(text, now, hour, minute); ok {
		r.Matched = m[0]
		r.Spans = append(r.Spans, m[0])
		r.HasClock = true
		return r, true
	}

	at := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !at.After(now) {
		at = at.AddDate(0, 0, 1)
	}
	return &Result{
		Kind:     KindClockTime,
		At:       at,
		Hour:     hour,
		Minute:   minute,
		HasClock: true,
		Matched:  m[0],
		Spans:    []string{m[0]},
	}, true
}

func resolveRelative(matched string, amount int, unit Unit, now time.Time) *Result {
	var at time.Time
	switch unit {
	case UnitMinute:
		at = now.Add(time.Duration(amount) * time.Minute)
	case UnitHour:
		at = now.Add(time.Duration(amount) * time.Hour)
	case UnitDay:
		at = dayStart(now.AddDate(0, 0, amount), DefaultNamedDayHour, 0)
	case UnitWeek:
		at = dayStart(now.AddDate(0, 0, 7*amount), DefaultNamedDayHour, 0)
	case UnitMonth:
		at = dayStart(now.AddDate(0, amount, 0), DefaultNamedDayHour, 0)
	case UnitYear:
		at = dayStart(now.AddDate(amount, 0, 0), DefaultNamedDayHour, 0)
	}

	at = at.Truncate(time.Second)
	// Truncation must never produce an instant at or before now.
	if !at.After(now) {
		at = at.Add(time.Minute)
	}

	return &Result{
		Kind:    KindRelative,
		At:      at,
		Amount:  amount,
		Unit:    unit,
		Matched: matched,
		Spans:   []string{matched},
	}
}

func resolveNamedDay(text string, now time.Time, hour, minute int) (*Result, bool) {
	for _, p := range namedDayPatterns {
		m := p.re.FindString(text)
		if m == "" {
			continue
		}
		return &Result{
			Kind:    KindNamedDay,
			At:      namedDayInstant(p.day, now, hour, minute),
			Day:     p.day,
			Hour:    hour,
			Minute:  minute,
			Matched: m,
			Spans:   []string{m},
		}, true
	}
	return nil, false
}

// namedDayInstant applies simple calendar arithmetic, deliberately not
// ISO-week aware: "this week" lands on the coming Sunday, "this month" on the
// last day of the current month.
func namedDayInstant(day NamedDay, now time.Time, hour, minute int) time.Time {
	switch day {
	case DayTomorrow:
		return dayStart(now.AddDate(0, 0, 1), hour, minute)
	case DayAfterTomorrow:
		return dayStart(now.AddDate(0, 0, 2), hour, minute)
	case DayNextWeek:
		return dayStart(now.AddDate(0, 0, 7), hour, minute)
	case DayNextMonth:
		return dayStart(now.AddDate(0, 1, 0), hour, minute)
	case DayNextYear:
		return dayStart(now.AddDate(1, 0, 0), hour, minute)
	case DayThisWeek:
		days := int(time.Sunday+7-now.Weekday()) % 7
		if days == 0 {
			days = 7
		}
		return dayStart(now.AddDate(0, 0, days), hour, minute)
	case DayThisMonth:
		firstOfNext := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
		return dayStart(firstOfNext.AddDate(0, 0, -1), hour, minute)
	}
	return dayStart(now.AddDate(0, 0, 1), hour, minute)
}

func dayStart(t time.Time, hour, minute int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, minute, 0, 0, t.Location())
}

func atoiSafe(s string) int {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int(c-'0')
	}
	return n
}
