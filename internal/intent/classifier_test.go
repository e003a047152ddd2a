package intent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remi/internal/temporal"
)

// Tuesday, 10:00.
var now = time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

func classify(t *testing.T, text string) Classification {
	t.Helper()
	return New().ClassifyAt(text, now)
}

func TestTriggerWithTimeIsExplicitReminder(t *testing.T) {
	c := classify(t, "remind me to buy milk at 17:30")
	require.Equal(t, ExplicitReminder, c.Type)
	require.NotNil(t, c.Time)
	assert.False(t, c.Recurring)
	assert.Equal(t, time.Date(2026, 3, 10, 17, 30, 0, 0, time.UTC), c.Time.At)
	assert.Equal(t, "buy milk", c.Subject)
}

func TestTriggerWithoutTimeAsksForOne(t *testing.T) {
	c := classify(t, "remind me to call mom")
	assert.Equal(t, ReminderWithoutTime, c.Type)
	assert.Equal(t, "call mom", c.Subject)
}

func TestIntervalPhraseIsRecurringReminder(t *testing.T) {
	c := classify(t, "remind me to drink water every 30 minutes")
	require.Equal(t, ExplicitReminder, c.Type)
	assert.True(t, c.Recurring)
	assert.Equal(t, 30, c.Time.IntervalMinutes)
	assert.Equal(t, "drink water", c.Subject)
}

func TestIntervalWithoutTriggerStillRecurring(t *testing.T) {
	c := classify(t, "drink water every 30 minutes")
	require.Equal(t, ExplicitReminder, c.Type)
	assert.True(t, c.Recurring)
	assert.Equal(t, "drink water", c.Subject)
}

// The precedence triple: the same subject lands in three different buckets
// depending on how precisely the time is specified.
func TestReminderTaskPrecedenceTriple(t *testing.T) {
	c := classify(t, "remind me to call mom")
	assert.Equal(t, ReminderWithoutTime, c.Type)

	c = classify(t, "in an hour call mom")
	require.Equal(t, ExplicitReminder, c.Type)
	assert.Equal(t, now.Add(time.Hour), c.Time.At)

	c = classify(t, "tomorrow call mom")
	require.Equal(t, Task, c.Type)
	assert.Equal(t, time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC), c.Time.At)
}

func TestVerbWithClockTimeIsReminderWithoutTrigger(t *testing.T) {
	c := classify(t, "buy milk at 17:30")
	require.Equal(t, ExplicitReminder, c.Type)
	assert.Equal(t, "buy milk", c.Subject)
	assert.Equal(t, time.Date(2026, 3, 10, 17, 30, 0, 0, time.UTC), c.Time.At)
}

func TestNamedDayWithClockIsReminder(t *testing.T) {
	c := classify(t, "call mom tomorrow at 17:30")
	require.Equal(t, ExplicitReminder, c.Type)
	assert.Equal(t, time.Date(2026, 3, 11, 17, 30, 0, 0, time.UTC), c.Time.At)
}

func TestDayGranularityWithVerbIsTask(t *testing.T) {
	c := classify(t, "meeting in 2 days")
	require.Equal(t, Task, c.Type)
	require.NotNil(t, c.Time)
	assert.Equal(t, time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC), c.Time.At)
	assert.Equal(t, "meeting", c.Subject)
}

func TestTemporalKeywordWithVerbIsTask(t *testing.T) {
	c := classify(t, "submit the report friday")
	assert.Equal(t, Task, c.Type)
}

func TestShortInputWithoutVerbIsNotTask(t *testing.T) {
	c := classify(t, "tomorrow gym")
	assert.Equal(t, Unclassified, c.Type)
}

func TestHabitKeywords(t *testing.T) {
	c := classify(t, "drink water every day")
	require.Equal(t, Habit, c.Type)
	assert.Equal(t, "drink water", c.Subject)

	c = classify(t, "meditate daily")
	assert.Equal(t, Habit, c.Type)
}

func TestGeneralChatTemplates(t *testing.T) {
	for _, text := range []string{"hi", "hello", "good morning", "thanks", "how are you?", "bye"} {
		c := classify(t, text)
		assert.Equal(t, GeneralChat, c.Type, "%q", text)
	}
}

func TestUnrecognizedInputIsUnclassified(t *testing.T) {
	c := classify(t, "the weather is nice")
	assert.Equal(t, Unclassified, c.Type)
}

func TestTriggerNeverDowngradedToTask(t *testing.T) {
	// "tomorrow" alone resolves to an instant; the trigger still wins.
	c := classify(t, "remind me to water the plants tomorrow")
	require.Equal(t, ExplicitReminder, c.Type)
	assert.Equal(t, temporal.KindNamedDay, c.Time.Kind)
}

func TestSuffixVerbFallback(t *testing.T) {
	// "organizing" is not in the curated catalogue; the -ing suffix counts.
	c := classify(t, "organizing the garage this week")
	assert.Equal(t, Task, c.Type)
}

func TestSuffixDetectorSkipsTemporalWords(t *testing.T) {
	// "morning" ends in -ing but is time context, not a verb.
	c := classify(t, "tomorrow morning")
	assert.Equal(t, Unclassified, c.Type)
}

func TestClassifyUsesInjectedNow(t *testing.T) {
	cl := New()
	cl.Now = func() time.Time { return now }
	c := cl.Classify("buy milk at 09:00")
	require.Equal(t, ExplicitReminder, c.Type)
	// 09:00 already passed at the injected reference time.
	assert.Equal(t, time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC), c.Time.At)
}
