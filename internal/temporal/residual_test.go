package temporal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripSpansRemovesMatchedSpan(t *testing.T) {
	assert.Equal(t, "buy milk", StripSpans("buy milk at 17:30", "at 17:30"))
	assert.Equal(t, "call mom", StripSpans("in an hour call mom", "in an hour"))
	assert.Equal(t, "drink water", StripSpans("drink water every 30 minutes", "every 30 minutes"))
}

func TestStripSpansRemovesMultipleSpans(t *testing.T) {
	got := StripSpans("remind me to call mom tomorrow", "remind me", "tomorrow")
	assert.Equal(t, "call mom", got)
}

func TestStripSpansTrimsLeadingPreposition(t *testing.T) {
	assert.Equal(t, "call mom", StripSpans("remind me to call mom", "remind me"))
}

func TestStripSpansTrimsDanglingPreposition(t *testing.T) {
	assert.Equal(t, "wake me up", StripSpans("wake me up at 07:00", "07:00"))
}

func TestStripSpansOnlyFirstOccurrence(t *testing.T) {
	got := StripSpans("meet tomorrow about tomorrow's demo", "tomorrow")
	assert.Equal(t, "meet about tomorrow's demo", got)
}

func TestStripSpansCaseInsensitive(t *testing.T) {
	assert.Equal(t, "call mom", StripSpans("Remind Me to call mom", "remind me"))
}

func TestStripSpansEmptySpanIsIgnored(t *testing.T) {
	assert.Equal(t, "buy milk", StripSpans("buy milk", ""))
}
