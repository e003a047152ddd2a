package temporal

import (
	"regexp"
	"strings"
)

var (
	spaceRun        = regexp.MustCompile(`\s+`)
	danglingPreps   = regexp.MustCompile(`(?i)\b(at|in|on|by|around|for|to)\s*$`)
	leadingPreps    = regexp.MustCompile(`(?i)^\s*(at|in|on|by|around|to|that)\b\s*`)
	edgePunctuation = " \t.,:;!?-"
)

// StripSpans removes the first occurrence of each matched span from text and
// tidies the remainder. Stripping is anchored to the exact spans so words
// elsewhere in the utterance survive ("meet tomorrow about tomorrow's demo"
// keeps the second "tomorrow").
func StripSpans(text string, spans ...string) string {
	out := text
	for _, span := range spans {
		if span == "" {
			continue
		}
		if idx := indexFold(out, span); idx >= 0 {
			out = out[:idx] + " " + out[idx+len(span):]
		}
	}
	out = spaceRun.ReplaceAllString(out, " ")
	out = strings.Trim(out, edgePunctuation)
	out = leadingPreps.ReplaceAllString(out, "")
	out = danglingPreps.ReplaceAllString(out, "")
	return strings.Trim(out, edgePunctuation)
}

// indexFold is a case-insensitive strings.Index.
func indexFold(s, substr string) int {
	return strings.Index(strings.ToLower(s), strings.ToLower(substr))
}
