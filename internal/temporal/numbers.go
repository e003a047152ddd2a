package temporal

import (
	"strconv"
	"strings"
)

// numberWords maps spelled-out small amounts to integers. Vague quantifiers
// get conventional values ("a couple" of minutes is two minutes).
var numberWords = map[string]int{
	"a":           1,
	"an":          1,
	"one":         1,
	"two":         2,
	"three":       3,
	"four":        4,
	"five":        5,
	"six":         6,
	"seven":       7,
	"eight":       8,
	"nine":        9,
	"ten":         10,
	"a couple":    2,
	"a couple of": 2,
	"a few":       3,
}

// parseAmount turns a digit string or number word into an amount.
// Unparseable input defaults to 1 so a sloppy phrase still schedules
// something rather than failing the whole utterance.
func parseAmount(s string) int {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 1
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if n, ok := numberWords[s]; ok {
		return n
	}
	return 1
}
