package intent

// Curated phrase and verb tables. Kept as data, not logic, so locales can be
// swapped and tests can probe the rule engine directly.

// triggerPhrases are explicit reminder-trigger verbs. Their presence forces
// the reminder family regardless of any task heuristics.
var triggerPhrases = []string{
	"remind me",
	"remind us",
	"set a reminder",
	"set reminder",
	"create a reminder",
	"make a reminder",
	"add a reminder",
	"don't let me forget",
	"dont let me forget",
	"don't forget",
}

// actionVerbs is the curated verb catalogue consulted before the suffix
// fallback. Matching is whole-word, case-insensitive.
var actionVerbs = []string{
	"call", "buy", "send", "write", "email", "text", "meet", "pay",
	"clean", "finish", "submit", "check", "read", "book", "prepare",
	"take", "pick", "drink", "walk", "wash", "cook", "review", "fix",
	"attend", "study", "practice", "visit", "order", "renew", "water",
	"feed", "plan", "run", "go", "do", "start", "stop", "work", "make",
	"bring", "return", "collect", "print", "sign", "deliver", "schedule",
}

// verbSuffixes is the morphological fallback used only when no curated verb
// matches. It covers infinitive, imperative, and conjugated forms by ending
// pattern, to broaden recall for short or informal inputs.
var verbSuffixes = []string{
	"ing", "ed", "ate", "ize", "ise", "ify", "en",
}

// minSuffixWordLen keeps the suffix detector from firing on short function
// words ("red", "ten").
const minSuffixWordLen = 5

// temporalKeywords are day-part, weekday, and relative-day tokens. They count
// as time context for classification even when the resolver cannot turn them
// into a concrete instant.
var temporalKeywords = []string{
	"today", "tomorrow", "tonight",
	"morning", "afternoon", "evening", "noon", "midnight",
	"monday", "tuesday", "wednesday", "thursday", "friday",
	"saturday", "sunday", "weekend",
	"next week", "next month", "next year", "this week", "this month",
	"later",
}

// dayTokens is the subset of temporalKeywords that names a day rather than a
// time of day; used by the trigger-less reminder rule.
var dayTokens = []string{
	"today", "tomorrow", "tonight",
	"morning", "afternoon", "evening",
	"monday", "tuesday", "wednesday", "thursday", "friday",
	"saturday", "sunday", "weekend",
}

// habitKeywords signal repetition or self-improvement intents.
var habitKeywords = []string{
	"habit",
	"every day", "everyday", "each day", "daily",
	"every morning", "every evening", "every night",
	"every week", "weekly",
}

// chatTemplates are exact-match greeting/farewell/direct-question utterances.
var chatTemplates = []string{
	"hi", "hello", "hey", "yo",
	"good morning", "good afternoon", "good evening", "good night",
	"bye", "goodbye", "see you", "see you later",
	"thanks", "thank you", "thank you very much",
	"how are you", "how are you?",
	"what can you do", "what can you do?",
	"who are you", "who are you?",
	"help", "help me",
}
