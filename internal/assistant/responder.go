package assistant

import (
	"context"
	"strings"
)

// Responder produces the open-conversation reply when an utterance is not an
// actionable request. The LLM-backed implementation lives outside this core;
// CannedResponder is the built-in fallback.
type Responder interface {
	Respond(ctx context.Context, ownerID, text string) (string, error)
}

// CannedResponder answers greetings and direct questions from a small phrase
// table and shrugs politely at everything else.
type CannedResponder struct{}

var cannedReplies = map[string]string{
	"hi":               "Hey! I can set reminders, track tasks and habits, and run focus sessions.",
	"hello":            "Hello! Tell me what to remind you about, or say 'start focus'.",
	"hey":              "Hey there. Need a reminder or a focus session?",
	"how are you":      "All timers ticking. What can I set up for you?",
	"what can you do":  "I turn things like 'remind me to call mom at 17:30' into reminders, track tasks and habits, and run 25-minute focus sessions.",
	"who are you":      "I'm remi, your reminder and focus assistant.",
	"help":             "Try: 'remind me to buy milk at 17:30', 'drink water every 30 minutes', 'meeting in 2 days', or 'start focus'.",
	"thanks":           "Anytime!",
	"thank you":        "Anytime!",
	"bye":              "See you. Your reminders keep running while the process does.",
	"goodbye":          "Bye! I'll ping you when something fires.",
}

func (CannedResponder) Respond(_ context.Context, _ string, text string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(strings.TrimRight(text, "!?.")))
	if reply, ok := cannedReplies[key]; ok {
		return reply, nil
	}
	return "I'm best with reminders, tasks, habits, and focus sessions. Say 'help' for examples.", nil
}
