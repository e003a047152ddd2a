// Package delivery routes reminder and focus-session notifications to the
// owner's channel. Schedulers depend only on the Sink interface; failures
// propagate back so the schedulers can apply their teardown rules.
package delivery

import "context"

// Action is an affordance attached to a delivered message.
type Action struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Standard reminder affordances.
var (
	ActionAcknowledge = Action{ID: "ack", Label: "Got it"}
	ActionSnooze15    = Action{ID: "snooze_15", Label: "Snooze 15min"}
	ActionSnooze60    = Action{ID: "snooze_60", Label: "Snooze 1h"}
)

// ReminderActions is the affordance set attached to every reminder firing.
func ReminderActions() []Action {
	return []Action{ActionAcknowledge, ActionSnooze15, ActionSnooze60}
}

// Message is one notification payload.
type Message struct {
	Text    string   `json:"text"`
	Actions []Action `json:"actions,omitempty"`
}

// Sink delivers a message to an owner. A non-nil error means the owner could
// not be reached.
type Sink interface {
	Deliver(ctx context.Context, ownerID string, msg Message) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, ownerID string, msg Message) error

func (f SinkFunc) Deliver(ctx context.Context, ownerID string, msg Message) error {
	return f(ctx, ownerID, msg)
}
