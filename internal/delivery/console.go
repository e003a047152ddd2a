package delivery

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	consoleBell   = color.New(color.FgYellow, color.Bold).SprintFunc()
	consoleAction = color.New(color.FgHiBlack).SprintFunc()
)

// ConsoleSink prints notifications to a writer, used by the chat REPL.
type ConsoleSink struct {
	Out io.Writer
}

// NewConsoleSink creates a ConsoleSink writing to out.
func NewConsoleSink(out io.Writer) *ConsoleSink {
	return &ConsoleSink{Out: out}
}

func (s *ConsoleSink) Deliver(_ context.Context, ownerID string, msg Message) error {
	line := fmt.Sprintf("%s %s", consoleBell("⏰"), msg.Text)
	if len(msg.Actions) > 0 {
		labels := make([]string, 0, len(msg.Actions))
		for _, a := range msg.Actions {
			labels = append(labels, a.Label)
		}
		line += consoleAction(fmt.Sprintf("  [%s]", strings.Join(labels, " | ")))
	}
	_, err := fmt.Fprintln(s.Out, line)
	return err
}
