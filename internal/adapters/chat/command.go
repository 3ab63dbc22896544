package chat

import "context"

// Cobra annotations read by the dispatcher before a chat command runs.
const (
	// AnnotationPermission names the minimum permission level, e.g. "supporter".
	AnnotationPermission = "escalate.permission"
	// AnnotationTicketOnly is "true" when the command must run inside an open ticket.
	AnnotationTicketOnly = "escalate.ticket_only"
)

type commandKey struct{}

// Command is what a chat command handler needs about the message it runs for.
type Command struct {
	Invocation Invocation
	Escalation *EscalationAdapter
}

// WithCommand returns a context carrying cmd for the handler.
func WithCommand(ctx context.Context, cmd *Command) context.Context {
	return context.WithValue(ctx, commandKey{}, cmd)
}

// CommandFromContext returns the command set by WithCommand, or nil.
func CommandFromContext(ctx context.Context) *Command {
	if v, ok := ctx.Value(commandKey{}).(*Command); ok {
		return v
	}
	return nil
}
