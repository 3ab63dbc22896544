package escalation

import "strings"

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// SetTerminologyContext provides context for the terminology guard.
type SetTerminologyContext struct {
	Value string
}

// AddOptionContext provides context for adding a destination.
type AddOptionContext struct {
	Name   string // already normalised
	Exists bool
}

// DeleteOptionContext provides context for deleting a destination.
type DeleteOptionContext struct {
	Name   string // already normalised
	Exists bool
}

// EscalateContext provides context for escalating a ticket.
type EscalateContext struct {
	Department string
	Exists     bool
	Available  []string
}

// CanSetTerminology evaluates whether the terminology can be set to ctx.Value.
// Rules:
// - Value must be exactly "thread" or "ticket"
func CanSetTerminology(ctx SetTerminologyContext) GuardResult {
	if _, ok := ParseTerminology(ctx.Value); !ok {
		return GuardResult{
			Allowed: false,
			Reason:  "You must pick `thread` or `ticket`",
		}
	}
	return GuardResult{Allowed: true}
}

// CanAddOption evaluates whether a destination can be added.
// Rules:
// - Name must not already exist (modify or delete first)
func CanAddOption(ctx AddOptionContext) GuardResult {
	if ctx.Exists {
		return GuardResult{
			Allowed: false,
			Reason:  "This option already exists. Modify or delete it to continue.",
		}
	}
	return GuardResult{Allowed: true}
}

// CanDeleteOption evaluates whether a destination can be deleted.
// Rules:
// - Name must exist
func CanDeleteOption(ctx DeleteOptionContext) GuardResult {
	if !ctx.Exists {
		return GuardResult{
			Allowed: false,
			Reason:  "This option doesn't exist. Was it already deleted?",
		}
	}
	return GuardResult{Allowed: true}
}

// CanEscalate evaluates whether a ticket can be escalated to ctx.Department.
// The rejection reason lists every available destination, one per line.
func CanEscalate(ctx EscalateContext) GuardResult {
	if !ctx.Exists {
		return GuardResult{
			Allowed: false,
			Reason:  "That department doesn't exist. Your available options are:\n\n" + strings.Join(ctx.Available, "\n"),
		}
	}
	return GuardResult{Allowed: true}
}
