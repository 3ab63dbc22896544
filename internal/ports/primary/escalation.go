package primary

import (
	"context"

	"github.com/example/escalate/internal/core/effects"
)

// EscalationService defines the primary port for escalation operations.
// Every call loads the guild's config, applies the change and saves it again.
type EscalationService interface {
	// Escalate moves a ticket to a configured destination and announces it.
	Escalate(ctx context.Context, req EscalateRequest) (*EscalateResponse, error)

	// GetConfig returns the guild's current escalation config.
	GetConfig(ctx context.Context, guildID string) (*EscalationConfig, error)

	// SetTerminology changes the word used for a support case.
	SetTerminology(ctx context.Context, req SetTerminologyRequest) error

	// AddOption adds a new escalation destination.
	AddOption(ctx context.Context, req AddOptionRequest) (*EscalationOption, error)

	// DeleteOption removes an escalation destination.
	DeleteOption(ctx context.Context, req DeleteOptionRequest) (*EscalationOption, error)
}

// EscalationConfigReader is the read-only slice of EscalationService used by
// surfaces that have no chat connection.
type EscalationConfigReader interface {
	GetConfig(ctx context.Context, guildID string) (*EscalationConfig, error)
}

// EscalateRequest contains parameters for escalating a ticket.
type EscalateRequest struct {
	GuildID    string
	ChannelID  string // ticket channel
	ActorName  string // shown in the audit reason
	Department string // as typed
}

// EscalateResponse contains the result of an escalation.
type EscalateResponse struct {
	Department  string // normalised name
	RoleID      string
	CategoryID  string
	Terminology string
}

// SetTerminologyRequest contains parameters for setting the terminology.
type SetTerminologyRequest struct {
	GuildID string
	Value   string
}

// AddOptionRequest contains parameters for adding a destination.
// Role and category are already resolved to live objects by the caller.
type AddOptionRequest struct {
	GuildID      string
	Name         string
	RoleID       string
	CategoryID   string
	CategoryName string
}

// DeleteOptionRequest contains parameters for deleting a destination.
type DeleteOptionRequest struct {
	GuildID string
	Name    string
}

// EscalationConfig represents a guild's config at the port boundary.
type EscalationConfig struct {
	GuildID     string
	Terminology string
	Options     []EscalationOption // sorted by name
}

// EscalationOption represents one destination at the port boundary.
type EscalationOption struct {
	Name         string
	RoleID       string
	CategoryID   string
	CategoryName string // only set when known
}

// UserError is a rejected request that should be shown to the caller as-is.
// Exactly one of Message or Embed is set.
type UserError struct {
	Message string
	Embed   *effects.Embed
}

func (e *UserError) Error() string {
	if e.Embed != nil {
		return e.Embed.Description
	}
	return e.Message
}
