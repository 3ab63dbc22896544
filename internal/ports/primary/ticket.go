package primary

import "context"

// TicketService defines the primary port for the ticket registry.
// The registry tells the bot which channels are active tickets and who the
// recipient of each ticket is.
type TicketService interface {
	// LinkTicket registers a channel as an open ticket.
	LinkTicket(ctx context.Context, req LinkTicketRequest) (*Ticket, error)

	// GetTicket retrieves a ticket by its channel ID.
	GetTicket(ctx context.Context, channelID string) (*Ticket, error)

	// GetOpenTicket retrieves a ticket and fails unless it is open.
	GetOpenTicket(ctx context.Context, channelID string) (*Ticket, error)

	// ListTickets lists tickets with optional filters.
	ListTickets(ctx context.Context, filters TicketFilters) ([]*Ticket, error)

	// CloseTicket marks a ticket as closed.
	CloseTicket(ctx context.Context, channelID string) error
}

// LinkTicketRequest contains parameters for registering a ticket.
type LinkTicketRequest struct {
	ChannelID   string
	GuildID     string
	RecipientID string
}

// Ticket represents a ticket at the port boundary.
type Ticket struct {
	ChannelID   string
	GuildID     string
	RecipientID string
	Status      string
	CreatedAt   string
	ClosedAt    string // May be empty
}

// TicketFilters contains filter options for listing tickets.
type TicketFilters struct {
	GuildID string
	Status  string
}

// Ticket status constants
const (
	TicketStatusOpen   = "open"
	TicketStatusClosed = "closed"
)
