// Package cli provides thin terminal adapters for the local admin commands.
// Adapters format service results for humans; business rules stay in services.
package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/escalate/internal/ports/primary"
)

// TicketAdapter is a thin adapter that translates CLI operations to TicketService calls.
type TicketAdapter struct {
	service primary.TicketService
	out     io.Writer
}

// NewTicketAdapter creates a new TicketAdapter with the given service.
func NewTicketAdapter(service primary.TicketService, out io.Writer) *TicketAdapter {
	return &TicketAdapter{
		service: service,
		out:     out,
	}
}

// Link registers a channel as an open ticket.
func (a *TicketAdapter) Link(ctx context.Context, channelID, guildID, recipientID string) (*primary.Ticket, error) {
	ticket, err := a.service.LinkTicket(ctx, primary.LinkTicketRequest{
		ChannelID:   channelID,
		GuildID:     guildID,
		RecipientID: recipientID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to link ticket: %w", err)
	}

	fmt.Fprintf(a.out, "✓ Linked ticket %s (recipient %s)\n", ticket.ChannelID, ticket.RecipientID)
	return ticket, nil
}

// Close marks a ticket closed.
func (a *TicketAdapter) Close(ctx context.Context, channelID string) error {
	if err := a.service.CloseTicket(ctx, channelID); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Ticket %s closed\n", channelID)
	return nil
}

// List lists tickets. Empty filters match everything.
func (a *TicketAdapter) List(ctx context.Context, guildID, status string) ([]*primary.Ticket, error) {
	tickets, err := a.service.ListTickets(ctx, primary.TicketFilters{
		GuildID: guildID,
		Status:  status,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	if len(tickets) == 0 {
		fmt.Fprintln(a.out, "No tickets found.")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Link a channel as a ticket:")
		fmt.Fprintln(a.out, "  escalate tickets link <channel-id> --guild <guild-id> --recipient <user-id>")
		return tickets, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "CHANNEL\tGUILD\tRECIPIENT\tSTATUS\tCREATED")
	fmt.Fprintln(w, "-------\t-----\t---------\t------\t-------")

	for _, t := range tickets {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			t.ChannelID,
			t.GuildID,
			t.RecipientID,
			statusLabel(t.Status),
			t.CreatedAt,
		)
	}

	w.Flush()
	return tickets, nil
}

func statusLabel(status string) string {
	switch status {
	case primary.TicketStatusOpen:
		return color.New(color.FgGreen).Sprint(status)
	case primary.TicketStatusClosed:
		return color.New(color.FgHiBlack).Sprint(status)
	default:
		return status
	}
}
