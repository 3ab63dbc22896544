package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/escalate/internal/wire"
)

// TicketsCmd returns the tickets command group
func TicketsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tickets",
		Short: "Manage the ticket registry",
		Long: `Link channels as tickets, close them and list them.
Commands that only run inside a ticket check this registry.`,
	}
	cmd.AddCommand(ticketsLinkCmd())
	cmd.AddCommand(ticketsCloseCmd())
	cmd.AddCommand(ticketsListCmd())
	return cmd
}

func ticketsLinkCmd() *cobra.Command {
	var guildID, recipientID string

	cmd := &cobra.Command{
		Use:   "link <channel-id>",
		Short: "Register a channel as an open ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.TicketAdapter().Link(NewContext(guildID), args[0], guildID, recipientID)
			return err
		},
	}

	cmd.Flags().StringVar(&guildID, "guild", "", "Guild ID (required)")
	cmd.Flags().StringVar(&recipientID, "recipient", "", "User the ticket belongs to (required)")
	_ = cmd.MarkFlagRequired("guild")
	_ = cmd.MarkFlagRequired("recipient")
	return cmd
}

func ticketsCloseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "close <channel-id>",
		Short: "Mark a ticket closed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.TicketAdapter().Close(NewContext(""), args[0])
		},
	}
}

func ticketsListCmd() *cobra.Command {
	var guildID, status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tickets",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.TicketAdapter().List(NewContext(guildID), guildID, status)
			return err
		},
	}

	cmd.Flags().StringVar(&guildID, "guild", "", "Filter by guild ID")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (open, closed)")
	return cmd
}
