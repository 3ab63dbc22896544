package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/escalate/internal/wire"
)

// AuditCmd returns the audit command
func AuditCmd() *cobra.Command {
	var (
		guildID string
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show config changes and escalations for a guild",
		Long:  "Show the audit trail for a guild, newest first (default 50 entries)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				limit = 50
			}
			_, err := wire.AuditAdapter().List(NewContext(guildID), guildID, limit)
			return err
		},
	}

	cmd.Flags().StringVar(&guildID, "guild", "", "Guild ID (required)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "Number of entries to show")
	_ = cmd.MarkFlagRequired("guild")
	return cmd
}
