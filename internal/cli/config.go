package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/escalate/internal/wire"
)

// ConfigCmd returns the config command group
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect per-guild escalation config",
	}
	cmd.AddCommand(configShowCmd())
	return cmd
}

func configShowCmd() *cobra.Command {
	var guildID string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show terminology and escalation options for a guild",
		Long: `Show terminology and escalation options for a guild.
A guild with no stored config gets the defaults written, as the bot does.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.ConfigAdapter().Show(NewContext(guildID), guildID)
			return err
		},
	}

	cmd.Flags().StringVar(&guildID, "guild", "", "Guild ID (required)")
	_ = cmd.MarkFlagRequired("guild")
	return cmd
}
