package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/escalate/internal/cli"
	"github.com/example/escalate/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "escalate",
		Short:   "escalate - move support tickets to the right department",
		Version: version.String(),
		Long: `escalate is a Discord bot that lets support staff move a ticket channel
into a department's category and ping that department's role.
Administrators configure the departments per guild from chat.`,
		SilenceUsage: true,
	}
	cli.BindGlobalFlags(rootCmd)

	// Bot
	rootCmd.AddCommand(cli.ServeCmd())
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.VersionCmd())

	// Local administration
	rootCmd.AddCommand(cli.ConfigCmd())
	rootCmd.AddCommand(cli.TicketsCmd())
	rootCmd.AddCommand(cli.AuditCmd())

	// Developer tools
	rootCmd.AddCommand(cli.DevCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
