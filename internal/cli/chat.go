package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/escalate/internal/adapters/chat"
	"github.com/example/escalate/internal/ports/primary"
)

const chatHelpTemplate = `{{.Short}}

Usage: {{chatUseLine .}}{{if .Aliases}}
Aliases: {{.NameAndAliases}}{{end}}{{if .HasAvailableSubCommands}}

Commands:{{range .Commands}}{{if .IsAvailableCommand}}
  {{rpad .Name .NamePadding}} {{.Short}}{{end}}{{end}}{{end}}
`

func init() {
	cobra.AddTemplateFunc("chatUseLine", func(cmd *cobra.Command) string {
		return strings.TrimSpace(strings.TrimSuffix(cmd.UseLine(), " [flags]"))
	})
}

// NewChatRootCmd builds the tree of commands users run from chat. A fresh tree
// is built per message so no parse state leaks between invocations.
func NewChatRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	root.SetHelpTemplate(chatHelpTemplate)

	root.AddCommand(escalateChatCmd())
	root.AddCommand(escalateThreadChatCmd())
	return root
}

func escalateChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:                "escalate <dept>",
		Short:              "Escalate your thread/ticket to a specific department",
		Args:               requireArgs("dept"),
		DisableFlagParsing: true,
		Annotations: map[string]string{
			chat.AnnotationPermission: "supporter",
			chat.AnnotationTicketOnly: "true",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := chatCommand(cmd.Context())
			if err != nil {
				return err
			}
			return c.Escalation.Escalate(cmd.Context(), c.Invocation, args[0])
		},
	}
}

func escalateThreadChatCmd() *cobra.Command {
	group := &cobra.Command{
		Use:                "escalatethread",
		Short:              "Setup categories to escalate your threads/tickets to",
		DisableFlagParsing: true,
		Annotations:        adminOnly(),
		RunE:               showHelp,
	}

	configCmd := &cobra.Command{
		Use:                "config",
		Short:              "Take a peek at your current escalation config",
		DisableFlagParsing: true,
		Annotations:        adminOnly(),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := chatCommand(cmd.Context())
			if err != nil {
				return err
			}
			return c.Escalation.ShowConfig(cmd.Context(), c.Invocation)
		},
	}

	setCmd := &cobra.Command{
		Use:                "set",
		Short:              "Set a new value for an option",
		DisableFlagParsing: true,
		Annotations:        adminOnly(),
		RunE:               showHelp,
	}

	setTerminologyCmd := &cobra.Command{
		Use:                "terminology <option>",
		Short:              "Set your terminology",
		Args:               requireArgs("option"),
		DisableFlagParsing: true,
		Annotations:        adminOnly(),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := chatCommand(cmd.Context())
			if err != nil {
				return err
			}
			return c.Escalation.SetTerminology(cmd.Context(), c.Invocation, args[0])
		},
	}

	addCmd := &cobra.Command{
		Use:                "add <name> <role> <category>",
		Short:              "Add an option to escalate to.",
		Args:               requireArgs("name", "role", "category"),
		DisableFlagParsing: true,
		Annotations:        adminOnly(),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := chatCommand(cmd.Context())
			if err != nil {
				return err
			}
			return c.Escalation.AddOption(cmd.Context(), c.Invocation, args[0], args[1], args[2])
		},
	}

	deleteCmd := &cobra.Command{
		Use:                "delete <name>",
		Aliases:            []string{"remove", "del"},
		Short:              "Pick an option to delete.",
		Args:               requireArgs("name"),
		DisableFlagParsing: true,
		Annotations:        adminOnly(),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := chatCommand(cmd.Context())
			if err != nil {
				return err
			}
			return c.Escalation.DeleteOption(cmd.Context(), c.Invocation, args[0])
		},
	}

	setCmd.AddCommand(setTerminologyCmd)
	group.AddCommand(configCmd)
	group.AddCommand(setCmd)
	group.AddCommand(addCmd)
	group.AddCommand(deleteCmd)
	return group
}

func adminOnly() map[string]string {
	return map[string]string{chat.AnnotationPermission: "administrator"}
}

func showHelp(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}

// requireArgs rejects invocations missing any of the named positional
// arguments. Extra arguments are ignored.
func requireArgs(names ...string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < len(names) {
			return &primary.UserError{
				Message: fmt.Sprintf("`%s` is a required argument that is missing.", names[len(args)]),
			}
		}
		return nil
	}
}

func chatCommand(ctx context.Context) (*chat.Command, error) {
	c := chat.CommandFromContext(ctx)
	if c == nil {
		return nil, fmt.Errorf("chat command run without a chat context")
	}
	return c, nil
}
