package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/escalate/internal/ports/primary"
)

// ConfigAdapter prints a guild's escalation config.
type ConfigAdapter struct {
	service primary.EscalationConfigReader
	out     io.Writer
}

// NewConfigAdapter creates a new ConfigAdapter with the given service.
func NewConfigAdapter(service primary.EscalationConfigReader, out io.Writer) *ConfigAdapter {
	return &ConfigAdapter{
		service: service,
		out:     out,
	}
}

// Show prints terminology and every configured destination.
func (a *ConfigAdapter) Show(ctx context.Context, guildID string) (*primary.EscalationConfig, error) {
	cfg, err := a.service.GetConfig(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Fprintf(a.out, "\nGuild:       %s\n", guildID)
	fmt.Fprintf(a.out, "Terminology: %s\n", cfg.Terminology)
	fmt.Fprintln(a.out)

	if len(cfg.Options) == 0 {
		fmt.Fprintln(a.out, color.New(color.FgYellow).Sprint("No escalation options configured."))
		return cfg, nil
	}

	fmt.Fprintln(a.out, "Options:")
	for _, opt := range cfg.Options {
		fmt.Fprintf(a.out, "  %s  role=%s category=%s\n",
			color.New(color.FgHiBlue).Sprint(opt.Name),
			opt.RoleID,
			opt.CategoryID,
		)
	}
	fmt.Fprintln(a.out)

	return cfg, nil
}
