package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/escalate/internal/ports/primary"
)

// AuditAdapter prints the audit trail.
type AuditAdapter struct {
	service primary.AuditService
	out     io.Writer
}

// NewAuditAdapter creates a new AuditAdapter with the given service.
func NewAuditAdapter(service primary.AuditService, out io.Writer) *AuditAdapter {
	return &AuditAdapter{
		service: service,
		out:     out,
	}
}

// List prints audit entries for a guild, newest first.
func (a *AuditAdapter) List(ctx context.Context, guildID string, limit int) ([]*primary.AuditEntry, error) {
	entries, err := a.service.ListEntries(ctx, primary.AuditFilters{
		GuildID: guildID,
		Limit:   limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No audit entries found.")
		return entries, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "WHEN\tACTOR\tACTION\tENTITY\tCHANGE")
	fmt.Fprintln(w, "----\t-----\t------\t------\t------")

	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.CreatedAt,
			e.ActorID,
			actionLabel(e.Action),
			e.EntityType+":"+e.EntityID,
			change(e),
		)
	}

	w.Flush()
	return entries, nil
}

func actionLabel(action string) string {
	switch action {
	case "create":
		return color.New(color.FgGreen).Sprint(action)
	case "update":
		return color.New(color.FgYellow).Sprint(action)
	case "delete":
		return color.New(color.FgRed).Sprint(action)
	default:
		return action
	}
}

func change(e *primary.AuditEntry) string {
	if e.FieldName == "" {
		return "-"
	}
	return fmt.Sprintf("%s: %q -> %q", e.FieldName, e.OldValue, e.NewValue)
}
