// Package chat provides thin chat adapters that translate between chat command
// concerns and application services. Adapters resolve arguments and format
// replies, but delegate business logic to services.
package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/escalate/internal/core/effects"
	"github.com/example/escalate/internal/core/escalation"
	"github.com/example/escalate/internal/ports/primary"
	"github.com/example/escalate/internal/ports/secondary"
)

// Replier sends output back to the channel a command was invoked from.
type Replier interface {
	Send(ctx context.Context, content string) error
	SendEmbed(ctx context.Context, embed effects.Embed) error
}

// Resolver turns a role or category argument (mention, ID or name) into a
// guild object.
type Resolver interface {
	ResolveRole(ctx context.Context, guildID, ref string) (*secondary.Role, error)
	ResolveCategory(ctx context.Context, guildID, ref string) (*secondary.Category, error)
}

// Invocation identifies where and by whom a command was run.
type Invocation struct {
	GuildID   string
	ChannelID string
	ActorName string
}

// EscalationAdapter is a thin adapter that translates chat commands to
// EscalationService calls. User errors are rendered as replies and swallowed;
// everything else is returned for the dispatcher to handle.
type EscalationAdapter struct {
	service  primary.EscalationService
	resolver Resolver
	out      Replier
}

// NewEscalationAdapter creates a new EscalationAdapter.
func NewEscalationAdapter(service primary.EscalationService, resolver Resolver, out Replier) *EscalationAdapter {
	return &EscalationAdapter{
		service:  service,
		resolver: resolver,
		out:      out,
	}
}

// Escalate moves the current ticket to dept.
func (a *EscalationAdapter) Escalate(ctx context.Context, inv Invocation, dept string) error {
	_, err := a.service.Escalate(ctx, primary.EscalateRequest{
		GuildID:    inv.GuildID,
		ChannelID:  inv.ChannelID,
		ActorName:  inv.ActorName,
		Department: dept,
	})
	return a.render(ctx, err)
}

// ShowConfig replies with the configuration embed.
func (a *EscalationAdapter) ShowConfig(ctx context.Context, inv Invocation) error {
	cfg, err := a.service.GetConfig(ctx, inv.GuildID)
	if err != nil {
		return a.render(ctx, err)
	}

	return a.out.SendEmbed(ctx, escalation.ConfigEmbed(escalation.Config{
		Terminology: escalation.Terminology(cfg.Terminology),
	}))
}

// SetTerminology sets the terminology to value.
func (a *EscalationAdapter) SetTerminology(ctx context.Context, inv Invocation, value string) error {
	err := a.service.SetTerminology(ctx, primary.SetTerminologyRequest{
		GuildID: inv.GuildID,
		Value:   value,
	})
	if err != nil {
		return a.render(ctx, err)
	}

	return a.out.Send(ctx, fmt.Sprintf("Successfully updated the terminology to %s", value))
}

// AddOption adds a destination after resolving its role and category.
func (a *EscalationAdapter) AddOption(ctx context.Context, inv Invocation, name, roleRef, categoryRef string) error {
	role, err := a.resolver.ResolveRole(ctx, inv.GuildID, roleRef)
	if err != nil {
		return a.render(ctx, argumentError("Role", roleRef, err))
	}
	category, err := a.resolver.ResolveCategory(ctx, inv.GuildID, categoryRef)
	if err != nil {
		return a.render(ctx, argumentError("Channel", categoryRef, err))
	}

	opt, err := a.service.AddOption(ctx, primary.AddOptionRequest{
		GuildID:      inv.GuildID,
		Name:         name,
		RoleID:       role.ID,
		CategoryID:   category.ID,
		CategoryName: category.Name,
	})
	if err != nil {
		return a.render(ctx, err)
	}

	return a.out.Send(ctx, fmt.Sprintf("Added! Escalating to `%s` will mention <@&%s> and moved to `%s`",
		opt.Name, opt.RoleID, opt.CategoryName))
}

// DeleteOption removes a destination.
func (a *EscalationAdapter) DeleteOption(ctx context.Context, inv Invocation, name string) error {
	opt, err := a.service.DeleteOption(ctx, primary.DeleteOptionRequest{
		GuildID: inv.GuildID,
		Name:    name,
	})
	if err != nil {
		return a.render(ctx, err)
	}

	return a.out.Send(ctx, fmt.Sprintf("Successfully removed `%s`", opt.Name))
}

// render replies with a user error and swallows it. Other errors pass through.
func (a *EscalationAdapter) render(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	var userErr *primary.UserError
	if !errors.As(err, &userErr) {
		return err
	}
	if userErr.Embed != nil {
		return a.out.SendEmbed(ctx, *userErr.Embed)
	}
	return a.out.Send(ctx, userErr.Message)
}

// argumentError turns a failed lookup into the user-facing conversion message.
func argumentError(kind, ref string, err error) error {
	if errors.Is(err, secondary.ErrNotFound) {
		return &primary.UserError{Message: fmt.Sprintf("%s %q not found.", kind, ref)}
	}
	return err
}
