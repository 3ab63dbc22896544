package secondary

import (
	"context"

	"github.com/example/escalate/internal/core/effects"
)

// Role is a guild role resolved from a user-supplied reference.
type Role struct {
	ID   string
	Name string
}

// Category is a channel category resolved from a user-supplied reference.
type Category struct {
	ID   string
	Name string
}

// ChatPlatform defines the secondary port for the chat platform API.
type ChatPlatform interface {
	// ResolveRole finds a role by mention, ID or case-insensitive name.
	// Returns an error wrapping ErrNotFound when nothing matches.
	ResolveRole(ctx context.Context, guildID, ref string) (*Role, error)

	// ResolveCategory finds a category by mention, ID or case-insensitive name.
	// Returns an error wrapping ErrNotFound when nothing matches.
	ResolveCategory(ctx context.Context, guildID, ref string) (*Category, error)

	// MoveChannel moves a channel into a category, recording reason in the audit log.
	MoveChannel(ctx context.Context, guildID, channelID, categoryID, reason string, toEnd bool) error

	// SendMessage posts text; only the listed roles may be pinged.
	SendMessage(ctx context.Context, channelID, content string, mentionRoles []string) error

	// SendEmbed posts an embed.
	SendEmbed(ctx context.Context, channelID string, embed effects.Embed) error

	// ReplyAnonymously sends content to the ticket recipient on behalf of the
	// support team and mirrors it into the ticket channel.
	ReplyAnonymously(ctx context.Context, channelID, recipientID, content string) error
}
