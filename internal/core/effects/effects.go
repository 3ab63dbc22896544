// Package effects defines effect types as data structures representing I/O operations.
// Core logic decides which chat side effects should happen; the app layer's
// executor is the only place they are performed.
package effects

// Effect is the base interface for all effects.
type Effect interface {
	// EffectType returns a string identifier for the effect type.
	EffectType() string
}

// Embed colours used by the plugin.
const (
	ColorRed     = 0xE74C3C
	ColorBlurple = 0x5865F2
)

// EmbedField is a single name/value pair inside an embed.
type EmbedField struct {
	Name   string
	Value  string
	Inline bool
}

// Embed is a platform-neutral rich message.
type Embed struct {
	Title       string
	Description string
	Color       int
	Author      string
	Footer      string
	Fields      []EmbedField
}

// LogEffect represents a logging operation.
type LogEffect struct {
	Level   string
	Message string
	Fields  map[string]any
}

func (e LogEffect) EffectType() string { return "log" }

// MoveChannelEffect moves a channel into a category.
// ToEnd places the channel after every existing channel in the category.
type MoveChannelEffect struct {
	GuildID    string
	ChannelID  string
	CategoryID string
	Reason     string // audit log reason
	ToEnd      bool
}

func (e MoveChannelEffect) EffectType() string { return "move_channel" }

// SendMessageEffect posts plain text to a channel.
// MentionRoles lists the role IDs that are allowed to ping.
type SendMessageEffect struct {
	ChannelID    string
	Content      string
	MentionRoles []string
}

func (e SendMessageEffect) EffectType() string { return "send_message" }

// SendEmbedEffect posts an embed to a channel.
type SendEmbedEffect struct {
	ChannelID string
	Embed     Embed
}

func (e SendEmbedEffect) EffectType() string { return "send_embed" }

// AnonymousReplyEffect replies to a ticket's recipient on behalf of the
// support team instead of the acting staff member.
type AnonymousReplyEffect struct {
	GuildID     string
	ChannelID   string // ticket channel
	RecipientID string
	Content     string
}

func (e AnonymousReplyEffect) EffectType() string { return "anonymous_reply" }
