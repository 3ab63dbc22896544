// Package discord connects the bot to Discord through discordgo: the
// ChatPlatform implementation, the message dispatcher and permission levels.
package discord

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/example/escalate/internal/core/effects"
	"github.com/example/escalate/internal/ports/secondary"
)

// API is the subset of *discordgo.Session the platform calls.
type API interface {
	GuildRoles(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Role, error)
	GuildChannels(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Channel, error)
	ChannelEdit(channelID string, data *discordgo.ChannelEdit, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	GuildChannelsReorder(guildID string, channels []*discordgo.Channel, options ...discordgo.RequestOption) error
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
}

var (
	roleMention    = regexp.MustCompile(`^<@&(\d+)>$`)
	channelMention = regexp.MustCompile(`^<#(\d+)>$`)
	snowflake      = regexp.MustCompile(`^\d{15,20}$`)
)

// Platform implements secondary.ChatPlatform on Discord.
type Platform struct {
	api           API
	anonymousName string
	logger        *zap.SugaredLogger
}

// NewPlatform creates a Platform. anonymousName is the author shown on
// anonymous replies.
func NewPlatform(api API, anonymousName string, logger *zap.SugaredLogger) *Platform {
	return &Platform{api: api, anonymousName: anonymousName, logger: logger}
}

// ResolveRole finds a role by mention, ID or name. Exact name matches win
// over case-insensitive ones.
func (p *Platform) ResolveRole(ctx context.Context, guildID, ref string) (*secondary.Role, error) {
	roles, err := p.api.GuildRoles(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roles: %w", err)
	}

	if id := extractID(ref, roleMention); id != "" {
		for _, r := range roles {
			if r.ID == id {
				return &secondary.Role{ID: r.ID, Name: r.Name}, nil
			}
		}
		return nil, fmt.Errorf("role %s: %w", ref, secondary.ErrNotFound)
	}

	var fold *discordgo.Role
	for _, r := range roles {
		if r.Name == ref {
			return &secondary.Role{ID: r.ID, Name: r.Name}, nil
		}
		if fold == nil && strings.EqualFold(r.Name, ref) {
			fold = r
		}
	}
	if fold != nil {
		return &secondary.Role{ID: fold.ID, Name: fold.Name}, nil
	}
	return nil, fmt.Errorf("role %s: %w", ref, secondary.ErrNotFound)
}

// ResolveCategory finds a category channel by mention, ID or name.
func (p *Platform) ResolveCategory(ctx context.Context, guildID, ref string) (*secondary.Category, error) {
	channels, err := p.api.GuildChannels(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch channels: %w", err)
	}

	id := extractID(ref, channelMention)
	var fold *discordgo.Channel
	for _, c := range channels {
		if c.Type != discordgo.ChannelTypeGuildCategory {
			continue
		}
		if id != "" {
			if c.ID == id {
				return &secondary.Category{ID: c.ID, Name: c.Name}, nil
			}
			continue
		}
		if c.Name == ref {
			return &secondary.Category{ID: c.ID, Name: c.Name}, nil
		}
		if fold == nil && strings.EqualFold(c.Name, ref) {
			fold = c
		}
	}
	if fold != nil {
		return &secondary.Category{ID: fold.ID, Name: fold.Name}, nil
	}
	return nil, fmt.Errorf("category %s: %w", ref, secondary.ErrNotFound)
}

// MoveChannel sets the channel's parent category. With toEnd it then places
// the channel after every other channel of its kind in that category,
// re-sending the whole category so positions stay contiguous.
func (p *Platform) MoveChannel(ctx context.Context, guildID, channelID, categoryID, reason string, toEnd bool) error {
	_, err := p.api.ChannelEdit(channelID,
		&discordgo.ChannelEdit{ParentID: categoryID},
		discordgo.WithContext(ctx),
		discordgo.WithAuditLogReason(reason),
	)
	if err != nil {
		return fmt.Errorf("failed to move channel %s: %w", channelID, err)
	}
	if !toEnd {
		return nil
	}

	channels, err := p.api.GuildChannels(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to fetch channels: %w", err)
	}
	order := endOfCategory(channels, channelID, categoryID)
	if len(order) < 2 {
		return nil
	}

	err = p.api.GuildChannelsReorder(guildID, order,
		discordgo.WithContext(ctx),
		discordgo.WithAuditLogReason(reason),
	)
	if err != nil {
		return fmt.Errorf("failed to reorder channel %s: %w", channelID, err)
	}
	return nil
}

// endOfCategory returns the channels sharing channelID's sorting bucket in
// categoryID, ordered by (position, id) with channelID last, renumbered from 0.
func endOfCategory(channels []*discordgo.Channel, channelID, categoryID string) []*discordgo.Channel {
	bucket := sortingBucket(discordgo.ChannelTypeGuildText)
	for _, c := range channels {
		if c.ID == channelID {
			bucket = sortingBucket(c.Type)
			break
		}
	}

	var siblings []*discordgo.Channel
	for _, c := range channels {
		if c.ID == channelID || c.ParentID != categoryID || sortingBucket(c.Type) != bucket {
			continue
		}
		siblings = append(siblings, c)
	}
	sort.SliceStable(siblings, func(i, j int) bool {
		if siblings[i].Position != siblings[j].Position {
			return siblings[i].Position < siblings[j].Position
		}
		return snowflakeLess(siblings[i].ID, siblings[j].ID)
	})

	order := make([]*discordgo.Channel, 0, len(siblings)+1)
	for i, c := range siblings {
		order = append(order, &discordgo.Channel{ID: c.ID, Position: i})
	}
	return append(order, &discordgo.Channel{ID: channelID, Position: len(siblings)})
}

// sortingBucket groups channel types that share one position sequence.
func sortingBucket(t discordgo.ChannelType) int {
	switch t {
	case discordgo.ChannelTypeGuildVoice, discordgo.ChannelTypeGuildStageVoice:
		return 2
	case discordgo.ChannelTypeGuildCategory:
		return 4
	default:
		return 0
	}
}

// snowflakeLess compares numeric IDs without parsing them.
func snowflakeLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

// SendMessage posts text. Only roles in mentionRoles are pinged; user and
// everyone mentions are suppressed.
func (p *Platform) SendMessage(ctx context.Context, channelID, content string, mentionRoles []string) error {
	_, err := p.api.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: content,
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Roles: mentionRoles,
		},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// SendEmbed posts an embed.
func (p *Platform) SendEmbed(ctx context.Context, channelID string, embed effects.Embed) error {
	if _, err := p.api.ChannelMessageSendEmbed(channelID, toDiscordEmbed(embed), discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to send embed: %w", err)
	}
	return nil
}

// ReplyAnonymously DMs the recipient an embed authored by the support team
// and mirrors it into the ticket channel.
func (p *Platform) ReplyAnonymously(ctx context.Context, channelID, recipientID, content string) error {
	dm, err := p.api.UserChannelCreate(recipientID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to open DM with recipient: %w", err)
	}

	reply := effects.Embed{
		Description: content,
		Color:       effects.ColorBlurple,
		Author:      p.anonymousName,
		Footer:      "Response",
	}
	if _, err := p.api.ChannelMessageSendEmbed(dm.ID, toDiscordEmbed(reply), discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to send anonymous reply: %w", err)
	}

	reply.Footer = "Anonymous Reply"
	if _, err := p.api.ChannelMessageSendEmbed(channelID, toDiscordEmbed(reply), discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to mirror anonymous reply: %w", err)
	}

	p.logger.Debugw("anonymous reply sent", "channel", channelID, "recipient", recipientID)
	return nil
}

func toDiscordEmbed(e effects.Embed) *discordgo.MessageEmbed {
	out := &discordgo.MessageEmbed{
		Title:       e.Title,
		Description: e.Description,
		Color:       e.Color,
	}
	if e.Author != "" {
		out.Author = &discordgo.MessageEmbedAuthor{Name: e.Author}
	}
	if e.Footer != "" {
		out.Footer = &discordgo.MessageEmbedFooter{Text: e.Footer}
	}
	for _, f := range e.Fields {
		out.Fields = append(out.Fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: f.Inline,
		})
	}
	return out
}

// extractID returns the snowflake in a mention or bare ID, or "".
func extractID(ref string, mention *regexp.Regexp) string {
	if m := mention.FindStringSubmatch(ref); m != nil {
		return m[1]
	}
	if snowflake.MatchString(ref) {
		return ref
	}
	return ""
}

// Ensure Platform implements the interface
var _ secondary.ChatPlatform = (*Platform)(nil)
