package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// commandTimeout bounds the API calls made while handling one message.
const commandTimeout = 30 * time.Second

// NewSession creates a gateway session with the intents the bot needs to read
// guild messages.
func NewSession(token string) (*discordgo.Session, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentGuilds |
		discordgo.IntentGuildMessages |
		discordgo.IntentMessageContent
	return session, nil
}

// Bot connects a Dispatcher to a live gateway session.
type Bot struct {
	session    *discordgo.Session
	dispatcher *Dispatcher
	logger     *zap.SugaredLogger
}

// NewBot creates a Bot.
func NewBot(session *discordgo.Session, dispatcher *Dispatcher, logger *zap.SugaredLogger) *Bot {
	return &Bot{session: session, dispatcher: dispatcher, logger: logger}
}

// Run opens the gateway and handles messages until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	b.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		b.logger.Infow("bot ready", "user", r.User.String(), "guilds", len(r.Guilds))
	})
	b.session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		msgCtx, cancel := context.WithTimeout(ctx, commandTimeout)
		defer cancel()
		b.dispatcher.Dispatch(msgCtx, messageFromEvent(m))
	})

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open gateway: %w", err)
	}
	b.logger.Info("gateway connected")

	<-ctx.Done()

	b.logger.Info("shutting down")
	if err := b.session.Close(); err != nil {
		return fmt.Errorf("failed to close gateway: %w", err)
	}
	return nil
}

func messageFromEvent(m *discordgo.MessageCreate) Message {
	msg := Message{
		GuildID:   m.GuildID,
		ChannelID: m.ChannelID,
		Content:   m.Content,
	}
	if m.Author != nil {
		msg.AuthorID = m.Author.ID
		msg.AuthorName = m.Author.String()
		msg.Bot = m.Author.Bot
	}
	if m.Member != nil {
		msg.RoleIDs = m.Member.Roles
	}
	return msg
}
