// Package app contains the application layer - service implementations and effect execution.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/escalate/internal/core/effects"
	"github.com/example/escalate/internal/ports/secondary"
)

// EffectExecutor interprets and executes effects.
// This is the "Imperative Shell" - the only place chat I/O happens.
type EffectExecutor interface {
	Execute(ctx context.Context, effs []effects.Effect) error
}

// DefaultEffectExecutor implements EffectExecutor against a chat platform.
// Effects run in order and stop at the first failure; nothing already done
// is undone.
type DefaultEffectExecutor struct {
	chat   secondary.ChatPlatform
	logger *zap.SugaredLogger
}

// NewEffectExecutor creates a new DefaultEffectExecutor.
func NewEffectExecutor(chat secondary.ChatPlatform, logger *zap.SugaredLogger) *DefaultEffectExecutor {
	return &DefaultEffectExecutor{chat: chat, logger: logger}
}

// Execute processes a slice of effects, executing each in sequence.
func (e *DefaultEffectExecutor) Execute(ctx context.Context, effs []effects.Effect) error {
	for _, eff := range effs {
		if err := e.executeOne(ctx, eff); err != nil {
			return fmt.Errorf("failed to execute %s effect: %w", eff.EffectType(), err)
		}
		e.logger.Debugw("effect executed", "type", eff.EffectType())
	}
	return nil
}

func (e *DefaultEffectExecutor) executeOne(ctx context.Context, eff effects.Effect) error {
	switch typed := eff.(type) {
	case effects.MoveChannelEffect:
		return e.chat.MoveChannel(ctx, typed.GuildID, typed.ChannelID, typed.CategoryID, typed.Reason, typed.ToEnd)
	case effects.SendMessageEffect:
		return e.chat.SendMessage(ctx, typed.ChannelID, typed.Content, typed.MentionRoles)
	case effects.SendEmbedEffect:
		return e.chat.SendEmbed(ctx, typed.ChannelID, typed.Embed)
	case effects.AnonymousReplyEffect:
		return e.chat.ReplyAnonymously(ctx, typed.ChannelID, typed.RecipientID, typed.Content)
	case effects.LogEffect:
		e.executeLog(typed)
		return nil
	default:
		return fmt.Errorf("unknown effect type: %T", eff)
	}
}

func (e *DefaultEffectExecutor) executeLog(eff effects.LogEffect) {
	kv := make([]any, 0, len(eff.Fields)*2)
	for k, v := range eff.Fields {
		kv = append(kv, k, v)
	}
	switch eff.Level {
	case "debug":
		e.logger.Debugw(eff.Message, kv...)
	case "warn":
		e.logger.Warnw(eff.Message, kv...)
	case "error":
		e.logger.Errorw(eff.Message, kv...)
	default:
		e.logger.Infow(eff.Message, kv...)
	}
}

// Ensure DefaultEffectExecutor implements the interface
var _ EffectExecutor = (*DefaultEffectExecutor)(nil)
