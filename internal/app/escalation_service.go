package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/escalate/internal/core/escalation"
	"github.com/example/escalate/internal/metrics"
	"github.com/example/escalate/internal/ports/primary"
	"github.com/example/escalate/internal/ports/secondary"
)

// ErrNoChatPlatform is returned by Escalate on a service built without a chat
// platform, such as the one backing the local CLI.
var ErrNoChatPlatform = errors.New("escalation needs a chat platform")

// EscalationServiceImpl implements the EscalationService interface.
type EscalationServiceImpl struct {
	configs    *ConfigStore
	ticketRepo secondary.TicketRepository
	chat       secondary.ChatPlatform
	executor   EffectExecutor
	logWriter  secondary.LogWriter
	logger     *zap.SugaredLogger
}

// NewEscalationService creates a new EscalationService with injected dependencies.
func NewEscalationService(
	configs *ConfigStore,
	ticketRepo secondary.TicketRepository,
	chat secondary.ChatPlatform,
	executor EffectExecutor,
	logWriter secondary.LogWriter,
	logger *zap.SugaredLogger,
) *EscalationServiceImpl {
	return &EscalationServiceImpl{
		configs:    configs,
		ticketRepo: ticketRepo,
		chat:       chat,
		executor:   executor,
		logWriter:  logWriter,
		logger:     logger,
	}
}

// Escalate moves a ticket into the destination's category, pings its role and
// tells the recipient. An unknown destination yields a UserError listing the
// configured ones and nothing else happens.
func (s *EscalationServiceImpl) Escalate(ctx context.Context, req primary.EscalateRequest) (*primary.EscalateResponse, error) {
	if s.chat == nil || s.executor == nil {
		return nil, ErrNoChatPlatform
	}

	cfg, err := s.configs.Load(ctx, req.GuildID)
	if err != nil {
		return nil, err
	}

	name := escalation.NormalizeName(req.Department)
	target, exists := cfg.Lookup(name)

	guard := escalation.CanEscalate(escalation.EscalateContext{
		Department: name,
		Exists:     exists,
		Available:  cfg.OptionNames(),
	})
	if !guard.Allowed {
		embed := escalation.OptionsEmbed(guard.Reason)
		return nil, &primary.UserError{Embed: &embed}
	}

	ticket, err := s.ticketRepo.GetByChannel(ctx, req.ChannelID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	category, err := s.chat.ResolveCategory(ctx, req.GuildID, target.Category.String())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve category for %s: %w", name, err)
	}

	effs := escalation.PlanEscalation(escalation.PlanInput{
		Terminology: cfg.Terminology,
		Department:  name,
		Target:      escalation.Target{Role: target.Role, Category: escalation.Snowflake(category.ID)},
		ActorName:   req.ActorName,
		GuildID:     req.GuildID,
		ChannelID:   req.ChannelID,
		RecipientID: ticket.RecipientID,
	})
	if err := s.executor.Execute(ctx, effs); err != nil {
		s.logger.Warnw("escalation stopped part way", "channel", req.ChannelID, "department", name, "error", err)
		return nil, fmt.Errorf("failed to escalate %s: %w", cfg.Terminology, err)
	}

	if s.logWriter != nil {
		_ = s.logWriter.LogUpdate(ctx, "ticket", req.ChannelID, "escalation", "", name)
	}
	metrics.EscalationsTotal.WithLabelValues(name).Inc()

	return &primary.EscalateResponse{
		Department:  name,
		RoleID:      target.Role.String(),
		CategoryID:  category.ID,
		Terminology: cfg.Terminology.String(),
	}, nil
}

// GetConfig returns the guild's config.
func (s *EscalationServiceImpl) GetConfig(ctx context.Context, guildID string) (*primary.EscalationConfig, error) {
	cfg, err := s.configs.Load(ctx, guildID)
	if err != nil {
		return nil, err
	}

	out := &primary.EscalationConfig{
		GuildID:     guildID,
		Terminology: cfg.Terminology.String(),
		Options:     make([]primary.EscalationOption, 0, len(cfg.Options)),
	}
	for _, name := range cfg.OptionNames() {
		target := cfg.Options[name]
		out.Options = append(out.Options, primary.EscalationOption{
			Name:       name,
			RoleID:     target.Role.String(),
			CategoryID: target.Category.String(),
		})
	}
	return out, nil
}

// SetTerminology sets the terminology after validating it.
func (s *EscalationServiceImpl) SetTerminology(ctx context.Context, req primary.SetTerminologyRequest) error {
	guard := escalation.CanSetTerminology(escalation.SetTerminologyContext{Value: req.Value})
	if !guard.Allowed {
		return &primary.UserError{Message: guard.Reason}
	}

	cfg, err := s.configs.Load(ctx, req.GuildID)
	if err != nil {
		return err
	}

	old := cfg.Terminology
	cfg.Terminology, _ = escalation.ParseTerminology(req.Value)
	if err := s.configs.Save(ctx, req.GuildID, cfg); err != nil {
		return err
	}

	if s.logWriter != nil {
		_ = s.logWriter.LogUpdate(ctx, "terminology", req.GuildID, "terminology", old.String(), req.Value)
	}
	return nil
}

// AddOption adds a destination under its lower-cased name.
func (s *EscalationServiceImpl) AddOption(ctx context.Context, req primary.AddOptionRequest) (*primary.EscalationOption, error) {
	cfg, err := s.configs.Load(ctx, req.GuildID)
	if err != nil {
		return nil, err
	}

	name := escalation.NormalizeName(req.Name)
	_, exists := cfg.Options[name]
	guard := escalation.CanAddOption(escalation.AddOptionContext{Name: name, Exists: exists})
	if !guard.Allowed {
		return nil, &primary.UserError{Message: guard.Reason}
	}

	next := cfg.Clone()
	next.Options[name] = escalation.Target{
		Role:     escalation.Snowflake(req.RoleID),
		Category: escalation.Snowflake(req.CategoryID),
	}
	if err := s.configs.Save(ctx, req.GuildID, next); err != nil {
		return nil, err
	}

	if s.logWriter != nil {
		_ = s.logWriter.LogCreate(ctx, "option", name)
	}
	return &primary.EscalationOption{
		Name:         name,
		RoleID:       req.RoleID,
		CategoryID:   req.CategoryID,
		CategoryName: req.CategoryName,
	}, nil
}

// DeleteOption removes a destination by its lower-cased name.
func (s *EscalationServiceImpl) DeleteOption(ctx context.Context, req primary.DeleteOptionRequest) (*primary.EscalationOption, error) {
	cfg, err := s.configs.Load(ctx, req.GuildID)
	if err != nil {
		return nil, err
	}

	name := escalation.NormalizeName(req.Name)
	target, exists := cfg.Options[name]
	guard := escalation.CanDeleteOption(escalation.DeleteOptionContext{Name: name, Exists: exists})
	if !guard.Allowed {
		return nil, &primary.UserError{Message: guard.Reason}
	}

	next := cfg.Clone()
	delete(next.Options, name)
	if err := s.configs.Save(ctx, req.GuildID, next); err != nil {
		return nil, err
	}

	if s.logWriter != nil {
		_ = s.logWriter.LogDelete(ctx, "option", name)
	}
	return &primary.EscalationOption{
		Name:       name,
		RoleID:     target.Role.String(),
		CategoryID: target.Category.String(),
	}, nil
}

// Ensure EscalationServiceImpl implements the interface
var _ primary.EscalationService = (*EscalationServiceImpl)(nil)
