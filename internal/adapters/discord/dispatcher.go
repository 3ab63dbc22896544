package discord

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/escalate/internal/adapters/chat"
	"github.com/example/escalate/internal/core/effects"
	"github.com/example/escalate/internal/ctxutil"
	"github.com/example/escalate/internal/metrics"
	"github.com/example/escalate/internal/ports/primary"
	"github.com/example/escalate/internal/ports/secondary"
)

// Replies posted by the dispatcher itself.
const (
	MsgNoPermission  = "You don't have permission to use this command."
	MsgTicketOnly    = "This command can only be used inside a %s."
	MsgCommandFailed = "Something went wrong while running that command."
)

// Executor performs planned chat effects. Every reply the dispatcher posts
// goes through it.
type Executor interface {
	Execute(ctx context.Context, effs []effects.Effect) error
}

// Message is an incoming chat message, independent of the gateway event type.
type Message struct {
	GuildID    string
	ChannelID  string
	AuthorID   string
	AuthorName string
	RoleIDs    []string
	Content    string
	Bot        bool
}

// Dispatcher parses prefixed messages and runs the matching chat command.
// Permission and ticket requirements are read from the command's annotations
// and enforced before the handler runs.
type Dispatcher struct {
	prefix      string
	newRoot     func() *cobra.Command
	escalations primary.EscalationService
	tickets     primary.TicketService
	resolver    chat.Resolver
	executor    Executor
	perms       *Permissions
	logger      *zap.SugaredLogger
}

// NewDispatcher creates a Dispatcher. newRoot is called once per message.
func NewDispatcher(
	prefix string,
	newRoot func() *cobra.Command,
	escalations primary.EscalationService,
	tickets primary.TicketService,
	resolver chat.Resolver,
	executor Executor,
	perms *Permissions,
	logger *zap.SugaredLogger,
) *Dispatcher {
	return &Dispatcher{
		prefix:      prefix,
		newRoot:     newRoot,
		escalations: escalations,
		tickets:     tickets,
		resolver:    resolver,
		executor:    executor,
		perms:       perms,
		logger:      logger,
	}
}

// Dispatch handles one message. Messages from bots, direct messages and
// anything that is not a known command are ignored.
func (d *Dispatcher) Dispatch(ctx context.Context, msg Message) {
	if msg.Bot || msg.GuildID == "" || !strings.HasPrefix(msg.Content, d.prefix) {
		return
	}
	args := splitArgs(strings.TrimPrefix(msg.Content, d.prefix))
	if len(args) == 0 {
		return
	}

	root := d.newRoot()
	cmd, _, err := root.Find(args)
	if err != nil || cmd == root || cmd.Hidden {
		return
	}
	path := strings.TrimSpace(cmd.CommandPath())

	d.logger.Infow("command dispatched",
		"command", path,
		"guild", msg.GuildID,
		"channel", msg.ChannelID,
		"actor", msg.AuthorID,
	)

	ok, err := d.authorize(ctx, cmd, msg)
	if err != nil {
		d.fail(ctx, path, msg, err)
		return
	}
	if !ok {
		metrics.CommandsTotal.WithLabelValues(path, metrics.OutcomeDenied).Inc()
		return
	}

	ctx = ctxutil.WithActorID(ctx, msg.AuthorID)
	ctx = ctxutil.WithGuildID(ctx, msg.GuildID)
	reply := &channelReplier{executor: d.executor, channelID: msg.ChannelID}
	ctx = chat.WithCommand(ctx, &chat.Command{
		Invocation: chat.Invocation{
			GuildID:   msg.GuildID,
			ChannelID: msg.ChannelID,
			ActorName: msg.AuthorName,
		},
		Escalation: chat.NewEscalationAdapter(d.escalations, d.resolver, reply),
	})

	var help bytes.Buffer
	root.SetOut(&help)
	root.SetErr(&help)
	root.SetArgs(args)
	err = root.ExecuteContext(ctx)

	if help.Len() > 0 {
		if sendErr := reply.Send(ctx, "```\n"+help.String()+"```"); sendErr != nil {
			d.logger.Warnw("failed to send help", "command", path, "error", sendErr)
		}
	}

	var userErr *primary.UserError
	switch {
	case err == nil:
		metrics.CommandsTotal.WithLabelValues(path, metrics.OutcomeOK).Inc()
	case errors.As(err, &userErr):
		metrics.CommandsTotal.WithLabelValues(path, metrics.OutcomeUserError).Inc()
		if sendErr := reply.Send(ctx, userErr.Message); sendErr != nil {
			d.logger.Warnw("failed to send reply", "command", path, "error", sendErr)
		}
	default:
		d.fail(ctx, path, msg, err)
	}
}

// authorize reports whether msg may run cmd, replying with the reason when it
// may not. An error means the check itself could not be made.
func (d *Dispatcher) authorize(ctx context.Context, cmd *cobra.Command, msg Message) (bool, error) {
	required, err := ParseLevel(cmd.Annotations[chat.AnnotationPermission])
	if err != nil {
		return false, err
	}
	if have := d.perms.LevelOf(msg.AuthorID, msg.RoleIDs); have < required {
		d.logger.Debugw("permission denied",
			"command", cmd.CommandPath(),
			"actor", msg.AuthorID,
			"have", have.String(),
			"need", required.String(),
		)
		return false, d.send(ctx, msg.ChannelID, MsgNoPermission)
	}

	if cmd.Annotations[chat.AnnotationTicketOnly] != "true" {
		return true, nil
	}
	ticket, err := d.tickets.GetTicket(ctx, msg.ChannelID)
	if err != nil && !errors.Is(err, secondary.ErrNotFound) {
		return false, err
	}
	if ticket != nil && ticket.Status == primary.TicketStatusOpen {
		return true, nil
	}

	cfg, err := d.escalations.GetConfig(ctx, msg.GuildID)
	if err != nil {
		return false, err
	}
	return false, d.send(ctx, msg.ChannelID, fmt.Sprintf(MsgTicketOnly, cfg.Terminology))
}

func (d *Dispatcher) fail(ctx context.Context, path string, msg Message, err error) {
	metrics.CommandsTotal.WithLabelValues(path, metrics.OutcomeError).Inc()
	d.logger.Errorw("command failed",
		"command", path,
		"guild", msg.GuildID,
		"channel", msg.ChannelID,
		"error", err,
	)
	if sendErr := d.send(ctx, msg.ChannelID, MsgCommandFailed); sendErr != nil {
		d.logger.Warnw("failed to send failure notice", "command", path, "error", sendErr)
	}
}

func (d *Dispatcher) send(ctx context.Context, channelID, content string) error {
	return (&channelReplier{executor: d.executor, channelID: channelID}).Send(ctx, content)
}

// channelReplier answers in the channel a command came from. Replies never
// ping anyone.
type channelReplier struct {
	executor  Executor
	channelID string
}

func (r *channelReplier) Send(ctx context.Context, content string) error {
	return r.executor.Execute(ctx, []effects.Effect{
		effects.SendMessageEffect{ChannelID: r.channelID, Content: content},
	})
}

func (r *channelReplier) SendEmbed(ctx context.Context, embed effects.Embed) error {
	return r.executor.Execute(ctx, []effects.Effect{
		effects.SendEmbedEffect{ChannelID: r.channelID, Embed: embed},
	})
}

// splitArgs splits a command line on whitespace. Double quotes group words
// into one argument.
func splitArgs(s string) []string {
	var (
		args    []string
		current strings.Builder
		quoted  bool
		started bool
	)
	for _, r := range s {
		switch {
		case r == '"':
			quoted = !quoted
			started = true
		case !quoted && (r == ' ' || r == '\t' || r == '\n'):
			if started {
				args = append(args, current.String())
				current.Reset()
				started = false
			}
		default:
			current.WriteRune(r)
			started = true
		}
	}
	if started {
		args = append(args, current.String())
	}
	return args
}
