package escalation

import (
	"fmt"
	"unicode"

	"github.com/example/escalate/internal/core/effects"
)

// PlanInput is everything needed to plan an escalation.
type PlanInput struct {
	Terminology Terminology
	Department  string // as typed by the caller
	Target      Target
	ActorName   string
	GuildID     string
	ChannelID   string // ticket channel
	RecipientID string // ticket recipient
}

// PlanEscalation returns the side effects of escalating a ticket, in order:
// move the channel, mention the role, reply anonymously to the recipient,
// then log the escalation.
func PlanEscalation(in PlanInput) []effects.Effect {
	return []effects.Effect{
		effects.MoveChannelEffect{
			GuildID:    in.GuildID,
			ChannelID:  in.ChannelID,
			CategoryID: in.Target.Category.String(),
			Reason:     AuditReason(in.ActorName, in.Terminology),
			ToEnd:      true,
		},
		effects.SendMessageEffect{
			ChannelID:    in.ChannelID,
			Content:      RoleMention(in.Target.Role),
			MentionRoles: []string{in.Target.Role.String()},
		},
		effects.AnonymousReplyEffect{
			GuildID:     in.GuildID,
			ChannelID:   in.ChannelID,
			RecipientID: in.RecipientID,
			Content:     EscalationNotice(in.Terminology, in.Department),
		},
		effects.LogEffect{
			Level:   "info",
			Message: "ticket escalated",
			Fields: map[string]any{
				"terminology": in.Terminology.String(),
				"guild":       in.GuildID,
				"channel":     in.ChannelID,
				"department":  in.Department,
				"category":    in.Target.Category.String(),
			},
		},
	}
}

// OptionsEmbed is shown when the requested department is unknown.
func OptionsEmbed(reason string) effects.Embed {
	return effects.Embed{
		Title:       "Escalation Options",
		Description: reason,
		Color:       effects.ColorRed,
	}
}

// ConfigEmbed summarises the current configuration.
func ConfigEmbed(cfg Config) effects.Embed {
	return effects.Embed{
		Title: "Escalate Thread Configuration",
		Color: effects.ColorBlurple,
		Fields: []effects.EmbedField{
			{Name: "Terminology", Value: cfg.Terminology.String(), Inline: true},
		},
	}
}

// AuditReason is recorded in the platform audit log when the channel moves.
func AuditReason(actor string, term Terminology) string {
	return fmt.Sprintf("%s escalated this %s.", actor, term)
}

// EscalationNotice is the text sent to the ticket recipient.
func EscalationNotice(term Terminology, department string) string {
	return fmt.Sprintf("Your %s is being escalated to %s.", term, TitleCase(department))
}

// RoleMention formats a role ping.
func RoleMention(role Snowflake) string {
	return fmt.Sprintf("<@&%s>", role)
}

// TitleCase upper-cases the first letter of every run of letters and
// lower-cases the rest, so "billing-team" becomes "Billing-Team".
func TitleCase(s string) string {
	out := make([]rune, 0, len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				out = append(out, unicode.ToLower(r))
			} else {
				out = append(out, unicode.ToTitle(r))
			}
			prevLetter = true
			continue
		}
		out = append(out, r)
		prevLetter = false
	}
	return string(out)
}
