package escalation

import (
	"testing"

	"github.com/example/escalate/internal/core/effects"
)

func TestPlanEscalation(t *testing.T) {
	effs := PlanEscalation(PlanInput{
		Terminology: TerminologyTicket,
		Department:  "billing",
		Target:      Target{Role: "R1", Category: "C1"},
		ActorName:   "alice",
		GuildID:     "G1",
		ChannelID:   "CH1",
		RecipientID: "U1",
	})

	if len(effs) != 4 {
		t.Fatalf("expected 4 effects, got %d", len(effs))
	}

	move, ok := effs[0].(effects.MoveChannelEffect)
	if !ok {
		t.Fatalf("effect 0 = %T, want MoveChannelEffect", effs[0])
	}
	if move.CategoryID != "C1" || move.ChannelID != "CH1" || !move.ToEnd {
		t.Errorf("unexpected move effect: %+v", move)
	}
	if move.Reason != "alice escalated this ticket." {
		t.Errorf("Reason = %q", move.Reason)
	}

	msg, ok := effs[1].(effects.SendMessageEffect)
	if !ok {
		t.Fatalf("effect 1 = %T, want SendMessageEffect", effs[1])
	}
	if msg.Content != "<@&R1>" {
		t.Errorf("Content = %q, want <@&R1>", msg.Content)
	}
	if len(msg.MentionRoles) != 1 || msg.MentionRoles[0] != "R1" {
		t.Errorf("MentionRoles = %v", msg.MentionRoles)
	}

	reply, ok := effs[2].(effects.AnonymousReplyEffect)
	if !ok {
		t.Fatalf("effect 2 = %T, want AnonymousReplyEffect", effs[2])
	}
	if reply.Content != "Your ticket is being escalated to Billing." {
		t.Errorf("Content = %q", reply.Content)
	}
	if reply.RecipientID != "U1" {
		t.Errorf("RecipientID = %q", reply.RecipientID)
	}

	logged, ok := effs[3].(effects.LogEffect)
	if !ok {
		t.Fatalf("effect 3 = %T, want LogEffect", effs[3])
	}
	if logged.Level != "info" || logged.Message != "ticket escalated" {
		t.Errorf("unexpected log effect: %+v", logged)
	}
	if logged.Fields["department"] != "billing" || logged.Fields["category"] != "C1" || logged.Fields["channel"] != "CH1" {
		t.Errorf("Fields = %v", logged.Fields)
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"billing", "Billing"},
		{"BILLING", "Billing"},
		{"tier two", "Tier Two"},
		{"billing-team", "Billing-Team"},
		{"tier2support", "Tier2Support"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := TitleCase(tt.in); got != tt.want {
				t.Errorf("TitleCase(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestConfigEmbed(t *testing.T) {
	embed := ConfigEmbed(Config{Terminology: TerminologyTicket})
	if embed.Title != "Escalate Thread Configuration" {
		t.Errorf("Title = %q", embed.Title)
	}
	if len(embed.Fields) != 1 || embed.Fields[0].Name != "Terminology" || embed.Fields[0].Value != "ticket" {
		t.Errorf("Fields = %+v", embed.Fields)
	}
	if embed.Color != effects.ColorBlurple {
		t.Errorf("Color = %x", embed.Color)
	}
}
