package chat

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/example/escalate/internal/core/effects"
	"github.com/example/escalate/internal/ports/primary"
	"github.com/example/escalate/internal/ports/secondary"
)

// mockEscalationService implements primary.EscalationService for testing
type mockEscalationService struct {
	escalateFn       func(ctx context.Context, req primary.EscalateRequest) (*primary.EscalateResponse, error)
	getConfigFn      func(ctx context.Context, guildID string) (*primary.EscalationConfig, error)
	setTerminologyFn func(ctx context.Context, req primary.SetTerminologyRequest) error
	addOptionFn      func(ctx context.Context, req primary.AddOptionRequest) (*primary.EscalationOption, error)
	deleteOptionFn   func(ctx context.Context, req primary.DeleteOptionRequest) (*primary.EscalationOption, error)

	// Track calls for verification
	lastEscalateReq primary.EscalateRequest
	lastAddReq      primary.AddOptionRequest
	addCalls        int
}

func (m *mockEscalationService) Escalate(ctx context.Context, req primary.EscalateRequest) (*primary.EscalateResponse, error) {
	m.lastEscalateReq = req
	if m.escalateFn != nil {
		return m.escalateFn(ctx, req)
	}
	return &primary.EscalateResponse{Department: req.Department}, nil
}

func (m *mockEscalationService) GetConfig(ctx context.Context, guildID string) (*primary.EscalationConfig, error) {
	if m.getConfigFn != nil {
		return m.getConfigFn(ctx, guildID)
	}
	return &primary.EscalationConfig{GuildID: guildID, Terminology: "thread"}, nil
}

func (m *mockEscalationService) SetTerminology(ctx context.Context, req primary.SetTerminologyRequest) error {
	if m.setTerminologyFn != nil {
		return m.setTerminologyFn(ctx, req)
	}
	return nil
}

func (m *mockEscalationService) AddOption(ctx context.Context, req primary.AddOptionRequest) (*primary.EscalationOption, error) {
	m.lastAddReq = req
	m.addCalls++
	if m.addOptionFn != nil {
		return m.addOptionFn(ctx, req)
	}
	return &primary.EscalationOption{Name: "billing", RoleID: req.RoleID, CategoryID: req.CategoryID, CategoryName: req.CategoryName}, nil
}

func (m *mockEscalationService) DeleteOption(ctx context.Context, req primary.DeleteOptionRequest) (*primary.EscalationOption, error) {
	if m.deleteOptionFn != nil {
		return m.deleteOptionFn(ctx, req)
	}
	return &primary.EscalationOption{Name: "billing"}, nil
}

// recordingReplier captures replies
type recordingReplier struct {
	messages []string
	embeds   []effects.Embed
}

func (r *recordingReplier) Send(ctx context.Context, content string) error {
	r.messages = append(r.messages, content)
	return nil
}

func (r *recordingReplier) SendEmbed(ctx context.Context, embed effects.Embed) error {
	r.embeds = append(r.embeds, embed)
	return nil
}

// stubResolver resolves refs from fixed maps
type stubResolver struct {
	roles      map[string]*secondary.Role
	categories map[string]*secondary.Category
}

func (s *stubResolver) ResolveRole(ctx context.Context, guildID, ref string) (*secondary.Role, error) {
	if r, ok := s.roles[ref]; ok {
		return r, nil
	}
	return nil, fmt.Errorf("role %s: %w", ref, secondary.ErrNotFound)
}

func (s *stubResolver) ResolveCategory(ctx context.Context, guildID, ref string) (*secondary.Category, error) {
	if c, ok := s.categories[ref]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("category %s: %w", ref, secondary.ErrNotFound)
}

func newTestAdapter(svc *mockEscalationService) (*EscalationAdapter, *recordingReplier) {
	out := &recordingReplier{}
	resolver := &stubResolver{
		roles:      map[string]*secondary.Role{"<@&role123>": {ID: "role123", Name: "Billing Team"}},
		categories: map[string]*secondary.Category{"Billing Queue": {ID: "cat456", Name: "Billing Queue"}},
	}
	return NewEscalationAdapter(svc, resolver, out), out
}

var testInvocation = Invocation{GuildID: "G1", ChannelID: "CH1", ActorName: "alice#0001"}

func TestEscalationAdapter_Escalate(t *testing.T) {
	svc := &mockEscalationService{}
	adapter, out := newTestAdapter(svc)

	if err := adapter.Escalate(context.Background(), testInvocation, "billing"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if svc.lastEscalateReq.ActorName != "alice#0001" || svc.lastEscalateReq.ChannelID != "CH1" {
		t.Errorf("unexpected request: %+v", svc.lastEscalateReq)
	}
	if len(out.messages)+len(out.embeds) != 0 {
		t.Error("successful escalation should not reply in the adapter")
	}
}

func TestEscalationAdapter_Escalate_RendersEmbedUserError(t *testing.T) {
	svc := &mockEscalationService{
		escalateFn: func(ctx context.Context, req primary.EscalateRequest) (*primary.EscalateResponse, error) {
			return nil, &primary.UserError{Embed: &effects.Embed{Title: "Escalation Options", Description: "options"}}
		},
	}
	adapter, out := newTestAdapter(svc)

	if err := adapter.Escalate(context.Background(), testInvocation, "sales"); err != nil {
		t.Fatalf("user error should be swallowed, got %v", err)
	}
	if len(out.embeds) != 1 || out.embeds[0].Title != "Escalation Options" {
		t.Errorf("expected options embed, got %+v", out.embeds)
	}
}

func TestEscalationAdapter_Escalate_PropagatesInfrastructureError(t *testing.T) {
	boom := errors.New("gateway unavailable")
	svc := &mockEscalationService{
		escalateFn: func(ctx context.Context, req primary.EscalateRequest) (*primary.EscalateResponse, error) {
			return nil, boom
		},
	}
	adapter, out := newTestAdapter(svc)

	err := adapter.Escalate(context.Background(), testInvocation, "billing")
	if !errors.Is(err, boom) {
		t.Errorf("expected error to propagate, got %v", err)
	}
	if len(out.messages)+len(out.embeds) != 0 {
		t.Error("expected no reply for infrastructure error")
	}
}

func TestEscalationAdapter_ShowConfig(t *testing.T) {
	svc := &mockEscalationService{
		getConfigFn: func(ctx context.Context, guildID string) (*primary.EscalationConfig, error) {
			return &primary.EscalationConfig{GuildID: guildID, Terminology: "ticket"}, nil
		},
	}
	adapter, out := newTestAdapter(svc)

	if err := adapter.ShowConfig(context.Background(), testInvocation); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(out.embeds) != 1 {
		t.Fatalf("expected 1 embed, got %d", len(out.embeds))
	}
	embed := out.embeds[0]
	if embed.Title != "Escalate Thread Configuration" || embed.Color != effects.ColorBlurple {
		t.Errorf("unexpected embed: %+v", embed)
	}
	if len(embed.Fields) != 1 || embed.Fields[0].Name != "Terminology" || embed.Fields[0].Value != "ticket" {
		t.Errorf("unexpected fields: %+v", embed.Fields)
	}
}

func TestEscalationAdapter_SetTerminology(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		svcErr  error
		wantMsg string
	}{
		{
			name:    "success",
			value:   "ticket",
			wantMsg: "Successfully updated the terminology to ticket",
		},
		{
			name:    "invalid value",
			value:   "case",
			svcErr:  &primary.UserError{Message: "You must pick `thread` or `ticket`"},
			wantMsg: "You must pick `thread` or `ticket`",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockEscalationService{
				setTerminologyFn: func(ctx context.Context, req primary.SetTerminologyRequest) error {
					return tt.svcErr
				},
			}
			adapter, out := newTestAdapter(svc)

			if err := adapter.SetTerminology(context.Background(), testInvocation, tt.value); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(out.messages) != 1 || out.messages[0] != tt.wantMsg {
				t.Errorf("messages = %v, want %q", out.messages, tt.wantMsg)
			}
		})
	}
}

func TestEscalationAdapter_AddOption(t *testing.T) {
	svc := &mockEscalationService{}
	adapter, out := newTestAdapter(svc)

	if err := adapter.AddOption(context.Background(), testInvocation, "Billing", "<@&role123>", "Billing Queue"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if svc.lastAddReq.RoleID != "role123" || svc.lastAddReq.CategoryID != "cat456" {
		t.Errorf("unexpected request: %+v", svc.lastAddReq)
	}
	want := "Added! Escalating to `billing` will mention <@&role123> and moved to `Billing Queue`"
	if len(out.messages) != 1 || out.messages[0] != want {
		t.Errorf("messages = %v, want %q", out.messages, want)
	}
}

func TestEscalationAdapter_AddOption_UnresolvableArguments(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		category string
		wantMsg  string
	}{
		{"unknown role", "nobody", "Billing Queue", `Role "nobody" not found.`},
		{"unknown category", "<@&role123>", "Nowhere", `Channel "Nowhere" not found.`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockEscalationService{}
			adapter, out := newTestAdapter(svc)

			if err := adapter.AddOption(context.Background(), testInvocation, "billing", tt.role, tt.category); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if svc.addCalls != 0 {
				t.Error("service must not be called when arguments fail to resolve")
			}
			if len(out.messages) != 1 || out.messages[0] != tt.wantMsg {
				t.Errorf("messages = %v, want %q", out.messages, tt.wantMsg)
			}
		})
	}
}

func TestEscalationAdapter_DeleteOption(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		adapter, out := newTestAdapter(&mockEscalationService{})

		if err := adapter.DeleteOption(context.Background(), testInvocation, "BILLING"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(out.messages) != 1 || out.messages[0] != "Successfully removed `billing`" {
			t.Errorf("messages = %v", out.messages)
		}
	})

	t.Run("missing option", func(t *testing.T) {
		svc := &mockEscalationService{
			deleteOptionFn: func(ctx context.Context, req primary.DeleteOptionRequest) (*primary.EscalationOption, error) {
				return nil, &primary.UserError{Message: "This option doesn't exist. Was it already deleted?"}
			},
		}
		adapter, out := newTestAdapter(svc)

		if err := adapter.DeleteOption(context.Background(), testInvocation, "billing"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(out.messages) != 1 || out.messages[0] != "This option doesn't exist. Was it already deleted?" {
			t.Errorf("messages = %v", out.messages)
		}
	})
}
