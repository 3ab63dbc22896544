package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/example/escalate/internal/ports/primary"
)

// mockAuditService implements primary.AuditService for testing
type mockAuditService struct {
	entries     []*primary.AuditEntry
	err         error
	lastFilters primary.AuditFilters
}

func (m *mockAuditService) ListEntries(ctx context.Context, filters primary.AuditFilters) ([]*primary.AuditEntry, error) {
	m.lastFilters = filters
	return m.entries, m.err
}

func TestAuditAdapter_List(t *testing.T) {
	mock := &mockAuditService{entries: []*primary.AuditEntry{
		{ActorID: "U-ADMIN", Action: "update", EntityType: "escalation_config", EntityID: "G1", FieldName: "terminology", OldValue: "thread", NewValue: "ticket", CreatedAt: "2026-01-19 10:00:00"},
		{ActorID: "U-ADMIN", Action: "create", EntityType: "escalation_option", EntityID: "billing", CreatedAt: "2026-01-19 09:00:00"},
	}}
	var out bytes.Buffer
	adapter := NewAuditAdapter(mock, &out)

	entries, err := adapter.List(context.Background(), "G1", 20)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries, got %d", len(entries))
	}
	if mock.lastFilters.GuildID != "G1" || mock.lastFilters.Limit != 20 {
		t.Errorf("unexpected filters: %+v", mock.lastFilters)
	}

	output := out.String()
	for _, want := range []string{"ACTOR", "U-ADMIN", `terminology: "thread" -> "ticket"`, "escalation_option:billing"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, output)
		}
	}
}

func TestAuditAdapter_List_Empty(t *testing.T) {
	var out bytes.Buffer
	adapter := NewAuditAdapter(&mockAuditService{}, &out)

	if _, err := adapter.List(context.Background(), "G1", 0); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(out.String(), "No audit entries found.") {
		t.Errorf("expected empty message, got: %s", out.String())
	}
}

func TestAuditAdapter_List_Error(t *testing.T) {
	var out bytes.Buffer
	adapter := NewAuditAdapter(&mockAuditService{err: errors.New("database closed")}, &out)

	_, err := adapter.List(context.Background(), "G1", 0)
	if err == nil || !strings.Contains(err.Error(), "failed to list audit entries") {
		t.Errorf("expected wrapped error, got %v", err)
	}
}
