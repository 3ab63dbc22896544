package app

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/example/escalate/internal/core/escalation"
)

func TestConfigStore_Load_CreatesDefault(t *testing.T) {
	docs := newMockDocumentStore()
	store := NewConfigStore(docs, testLogger())
	ctx := context.Background()

	cfg, err := store.Load(ctx, "G1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Terminology != escalation.TerminologyThread {
		t.Errorf("expected terminology thread, got %q", cfg.Terminology)
	}
	if len(cfg.Options) != 0 {
		t.Errorf("expected no options, got %v", cfg.Options)
	}

	stored := docs.docs[documentKey("G1")]
	if stored == nil {
		t.Fatal("expected default document to be persisted")
	}
	if string(stored["terminology"]) != `"thread"` {
		t.Errorf("stored terminology = %s", stored["terminology"])
	}
	if string(stored["options"]) != `{}` {
		t.Errorf("stored options = %s", stored["options"])
	}
	if string(stored["_id"]) != `"escalatethread"` {
		t.Errorf("stored _id = %s", stored["_id"])
	}
	if docs.upserts != 1 {
		t.Errorf("expected 1 write, got %d", docs.upserts)
	}
}

func TestConfigStore_Load_ExistingDocumentNotRewritten(t *testing.T) {
	docs := newMockDocumentStore()
	store := NewConfigStore(docs, testLogger())
	ctx := context.Background()

	if _, err := store.Load(ctx, "G1"); err != nil {
		t.Fatalf("first load failed: %v", err)
	}
	if _, err := store.Load(ctx, "G1"); err != nil {
		t.Fatalf("second load failed: %v", err)
	}
	if docs.upserts != 1 {
		t.Errorf("expected a complete document to be loaded without writes, got %d writes", docs.upserts)
	}
}

func TestConfigStore_Load_BackfillsMissingKeys(t *testing.T) {
	docs := newMockDocumentStore()
	docs.docs[documentKey("G1")] = map[string]json.RawMessage{
		"_id":         json.RawMessage(`"escalatethread"`),
		"terminology": json.RawMessage(`"ticket"`),
		"extra":       json.RawMessage(`{"keep":true}`),
	}
	store := NewConfigStore(docs, testLogger())

	cfg, err := store.Load(context.Background(), "G1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Terminology != escalation.TerminologyTicket {
		t.Errorf("expected terminology ticket to be kept, got %q", cfg.Terminology)
	}
	if cfg.Options == nil || len(cfg.Options) != 0 {
		t.Errorf("expected empty options, got %v", cfg.Options)
	}

	stored := docs.docs[documentKey("G1")]
	if string(stored["options"]) != `{}` {
		t.Errorf("expected options to be persisted, got %s", stored["options"])
	}
	if string(stored["extra"]) != `{"keep":true}` {
		t.Errorf("expected unrelated key untouched, got %s", stored["extra"])
	}
	if string(stored["terminology"]) != `"ticket"` {
		t.Errorf("expected terminology untouched, got %s", stored["terminology"])
	}
	if docs.upserts != 1 {
		t.Errorf("expected 1 backfill write, got %d", docs.upserts)
	}
}

func TestConfigStore_Load_RejectsMalformedDocument(t *testing.T) {
	docs := newMockDocumentStore()
	docs.docs[documentKey("G1")] = map[string]json.RawMessage{
		"terminology": json.RawMessage(`"case"`),
		"options":     json.RawMessage(`{}`),
	}
	store := NewConfigStore(docs, testLogger())

	if _, err := store.Load(context.Background(), "G1"); err == nil {
		t.Fatal("expected error for malformed terminology")
	}
}

func TestConfigStore_Load_StoreError(t *testing.T) {
	docs := newMockDocumentStore()
	docs.findErr = errors.New("database is locked")
	store := NewConfigStore(docs, testLogger())

	_, err := store.Load(context.Background(), "G1")
	if err == nil {
		t.Fatal("expected store error to propagate")
	}
	if !errors.Is(err, docs.findErr) {
		t.Errorf("expected wrapped store error, got %v", err)
	}
}

func TestConfigStore_Save_Idempotent(t *testing.T) {
	docs := newMockDocumentStore()
	store := NewConfigStore(docs, testLogger())
	ctx := context.Background()
	cfg := escalation.Config{
		Terminology: escalation.TerminologyTicket,
		Options:     map[string]escalation.Target{"billing": {Role: "R", Category: "C"}},
	}

	if err := store.Save(ctx, "G1", cfg); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	first := string(docs.docs[documentKey("G1")]["options"])
	if err := store.Save(ctx, "G1", cfg); err != nil {
		t.Fatalf("second save failed: %v", err)
	}
	second := string(docs.docs[documentKey("G1")]["options"])

	if first != second {
		t.Errorf("repeated save changed stored options: %s -> %s", first, second)
	}

	loaded, err := store.Load(ctx, "G1")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Options["billing"].Category != "C" {
		t.Errorf("expected saved option to round trip, got %+v", loaded.Options)
	}
}

func TestConfigStore_GuildsAreIsolated(t *testing.T) {
	docs := newMockDocumentStore()
	store := NewConfigStore(docs, testLogger())
	ctx := context.Background()

	if err := store.Save(ctx, "G1", escalation.Config{Terminology: escalation.TerminologyTicket, Options: map[string]escalation.Target{}}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	cfg, err := store.Load(ctx, "G2")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Terminology != escalation.TerminologyThread {
		t.Errorf("expected G2 to get defaults, got %q", cfg.Terminology)
	}
}
