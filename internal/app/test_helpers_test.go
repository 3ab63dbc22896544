package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/escalate/internal/core/effects"
	"github.com/example/escalate/internal/ports/secondary"
)

// Ensure mocks implement the interfaces
var (
	_ secondary.DocumentStore    = (*mockDocumentStore)(nil)
	_ secondary.TicketRepository = (*mockTicketRepository)(nil)
	_ secondary.ChatPlatform     = (*mockChatPlatform)(nil)
	_ secondary.LogWriter        = (*mockLogWriter)(nil)
)

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// mockDocumentStore implements secondary.DocumentStore in memory with $set semantics.
type mockDocumentStore struct {
	docs      map[secondary.DocumentKey]map[string]json.RawMessage
	upserts   int
	findErr   error
	upsertErr error
}

func newMockDocumentStore() *mockDocumentStore {
	return &mockDocumentStore{docs: make(map[secondary.DocumentKey]map[string]json.RawMessage)}
}

func (m *mockDocumentStore) FindOne(ctx context.Context, key secondary.DocumentKey) (map[string]json.RawMessage, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	doc, ok := m.docs[key]
	if !ok {
		return nil, nil
	}
	out := make(map[string]json.RawMessage, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out, nil
}

func (m *mockDocumentStore) Upsert(ctx context.Context, key secondary.DocumentKey, fields map[string]json.RawMessage) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserts++
	doc, ok := m.docs[key]
	if !ok {
		doc = map[string]json.RawMessage{"_id": json.RawMessage(fmt.Sprintf("%q", key.ID))}
		m.docs[key] = doc
	}
	for k, v := range fields {
		doc[k] = v
	}
	return nil
}

// mockTicketRepository implements secondary.TicketRepository for testing.
type mockTicketRepository struct {
	tickets map[string]*secondary.TicketRecord
}

func newMockTicketRepository() *mockTicketRepository {
	return &mockTicketRepository{tickets: make(map[string]*secondary.TicketRecord)}
}

func (m *mockTicketRepository) Create(ctx context.Context, ticket *secondary.TicketRecord) error {
	if _, ok := m.tickets[ticket.ChannelID]; ok {
		return errors.New("ticket already exists")
	}
	m.tickets[ticket.ChannelID] = ticket
	return nil
}

func (m *mockTicketRepository) GetByChannel(ctx context.Context, channelID string) (*secondary.TicketRecord, error) {
	if t, ok := m.tickets[channelID]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("ticket %s: %w", channelID, secondary.ErrNotFound)
}

func (m *mockTicketRepository) List(ctx context.Context, filters secondary.TicketFilters) ([]*secondary.TicketRecord, error) {
	var result []*secondary.TicketRecord
	for _, t := range m.tickets {
		if filters.GuildID != "" && t.GuildID != filters.GuildID {
			continue
		}
		if filters.Status != "" && t.Status != filters.Status {
			continue
		}
		result = append(result, t)
	}
	return result, nil
}

func (m *mockTicketRepository) UpdateStatus(ctx context.Context, channelID, status string, setClosed bool) error {
	t, ok := m.tickets[channelID]
	if !ok {
		return fmt.Errorf("ticket %s: %w", channelID, secondary.ErrNotFound)
	}
	t.Status = status
	if setClosed {
		t.ClosedAt = "2026-01-01T00:00:00Z"
	}
	return nil
}

type moveCall struct {
	GuildID, ChannelID, CategoryID, Reason string
	ToEnd                                  bool
}

type messageCall struct {
	ChannelID    string
	Content      string
	MentionRoles []string
}

type replyCall struct {
	ChannelID, RecipientID, Content string
}

// mockChatPlatform implements secondary.ChatPlatform and records every call.
type mockChatPlatform struct {
	roles      map[string]*secondary.Role
	categories map[string]*secondary.Category

	moves    []moveCall
	messages []messageCall
	embeds   []effects.Embed
	replies  []replyCall

	moveErr  error
	replyErr error
}

func newMockChatPlatform() *mockChatPlatform {
	return &mockChatPlatform{
		roles:      make(map[string]*secondary.Role),
		categories: make(map[string]*secondary.Category),
	}
}

func (m *mockChatPlatform) ResolveRole(ctx context.Context, guildID, ref string) (*secondary.Role, error) {
	if r, ok := m.roles[ref]; ok {
		return r, nil
	}
	return nil, fmt.Errorf("role %q: %w", ref, secondary.ErrNotFound)
}

func (m *mockChatPlatform) ResolveCategory(ctx context.Context, guildID, ref string) (*secondary.Category, error) {
	if c, ok := m.categories[ref]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("category %q: %w", ref, secondary.ErrNotFound)
}

func (m *mockChatPlatform) MoveChannel(ctx context.Context, guildID, channelID, categoryID, reason string, toEnd bool) error {
	if m.moveErr != nil {
		return m.moveErr
	}
	m.moves = append(m.moves, moveCall{guildID, channelID, categoryID, reason, toEnd})
	return nil
}

func (m *mockChatPlatform) SendMessage(ctx context.Context, channelID, content string, mentionRoles []string) error {
	m.messages = append(m.messages, messageCall{channelID, content, mentionRoles})
	return nil
}

func (m *mockChatPlatform) SendEmbed(ctx context.Context, channelID string, embed effects.Embed) error {
	m.embeds = append(m.embeds, embed)
	return nil
}

func (m *mockChatPlatform) ReplyAnonymously(ctx context.Context, channelID, recipientID, content string) error {
	if m.replyErr != nil {
		return m.replyErr
	}
	m.replies = append(m.replies, replyCall{channelID, recipientID, content})
	return nil
}

type logEntry struct {
	Action, EntityType, EntityID, Field, Old, New string
}

// mockLogWriter implements secondary.LogWriter for testing.
type mockLogWriter struct {
	entries []logEntry
}

func (m *mockLogWriter) LogCreate(ctx context.Context, entityType, entityID string) error {
	m.entries = append(m.entries, logEntry{Action: "create", EntityType: entityType, EntityID: entityID})
	return nil
}

func (m *mockLogWriter) LogUpdate(ctx context.Context, entityType, entityID, fieldName, oldValue, newValue string) error {
	m.entries = append(m.entries, logEntry{"update", entityType, entityID, fieldName, oldValue, newValue})
	return nil
}

func (m *mockLogWriter) LogDelete(ctx context.Context, entityType, entityID string) error {
	m.entries = append(m.entries, logEntry{Action: "delete", EntityType: entityType, EntityID: entityID})
	return nil
}
