// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrNotFound is returned (wrapped) when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// DocumentKey addresses one document in the shared document store.
// Each plugin owns a partition; documents are scoped per guild.
type DocumentKey struct {
	Partition string
	GuildID   string
	ID        string
}

// DocumentStore defines the secondary port for the plugin document store.
type DocumentStore interface {
	// FindOne retrieves a document's top-level fields.
	// Returns nil and no error when the document does not exist.
	FindOne(ctx context.Context, key DocumentKey) (map[string]json.RawMessage, error)

	// Upsert sets the given top-level fields, creating the document if needed.
	// Fields not named are left as stored. The _id field is managed by the store.
	Upsert(ctx context.Context, key DocumentKey, fields map[string]json.RawMessage) error
}

// TicketRepository defines the secondary port for ticket persistence.
type TicketRepository interface {
	// Create persists a new ticket.
	Create(ctx context.Context, ticket *TicketRecord) error

	// GetByChannel retrieves a ticket by its channel ID.
	GetByChannel(ctx context.Context, channelID string) (*TicketRecord, error)

	// List retrieves tickets matching the given filters.
	List(ctx context.Context, filters TicketFilters) ([]*TicketRecord, error)

	// UpdateStatus updates the status and optionally the closed_at timestamp.
	UpdateStatus(ctx context.Context, channelID, status string, setClosed bool) error
}

// TicketRecord represents a ticket as stored in persistence.
type TicketRecord struct {
	ChannelID   string
	GuildID     string
	RecipientID string
	Status      string // open, closed
	CreatedAt   string
	ClosedAt    string // Empty string means null
}

// TicketFilters contains filter options for querying tickets.
type TicketFilters struct {
	GuildID string
	Status  string
}

// AuditRepository defines the secondary port for audit log persistence.
type AuditRepository interface {
	// Create persists a new audit entry.
	Create(ctx context.Context, entry *AuditRecord) error

	// List retrieves audit entries matching the given filters, newest first.
	List(ctx context.Context, filters AuditFilters) ([]*AuditRecord, error)
}

// AuditRecord represents an audit entry as stored in persistence.
type AuditRecord struct {
	ID         string
	GuildID    string
	ActorID    string
	EntityType string // option, terminology, ticket
	EntityID   string
	Action     string // create, update, delete
	FieldName  string
	OldValue   string
	NewValue   string
	CreatedAt  string
}

// AuditFilters contains filter options for querying audit entries.
type AuditFilters struct {
	GuildID string
	Limit   int
}
