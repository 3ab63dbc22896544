package primary

import "context"

// AuditService defines the primary port for reading the audit trail.
type AuditService interface {
	// ListEntries lists audit entries, newest first.
	ListEntries(ctx context.Context, filters AuditFilters) ([]*AuditEntry, error)
}

// AuditEntry represents an audit log entry at the port boundary.
type AuditEntry struct {
	ID         string
	GuildID    string
	ActorID    string
	EntityType string
	EntityID   string
	Action     string
	FieldName  string
	OldValue   string
	NewValue   string
	CreatedAt  string
}

// AuditFilters contains filter options for listing audit entries.
type AuditFilters struct {
	GuildID string
	Limit   int
}
