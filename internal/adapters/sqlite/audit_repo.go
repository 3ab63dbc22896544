package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/example/escalate/internal/ports/secondary"
)

// AuditRepository implements secondary.AuditRepository with SQLite.
type AuditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates a new SQLite audit repository.
func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create persists a new audit entry. An empty ID is filled with a UUID.
func (r *AuditRepository) Create(ctx context.Context, entry *secondary.AuditRecord) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	var actorID, fieldName, oldValue, newValue sql.NullString
	if entry.ActorID != "" {
		actorID = sql.NullString{String: entry.ActorID, Valid: true}
	}
	if entry.FieldName != "" {
		fieldName = sql.NullString{String: entry.FieldName, Valid: true}
	}
	if entry.OldValue != "" {
		oldValue = sql.NullString{String: entry.OldValue, Valid: true}
	}
	if entry.NewValue != "" {
		newValue = sql.NullString{String: entry.NewValue, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_log (id, guild_id, actor_id, entity_type, entity_id, action, field_name, old_value, new_value) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.GuildID,
		actorID,
		entry.EntityType,
		entry.EntityID,
		entry.Action,
		fieldName,
		oldValue,
		newValue,
	)
	if err != nil {
		return fmt.Errorf("failed to create audit entry: %w", err)
	}

	return nil
}

// List retrieves audit entries matching the given filters, newest first.
func (r *AuditRepository) List(ctx context.Context, filters secondary.AuditFilters) ([]*secondary.AuditRecord, error) {
	query := `SELECT id, guild_id, actor_id, entity_type, entity_id, action, field_name, old_value, new_value, created_at FROM audit_log WHERE 1=1`
	args := []any{}

	if filters.GuildID != "" {
		query += " AND guild_id = ?"
		args = append(args, filters.GuildID)
	}

	// rowid breaks ties between entries written in the same second
	query += " ORDER BY created_at DESC, rowid DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []*secondary.AuditRecord
	for rows.Next() {
		var (
			actorID   sql.NullString
			fieldName sql.NullString
			oldValue  sql.NullString
			newValue  sql.NullString
			createdAt time.Time
		)

		record := &secondary.AuditRecord{}
		err := rows.Scan(&record.ID,
			&record.GuildID,
			&actorID,
			&record.EntityType,
			&record.EntityID,
			&record.Action,
			&fieldName,
			&oldValue,
			&newValue,
			&createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		record.ActorID = actorID.String
		record.FieldName = fieldName.String
		record.OldValue = oldValue.String
		record.NewValue = newValue.String
		record.CreatedAt = createdAt.Format(time.RFC3339)

		entries = append(entries, record)
	}

	return entries, rows.Err()
}

// Ensure AuditRepository implements the interface
var _ secondary.AuditRepository = (*AuditRepository)(nil)
