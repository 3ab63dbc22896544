package app

import (
	"context"
	"fmt"

	"github.com/example/escalate/internal/ports/primary"
	"github.com/example/escalate/internal/ports/secondary"
)

// AuditServiceImpl implements the AuditService interface.
type AuditServiceImpl struct {
	auditRepo secondary.AuditRepository
}

// NewAuditService creates a new AuditService.
func NewAuditService(auditRepo secondary.AuditRepository) *AuditServiceImpl {
	return &AuditServiceImpl{auditRepo: auditRepo}
}

// ListEntries lists audit entries, newest first.
func (s *AuditServiceImpl) ListEntries(ctx context.Context, filters primary.AuditFilters) ([]*primary.AuditEntry, error) {
	records, err := s.auditRepo.List(ctx, secondary.AuditFilters{
		GuildID: filters.GuildID,
		Limit:   filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}

	entries := make([]*primary.AuditEntry, len(records))
	for i, r := range records {
		entries[i] = &primary.AuditEntry{
			ID:         r.ID,
			GuildID:    r.GuildID,
			ActorID:    r.ActorID,
			EntityType: r.EntityType,
			EntityID:   r.EntityID,
			Action:     r.Action,
			FieldName:  r.FieldName,
			OldValue:   r.OldValue,
			NewValue:   r.NewValue,
			CreatedAt:  r.CreatedAt,
		}
	}
	return entries, nil
}

// Ensure AuditServiceImpl implements the interface
var _ primary.AuditService = (*AuditServiceImpl)(nil)
