package db

import (
	"database/sql"
	"fmt"
	"time"
)

// Fixture IDs used by SeedFixtures.
const (
	FixtureGuildID     = "100000000000000001"
	FixtureChannelID   = "200000000000000001"
	FixtureRecipientID = "300000000000000001"
)

// SeedFixtures populates the database with development fixtures: one guild
// with a configured escalation document, an open and a closed ticket, and a
// couple of audit entries.
func SeedFixtures(database *sql.DB) error {
	now := time.Now().UTC().Format(time.RFC3339)

	body := `{"_id":"escalatethread","terminology":"ticket","options":{` +
		`"billing":{"role":"400000000000000001","category":"500000000000000001"},` +
		`"moderation":{"role":"400000000000000002","category":"500000000000000002"}}}`
	if _, err := database.Exec(
		"INSERT INTO plugin_documents (partition, guild_id, doc_id, body, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		"EscalateThread", FixtureGuildID, "escalatethread", body, now, now,
	); err != nil {
		return fmt.Errorf("seed plugin_documents: %w", err)
	}

	tickets := []struct{ channel, recipient, status string }{
		{FixtureChannelID, FixtureRecipientID, "open"},
		{"200000000000000002", "300000000000000002", "closed"},
	}
	for _, t := range tickets {
		var closedAt any
		if t.status == "closed" {
			closedAt = now
		}
		if _, err := database.Exec(
			"INSERT INTO tickets (channel_id, guild_id, recipient_id, status, created_at, closed_at) VALUES (?, ?, ?, ?, ?, ?)",
			t.channel, FixtureGuildID, t.recipient, t.status, now, closedAt,
		); err != nil {
			return fmt.Errorf("seed tickets: %w", err)
		}
	}

	audit := []struct{ id, entityType, entityID, action string }{
		{"fixture-audit-0001", "option", "billing", "create"},
		{"fixture-audit-0002", "option", "moderation", "create"},
	}
	for _, a := range audit {
		if _, err := database.Exec(
			"INSERT INTO audit_log (id, guild_id, actor_id, entity_type, entity_id, action, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
			a.id, FixtureGuildID, "600000000000000001", a.entityType, a.entityID, a.action, now,
		); err != nil {
			return fmt.Errorf("seed audit_log: %w", err)
		}
	}

	return nil
}
