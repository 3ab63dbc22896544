// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/example/escalate/internal/ports/secondary"
)

// idField is the document's own key, written once when the document is created.
const idField = "_id"

// DocumentStore implements secondary.DocumentStore with SQLite.
// Each document is one JSON object in plugin_documents.body.
type DocumentStore struct {
	db *sql.DB
}

// NewDocumentStore creates a new SQLite document store.
func NewDocumentStore(db *sql.DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// FindOne retrieves a document's top-level fields, or nil if it does not exist.
func (s *DocumentStore) FindOne(ctx context.Context, key secondary.DocumentKey) (map[string]json.RawMessage, error) {
	var body string
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM plugin_documents WHERE partition = ? AND guild_id = ? AND doc_id = ?`,
		key.Partition, key.GuildID, key.ID,
	).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find document %s/%s: %w", key.Partition, key.ID, err)
	}

	doc, err := decodeBody(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode document %s/%s: %w", key.Partition, key.ID, err)
	}
	return doc, nil
}

// Upsert sets the given top-level fields, creating the document if needed.
// Read and write share one transaction so a concurrent upsert cannot drop fields.
func (s *DocumentStore) Upsert(ctx context.Context, key secondary.DocumentKey, fields map[string]json.RawMessage) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var body string
	err = tx.QueryRowContext(ctx,
		`SELECT body FROM plugin_documents WHERE partition = ? AND guild_id = ? AND doc_id = ?`,
		key.Partition, key.GuildID, key.ID,
	).Scan(&body)

	var doc map[string]json.RawMessage
	switch {
	case err == sql.ErrNoRows:
		id, _ := json.Marshal(key.ID)
		doc = map[string]json.RawMessage{idField: id}
	case err != nil:
		return fmt.Errorf("failed to read document %s/%s: %w", key.Partition, key.ID, err)
	default:
		doc, err = decodeBody(body)
		if err != nil {
			return fmt.Errorf("failed to decode document %s/%s: %w", key.Partition, key.ID, err)
		}
	}

	for k, v := range fields {
		if k == idField {
			continue
		}
		doc[k] = v
	}

	merged, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document %s/%s: %w", key.Partition, key.ID, err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO plugin_documents (partition, guild_id, doc_id, body) VALUES (?, ?, ?, ?)
		ON CONFLICT(partition, guild_id, doc_id) DO UPDATE SET body = excluded.body, updated_at = CURRENT_TIMESTAMP`,
		key.Partition, key.GuildID, key.ID, string(merged),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert document %s/%s: %w", key.Partition, key.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit document %s/%s: %w", key.Partition, key.ID, err)
	}
	return nil
}

func decodeBody(body string) (map[string]json.RawMessage, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = map[string]json.RawMessage{}
	}
	return doc, nil
}

// Ensure DocumentStore implements the interface
var _ secondary.DocumentStore = (*DocumentStore)(nil)
