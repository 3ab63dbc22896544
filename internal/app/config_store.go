package app

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/escalate/internal/core/escalation"
	"github.com/example/escalate/internal/metrics"
	"github.com/example/escalate/internal/ports/secondary"
)

// Partition is the document store partition owned by this plugin.
const Partition = "EscalateThread"

// ConfigStore loads and saves per-guild escalation config documents.
// It holds no state; the store is the source of truth.
type ConfigStore struct {
	docs   secondary.DocumentStore
	logger *zap.SugaredLogger
}

// NewConfigStore creates a new ConfigStore.
func NewConfigStore(docs secondary.DocumentStore, logger *zap.SugaredLogger) *ConfigStore {
	return &ConfigStore{docs: docs, logger: logger}
}

func documentKey(guildID string) secondary.DocumentKey {
	return secondary.DocumentKey{
		Partition: Partition,
		GuildID:   guildID,
		ID:        escalation.DocumentID,
	}
}

// Load returns the guild's config. A missing document is created from the
// defaults and written immediately; a document missing default keys is
// backfilled and written again.
func (s *ConfigStore) Load(ctx context.Context, guildID string) (escalation.Config, error) {
	key := documentKey(guildID)

	stored, err := s.docs.FindOne(ctx, key)
	if err != nil {
		return escalation.Config{}, fmt.Errorf("failed to load escalation config: %w", err)
	}

	var doc escalation.Document
	if stored == nil {
		doc = escalation.DefaultDocument()
		if err := s.docs.Upsert(ctx, key, doc); err != nil {
			return escalation.Config{}, fmt.Errorf("failed to write default escalation config: %w", err)
		}
		metrics.ConfigWrites.WithLabelValues("default").Inc()
		s.logger.Infow("created default escalation config", "guild", guildID)
	} else {
		doc = escalation.Document(stored)
	}

	doc, missing := escalation.Backfill(doc)
	if len(missing) > 0 {
		fields := make(map[string]json.RawMessage, len(missing))
		for _, k := range missing {
			fields[k] = doc[k]
		}
		if err := s.docs.Upsert(ctx, key, fields); err != nil {
			return escalation.Config{}, fmt.Errorf("failed to backfill escalation config: %w", err)
		}
		metrics.ConfigWrites.WithLabelValues("backfill").Inc()
		s.logger.Infow("backfilled escalation config", "guild", guildID, "keys", missing)
	}

	cfg, err := escalation.Decode(doc)
	if err != nil {
		return escalation.Config{}, fmt.Errorf("malformed escalation config for guild %s: %w", guildID, err)
	}
	return cfg, nil
}

// Save upserts the config's fields, replacing each one by key.
func (s *ConfigStore) Save(ctx context.Context, guildID string, cfg escalation.Config) error {
	doc, err := escalation.Encode(cfg)
	if err != nil {
		return err
	}
	if err := s.docs.Upsert(ctx, documentKey(guildID), doc); err != nil {
		return fmt.Errorf("failed to save escalation config: %w", err)
	}
	metrics.ConfigWrites.WithLabelValues("update").Inc()
	return nil
}
