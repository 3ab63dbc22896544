// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() to ensure tests run against
// the authoritative schema, preventing drift between test and production.
//
// DO NOT hardcode CREATE TABLE statements in test files. Instead, use
// setupTestDB() and the seed* helpers.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/escalate/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// This is the single shared test database setup function for all repository tests.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	// Use the authoritative schema from schema.go
	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedTicket inserts a test ticket and returns its channel ID.
func seedTicket(t *testing.T, db *sql.DB, channelID, guildID, recipientID, status string) string {
	t.Helper()
	if channelID == "" {
		channelID = "CH-001"
	}
	if guildID == "" {
		guildID = "G-001"
	}
	if recipientID == "" {
		recipientID = "U-001"
	}
	if status == "" {
		status = "open"
	}
	_, err := db.Exec("INSERT INTO tickets (channel_id, guild_id, recipient_id, status) VALUES (?, ?, ?, ?)",
		channelID, guildID, recipientID, status)
	if err != nil {
		t.Fatalf("failed to seed ticket: %v", err)
	}
	return channelID
}

// seedDocument inserts a raw plugin document body.
func seedDocument(t *testing.T, db *sql.DB, partition, guildID, docID, body string) {
	t.Helper()
	_, err := db.Exec("INSERT INTO plugin_documents (partition, guild_id, doc_id, body) VALUES (?, ?, ?, ?)",
		partition, guildID, docID, body)
	if err != nil {
		t.Fatalf("failed to seed document: %v", err)
	}
}
