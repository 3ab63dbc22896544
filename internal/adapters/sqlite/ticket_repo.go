package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/escalate/internal/ports/secondary"
)

// TicketRepository implements secondary.TicketRepository with SQLite.
type TicketRepository struct {
	db *sql.DB
}

// NewTicketRepository creates a new SQLite ticket repository.
func NewTicketRepository(db *sql.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

// Create persists a new ticket.
func (r *TicketRepository) Create(ctx context.Context, ticket *secondary.TicketRecord) error {
	status := ticket.Status
	if status == "" {
		status = "open"
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tickets (channel_id, guild_id, recipient_id, status) VALUES (?, ?, ?, ?)`,
		ticket.ChannelID,
		ticket.GuildID,
		ticket.RecipientID,
		status,
	)
	if err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}

	return nil
}

// GetByChannel retrieves a ticket by its channel ID.
func (r *TicketRepository) GetByChannel(ctx context.Context, channelID string) (*secondary.TicketRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT channel_id, guild_id, recipient_id, status, created_at, closed_at FROM tickets WHERE channel_id = ?`,
		channelID,
	)

	record, err := scanTicket(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("ticket %s: %w", channelID, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	return record, nil
}

// List retrieves tickets matching the given filters, newest first.
func (r *TicketRepository) List(ctx context.Context, filters secondary.TicketFilters) ([]*secondary.TicketRecord, error) {
	query := `SELECT channel_id, guild_id, recipient_id, status, created_at, closed_at FROM tickets WHERE 1=1`
	args := []any{}

	if filters.GuildID != "" {
		query += " AND guild_id = ?"
		args = append(args, filters.GuildID)
	}

	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}

	query += " ORDER BY created_at DESC, channel_id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	defer rows.Close()

	var tickets []*secondary.TicketRecord
	for rows.Next() {
		record, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, record)
	}

	return tickets, rows.Err()
}

// UpdateStatus updates the status and optionally the closed_at timestamp.
func (r *TicketRepository) UpdateStatus(ctx context.Context, channelID, status string, setClosed bool) error {
	var query string
	if setClosed {
		query = `UPDATE tickets SET status = ?, closed_at = CURRENT_TIMESTAMP WHERE channel_id = ?`
	} else {
		query = `UPDATE tickets SET status = ?, closed_at = NULL WHERE channel_id = ?`
	}

	result, err := r.db.ExecContext(ctx, query, status, channelID)
	if err != nil {
		return fmt.Errorf("failed to update ticket status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("ticket %s: %w", channelID, secondary.ErrNotFound)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTicket(row rowScanner) (*secondary.TicketRecord, error) {
	var (
		createdAt time.Time
		closedAt  sql.NullTime
	)

	record := &secondary.TicketRecord{}
	err := row.Scan(
		&record.ChannelID,
		&record.GuildID,
		&record.RecipientID,
		&record.Status,
		&createdAt,
		&closedAt,
	)
	if err != nil {
		return nil, err
	}

	record.CreatedAt = createdAt.Format(time.RFC3339)
	if closedAt.Valid {
		record.ClosedAt = closedAt.Time.Format(time.RFC3339)
	}
	return record, nil
}

// Ensure TicketRepository implements the interface
var _ secondary.TicketRepository = (*TicketRepository)(nil)
