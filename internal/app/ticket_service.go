package app

import (
	"context"
	"fmt"

	"github.com/example/escalate/internal/ctxutil"
	"github.com/example/escalate/internal/ports/primary"
	"github.com/example/escalate/internal/ports/secondary"
)

// TicketServiceImpl implements the TicketService interface.
type TicketServiceImpl struct {
	ticketRepo secondary.TicketRepository
	logWriter  secondary.LogWriter
}

// NewTicketService creates a new TicketService with injected dependencies.
func NewTicketService(ticketRepo secondary.TicketRepository, logWriter secondary.LogWriter) *TicketServiceImpl {
	return &TicketServiceImpl{
		ticketRepo: ticketRepo,
		logWriter:  logWriter,
	}
}

// LinkTicket registers a channel as an open ticket.
func (s *TicketServiceImpl) LinkTicket(ctx context.Context, req primary.LinkTicketRequest) (*primary.Ticket, error) {
	if req.ChannelID == "" || req.GuildID == "" || req.RecipientID == "" {
		return nil, fmt.Errorf("channel, guild and recipient are required")
	}

	record := &secondary.TicketRecord{
		ChannelID:   req.ChannelID,
		GuildID:     req.GuildID,
		RecipientID: req.RecipientID,
		Status:      primary.TicketStatusOpen,
	}
	if err := s.ticketRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	if s.logWriter != nil {
		_ = s.logWriter.LogCreate(ctxutil.WithGuildID(ctx, req.GuildID), "ticket", req.ChannelID)
	}
	return s.GetTicket(ctx, req.ChannelID)
}

// GetTicket retrieves a ticket by its channel ID.
func (s *TicketServiceImpl) GetTicket(ctx context.Context, channelID string) (*primary.Ticket, error) {
	record, err := s.ticketRepo.GetByChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}
	return s.recordToTicket(record), nil
}

// GetOpenTicket retrieves a ticket and fails unless it is open.
func (s *TicketServiceImpl) GetOpenTicket(ctx context.Context, channelID string) (*primary.Ticket, error) {
	ticket, err := s.GetTicket(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if ticket.Status != primary.TicketStatusOpen {
		return nil, fmt.Errorf("ticket %s is not open (current status: %s)", channelID, ticket.Status)
	}
	return ticket, nil
}

// ListTickets lists tickets with optional filters.
func (s *TicketServiceImpl) ListTickets(ctx context.Context, filters primary.TicketFilters) ([]*primary.Ticket, error) {
	records, err := s.ticketRepo.List(ctx, secondary.TicketFilters{
		GuildID: filters.GuildID,
		Status:  filters.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets := make([]*primary.Ticket, len(records))
	for i, r := range records {
		tickets[i] = s.recordToTicket(r)
	}
	return tickets, nil
}

// CloseTicket marks an open ticket as closed.
func (s *TicketServiceImpl) CloseTicket(ctx context.Context, channelID string) error {
	ticket, err := s.GetOpenTicket(ctx, channelID)
	if err != nil {
		return err
	}
	if ctxutil.GuildFromContext(ctx) == "" {
		ctx = ctxutil.WithGuildID(ctx, ticket.GuildID)
	}
	if err := s.ticketRepo.UpdateStatus(ctx, channelID, primary.TicketStatusClosed, true); err != nil {
		return fmt.Errorf("failed to close ticket: %w", err)
	}

	if s.logWriter != nil {
		_ = s.logWriter.LogUpdate(ctx, "ticket", channelID, "status", primary.TicketStatusOpen, primary.TicketStatusClosed)
	}
	return nil
}

func (s *TicketServiceImpl) recordToTicket(r *secondary.TicketRecord) *primary.Ticket {
	return &primary.Ticket{
		ChannelID:   r.ChannelID,
		GuildID:     r.GuildID,
		RecipientID: r.RecipientID,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
		ClosedAt:    r.ClosedAt,
	}
}

// Ensure TicketServiceImpl implements the interface
var _ primary.TicketService = (*TicketServiceImpl)(nil)
