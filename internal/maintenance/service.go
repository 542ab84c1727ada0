package maintenance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hotelia/room-ops/room-ops-backend/internal/rooms"
)

var _ rooms.TicketOpener = (*Service)(nil)

// Service manages maintenance tickets. It implements rooms.TicketOpener so
// the transition service can open a ticket whenever a room enters
// maintenance, and it drives the restore path when a ticket is completed.
type Service struct {
	repo        Repository
	transitions *rooms.Service
	logger      *zap.Logger
	now         func() time.Time
}

// NewService creates a maintenance service.
func NewService(repo Repository, transitions *rooms.Service, logger *zap.Logger) *Service {
	return &Service{
		repo:        repo,
		transitions: transitions,
		logger:      logger,
		now:         time.Now,
	}
}

// OpenTicket records a new work item for a room entering maintenance,
// carrying the preserved cleaning context. A room with an open ticket does
// not get a second one.
func (s *Service) OpenTicket(ctx context.Context, req rooms.TicketRequest) error {
	existing, err := s.repo.GetOpenTicketForRoom(ctx, req.HotelID, req.RoomID)
	if err != nil {
		return err
	}
	if existing != nil {
		s.logger.Warn("room already has an open maintenance ticket",
			zap.String("room", req.RoomNumber),
			zap.String("ticket_id", existing.ID.String()))
		return nil
	}

	ticket := &Ticket{
		ID:           uuid.New(),
		HotelID:      req.HotelID,
		RoomID:       req.RoomID,
		RoomNumber:   req.RoomNumber,
		Notes:        req.Notes,
		HeldAssignee: req.HeldAssignee,
		Status:       TicketOpen,
		OpenedAt:     s.now(),
	}
	if req.HeldStatus != nil {
		held := string(*req.HeldStatus)
		ticket.HeldStatus = &held
	}

	if err := s.repo.CreateTicket(ctx, ticket); err != nil {
		return err
	}

	s.logger.Info("maintenance ticket opened",
		zap.String("room", req.RoomNumber),
		zap.String("ticket_id", ticket.ID.String()))
	return nil
}

// CompleteTicket closes the ticket and moves the room back out of
// maintenance, restoring the preserved cleaning state when one exists.
func (s *Service) CompleteTicket(ctx context.Context, hotelID, ticketID, closedBy uuid.UUID, notes string) (*rooms.Room, error) {
	ticket, err := s.repo.GetTicket(ctx, hotelID, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, fmt.Errorf("maintenance ticket %s not found", ticketID)
	}
	if ticket.Status != TicketOpen {
		return nil, fmt.Errorf("maintenance ticket %s is already closed", ticketID)
	}

	room, err := s.transitions.CompleteMaintenance(ctx, hotelID, ticket.RoomID, closedBy, notes)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CloseTicket(ctx, hotelID, ticketID, closedBy, s.now()); err != nil {
		// The room is already restored; surface the bookkeeping failure.
		return room, err
	}

	s.logger.Info("maintenance ticket closed",
		zap.String("room", ticket.RoomNumber),
		zap.String("ticket_id", ticketID.String()),
		zap.String("room_status", string(room.Status)))
	return room, nil
}

// OpenTickets lists the hotel's open work items.
func (s *Service) OpenTickets(ctx context.Context, hotelID uuid.UUID) ([]Ticket, error) {
	return s.repo.ListOpenTickets(ctx, hotelID)
}
