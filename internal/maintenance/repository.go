package maintenance

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines the data access surface for maintenance tickets.
type Repository interface {
	CreateTicket(ctx context.Context, ticket *Ticket) error
	GetTicket(ctx context.Context, hotelID, ticketID uuid.UUID) (*Ticket, error)
	GetOpenTicketForRoom(ctx context.Context, hotelID, roomID uuid.UUID) (*Ticket, error)
	ListOpenTickets(ctx context.Context, hotelID uuid.UUID) ([]Ticket, error)
	CloseTicket(ctx context.Context, hotelID, ticketID, closedBy uuid.UUID, closedAt time.Time) error
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewRepository creates a Postgres-backed maintenance repository.
func NewRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

const ticketColumns = `
	id, hotel_id, room_id, room_number, notes, held_status, held_assignee,
	status, opened_at, closed_at, closed_by`

func (r *postgresRepository) CreateTicket(ctx context.Context, ticket *Ticket) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO maintenance_tickets (
			id, hotel_id, room_id, room_number, notes, held_status,
			held_assignee, status, opened_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		ticket.ID, ticket.HotelID, ticket.RoomID, ticket.RoomNumber,
		ticket.Notes, ticket.HeldStatus, ticket.HeldAssignee,
		ticket.Status, ticket.OpenedAt)
	if err != nil {
		return fmt.Errorf("create maintenance ticket: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetTicket(ctx context.Context, hotelID, ticketID uuid.UUID) (*Ticket, error) {
	var t Ticket
	query := fmt.Sprintf("SELECT %s FROM maintenance_tickets WHERE hotel_id = $1 AND id = $2", ticketColumns)
	err := r.db.GetContext(ctx, &t, query, hotelID, ticketID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *postgresRepository) GetOpenTicketForRoom(ctx context.Context, hotelID, roomID uuid.UUID) (*Ticket, error) {
	var t Ticket
	query := fmt.Sprintf(`
		SELECT %s FROM maintenance_tickets
		WHERE hotel_id = $1 AND room_id = $2 AND status = 'open'
		ORDER BY opened_at DESC
		LIMIT 1`, ticketColumns)
	err := r.db.GetContext(ctx, &t, query, hotelID, roomID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *postgresRepository) ListOpenTickets(ctx context.Context, hotelID uuid.UUID) ([]Ticket, error) {
	var out []Ticket
	query := fmt.Sprintf(`
		SELECT %s FROM maintenance_tickets
		WHERE hotel_id = $1 AND status = 'open'
		ORDER BY opened_at ASC`, ticketColumns)
	err := r.db.SelectContext(ctx, &out, query, hotelID)
	return out, err
}

func (r *postgresRepository) CloseTicket(ctx context.Context, hotelID, ticketID, closedBy uuid.UUID, closedAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE maintenance_tickets
		SET status = 'closed', closed_at = $1, closed_by = $2
		WHERE hotel_id = $3 AND id = $4 AND status = 'open'`,
		closedAt, closedBy, hotelID, ticketID)
	if err != nil {
		return fmt.Errorf("close maintenance ticket: %w", err)
	}
	return nil
}
