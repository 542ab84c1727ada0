package maintenance

import (
	"time"

	"github.com/google/uuid"
)

// TicketStatus is the lifecycle state of a maintenance work item.
type TicketStatus string

const (
	TicketOpen   TicketStatus = "open"
	TicketClosed TicketStatus = "closed"
)

// Ticket is a maintenance work item opened when a room enters maintenance.
// HeldStatus/HeldAssignee mirror the cleaning context preserved on the room,
// so the ticket shows where the room will return once work is done.
type Ticket struct {
	ID           uuid.UUID    `json:"id" db:"id"`
	HotelID      uuid.UUID    `json:"hotel_id" db:"hotel_id"`
	RoomID       uuid.UUID    `json:"room_id" db:"room_id"`
	RoomNumber   string       `json:"room_number" db:"room_number"`
	Notes        string       `json:"notes" db:"notes"`
	HeldStatus   *string      `json:"held_status,omitempty" db:"held_status"`
	HeldAssignee *uuid.UUID   `json:"held_assignee,omitempty" db:"held_assignee"`
	Status       TicketStatus `json:"status" db:"status"`
	OpenedAt     time.Time    `json:"opened_at" db:"opened_at"`
	ClosedAt     *time.Time   `json:"closed_at,omitempty" db:"closed_at"`
	ClosedBy     *uuid.UUID   `json:"closed_by,omitempty" db:"closed_by"`
}
