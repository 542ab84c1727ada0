package notifications

import (
	"time"

	"github.com/google/uuid"

	"hotelia/room-ops/room-ops-backend/internal/rooms"
)

// Notification is one state-entry event addressed to a staff group. Delivery
// to devices is handled outside this service; the record is the contract.
type Notification struct {
	ID         uuid.UUID    `json:"id" db:"id"`
	HotelID    uuid.UUID    `json:"hotel_id" db:"hotel_id"`
	RoomID     uuid.UUID    `json:"room_id" db:"room_id"`
	RoomNumber string       `json:"room_number" db:"room_number"`
	Status     rooms.Status `json:"status" db:"status"`
	Group      rooms.Role   `json:"notify_group" db:"notify_group"`
	Message    string       `json:"message" db:"message"`
	CreatedAt  time.Time    `json:"created_at" db:"created_at"`
}
