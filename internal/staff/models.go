package staff

import (
	"time"

	"github.com/google/uuid"

	"hotelia/room-ops/room-ops-backend/internal/rooms"
)

// Staff is a hotel staff member. This service reads staff records; creation
// and deactivation belong to staff management, and efficiency figures are
// produced by reporting.
type Staff struct {
	ID      uuid.UUID  `json:"id" db:"id"`
	HotelID uuid.UUID  `json:"hotel_id" db:"hotel_id"`
	Name    string     `json:"name" db:"name"`
	Role    rooms.Role `json:"role" db:"role"`
	Active  bool       `json:"active" db:"active"`

	// Efficiency is a rolling completed/assigned percentage in [0, 100].
	Efficiency float64 `json:"efficiency" db:"efficiency"`

	// AvgCleaningMinutes is the historical average duration per cleaning.
	AvgCleaningMinutes float64 `json:"avg_cleaning_minutes" db:"avg_cleaning_minutes"`

	AccessCode string    `json:"-" db:"access_code"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// CompletedCleaning is one finished-and-recorded cleaning, used for the
// room-type experience bonus.
type CompletedCleaning struct {
	ID          uuid.UUID `json:"id" db:"id"`
	HotelID     uuid.UUID `json:"hotel_id" db:"hotel_id"`
	StaffID     uuid.UUID `json:"staff_id" db:"staff_id"`
	RoomID      uuid.UUID `json:"room_id" db:"room_id"`
	RoomType    string    `json:"room_type" db:"room_type"`
	Minutes     int       `json:"minutes" db:"minutes"`
	CompletedAt time.Time `json:"completed_at" db:"completed_at"`
}
