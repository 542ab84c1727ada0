package rooms

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Room is the operational record for a single hotel room. Status mutations go
// through the transition service; AssignedTo/AssignedAt are additionally
// written by the assignment allocator.
type Room struct {
	ID               uuid.UUID      `json:"id" db:"id"`
	HotelID          uuid.UUID      `json:"hotel_id" db:"hotel_id"`
	Number           string         `json:"number" db:"number"`
	Floor            int            `json:"floor" db:"floor"`
	Type             string         `json:"room_type" db:"room_type"`
	Status           Status         `json:"status" db:"status"`
	AssignedTo       *uuid.UUID     `json:"assigned_to,omitempty" db:"assigned_to"`
	AssignedAt       *time.Time     `json:"assigned_at,omitempty" db:"assigned_at"`
	LastStatusChange time.Time      `json:"last_status_change" db:"last_status_change"`
	CleaningMinutes  *int           `json:"cleaning_minutes,omitempty" db:"cleaning_minutes"`
	Features         pq.StringArray `json:"features" db:"features"`

	// Cleaning context preserved while the room sits in maintenance, so that
	// completing maintenance can put the room back where it was.
	HeldStatus   *Status    `json:"held_status,omitempty" db:"held_status"`
	HeldAssignee *uuid.UUID `json:"held_assignee,omitempty" db:"held_assignee"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// HasFeature reports whether the room carries a feature tag such as "vip".
func (r *Room) HasFeature(tag string) bool {
	for _, f := range r.Features {
		if f == tag {
			return true
		}
	}
	return false
}

// HistoryEntry is one append-only audit record of a status transition.
// Entries are never updated or deleted.
type HistoryEntry struct {
	ID          uuid.UUID `json:"id" db:"id"`
	RoomID      uuid.UUID `json:"room_id" db:"room_id"`
	HotelID     uuid.UUID `json:"hotel_id" db:"hotel_id"`
	FromStatus  Status    `json:"from_status" db:"from_status"`
	ToStatus    Status    `json:"to_status" db:"to_status"`
	ActingStaff uuid.UUID `json:"acting_staff" db:"acting_staff"`
	ActingRole  Role      `json:"acting_role" db:"acting_role"`
	Notes       string    `json:"notes" db:"notes"`
	RecordedAt  time.Time `json:"recorded_at" db:"recorded_at"`
}

// TransitionRequest is a single requested status change.
type TransitionRequest struct {
	HotelID         uuid.UUID `json:"hotel_id"`
	RoomID          uuid.UUID `json:"room_id"`
	ActingStaff     uuid.UUID `json:"acting_staff"`
	ActingRole      Role      `json:"acting_role"`
	CurrentStatus   Status    `json:"current_status,omitempty"`
	RequestedStatus Status    `json:"requested_status"`
	Notes           string    `json:"notes,omitempty"`
}
