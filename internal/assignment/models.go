package assignment

import (
	"time"

	"github.com/google/uuid"

	"hotelia/room-ops/room-ops-backend/internal/rooms"
)

// Weights are the tunable constants of prioritization and scoring. Hotels may
// override them through settings; zero-value callers get Defaults.
type Weights struct {
	CheckoutBonus   float64       `json:"checkout_bonus"`
	WaitThreshold   time.Duration `json:"wait_threshold"`
	WaitBonus       float64       `json:"wait_bonus"`
	VIPBonus        float64       `json:"vip_bonus"`
	WorkloadPenalty float64       `json:"workload_penalty"`
	FloorBonus      float64       `json:"floor_bonus"`
	ExperienceBonus float64       `json:"experience_bonus"`

	// ExperienceLookback bounds how many recent completed cleanings count
	// toward the room-type experience bonus.
	ExperienceLookback int `json:"experience_lookback"`
}

// DefaultWeights returns the stock weights.
func DefaultWeights() Weights {
	return Weights{
		CheckoutBonus:      100,
		WaitThreshold:      2 * time.Hour,
		WaitBonus:          50,
		VIPBonus:           30,
		WorkloadPenalty:    10,
		FloorBonus:         20,
		ExperienceBonus:    15,
		ExperienceLookback: 20,
	}
}

// RoomPriority is the computed urgency of one pending room.
type RoomPriority struct {
	Room   rooms.Room `json:"room"`
	Score  float64    `json:"score"`
	Reason string     `json:"reason"`
}

// Assignment is one committed room→staff pairing from a batch run.
type Assignment struct {
	RoomID     uuid.UUID `json:"room_id"`
	RoomNumber string    `json:"room_number"`
	StaffID    uuid.UUID `json:"staff_id"`
	StaffName  string    `json:"staff_name"`
	Reason     string    `json:"reason"`
	AssignedAt time.Time `json:"assigned_at"`
}

// SkippedRoom is a pending room the batch could not or would not assign.
type SkippedRoom struct {
	RoomID     uuid.UUID `json:"room_id"`
	RoomNumber string    `json:"room_number"`
	Reason     string    `json:"reason"`
}

// Outcome is the report of one auto-assign batch run. NoCapacity
// distinguishes "no active housekeepers" from an idle system with nothing
// pending; neither is an error.
type Outcome struct {
	Assignments []Assignment  `json:"assignments"`
	Skipped     []SkippedRoom `json:"skipped"`
	NoCapacity  bool          `json:"no_capacity"`
	Message     string        `json:"message"`
}
