package settings

import (
	"time"

	"github.com/google/uuid"
)

// HotelSettings holds a hotel's overrides for the assignment weights. Nil
// fields fall back to the stock defaults, so a hotel only stores what it
// changed.
type HotelSettings struct {
	HotelID              uuid.UUID `json:"hotel_id" db:"hotel_id"`
	CheckoutBonus        *float64  `json:"checkout_bonus,omitempty" db:"checkout_bonus"`
	WaitThresholdMinutes *int      `json:"wait_threshold_minutes,omitempty" db:"wait_threshold_minutes"`
	WaitBonus            *float64  `json:"wait_bonus,omitempty" db:"wait_bonus"`
	VIPBonus             *float64  `json:"vip_bonus,omitempty" db:"vip_bonus"`
	WorkloadPenalty      *float64  `json:"workload_penalty,omitempty" db:"workload_penalty"`
	FloorBonus           *float64  `json:"floor_bonus,omitempty" db:"floor_bonus"`
	ExperienceBonus      *float64  `json:"experience_bonus,omitempty" db:"experience_bonus"`
	ExperienceLookback   *int      `json:"experience_lookback,omitempty" db:"experience_lookback"`
	UpdatedAt            time.Time `json:"updated_at" db:"updated_at"`
}
