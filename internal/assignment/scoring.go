package assignment

import (
	"fmt"
	"strings"

	"hotelia/room-ops/room-ops-backend/internal/rooms"
	"hotelia/room-ops/room-ops-backend/internal/staff"
)

// IsCandidate reports whether a staff member may be scored at all. Inactive
// staff and non-housekeepers are excluded, not merely scored low.
func IsCandidate(s *staff.Staff) bool {
	return s.Active && s.Role == rooms.RoleHousekeeper
}

// ScoreStaff computes the suitability of one candidate for one room.
// workload is the staff member's current assignment set as known to the batch
// run: rooms in active cleaning states plus rooms assigned earlier in the
// same run. recent is the candidate's bounded recent completed-cleaning
// history.
func ScoreStaff(s *staff.Staff, room *rooms.Room, workload []rooms.Room, recent []staff.CompletedCleaning, w Weights) (float64, string) {
	var score float64
	var reasons []string

	if n := len(workload); n > 0 {
		penalty := w.WorkloadPenalty * float64(n)
		score -= penalty
		reasons = append(reasons, fmt.Sprintf("%d active assignments -%.0f", n, penalty))
	}

	score += s.Efficiency
	reasons = append(reasons, fmt.Sprintf("efficiency +%.0f", s.Efficiency))

	for _, assigned := range workload {
		if assigned.Floor == room.Floor {
			score += w.FloorBonus
			reasons = append(reasons, fmt.Sprintf("already on floor %d +%.0f", room.Floor, w.FloorBonus))
			break
		}
	}

	lookback := recent
	if w.ExperienceLookback > 0 && len(lookback) > w.ExperienceLookback {
		lookback = lookback[:w.ExperienceLookback]
	}
	for _, done := range lookback {
		if done.RoomType == room.Type {
			score += w.ExperienceBonus
			reasons = append(reasons, fmt.Sprintf("recent %s experience +%.0f", room.Type, w.ExperienceBonus))
			break
		}
	}

	return score, strings.Join(reasons, "; ")
}
