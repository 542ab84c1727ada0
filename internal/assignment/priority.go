package assignment

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"hotelia/room-ops/room-ops-backend/internal/rooms"
)

const featureVIP = "vip"

// PrioritizeRooms computes an urgency score for each pending room and returns
// them ordered by descending score. The sort is stable: equal scores keep
// their input order, so results are reproducible for a given input.
func PrioritizeRooms(pending []rooms.Room, w Weights, now time.Time) []RoomPriority {
	out := make([]RoomPriority, 0, len(pending))
	for _, room := range pending {
		score, reason := prioritizeRoom(&room, w, now)
		out = append(out, RoomPriority{Room: room, Score: score, Reason: reason})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

func prioritizeRoom(room *rooms.Room, w Weights, now time.Time) (float64, string) {
	var score float64
	var reasons []string

	if room.Status == rooms.StatusCheckout {
		score += w.CheckoutBonus
		reasons = append(reasons, fmt.Sprintf("checkout +%.0f", w.CheckoutBonus))
	}

	waited := now.Sub(room.LastStatusChange)
	if waited > w.WaitThreshold {
		score += w.WaitBonus
		reasons = append(reasons, fmt.Sprintf("waiting %s +%.0f", waited.Round(time.Minute), w.WaitBonus))
	}

	if room.HasFeature(featureVIP) {
		score += w.VIPBonus
		reasons = append(reasons, fmt.Sprintf("vip +%.0f", w.VIPBonus))
	}

	if len(reasons) == 0 {
		return score, "no priority bonuses"
	}
	return score, strings.Join(reasons, "; ")
}
