package assignment

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"hotelia/room-ops/room-ops-backend/internal/rooms"
)

func pendingRoom(number string, status rooms.Status, changedAgo time.Duration, features ...string) rooms.Room {
	return rooms.Room{
		ID:               uuid.New(),
		HotelID:          uuid.New(),
		Number:           number,
		Floor:            3,
		Type:             "standard",
		Status:           status,
		LastStatusChange: time.Now().Add(-changedAgo),
		Features:         pq.StringArray(features),
	}
}

func TestCheckoutRoomScoresCheckoutBonusOnly(t *testing.T) {
	room := pendingRoom("101", rooms.StatusCheckout, 10*time.Minute)

	ranked := PrioritizeRooms([]rooms.Room{room}, DefaultWeights(), time.Now())

	assert.Len(t, ranked, 1)
	assert.Equal(t, 100.0, ranked[0].Score)
	assert.Contains(t, ranked[0].Reason, "checkout")
	assert.NotContains(t, ranked[0].Reason, "vip")
}

func TestWaitingVIPRoomScoresWaitAndVIPBonuses(t *testing.T) {
	room := pendingRoom("205", rooms.StatusNeedCleaning, 3*time.Hour, "vip")

	ranked := PrioritizeRooms([]rooms.Room{room}, DefaultWeights(), time.Now())

	assert.Len(t, ranked, 1)
	assert.Equal(t, 80.0, ranked[0].Score)
	assert.Contains(t, ranked[0].Reason, "waiting")
	assert.Contains(t, ranked[0].Reason, "vip")
}

func TestCheckoutOutranksNeedCleaningAtSameWait(t *testing.T) {
	needCleaning := pendingRoom("201", rooms.StatusNeedCleaning, 30*time.Minute)
	checkout := pendingRoom("102", rooms.StatusCheckout, 30*time.Minute)

	ranked := PrioritizeRooms([]rooms.Room{needCleaning, checkout}, DefaultWeights(), time.Now())

	assert.Equal(t, "102", ranked[0].Room.Number)
	assert.Equal(t, "201", ranked[1].Room.Number)
}

func TestTiesKeepInputOrder(t *testing.T) {
	a := pendingRoom("301", rooms.StatusCheckout, 5*time.Minute)
	b := pendingRoom("302", rooms.StatusCheckout, 5*time.Minute)
	c := pendingRoom("303", rooms.StatusCheckout, 5*time.Minute)

	ranked := PrioritizeRooms([]rooms.Room{a, b, c}, DefaultWeights(), time.Now())

	assert.Equal(t, "301", ranked[0].Room.Number)
	assert.Equal(t, "302", ranked[1].Room.Number)
	assert.Equal(t, "303", ranked[2].Room.Number)
}

func TestNoBonusesGivesZeroWithTrace(t *testing.T) {
	room := pendingRoom("401", rooms.StatusNeedCleaning, 10*time.Minute)

	ranked := PrioritizeRooms([]rooms.Room{room}, DefaultWeights(), time.Now())

	assert.Equal(t, 0.0, ranked[0].Score)
	assert.Equal(t, "no priority bonuses", ranked[0].Reason)
}

func TestWaitThresholdIsExclusive(t *testing.T) {
	now := time.Now()
	room := pendingRoom("501", rooms.StatusNeedCleaning, 0)
	room.LastStatusChange = now.Add(-2 * time.Hour)

	ranked := PrioritizeRooms([]rooms.Room{room}, DefaultWeights(), now)
	assert.Equal(t, 0.0, ranked[0].Score, "exactly at threshold should not escalate")

	room.LastStatusChange = now.Add(-2*time.Hour - time.Minute)
	ranked = PrioritizeRooms([]rooms.Room{room}, DefaultWeights(), now)
	assert.Equal(t, 50.0, ranked[0].Score)
}
