package assignment

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"hotelia/room-ops/room-ops-backend/internal/rooms"
	"hotelia/room-ops/room-ops-backend/internal/staff"
)

func housekeeper(name string, efficiency float64) staff.Staff {
	return staff.Staff{
		ID:         uuid.New(),
		HotelID:    uuid.New(),
		Name:       name,
		Role:       rooms.RoleHousekeeper,
		Active:     true,
		Efficiency: efficiency,
	}
}

func cleaningRoom(floor int) rooms.Room {
	return rooms.Room{
		ID:     uuid.New(),
		Number: "900",
		Floor:  floor,
		Type:   "standard",
		Status: rooms.StatusCleaningCheckout,
	}
}

func TestWorkloadPenaltySeparatesEqualStaff(t *testing.T) {
	ana := housekeeper("Ana", 90)
	luz := housekeeper("Luz", 90)
	target := rooms.Room{Floor: 5, Type: "suite"}
	w := DefaultWeights()

	anaScore, _ := ScoreStaff(&ana, &target, nil, nil, w)
	luzScore, _ := ScoreStaff(&luz, &target, []rooms.Room{cleaningRoom(1), cleaningRoom(2)}, nil, w)

	assert.Equal(t, 90.0, anaScore)
	assert.Equal(t, 70.0, luzScore)
	assert.Equal(t, 20.0, anaScore-luzScore)
}

func TestBusierStaffNeverScoresHigher(t *testing.T) {
	idle := housekeeper("Idle", 75)
	busy := housekeeper("Busy", 75)
	target := rooms.Room{Floor: 9, Type: "standard"}
	w := DefaultWeights()

	for n := 1; n <= 5; n++ {
		var workload []rooms.Room
		for i := 0; i < n; i++ {
			workload = append(workload, cleaningRoom(1))
		}
		idleScore, _ := ScoreStaff(&idle, &target, nil, nil, w)
		busyScore, _ := ScoreStaff(&busy, &target, workload, nil, w)
		assert.Greater(t, idleScore, busyScore, "workload %d", n)
	}
}

func TestFloorLocalityBonus(t *testing.T) {
	hk := housekeeper("Marta", 50)
	target := rooms.Room{Floor: 3, Type: "standard"}
	w := DefaultWeights()

	sameFloor, reason := ScoreStaff(&hk, &target, []rooms.Room{cleaningRoom(3)}, nil, w)
	otherFloor, _ := ScoreStaff(&hk, &target, []rooms.Room{cleaningRoom(7)}, nil, w)

	// Both carry one assignment; only the same-floor one earns the bonus.
	assert.Equal(t, 20.0, sameFloor-otherFloor)
	assert.Contains(t, reason, "floor 3")
}

func TestRoomTypeExperienceBonus(t *testing.T) {
	hk := housekeeper("Sofia", 60)
	target := rooms.Room{Floor: 2, Type: "suite"}
	w := DefaultWeights()

	recent := []staff.CompletedCleaning{
		{RoomType: "standard", CompletedAt: time.Now()},
		{RoomType: "suite", CompletedAt: time.Now()},
	}
	withExp, reason := ScoreStaff(&hk, &target, nil, recent, w)
	withoutExp, _ := ScoreStaff(&hk, &target, nil, nil, w)

	assert.Equal(t, 15.0, withExp-withoutExp)
	assert.Contains(t, reason, "suite")
}

func TestExperienceLookbackBound(t *testing.T) {
	hk := housekeeper("Elena", 60)
	target := rooms.Room{Floor: 2, Type: "suite"}
	w := DefaultWeights()

	// The only suite cleaning sits beyond the lookback window.
	recent := make([]staff.CompletedCleaning, 0, w.ExperienceLookback+1)
	for i := 0; i < w.ExperienceLookback; i++ {
		recent = append(recent, staff.CompletedCleaning{RoomType: "standard"})
	}
	recent = append(recent, staff.CompletedCleaning{RoomType: "suite"})

	score, _ := ScoreStaff(&hk, &target, nil, recent, w)
	assert.Equal(t, 60.0, score)
}

func TestCandidateFiltering(t *testing.T) {
	active := housekeeper("Ana", 90)
	assert.True(t, IsCandidate(&active))

	inactive := housekeeper("Rosa", 90)
	inactive.Active = false
	assert.False(t, IsCandidate(&inactive))

	receptionist := housekeeper("Laura", 90)
	receptionist.Role = rooms.RoleReception
	assert.False(t, IsCandidate(&receptionist))
}
