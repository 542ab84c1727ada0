package assignment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"hotelia/room-ops/room-ops-backend/internal/rooms"
	"hotelia/room-ops/room-ops-backend/internal/staff"
)

type mockRoomRepo struct {
	mock.Mock
}

func (m *mockRoomRepo) GetRoom(ctx context.Context, hotelID, roomID uuid.UUID) (*rooms.Room, error) {
	args := m.Called(ctx, hotelID, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rooms.Room), args.Error(1)
}

func (m *mockRoomRepo) ListRoomsByStatus(ctx context.Context, hotelID uuid.UUID, statuses []rooms.Status) ([]rooms.Room, error) {
	args := m.Called(ctx, hotelID, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]rooms.Room), args.Error(1)
}

func (m *mockRoomRepo) ApplyTransition(ctx context.Context, room *rooms.Room, entry *rooms.HistoryEntry) error {
	args := m.Called(ctx, room, entry)
	return args.Error(0)
}

func (m *mockRoomRepo) WriteAssignment(ctx context.Context, hotelID, roomID, staffID uuid.UUID, assignedAt time.Time) error {
	args := m.Called(ctx, hotelID, roomID, staffID, assignedAt)
	return args.Error(0)
}

func (m *mockRoomRepo) ListHistory(ctx context.Context, hotelID, roomID uuid.UUID, limit int) ([]rooms.HistoryEntry, error) {
	args := m.Called(ctx, hotelID, roomID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]rooms.HistoryEntry), args.Error(1)
}

type mockStaffRepo struct {
	mock.Mock
}

func (m *mockStaffRepo) GetStaff(ctx context.Context, hotelID, staffID uuid.UUID) (*staff.Staff, error) {
	args := m.Called(ctx, hotelID, staffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staff.Staff), args.Error(1)
}

func (m *mockStaffRepo) GetStaffByName(ctx context.Context, hotelID uuid.UUID, name string) (*staff.Staff, error) {
	args := m.Called(ctx, hotelID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staff.Staff), args.Error(1)
}

func (m *mockStaffRepo) ListActiveHousekeepers(ctx context.Context, hotelID uuid.UUID) ([]staff.Staff, error) {
	args := m.Called(ctx, hotelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]staff.Staff), args.Error(1)
}

func (m *mockStaffRepo) ListRecentCompletedCleanings(ctx context.Context, hotelID, staffID uuid.UUID, limit int) ([]staff.CompletedCleaning, error) {
	args := m.Called(ctx, hotelID, staffID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]staff.CompletedCleaning), args.Error(1)
}

func (m *mockStaffRepo) RecordCompletedCleaning(ctx context.Context, record *staff.CompletedCleaning) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func batchRoom(hotelID uuid.UUID, number string, floor int, status rooms.Status, changedAgo time.Duration) rooms.Room {
	return rooms.Room{
		ID:               uuid.New(),
		HotelID:          hotelID,
		Number:           number,
		Floor:            floor,
		Type:             "standard",
		Status:           status,
		LastStatusChange: time.Now().Add(-changedAgo),
	}
}

func batchStaff(hotelID uuid.UUID, name string, efficiency float64) staff.Staff {
	return staff.Staff{
		ID:         uuid.New(),
		HotelID:    hotelID,
		Name:       name,
		Role:       rooms.RoleHousekeeper,
		Active:     true,
		Efficiency: efficiency,
	}
}

func newAllocator(roomRepo *mockRoomRepo, staffRepo *mockStaffRepo) *Service {
	return NewService(roomRepo, staffRepo, nil, zap.NewNop())
}

func TestAutoAssignNothingPending(t *testing.T) {
	hotelID := uuid.New()
	roomRepo := new(mockRoomRepo)
	staffRepo := new(mockStaffRepo)
	roomRepo.On("ListRoomsByStatus", mock.Anything, hotelID, pendingStatuses).
		Return([]rooms.Room{}, nil)

	out, err := newAllocator(roomRepo, staffRepo).AutoAssign(context.Background(), hotelID)

	assert.NoError(t, err)
	assert.Equal(t, "no rooms pending cleaning", out.Message)
	assert.False(t, out.NoCapacity)
	staffRepo.AssertNotCalled(t, "ListActiveHousekeepers", mock.Anything, mock.Anything)
}

func TestAutoAssignSkipsRoomsAlreadyAssigned(t *testing.T) {
	hotelID := uuid.New()
	assignee := uuid.New()
	taken := batchRoom(hotelID, "101", 1, rooms.StatusCheckout, time.Hour)
	taken.AssignedTo = &assignee

	roomRepo := new(mockRoomRepo)
	staffRepo := new(mockStaffRepo)
	roomRepo.On("ListRoomsByStatus", mock.Anything, hotelID, pendingStatuses).
		Return([]rooms.Room{taken}, nil)

	out, err := newAllocator(roomRepo, staffRepo).AutoAssign(context.Background(), hotelID)

	assert.NoError(t, err)
	assert.Equal(t, "no rooms pending cleaning", out.Message)
	roomRepo.AssertNotCalled(t, "WriteAssignment",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAutoAssignNoActiveHousekeepers(t *testing.T) {
	hotelID := uuid.New()
	roomRepo := new(mockRoomRepo)
	staffRepo := new(mockStaffRepo)
	roomRepo.On("ListRoomsByStatus", mock.Anything, hotelID, pendingStatuses).
		Return([]rooms.Room{batchRoom(hotelID, "101", 1, rooms.StatusCheckout, time.Hour)}, nil)
	staffRepo.On("ListActiveHousekeepers", mock.Anything, hotelID).
		Return([]staff.Staff{}, nil)

	out, err := newAllocator(roomRepo, staffRepo).AutoAssign(context.Background(), hotelID)

	assert.NoError(t, err)
	assert.True(t, out.NoCapacity)
	assert.Contains(t, out.Message, "no active housekeepers")
	assert.Empty(t, out.Assignments)
}

func TestAutoAssignGreedyCountsOwnAssignments(t *testing.T) {
	hotelID := uuid.New()
	ana := batchStaff(hotelID, "Ana", 90)
	luz := batchStaff(hotelID, "Luz", 85)

	// Two checkout rooms on different floors. Ana wins the first on raw
	// efficiency; her fresh assignment then drops her below Luz for the second.
	roomA := batchRoom(hotelID, "101", 1, rooms.StatusCheckout, 2*time.Hour)
	roomB := batchRoom(hotelID, "202", 2, rooms.StatusCheckout, time.Hour)

	roomRepo := new(mockRoomRepo)
	staffRepo := new(mockStaffRepo)
	roomRepo.On("ListRoomsByStatus", mock.Anything, hotelID, pendingStatuses).
		Return([]rooms.Room{roomA, roomB}, nil)
	roomRepo.On("ListRoomsByStatus", mock.Anything, hotelID, activeCleaningStatuses).
		Return([]rooms.Room{}, nil)
	staffRepo.On("ListActiveHousekeepers", mock.Anything, hotelID).
		Return([]staff.Staff{ana, luz}, nil)
	staffRepo.On("ListRecentCompletedCleanings", mock.Anything, hotelID, ana.ID, mock.Anything).
		Return([]staff.CompletedCleaning{}, nil)
	staffRepo.On("ListRecentCompletedCleanings", mock.Anything, hotelID, luz.ID, mock.Anything).
		Return([]staff.CompletedCleaning{}, nil)
	roomRepo.On("WriteAssignment", mock.Anything, hotelID, roomA.ID, ana.ID, mock.Anything).
		Return(nil)
	roomRepo.On("WriteAssignment", mock.Anything, hotelID, roomB.ID, luz.ID, mock.Anything).
		Return(nil)

	out, err := newAllocator(roomRepo, staffRepo).AutoAssign(context.Background(), hotelID)

	assert.NoError(t, err)
	assert.Len(t, out.Assignments, 2)
	assert.Equal(t, "Ana", out.Assignments[0].StaffName)
	assert.Equal(t, "101", out.Assignments[0].RoomNumber)
	assert.Equal(t, "Luz", out.Assignments[1].StaffName)
	assert.Equal(t, "202", out.Assignments[1].RoomNumber)
	assert.Equal(t, "assigned 2 of 2 pending rooms", out.Message)
	roomRepo.AssertExpectations(t)
}

func TestAutoAssignOrdersRoomsByPriority(t *testing.T) {
	hotelID := uuid.New()
	ana := batchStaff(hotelID, "Ana", 90)

	// The checkout room outranks the longer-waiting need_cleaning room.
	waiting := batchRoom(hotelID, "301", 3, rooms.StatusNeedCleaning, 30*time.Minute)
	checkout := batchRoom(hotelID, "102", 1, rooms.StatusCheckout, 5*time.Minute)

	roomRepo := new(mockRoomRepo)
	staffRepo := new(mockStaffRepo)
	roomRepo.On("ListRoomsByStatus", mock.Anything, hotelID, pendingStatuses).
		Return([]rooms.Room{waiting, checkout}, nil)
	roomRepo.On("ListRoomsByStatus", mock.Anything, hotelID, activeCleaningStatuses).
		Return([]rooms.Room{}, nil)
	staffRepo.On("ListActiveHousekeepers", mock.Anything, hotelID).
		Return([]staff.Staff{ana}, nil)
	staffRepo.On("ListRecentCompletedCleanings", mock.Anything, hotelID, ana.ID, mock.Anything).
		Return([]staff.CompletedCleaning{}, nil)
	roomRepo.On("WriteAssignment", mock.Anything, hotelID, mock.Anything, ana.ID, mock.Anything).
		Return(nil)

	out, err := newAllocator(roomRepo, staffRepo).AutoAssign(context.Background(), hotelID)

	assert.NoError(t, err)
	assert.Len(t, out.Assignments, 2)
	assert.Equal(t, "102", out.Assignments[0].RoomNumber)
	assert.Equal(t, "301", out.Assignments[1].RoomNumber)
}

func TestAutoAssignSkipsWhenBestScoreNotPositive(t *testing.T) {
	hotelID := uuid.New()
	rookie := batchStaff(hotelID, "Rookie", 0)
	room := batchRoom(hotelID, "101", 1, rooms.StatusCheckout, time.Hour)

	roomRepo := new(mockRoomRepo)
	staffRepo := new(mockStaffRepo)
	roomRepo.On("ListRoomsByStatus", mock.Anything, hotelID, pendingStatuses).
		Return([]rooms.Room{room}, nil)
	roomRepo.On("ListRoomsByStatus", mock.Anything, hotelID, activeCleaningStatuses).
		Return([]rooms.Room{}, nil)
	staffRepo.On("ListActiveHousekeepers", mock.Anything, hotelID).
		Return([]staff.Staff{rookie}, nil)
	staffRepo.On("ListRecentCompletedCleanings", mock.Anything, hotelID, rookie.ID, mock.Anything).
		Return([]staff.CompletedCleaning{}, nil)

	out, err := newAllocator(roomRepo, staffRepo).AutoAssign(context.Background(), hotelID)

	assert.NoError(t, err)
	assert.Empty(t, out.Assignments)
	assert.Len(t, out.Skipped, 1)
	assert.Equal(t, "best candidate scored at or below zero", out.Skipped[0].Reason)
	roomRepo.AssertNotCalled(t, "WriteAssignment",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAutoAssignSurvivesBrokenCleaningHistory(t *testing.T) {
	hotelID := uuid.New()
	broken := batchStaff(hotelID, "Broken", 95)
	ana := batchStaff(hotelID, "Ana", 80)
	room := batchRoom(hotelID, "101", 1, rooms.StatusCheckout, time.Hour)

	roomRepo := new(mockRoomRepo)
	staffRepo := new(mockStaffRepo)
	roomRepo.On("ListRoomsByStatus", mock.Anything, hotelID, pendingStatuses).
		Return([]rooms.Room{room}, nil)
	roomRepo.On("ListRoomsByStatus", mock.Anything, hotelID, activeCleaningStatuses).
		Return([]rooms.Room{}, nil)
	staffRepo.On("ListActiveHousekeepers", mock.Anything, hotelID).
		Return([]staff.Staff{broken, ana}, nil)
	staffRepo.On("ListRecentCompletedCleanings", mock.Anything, hotelID, broken.ID, mock.Anything).
		Return(nil, errors.New("connection reset"))
	staffRepo.On("ListRecentCompletedCleanings", mock.Anything, hotelID, ana.ID, mock.Anything).
		Return([]staff.CompletedCleaning{}, nil)
	roomRepo.On("WriteAssignment", mock.Anything, hotelID, room.ID, ana.ID, mock.Anything).
		Return(nil)

	out, err := newAllocator(roomRepo, staffRepo).AutoAssign(context.Background(), hotelID)

	assert.NoError(t, err)
	assert.Len(t, out.Assignments, 1)
	assert.Equal(t, "Ana", out.Assignments[0].StaffName)
}

func TestAutoAssignCommitFailureAbortsBatch(t *testing.T) {
	hotelID := uuid.New()
	ana := batchStaff(hotelID, "Ana", 90)
	roomA := batchRoom(hotelID, "101", 1, rooms.StatusCheckout, 2*time.Hour)
	roomB := batchRoom(hotelID, "102", 1, rooms.StatusCheckout, time.Hour)

	roomRepo := new(mockRoomRepo)
	staffRepo := new(mockStaffRepo)
	roomRepo.On("ListRoomsByStatus", mock.Anything, hotelID, pendingStatuses).
		Return([]rooms.Room{roomA, roomB}, nil)
	roomRepo.On("ListRoomsByStatus", mock.Anything, hotelID, activeCleaningStatuses).
		Return([]rooms.Room{}, nil)
	staffRepo.On("ListActiveHousekeepers", mock.Anything, hotelID).
		Return([]staff.Staff{ana}, nil)
	staffRepo.On("ListRecentCompletedCleanings", mock.Anything, hotelID, ana.ID, mock.Anything).
		Return([]staff.CompletedCleaning{}, nil)
	roomRepo.On("WriteAssignment", mock.Anything, hotelID, roomA.ID, ana.ID, mock.Anything).
		Return(errors.New("write timeout"))

	out, err := newAllocator(roomRepo, staffRepo).AutoAssign(context.Background(), hotelID)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "commit assignment for room 101")
	assert.Empty(t, out.Assignments)
	roomRepo.AssertNotCalled(t, "WriteAssignment",
		mock.Anything, hotelID, roomB.ID, ana.ID, mock.Anything)
}
