package assignment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hotelia/room-ops/room-ops-backend/internal/rooms"
	"hotelia/room-ops/room-ops-backend/internal/staff"
)

// WeightSource resolves the scoring weights for a hotel. Implemented by the
// settings package; a nil source means stock weights.
type WeightSource interface {
	WeightsFor(ctx context.Context, hotelID uuid.UUID) (Weights, error)
}

// pendingStatuses are the room states that make a room eligible for
// auto-assignment.
var pendingStatuses = []rooms.Status{rooms.StatusNeedCleaning, rooms.StatusCheckout}

// activeCleaningStatuses feed the per-staff workload view.
var activeCleaningStatuses = []rooms.Status{
	rooms.StatusCleaningOccupied,
	rooms.StatusCleaningCheckout,
	rooms.StatusCleaningTouch,
}

// Service runs the auto-assignment batch: rank pending rooms, score
// candidates, commit greedy best matches.
type Service struct {
	roomsRepo rooms.Repository
	staffRepo staff.Repository
	weights   WeightSource
	logger    *zap.Logger
	now       func() time.Time
}

// NewService creates an allocator service. weights may be nil to use
// DefaultWeights for every hotel.
func NewService(roomsRepo rooms.Repository, staffRepo staff.Repository, weights WeightSource, logger *zap.Logger) *Service {
	return &Service{
		roomsRepo: roomsRepo,
		staffRepo: staffRepo,
		weights:   weights,
		logger:    logger,
		now:       time.Now,
	}
}

// AutoAssign runs one allocation batch for a hotel. The run is sequential and
// deterministic; callers must not run two batches for the same hotel
// concurrently. Per-room scoring problems are logged and skipped; only
// fetch/commit failures abort the batch.
func (s *Service) AutoAssign(ctx context.Context, hotelID uuid.UUID) (*Outcome, error) {
	out := &Outcome{Assignments: []Assignment{}, Skipped: []SkippedRoom{}}

	pendingAll, err := s.roomsRepo.ListRoomsByStatus(ctx, hotelID, pendingStatuses)
	if err != nil {
		return nil, fmt.Errorf("fetch pending rooms: %w", err)
	}
	// Rooms already holding an assignee are waiting on their housekeeper,
	// not on the allocator. This also makes back-to-back runs idempotent.
	pending := pendingAll[:0]
	for _, room := range pendingAll {
		if room.AssignedTo == nil {
			pending = append(pending, room)
		}
	}
	if len(pending) == 0 {
		out.Message = "no rooms pending cleaning"
		return out, nil
	}

	housekeepers, err := s.staffRepo.ListActiveHousekeepers(ctx, hotelID)
	if err != nil {
		return nil, fmt.Errorf("fetch active housekeepers: %w", err)
	}
	if len(housekeepers) == 0 {
		out.NoCapacity = true
		out.Message = fmt.Sprintf("%d rooms pending but no active housekeepers", len(pending))
		return out, nil
	}

	weights := s.resolveWeights(ctx, hotelID)

	// Workload view for the whole run: active cleaning assignments at batch
	// start, grown locally as this run commits. Not re-fetched mid-batch.
	cleaningRooms, err := s.roomsRepo.ListRoomsByStatus(ctx, hotelID, activeCleaningStatuses)
	if err != nil {
		return nil, fmt.Errorf("fetch active cleanings: %w", err)
	}
	workload := make(map[uuid.UUID][]rooms.Room, len(housekeepers))
	for _, room := range cleaningRooms {
		if room.AssignedTo != nil {
			workload[*room.AssignedTo] = append(workload[*room.AssignedTo], room)
		}
	}

	recentByStaff := make(map[uuid.UUID][]staff.CompletedCleaning, len(housekeepers))
	recentFailed := make(map[uuid.UUID]bool)

	ranked := PrioritizeRooms(pending, weights, s.now())
	for _, rp := range ranked {
		room := rp.Room

		best, bestReason, scored := s.pickBest(ctx, &room, housekeepers, workload, recentByStaff, recentFailed, weights)
		if !scored {
			out.Skipped = append(out.Skipped, SkippedRoom{
				RoomID: room.ID, RoomNumber: room.Number,
				Reason: "no scorable candidates",
			})
			continue
		}
		if best == nil {
			out.Skipped = append(out.Skipped, SkippedRoom{
				RoomID: room.ID, RoomNumber: room.Number,
				Reason: "best candidate scored at or below zero",
			})
			continue
		}

		assignedAt := s.now()
		if err := s.roomsRepo.WriteAssignment(ctx, hotelID, room.ID, best.ID, assignedAt); err != nil {
			return out, fmt.Errorf("commit assignment for room %s: %w", room.Number, err)
		}

		workload[best.ID] = append(workload[best.ID], room)
		out.Assignments = append(out.Assignments, Assignment{
			RoomID:     room.ID,
			RoomNumber: room.Number,
			StaffID:    best.ID,
			StaffName:  best.Name,
			Reason:     fmt.Sprintf("priority: %s | staff: %s", rp.Reason, bestReason),
			AssignedAt: assignedAt,
		})

		s.logger.Info("room assigned",
			zap.String("room", room.Number),
			zap.String("staff", best.Name),
			zap.Float64("priority", rp.Score))
	}

	out.Message = fmt.Sprintf("assigned %d of %d pending rooms", len(out.Assignments), len(pending))
	return out, nil
}

// pickBest scores every candidate for the room and returns the best-scoring
// one, or nil when the best score is not positive. scored is false when no
// candidate could be evaluated at all.
func (s *Service) pickBest(
	ctx context.Context,
	room *rooms.Room,
	housekeepers []staff.Staff,
	workload map[uuid.UUID][]rooms.Room,
	recentByStaff map[uuid.UUID][]staff.CompletedCleaning,
	recentFailed map[uuid.UUID]bool,
	weights Weights,
) (best *staff.Staff, bestReason string, scored bool) {
	bestScore := 0.0

	for i := range housekeepers {
		candidate := &housekeepers[i]
		if !IsCandidate(candidate) {
			continue
		}

		recent, ok := recentByStaff[candidate.ID]
		if !ok && !recentFailed[candidate.ID] {
			fetched, err := s.staffRepo.ListRecentCompletedCleanings(ctx, room.HotelID, candidate.ID, weights.ExperienceLookback)
			if err != nil {
				// One bad staff record must not sink the batch.
				s.logger.Warn("skipping candidate, cleaning history unavailable",
					zap.String("staff", candidate.Name), zap.Error(err))
				recentFailed[candidate.ID] = true
				continue
			}
			recentByStaff[candidate.ID] = fetched
			recent = fetched
		}
		if recentFailed[candidate.ID] {
			continue
		}

		score, reason := ScoreStaff(candidate, room, workload[candidate.ID], recent, weights)
		scored = true
		if score > bestScore {
			bestScore = score
			best = candidate
			bestReason = fmt.Sprintf("%s (score %.0f)", reason, score)
		}
	}
	return best, bestReason, scored
}

func (s *Service) resolveWeights(ctx context.Context, hotelID uuid.UUID) Weights {
	if s.weights == nil {
		return DefaultWeights()
	}
	w, err := s.weights.WeightsFor(ctx, hotelID)
	if err != nil {
		s.logger.Warn("falling back to default assignment weights",
			zap.String("hotel_id", hotelID.String()), zap.Error(err))
		return DefaultWeights()
	}
	return w
}
