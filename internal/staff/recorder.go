package staff

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hotelia/room-ops/room-ops-backend/internal/rooms"
)

var _ rooms.CleaningRecorder = (*Recorder)(nil)

// Recorder persists finished cleanings reported by the transition service.
// The rows it writes are the experience history the assignment scorer reads
// back through ListRecentCompletedCleanings.
type Recorder struct {
	repo   Repository
	logger *zap.Logger
}

// NewRecorder creates a cleaning recorder.
func NewRecorder(repo Repository, logger *zap.Logger) *Recorder {
	return &Recorder{repo: repo, logger: logger}
}

// RecordCleaning stores one completed cleaning.
func (r *Recorder) RecordCleaning(ctx context.Context, rec rooms.CompletedCleaningRecord) error {
	record := &CompletedCleaning{
		ID:          uuid.New(),
		HotelID:     rec.HotelID,
		StaffID:     rec.StaffID,
		RoomID:      rec.RoomID,
		RoomType:    rec.RoomType,
		Minutes:     rec.Minutes,
		CompletedAt: rec.CompletedAt,
	}
	if err := r.repo.RecordCompletedCleaning(ctx, record); err != nil {
		return err
	}

	r.logger.Info("completed cleaning recorded",
		zap.String("staff_id", rec.StaffID.String()),
		zap.String("room_type", rec.RoomType),
		zap.Int("minutes", rec.Minutes))
	return nil
}
