package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hotelia/room-ops/room-ops-backend/internal/rooms"
)

var _ rooms.Notifier = (*Service)(nil)

// Service records state-entry notifications for the staff group named by the
// state registry. Actual device delivery belongs to the notification
// gateway, not this core.
type Service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a notification service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// NotifyStateEntered records a notification for the state's notify group.
// Failures are logged, never propagated: a transition must not fail because
// its notification could not be recorded.
func (s *Service) NotifyStateEntered(ctx context.Context, room *rooms.Room, def rooms.StateDefinition, actingRole rooms.Role) {
	n := &Notification{
		ID:         uuid.New(),
		HotelID:    room.HotelID,
		RoomID:     room.ID,
		RoomNumber: room.Number,
		Status:     def.Key,
		Group:      def.NotifyGroup,
		Message:    fmt.Sprintf("Room %s is now %s", room.Number, def.Label),
		CreatedAt:  s.now(),
	}

	if err := s.repo.CreateNotification(ctx, n); err != nil {
		s.logger.Error("failed to record notification",
			zap.String("room", room.Number),
			zap.String("group", string(def.NotifyGroup)),
			zap.Error(err))
		return
	}

	s.logger.Info("notification recorded",
		zap.String("room", room.Number),
		zap.String("status", string(def.Key)),
		zap.String("group", string(def.NotifyGroup)))
}

// Recent lists the hotel's latest notifications, newest first.
func (s *Service) Recent(ctx context.Context, hotelID uuid.UUID, limit int) ([]Notification, error) {
	return s.repo.ListRecent(ctx, hotelID, limit)
}
