package rooms

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TicketOpener opens a maintenance work item when a room enters maintenance.
// Implemented by the maintenance package; the transition service only knows
// this interface.
type TicketOpener interface {
	OpenTicket(ctx context.Context, req TicketRequest) error
}

// TicketRequest carries the context preserved when a room drops into
// maintenance, so the work item (and the later restore) know where the room
// came from.
type TicketRequest struct {
	HotelID      uuid.UUID
	RoomID       uuid.UUID
	RoomNumber   string
	Notes        string
	HeldStatus   *Status
	HeldAssignee *uuid.UUID
}

// Notifier fans out a state-entry notification to the staff group named by
// the state registry.
type Notifier interface {
	NotifyStateEntered(ctx context.Context, room *Room, def StateDefinition, actingRole Role)
}

// CompletedCleaningRecord captures one finished cleaning. The assignment
// scorer reads these back as the staff member's room-type experience history.
type CompletedCleaningRecord struct {
	HotelID     uuid.UUID
	RoomID      uuid.UUID
	RoomType    string
	StaffID     uuid.UUID
	Minutes     int
	CompletedAt time.Time
}

// CleaningRecorder persists finished cleanings. Implemented by the staff
// package.
type CleaningRecorder interface {
	RecordCleaning(ctx context.Context, rec CompletedCleaningRecord) error
}

// Service validates and applies room status transitions.
type Service struct {
	repo      Repository
	tickets   TicketOpener
	notifier  Notifier
	cleanings CleaningRecorder
	logger    *zap.Logger
	now       func() time.Time
}

// NewService creates a transition service. tickets, notifier and cleanings
// may be nil when the corresponding side effects are not wired.
func NewService(repo Repository, tickets TicketOpener, notifier Notifier, cleanings CleaningRecorder, logger *zap.Logger) *Service {
	return &Service{
		repo:      repo,
		tickets:   tickets,
		notifier:  notifier,
		cleanings: cleanings,
		logger:    logger,
		now:       time.Now,
	}
}

// ApplyTransition validates the requested change against the role flow table,
// applies side effects, and atomically persists the new status together with
// its history record.
func (s *Service) ApplyTransition(ctx context.Context, req TransitionRequest) (*Room, error) {
	if !req.RequestedStatus.Valid() {
		return nil, fmt.Errorf("status %q: %w", req.RequestedStatus, ErrInvalidTransition)
	}

	room, err := s.repo.GetRoom(ctx, req.HotelID, req.RoomID)
	if err != nil {
		return nil, err
	}

	// A caller acting on a stale view of the room must re-read, not have its
	// request silently rebased onto the new status.
	if req.CurrentStatus != "" && req.CurrentStatus != room.Status {
		return nil, fmt.Errorf("room %s is %s, not %s: %w",
			room.Number, room.Status, req.CurrentStatus, ErrInvalidTransition)
	}

	perms, ok := PermissionsFor(req.ActingRole)
	if !ok || !perms.CanChangeRoomStatus {
		return nil, fmt.Errorf("role %q: %w", req.ActingRole, ErrPermissionDenied)
	}

	from := room.Status
	to := req.RequestedStatus

	// Maintenance is reachable from anywhere for any role holding the change
	// capability. Kept as a guard clause, not a table entry, so audit logs
	// show which rule let the transition through.
	viaOverride := to == StatusMaintenance && !canFlow(req.ActingRole, from, to)
	if !viaOverride && !canFlow(req.ActingRole, from, to) {
		return nil, fmt.Errorf("role %s may not move %s from %s to %s: %w",
			req.ActingRole, room.Number, from, to, ErrInvalidTransition)
	}

	if fromDef, ok := StateFor(from); ok && fromDef.RequiresInspection && to == StatusAvailable {
		return nil, fmt.Errorf("%s must pass inspection before becoming available: %w",
			room.Number, ErrInvalidTransition)
	}

	now := s.now()
	updated := *room
	updated.Status = to
	updated.LastStatusChange = now
	updated.UpdatedAt = now

	var finished *CompletedCleaningRecord

	switch {
	case to == StatusMaintenance:
		if from.IsCleaning() {
			held := from
			updated.HeldStatus = &held
			updated.HeldAssignee = room.AssignedTo
		}
		updated.AssignedTo = nil
		updated.AssignedAt = nil

	case to.IsCleaning():
		// Cleaning states must carry an assignee; a housekeeper starting a
		// clean directly becomes the assignee.
		if updated.AssignedTo == nil {
			if req.ActingStaff == uuid.Nil {
				return nil, fmt.Errorf("cleaning state %s needs an assignee: %w", to, ErrStaffNotFound)
			}
			staffID := req.ActingStaff
			updated.AssignedTo = &staffID
			at := now
			updated.AssignedAt = &at
		}
		// LastStatusChange is the anchor for elapsed-time and duration math.
		updated.CleaningMinutes = nil

	case from.IsCleaning():
		// Cleaning finished: close out the duration from the cleaning anchor.
		minutes := int(now.Sub(room.LastStatusChange).Minutes())
		updated.CleaningMinutes = &minutes
		if room.AssignedTo != nil {
			finished = &CompletedCleaningRecord{
				HotelID:     room.HotelID,
				RoomID:      room.ID,
				RoomType:    room.Type,
				StaffID:     *room.AssignedTo,
				Minutes:     minutes,
				CompletedAt: now,
			}
		}
	}

	if from == StatusInspection && to == StatusAvailable {
		updated.AssignedTo = nil
		updated.AssignedAt = nil
	}

	entry := &HistoryEntry{
		ID:          uuid.New(),
		RoomID:      room.ID,
		HotelID:     room.HotelID,
		FromStatus:  from,
		ToStatus:    to,
		ActingStaff: req.ActingStaff,
		ActingRole:  req.ActingRole,
		Notes:       req.Notes,
		RecordedAt:  now,
	}

	if err := s.repo.ApplyTransition(ctx, &updated, entry); err != nil {
		return nil, err
	}

	s.logger.Info("room transition applied",
		zap.String("room", room.Number),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.String("role", string(req.ActingRole)),
		zap.Bool("maintenance_override", viaOverride))

	if to == StatusMaintenance && s.tickets != nil {
		ticket := TicketRequest{
			HotelID:      room.HotelID,
			RoomID:       room.ID,
			RoomNumber:   room.Number,
			Notes:        req.Notes,
			HeldStatus:   updated.HeldStatus,
			HeldAssignee: updated.HeldAssignee,
		}
		if err := s.tickets.OpenTicket(ctx, ticket); err != nil {
			s.logger.Error("failed to open maintenance ticket",
				zap.String("room", room.Number), zap.Error(err))
		}
	}

	if finished != nil && s.cleanings != nil {
		if err := s.cleanings.RecordCleaning(ctx, *finished); err != nil {
			s.logger.Error("failed to record completed cleaning",
				zap.String("room", room.Number), zap.Error(err))
		}
	}

	if def, ok := StateFor(to); ok && def.NotifyGroup != "" && s.notifier != nil {
		s.notifier.NotifyStateEntered(ctx, &updated, def, req.ActingRole)
	}

	return &updated, nil
}

// CompleteMaintenance moves a room out of maintenance, restoring the cleaning
// state and assignee preserved when maintenance began, or releasing the room
// as available when nothing was preserved.
func (s *Service) CompleteMaintenance(ctx context.Context, hotelID, roomID, actingStaff uuid.UUID, notes string) (*Room, error) {
	room, err := s.repo.GetRoom(ctx, hotelID, roomID)
	if err != nil {
		return nil, err
	}
	if room.Status != StatusMaintenance {
		return nil, fmt.Errorf("room %s is %s, not in maintenance: %w",
			room.Number, room.Status, ErrInvalidTransition)
	}

	now := s.now()
	updated := *room
	updated.LastStatusChange = now
	updated.UpdatedAt = now
	updated.HeldStatus = nil
	updated.HeldAssignee = nil

	if room.HeldStatus != nil {
		updated.Status = *room.HeldStatus
		updated.AssignedTo = room.HeldAssignee
		if room.HeldAssignee != nil {
			at := now
			updated.AssignedAt = &at
		}
	} else {
		updated.Status = StatusAvailable
		updated.AssignedTo = nil
		updated.AssignedAt = nil
	}

	entry := &HistoryEntry{
		ID:          uuid.New(),
		RoomID:      room.ID,
		HotelID:     room.HotelID,
		FromStatus:  StatusMaintenance,
		ToStatus:    updated.Status,
		ActingStaff: actingStaff,
		ActingRole:  RoleMaintenance,
		Notes:       notes,
		RecordedAt:  now,
	}

	if err := s.repo.ApplyTransition(ctx, &updated, entry); err != nil {
		return nil, err
	}

	s.logger.Info("maintenance completed",
		zap.String("room", room.Number),
		zap.String("restored_to", string(updated.Status)))

	if def, ok := StateFor(updated.Status); ok && def.NotifyGroup != "" && s.notifier != nil {
		s.notifier.NotifyStateEntered(ctx, &updated, def, RoleMaintenance)
	}

	return &updated, nil
}

// ListRoomsByStatus returns the hotel's rooms in any of the given statuses,
// filtered down to what the requesting role may view.
func (s *Service) ListRoomsByStatus(ctx context.Context, hotelID uuid.UUID, role Role, statuses []Status) ([]Room, error) {
	visible := make([]Status, 0, len(statuses))
	for _, st := range statuses {
		if CanViewStatus(role, st) {
			visible = append(visible, st)
		}
	}
	if len(visible) == 0 {
		return []Room{}, nil
	}
	return s.repo.ListRoomsByStatus(ctx, hotelID, visible)
}

// History returns the most recent transitions for a room, newest first.
func (s *Service) History(ctx context.Context, hotelID, roomID uuid.UUID, limit int) ([]HistoryEntry, error) {
	return s.repo.ListHistory(ctx, hotelID, roomID, limit)
}
