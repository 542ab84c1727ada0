package rooms

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines the data access surface for rooms and their history.
type Repository interface {
	GetRoom(ctx context.Context, hotelID, roomID uuid.UUID) (*Room, error)
	ListRoomsByStatus(ctx context.Context, hotelID uuid.UUID, statuses []Status) ([]Room, error)

	// ApplyTransition writes the room's new state and appends the history
	// entry in a single transaction. Neither is visible without the other.
	ApplyTransition(ctx context.Context, room *Room, entry *HistoryEntry) error

	// WriteAssignment sets assigned_to/assigned_at without touching status.
	// Idempotent for a repeated (roomID, assignedAt) pair.
	WriteAssignment(ctx context.Context, hotelID, roomID, staffID uuid.UUID, assignedAt time.Time) error

	ListHistory(ctx context.Context, hotelID, roomID uuid.UUID, limit int) ([]HistoryEntry, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewRepository creates a Postgres-backed room repository.
func NewRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

const roomColumns = `
	id, hotel_id, number, floor, room_type, status, assigned_to, assigned_at,
	last_status_change, cleaning_minutes, features, held_status, held_assignee,
	created_at, updated_at`

func (r *postgresRepository) GetRoom(ctx context.Context, hotelID, roomID uuid.UUID) (*Room, error) {
	var room Room
	query := fmt.Sprintf("SELECT %s FROM rooms WHERE hotel_id = $1 AND id = $2", roomColumns)
	err := r.db.GetContext(ctx, &room, query, hotelID, roomID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("room %s: %w", roomID, ErrRoomNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *postgresRepository) ListRoomsByStatus(ctx context.Context, hotelID uuid.UUID, statuses []Status) ([]Room, error) {
	raw := make([]string, len(statuses))
	for i, s := range statuses {
		raw[i] = string(s)
	}
	var out []Room
	query := fmt.Sprintf(`
		SELECT %s FROM rooms
		WHERE hotel_id = $1 AND status = ANY($2)
		ORDER BY last_status_change ASC, number ASC`, roomColumns)
	err := r.db.SelectContext(ctx, &out, query, hotelID, pq.Array(raw))
	return out, err
}

func (r *postgresRepository) ApplyTransition(ctx context.Context, room *Room, entry *HistoryEntry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transition tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE rooms SET
			status = $1,
			assigned_to = $2,
			assigned_at = $3,
			last_status_change = $4,
			cleaning_minutes = $5,
			held_status = $6,
			held_assignee = $7,
			updated_at = $4
		WHERE hotel_id = $8 AND id = $9 AND status = $10`,
		room.Status, room.AssignedTo, room.AssignedAt, room.LastStatusChange,
		room.CleaningMinutes, room.HeldStatus, room.HeldAssignee,
		room.HotelID, room.ID, entry.FromStatus)
	if err != nil {
		return fmt.Errorf("update room status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// The room moved under us since it was read.
		return fmt.Errorf("room %s no longer in status %s: %w",
			room.ID, entry.FromStatus, ErrInvalidTransition)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO room_history (
			id, room_id, hotel_id, from_status, to_status,
			acting_staff, acting_role, notes, recorded_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		entry.ID, entry.RoomID, entry.HotelID, entry.FromStatus, entry.ToStatus,
		entry.ActingStaff, entry.ActingRole, entry.Notes, entry.RecordedAt)
	if err != nil {
		return fmt.Errorf("append room history: %w", err)
	}

	return tx.Commit()
}

func (r *postgresRepository) WriteAssignment(ctx context.Context, hotelID, roomID, staffID uuid.UUID, assignedAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE rooms SET assigned_to = $1, assigned_at = $2, updated_at = $2
		WHERE hotel_id = $3 AND id = $4`,
		staffID, assignedAt, hotelID, roomID)
	if err != nil {
		return fmt.Errorf("write room assignment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("room %s: %w", roomID, ErrRoomNotFound)
	}
	return nil
}

func (r *postgresRepository) ListHistory(ctx context.Context, hotelID, roomID uuid.UUID, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []HistoryEntry
	err := r.db.SelectContext(ctx, &out, `
		SELECT id, room_id, hotel_id, from_status, to_status,
		       acting_staff, acting_role, notes, recorded_at
		FROM room_history
		WHERE hotel_id = $1 AND room_id = $2
		ORDER BY recorded_at DESC
		LIMIT $3`, hotelID, roomID, limit)
	return out, err
}
