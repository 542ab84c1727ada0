package staff

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"hotelia/room-ops/room-ops-backend/internal/rooms"
)

// Repository defines the data access surface for staff records.
type Repository interface {
	GetStaff(ctx context.Context, hotelID, staffID uuid.UUID) (*Staff, error)
	GetStaffByName(ctx context.Context, hotelID uuid.UUID, name string) (*Staff, error)
	ListActiveHousekeepers(ctx context.Context, hotelID uuid.UUID) ([]Staff, error)
	ListRecentCompletedCleanings(ctx context.Context, hotelID, staffID uuid.UUID, limit int) ([]CompletedCleaning, error)
	RecordCompletedCleaning(ctx context.Context, record *CompletedCleaning) error
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewRepository creates a Postgres-backed staff repository.
func NewRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

const staffColumns = `
	id, hotel_id, name, role, active, efficiency, avg_cleaning_minutes,
	access_code, created_at, updated_at`

func (r *postgresRepository) GetStaff(ctx context.Context, hotelID, staffID uuid.UUID) (*Staff, error) {
	var s Staff
	query := fmt.Sprintf("SELECT %s FROM staff WHERE hotel_id = $1 AND id = $2", staffColumns)
	err := r.db.GetContext(ctx, &s, query, hotelID, staffID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("staff %s: %w", staffID, rooms.ErrStaffNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *postgresRepository) GetStaffByName(ctx context.Context, hotelID uuid.UUID, name string) (*Staff, error) {
	var s Staff
	query := fmt.Sprintf("SELECT %s FROM staff WHERE hotel_id = $1 AND name = $2", staffColumns)
	err := r.db.GetContext(ctx, &s, query, hotelID, name)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("staff %q: %w", name, rooms.ErrStaffNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *postgresRepository) ListActiveHousekeepers(ctx context.Context, hotelID uuid.UUID) ([]Staff, error) {
	var out []Staff
	query := fmt.Sprintf(`
		SELECT %s FROM staff
		WHERE hotel_id = $1 AND role = $2 AND active = true
		ORDER BY name ASC`, staffColumns)
	err := r.db.SelectContext(ctx, &out, query, hotelID, rooms.RoleHousekeeper)
	return out, err
}

func (r *postgresRepository) ListRecentCompletedCleanings(ctx context.Context, hotelID, staffID uuid.UUID, limit int) ([]CompletedCleaning, error) {
	if limit <= 0 {
		limit = 20
	}
	var out []CompletedCleaning
	err := r.db.SelectContext(ctx, &out, `
		SELECT id, hotel_id, staff_id, room_id, room_type, minutes, completed_at
		FROM completed_cleanings
		WHERE hotel_id = $1 AND staff_id = $2
		ORDER BY completed_at DESC
		LIMIT $3`, hotelID, staffID, limit)
	return out, err
}

func (r *postgresRepository) RecordCompletedCleaning(ctx context.Context, record *CompletedCleaning) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO completed_cleanings (
			id, hotel_id, staff_id, room_id, room_type, minutes, completed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		record.ID, record.HotelID, record.StaffID, record.RoomID,
		record.RoomType, record.Minutes, record.CompletedAt)
	if err != nil {
		return fmt.Errorf("record completed cleaning: %w", err)
	}
	return nil
}
