package notifications

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines the data access surface for notifications.
type Repository interface {
	CreateNotification(ctx context.Context, n *Notification) error
	ListRecent(ctx context.Context, hotelID uuid.UUID, limit int) ([]Notification, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewRepository creates a Postgres-backed notification repository.
func NewRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateNotification(ctx context.Context, n *Notification) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (
			id, hotel_id, room_id, room_number, status, notify_group,
			message, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		n.ID, n.HotelID, n.RoomID, n.RoomNumber, n.Status, n.Group,
		n.Message, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

func (r *postgresRepository) ListRecent(ctx context.Context, hotelID uuid.UUID, limit int) ([]Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []Notification
	err := r.db.SelectContext(ctx, &out, `
		SELECT id, hotel_id, room_id, room_number, status, notify_group,
		       message, created_at
		FROM notifications
		WHERE hotel_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, hotelID, limit)
	return out, err
}
