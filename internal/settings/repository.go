package settings

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines the data access surface for hotel settings.
type Repository interface {
	GetSettings(ctx context.Context, hotelID uuid.UUID) (*HotelSettings, error)
	UpsertSettings(ctx context.Context, s *HotelSettings) error
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewRepository creates a Postgres-backed settings repository.
func NewRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetSettings(ctx context.Context, hotelID uuid.UUID) (*HotelSettings, error) {
	var s HotelSettings
	err := r.db.GetContext(ctx, &s, `
		SELECT hotel_id, checkout_bonus, wait_threshold_minutes, wait_bonus,
		       vip_bonus, workload_penalty, floor_bonus, experience_bonus,
		       experience_lookback, updated_at
		FROM hotel_settings WHERE hotel_id = $1`, hotelID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *postgresRepository) UpsertSettings(ctx context.Context, s *HotelSettings) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO hotel_settings (
			hotel_id, checkout_bonus, wait_threshold_minutes, wait_bonus,
			vip_bonus, workload_penalty, floor_bonus, experience_bonus,
			experience_lookback, updated_at
		) VALUES (
			:hotel_id, :checkout_bonus, :wait_threshold_minutes, :wait_bonus,
			:vip_bonus, :workload_penalty, :floor_bonus, :experience_bonus,
			:experience_lookback, :updated_at
		)
		ON CONFLICT (hotel_id) DO UPDATE SET
			checkout_bonus = EXCLUDED.checkout_bonus,
			wait_threshold_minutes = EXCLUDED.wait_threshold_minutes,
			wait_bonus = EXCLUDED.wait_bonus,
			vip_bonus = EXCLUDED.vip_bonus,
			workload_penalty = EXCLUDED.workload_penalty,
			floor_bonus = EXCLUDED.floor_bonus,
			experience_bonus = EXCLUDED.experience_bonus,
			experience_lookback = EXCLUDED.experience_lookback,
			updated_at = EXCLUDED.updated_at`, s)
	return err
}
