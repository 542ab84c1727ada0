package settings

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hotelia/room-ops/room-ops-backend/internal/assignment"
)

var _ assignment.WeightSource = (*Service)(nil)

// Service resolves assignment weights per hotel, merging stored overrides
// over the stock defaults.
type Service struct {
	repo Repository
}

// NewService creates a settings service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// WeightsFor returns the effective assignment weights for a hotel.
func (s *Service) WeightsFor(ctx context.Context, hotelID uuid.UUID) (assignment.Weights, error) {
	w := assignment.DefaultWeights()

	stored, err := s.repo.GetSettings(ctx, hotelID)
	if err != nil {
		return w, err
	}
	if stored == nil {
		return w, nil
	}

	if stored.CheckoutBonus != nil {
		w.CheckoutBonus = *stored.CheckoutBonus
	}
	if stored.WaitThresholdMinutes != nil {
		w.WaitThreshold = time.Duration(*stored.WaitThresholdMinutes) * time.Minute
	}
	if stored.WaitBonus != nil {
		w.WaitBonus = *stored.WaitBonus
	}
	if stored.VIPBonus != nil {
		w.VIPBonus = *stored.VIPBonus
	}
	if stored.WorkloadPenalty != nil {
		w.WorkloadPenalty = *stored.WorkloadPenalty
	}
	if stored.FloorBonus != nil {
		w.FloorBonus = *stored.FloorBonus
	}
	if stored.ExperienceBonus != nil {
		w.ExperienceBonus = *stored.ExperienceBonus
	}
	if stored.ExperienceLookback != nil {
		w.ExperienceLookback = *stored.ExperienceLookback
	}
	return w, nil
}

// Get returns the stored overrides for a hotel, which may be nil.
func (s *Service) Get(ctx context.Context, hotelID uuid.UUID) (*HotelSettings, error) {
	return s.repo.GetSettings(ctx, hotelID)
}

// Update stores a hotel's weight overrides.
func (s *Service) Update(ctx context.Context, settings *HotelSettings) error {
	settings.UpdatedAt = time.Now()
	return s.repo.UpsertSettings(ctx, settings)
}
