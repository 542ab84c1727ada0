package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"hotelia/room-ops/room-ops-backend/internal/assignment"
	"hotelia/room-ops/room-ops-backend/internal/config"
	"hotelia/room-ops/room-ops-backend/internal/rooms"
	"hotelia/room-ops/room-ops-backend/internal/settings"
	"hotelia/room-ops/room-ops-backend/internal/staff"
)

// The assignment worker runs the auto-assign batch for each configured hotel
// on a cron schedule. One worker process per deployment keeps batch runs
// serialized per hotel.
func main() {
	_ = godotenv.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}
	if cfg.Assignment.Schedule == "" {
		logger.Fatal("No assignment schedule configured")
	}

	hotels := make([]uuid.UUID, 0, len(cfg.Assignment.Hotels))
	for _, raw := range cfg.Assignment.Hotels {
		id, err := uuid.Parse(raw)
		if err != nil {
			logger.Fatal("Invalid hotel id in config", zap.String("hotel", raw))
		}
		hotels = append(hotels, id)
	}
	if len(hotels) == 0 {
		logger.Fatal("No hotels configured for the assignment worker")
	}

	db, err := sqlx.Connect("postgres", cfg.Database.GetDatabaseURL())
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	roomsRepo := rooms.NewRepository(db)
	staffRepo := staff.NewRepository(db)
	settingsService := settings.NewService(settings.NewRepository(db))
	allocator := assignment.NewService(roomsRepo, staffRepo, settingsService, logger)

	run := func() {
		ctx := context.Background()
		for _, hotelID := range hotels {
			outcome, err := allocator.AutoAssign(ctx, hotelID)
			if err != nil {
				logger.Error("auto-assign batch failed",
					zap.String("hotel_id", hotelID.String()), zap.Error(err))
				continue
			}
			logger.Info("auto-assign batch finished",
				zap.String("hotel_id", hotelID.String()),
				zap.Int("assigned", len(outcome.Assignments)),
				zap.Int("skipped", len(outcome.Skipped)),
				zap.Bool("no_capacity", outcome.NoCapacity),
				zap.String("message", outcome.Message))
		}
	}

	c := cron.New()
	if _, err := c.AddFunc(cfg.Assignment.Schedule, run); err != nil {
		logger.Fatal("Invalid assignment schedule",
			zap.String("schedule", cfg.Assignment.Schedule), zap.Error(err))
	}

	logger.Info("Starting assignment worker",
		zap.String("schedule", cfg.Assignment.Schedule),
		zap.Int("hotels", len(hotels)))
	c.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Stopping assignment worker")
	<-c.Stop().Done()
}
