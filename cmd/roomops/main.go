package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hotelia/room-ops/room-ops-backend/internal/assignment"
	"hotelia/room-ops/room-ops-backend/internal/config"
	"hotelia/room-ops/room-ops-backend/internal/rooms"
	"hotelia/room-ops/room-ops-backend/internal/settings"
	"hotelia/room-ops/room-ops-backend/internal/staff"
)

// Exit codes let schedulers and scripts distinguish recoverable rejections
// from infrastructure failures.
const (
	exitOK                = 0
	exitInfrastructure    = 1
	exitInvalidTransition = 2
	exitPermissionDenied  = 3
	exitNotFound          = 4
)

var (
	configPath string
	staffID    string
)

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "roomops",
		Short: "Hotel room operations tooling",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config.json", "path to config file")

	transitionCmd := &cobra.Command{
		Use:   "transition <hotelId> <roomId> <role> <toStatus> [notes]",
		Short: "Apply a room status transition",
		Args:  cobra.RangeArgs(4, 5),
		Run:   runTransition,
	}
	transitionCmd.Flags().StringVar(&staffID, "staff", "", "acting staff id")

	autoAssignCmd := &cobra.Command{
		Use:   "auto-assign <hotelId>",
		Short: "Run the housekeeping auto-assignment batch for a hotel",
		Args:  cobra.ExactArgs(1),
		Run:   runAutoAssign,
	}

	root.AddCommand(transitionCmd, autoAssignCmd)
	if err := root.Execute(); err != nil {
		os.Exit(exitInfrastructure)
	}
}

func connect() (*sqlx.DB, *zap.Logger, error) {
	logger, _ := zap.NewDevelopment()
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	db, err := sqlx.Connect("postgres", cfg.Database.GetDatabaseURL())
	if err != nil {
		return nil, nil, err
	}
	return db, logger, nil
}

func runTransition(cmd *cobra.Command, args []string) {
	hotelID, err := uuid.Parse(args[0])
	if err != nil {
		fail(exitNotFound, "invalid hotel id: %v", err)
	}
	roomID, err := uuid.Parse(args[1])
	if err != nil {
		fail(exitNotFound, "invalid room id: %v", err)
	}
	role, err := rooms.ParseRole(args[2])
	if err != nil {
		fail(exitPermissionDenied, "%v", err)
	}
	toStatus, err := rooms.ParseStatus(args[3])
	if err != nil {
		fail(exitInvalidTransition, "%v", err)
	}
	notes := ""
	if len(args) == 5 {
		notes = args[4]
	}

	actingStaff := uuid.Nil
	if staffID != "" {
		actingStaff, err = uuid.Parse(staffID)
		if err != nil {
			fail(exitNotFound, "invalid staff id: %v", err)
		}
	}

	db, logger, err := connect()
	if err != nil {
		fail(exitInfrastructure, "%v", err)
	}
	defer db.Close()

	recorder := staff.NewRecorder(staff.NewRepository(db), logger)
	service := rooms.NewService(rooms.NewRepository(db), nil, nil, recorder, logger)
	room, err := service.ApplyTransition(context.Background(), rooms.TransitionRequest{
		HotelID:         hotelID,
		RoomID:          roomID,
		ActingStaff:     actingStaff,
		ActingRole:      role,
		RequestedStatus: toStatus,
		Notes:           notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, rooms.ErrRoomNotFound), errors.Is(err, rooms.ErrStaffNotFound):
			fail(exitNotFound, "%v", err)
		case errors.Is(err, rooms.ErrPermissionDenied):
			fail(exitPermissionDenied, "%v", err)
		case errors.Is(err, rooms.ErrInvalidTransition):
			fail(exitInvalidTransition, "%v", err)
		default:
			fail(exitInfrastructure, "%v", err)
		}
	}

	fmt.Printf("room %s: %s\n", room.Number, room.Status)
}

func runAutoAssign(cmd *cobra.Command, args []string) {
	hotelID, err := uuid.Parse(args[0])
	if err != nil {
		fail(exitInfrastructure, "invalid hotel id: %v", err)
	}

	db, logger, err := connect()
	if err != nil {
		fail(exitInfrastructure, "%v", err)
	}
	defer db.Close()

	settingsService := settings.NewService(settings.NewRepository(db))
	allocator := assignment.NewService(
		rooms.NewRepository(db), staff.NewRepository(db), settingsService, logger)

	outcome, err := allocator.AutoAssign(context.Background(), hotelID)
	if err != nil {
		fail(exitInfrastructure, "%v", err)
	}

	fmt.Println(outcome.Message)
	for _, a := range outcome.Assignments {
		fmt.Printf("  %s -> %s (%s)\n", a.RoomNumber, a.StaffName, a.Reason)
	}
	for _, s := range outcome.Skipped {
		fmt.Printf("  %s skipped: %s\n", s.RoomNumber, s.Reason)
	}
}

func fail(code int, format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(code)
}
