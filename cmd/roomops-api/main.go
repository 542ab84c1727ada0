package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"hotelia/room-ops/room-ops-backend/internal/assignment"
	"hotelia/room-ops/room-ops-backend/internal/auth"
	"hotelia/room-ops/room-ops-backend/internal/config"
	"hotelia/room-ops/room-ops-backend/internal/maintenance"
	"hotelia/room-ops/room-ops-backend/internal/notifications"
	"hotelia/room-ops/room-ops-backend/internal/rooms"
	"hotelia/room-ops/room-ops-backend/internal/settings"
	"hotelia/room-ops/room-ops-backend/internal/staff"
)

func main() {
	_ = godotenv.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	dbURL := cfg.Database.GetDatabaseURL()
	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxConnections)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	if err := runMigrations(cfg.Database.MigrationsPath, dbURL); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Repositories
	roomsRepo := rooms.NewRepository(db)
	staffRepo := staff.NewRepository(db)
	maintenanceRepo := maintenance.NewRepository(db)
	settingsRepo := settings.NewRepository(db)
	notificationsRepo := notifications.NewRepository(db)

	// Services
	notificationsService := notifications.NewService(notificationsRepo, logger)
	settingsService := settings.NewService(settingsRepo)
	authService := auth.NewService(staffRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	cleaningRecorder := staff.NewRecorder(staffRepo, logger)

	// The transition service needs a ticket opener and the maintenance
	// service needs the transition service; wire the opener in afterwards.
	roomsService := rooms.NewService(roomsRepo, nil, notificationsService, cleaningRecorder, logger)
	maintenanceService := maintenance.NewService(maintenanceRepo, roomsService, logger)
	roomsService = rooms.NewService(roomsRepo, maintenanceService, notificationsService, cleaningRecorder, logger)

	allocatorService := assignment.NewService(roomsRepo, staffRepo, settingsService, logger)

	// Handlers
	roomsHandler := rooms.NewHandler(roomsService, logger)
	assignmentHandler := assignment.NewHandler(allocatorService, logger)
	maintenanceHandler := maintenance.NewHandler(maintenanceService, logger)
	settingsHandler := settings.NewHandler(settingsService, logger)
	authHandler := auth.NewHandler(authService, logger)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	public := router.Group("/api/v1")
	authHandler.RegisterRoutes(public)

	api := router.Group("/api/v1")
	api.Use(auth.Middleware(authService))
	roomsHandler.RegisterRoutes(api)
	assignmentHandler.RegisterRoutes(api)
	maintenanceHandler.RegisterRoutes(api)
	settingsHandler.RegisterRoutes(api)

	srv := &http.Server{
		Addr:         cfg.Server.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("Starting room operations API", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}
}

func runMigrations(path, dbURL string) error {
	m, err := migrate.New(fmt.Sprintf("file://%s", path), dbURL)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
