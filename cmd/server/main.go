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
	"go.uber.org/zap"

	"github.com/hotel-redisons/service-hotel/internal/application"
	"github.com/hotel-redisons/service-hotel/internal/auth"
	"github.com/hotel-redisons/service-hotel/internal/config"
	"github.com/hotel-redisons/service-hotel/internal/database"
	"github.com/hotel-redisons/service-hotel/internal/events"
	"github.com/hotel-redisons/service-hotel/internal/handler"
	"github.com/hotel-redisons/service-hotel/internal/health"
	"github.com/hotel-redisons/service-hotel/internal/kafka"
	"github.com/hotel-redisons/service-hotel/internal/logger"
	"github.com/hotel-redisons/service-hotel/internal/middleware"
	"github.com/hotel-redisons/service-hotel/internal/notify"
	"github.com/hotel-redisons/service-hotel/internal/repository"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-hotel")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-hotel",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig.DSN(), log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(
			&repository.RoomModel{},
			&repository.GuestModel{},
			&repository.BookingModel{},
			&repository.BookingGuestModel{},
		); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(cfg.DBConfig.URL(), "migrations", log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(
		cfg.JWT.Secret,
		15*time.Minute,
		7*24*time.Hour,
	)

	// Initialize Kafka producer and event publisher
	kafkaProducer := kafka.NewProducer(cfg.Kafka.Brokers, log)
	defer func() { _ = kafkaProducer.Close() }()
	publisher := events.NewPublisher(kafkaProducer, log)

	// Initialize mailer
	mailer := notify.NewMailer(cfg.SMTP, log)

	// Initialize stores and application services
	store := repository.NewStore(db)
	reportStore := repository.NewGormReportRepository(db)
	resolver := application.NewGuestResolver()

	bookingService := application.NewBookingService(store, resolver, publisher, mailer, log)
	roomService := application.NewRoomService(store, log)
	guestService := application.NewGuestService(store)
	reportService := application.NewReportService(reportStore)

	// Initialize HTTP handlers
	bookingHandler := handler.NewBookingHandler(bookingService)
	roomHandler := handler.NewRoomHandler(roomService)
	guestHandler := handler.NewGuestHandler(guestService)
	reportHandler := handler.NewReportHandler(reportService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(db, "service-hotel")
	healthHandler.RegisterRoutes(router)

	// Register authenticated API routes
	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(jwtManager))
	bookingHandler.RegisterRoutes(api)
	roomHandler.RegisterRoutes(api)
	guestHandler.RegisterRoutes(api)
	reportHandler.RegisterRoutes(api)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-hotel...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-hotel stopped")
}
