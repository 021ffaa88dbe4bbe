package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "github.com/Sama2511/LJM-sub000/internal/api/http"
	"github.com/Sama2511/LJM-sub000/internal/config"
	"github.com/Sama2511/LJM-sub000/internal/logger"
	"github.com/Sama2511/LJM-sub000/internal/repository"
	"github.com/Sama2511/LJM-sub000/internal/repository/memory"
	"github.com/Sama2511/LJM-sub000/internal/repository/postgres"
	"github.com/Sama2511/LJM-sub000/internal/security"
	"github.com/Sama2511/LJM-sub000/internal/service"
	"github.com/Sama2511/LJM-sub000/internal/storage"
)

// entityStore is the repository set shared by the postgres and memory stores.
type entityStore struct {
	repository.UserRepository
	repository.EventRepository
	repository.VolunteerRequestRepository
	repository.VolunteerFormRepository
	repository.NotificationRepository
	httpapi.Pinger
}

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting volunteer backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())

	// Initialize the entity store
	store, closeStore, err := openStore(cfg)
	if err != nil {
		logger.Error("Failed to open store", "driver", cfg.Database.Driver, "error", err)
		log.Fatalf("Failed to open store: %v", err)
	}
	defer closeStore()

	// Initialize Storage Service
	logger.Info("Using local object storage", "upload_dir", cfg.Storage.UploadDir)
	files, err := storage.NewLocalStorage(storage.Config{
		Type:         cfg.Storage.Type,
		Dir:          cfg.Storage.UploadDir,
		BaseURL:      cfg.Storage.BaseURL,
		AllowedTypes: cfg.Storage.AllowedTypes,
		MaxBytes:     cfg.MaxUploadBytes(),
	})
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)

	// Initialize Email Service
	if cfg.SendGrid.APIKey == "" {
		logger.Warn("SendGrid API key not set; contact messages will only be logged")
	}
	emailSvc := service.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	// Initialize Services
	svcs := httpapi.Services{
		Volunteer:    service.NewVolunteerService(store.EventRepository, store.VolunteerRequestRepository, store.VolunteerFormRepository),
		Review:       service.NewReviewService(store.VolunteerRequestRepository, store.VolunteerFormRepository, store.NotificationRepository),
		Event:        service.NewEventService(store.EventRepository, store.VolunteerRequestRepository, store.NotificationRepository, files),
		Admin:        service.NewAdminService(store.UserRepository, store.VolunteerFormRepository, store.EventRepository, store.VolunteerRequestRepository),
		Notification: service.NewNotificationService(store.NotificationRepository),
		Dashboard:    service.NewDashboardService(store.UserRepository, store.VolunteerFormRepository, store.EventRepository, store.VolunteerRequestRepository),
		Contact:      service.NewContactService(emailSvc, cfg.SendGrid.ContactInbox, cfg.SendGrid.FromName),
	}

	// Set up HTTP server
	router := httpapi.NewRouter(svcs, httpapi.NewAuthMiddleware(tokenManager, store.UserRepository), files, store, httpapi.RouterConfig{
		RateLimitPerMinute: cfg.HTTP.RateLimitPerMinute,
		MaxUploadBytes:     cfg.MaxUploadBytes(),
	})
	srv := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
}

// openStore connects the configured store and returns a function releasing it.
func openStore(cfg *config.Config) (*entityStore, func(), error) {
	if cfg.Database.Driver == "memory" {
		logger.Warn("Using in-memory store; data is lost on restart")
		mem := memory.NewStore()
		return &entityStore{
			UserRepository:             mem.UserRepository,
			EventRepository:            mem.EventRepository,
			VolunteerRequestRepository: mem.VolunteerRequestRepository,
			VolunteerFormRepository:    mem.VolunteerFormRepository,
			NotificationRepository:     mem.NotificationRepository,
			Pinger:                     mem,
		}, func() {}, nil
	}

	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	logger.Info("Database connection established")

	pg := postgres.NewStore(db)
	return &entityStore{
		UserRepository:             pg.UserRepository,
		EventRepository:            pg.EventRepository,
		VolunteerRequestRepository: pg.VolunteerRequestRepository,
		VolunteerFormRepository:    pg.VolunteerFormRepository,
		NotificationRepository:     pg.NotificationRepository,
		Pinger:                     pg,
	}, func() { db.Close() }, nil
}
