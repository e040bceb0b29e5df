package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"airtrack-service/internal/api"
	"airtrack-service/internal/infrastructure/config"
	"airtrack-service/internal/infrastructure/persistence"
	"airtrack-service/internal/infrastructure/scheduler"
	"airtrack-service/internal/infrastructure/settings"
	"airtrack-service/internal/interface/aviasales"
	"airtrack-service/internal/interface/notifier"
	gormRepo "airtrack-service/internal/interface/repository"
	"airtrack-service/internal/usecase"
	"airtrack-service/pkg/logger"
	"airtrack-service/pkg/metrics"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Airtrack Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Runtime-reloadable engine settings
	settingsStorage, err := settings.Load(cfg.SettingsFile, log)
	if err != nil {
		log.Fatal("Failed to load settings", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up PostgreSQL
	log.Info("Connecting to PostgreSQL")
	db, err := persistence.NewPostgresDB(cfg.PostgresURI)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}
	uow := gormRepo.NewGormUnitOfWork(db)

	// External collaborators
	ticketSource := aviasales.NewClient(cfg.AviasalesToken, cfg.Currency, cfg.SourceTimeout, log)
	userNotifier, err := notifier.NewTelegramNotifier(cfg.TelegramToken, cfg.NotifyTimeout, log)
	if err != nil {
		log.Fatal("Failed to create telegram notifier", "error", err)
	}

	// Core services
	m := metrics.NewMetrics("airtrack")
	tracker := usecase.NewTrackerService(uow, ticketSource, settingsStorage, log)
	updater := usecase.NewDirectionUpdater(uow, ticketSource, userNotifier, settingsStorage, log, m)

	// Start the polling scheduler in a goroutine
	var wg sync.WaitGroup
	sched := scheduler.NewScheduler(settingsStorage, updater, log)
	wg.Add(1)
	go func() {
		defer wg.Done()
		sched.Run(ctx)
	}()

	// Set up HTTP server for the chat frontend and metrics
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	api.NewHandler(tracker, log).Register(router)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown: stop taking requests, let the scheduler finish
	// its current direction, then exit
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel()
	wg.Wait()

	log.Info("Airtrack Service stopped")
}
