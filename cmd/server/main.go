package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/quantum-lab/internal/config"
	"github.com/aristath/quantum-lab/internal/database"
	"github.com/aristath/quantum-lab/internal/events"
	"github.com/aristath/quantum-lab/internal/modules/draws"
	"github.com/aristath/quantum-lab/internal/modules/entropy"
	"github.com/aristath/quantum-lab/internal/modules/fraud"
	"github.com/aristath/quantum-lab/internal/modules/kernel"
	"github.com/aristath/quantum-lab/internal/modules/pqc"
	"github.com/aristath/quantum-lab/internal/modules/sampler"
	"github.com/aristath/quantum-lab/internal/scheduler"
	"github.com/aristath/quantum-lab/internal/server"
	"github.com/aristath/quantum-lab/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(logger.Config{Level: "info"})
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().Msg("Starting Quantum Lab")

	// Initialize database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Wire services
	eventManager := events.NewManager(log)
	drawSampler := sampler.New(log)
	validator := entropy.NewValidator(cfg.EntropyThreshold)
	drawRepo := draws.NewRepository(db.Conn(), log)

	drawService := draws.NewService(draws.Config{
		Sampler:       drawSampler,
		Validator:     validator,
		Repo:          drawRepo,
		Events:        eventManager,
		MaxQubits:     cfg.MaxQubits,
		EntropyWindow: cfg.EntropyWindow,
		Log:           log,
	})

	kernelBuilder := kernel.NewBuilder(cfg.KernelWorkers, log)
	fraudService := fraud.NewService(kernelBuilder, eventManager, cfg.FraudDefaultNu, log)
	pqcService := pqc.NewService(eventManager, log)

	// Initialize scheduler
	sched := scheduler.New(log)
	sched.Start()
	defer sched.Stop()

	if cfg.EntropyAuditEnabled {
		auditJob := scheduler.NewEntropyAuditJob(drawRepo, drawService, eventManager, cfg.EntropyThreshold, log)
		if err := sched.AddJob("@every 5m", auditJob); err != nil {
			log.Fatal().Err(err).Msg("Failed to register entropy audit job")
		}
	}

	// Initialize HTTP server
	srv := server.New(server.Config{
		Port:         cfg.Port,
		Log:          log,
		Config:       cfg,
		DevMode:      cfg.DevMode,
		DrawsHandler: draws.NewHandler(drawService, log),
		DrawsService: drawService,
		FraudHandler: fraud.NewHandler(fraudService, log),
		PQCHandler:   pqc.NewHandler(pqcService, log),
	})

	// Start server in goroutine
	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
