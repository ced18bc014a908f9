package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/auth-account-service/internal/authservice"
	"github.com/auth-account-service/internal/authservice/service"
	"github.com/auth-account-service/internal/config"
	"github.com/auth-account-service/internal/data/postgres"
	"github.com/auth-account-service/internal/logger"
	"github.com/auth-account-service/internal/platform/persistence"
)

func main() {
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	// Initialize configuration
	cfg, err := config.LoadConfig("authservice")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	// Initialize database (runs migrations, including the unique index on
	// username that backstops the availability checks)
	postgresDB, err := persistence.NewPostgresDB(appCtx, log, &cfg.Postgres)
	if err != nil {
		log.Error("Failed to initialize PostgreSQL", "error", err)
		os.Exit(1)
	}

	// Initialize repository and service
	accountRepo := postgres.NewAccountRepository(log, postgresDB)
	accountService := service.NewAccountService(accountRepo, postgresDB)

	// Initialize REST server
	server := authservice.NewServer(log, cfg, accountService, postgresDB.Ping)
	log.Info("REST server initialized")

	errChan := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// Wait for a shutdown signal or error
	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	cancelAppCtx()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	// Graceful shutdown sequence
	log.Info("Starting graceful shutdown...")

	if err = server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}

	postgresDB.Close()

	if serverErr != nil {
		log.Error("HTTP server shutdown with errors", "error", serverErr)
	}
	if err != nil {
		log.Error("Server shutdown completed with errors")
	} else {
		log.Info("Server shutdown completed successfully")
	}
}
