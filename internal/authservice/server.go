// Package authservice assembles the HTTP application: handlers, middleware,
// and server lifecycle around the account service.
package authservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/auth-account-service/internal/authservice/handler"
	"github.com/auth-account-service/internal/authservice/service"
	"github.com/auth-account-service/internal/authservice/validation"
	"github.com/auth-account-service/internal/config"
	"github.com/gin-gonic/gin"
)

// Server handles HTTP requests and manages the application's lifecycle
type Server struct {
	logger     *slog.Logger
	httpServer *http.Server
	httpRouter *gin.Engine
}

// NewServer creates and configures a new HTTP server with the given service.
// The validators are constructed here so both the availability probe and the
// upsert path share the same service-backed uniqueness rules. dbPing feeds
// the health endpoint and may be nil in tests.
func NewServer(log *slog.Logger, cfg *config.Config, accountService service.AccountService, dbPing func(ctx context.Context) error) *Server {
	if cfg.Application.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	httpRouter := gin.New()

	usernameValidator := validation.NewUsernameValidator(accountService)
	accountValidator := validation.NewAccountValidator(accountService)
	accountHandler := handler.NewAccountHandler(log, accountService, usernameValidator, accountValidator)

	setupRouter(log, httpRouter, accountHandler, dbPing)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      httpRouter,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &Server{
		logger:     log,
		httpServer: httpServer,
		httpRouter: httpRouter,
	}
}

// Start begins listening for HTTP requests
func (s *Server) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the HTTP server with a timeout
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, s.httpServer.WriteTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop HTTP server: %w", err)
	}

	return nil
}
