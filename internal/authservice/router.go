package authservice

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/auth-account-service/internal/authservice/handler"
	"github.com/auth-account-service/internal/authservice/middleware"
	"github.com/gin-gonic/gin"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	accountHandler *handler.AccountHandler,
	dbPing func(ctx context.Context) error,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CorrelationID())

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	{
		accounts := v1.Group("/accounts")
		{
			accounts.POST("", accountHandler.Upsert)
			accounts.GET("/availability", accountHandler.ValidateUsername)
			accounts.GET("/:id", accountHandler.GetByID)
		}
	}

	// Health check endpoint for monitoring. Reports degraded when the
	// database is unreachable, since every operation depends on it.
	r.GET("/health", func(c *gin.Context) {
		if dbPing != nil {
			if err := dbPing(c.Request.Context()); err != nil {
				logger.Error("Health check failed", "error", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "timestamp": time.Now().UTC()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
