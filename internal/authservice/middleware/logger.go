package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger middleware logs one line per request with method, path, status,
// latency, and client details. Health probes are not logged. The correlation
// ID is read after the chain runs, so registration order relative to
// CorrelationID does not matter.
func Logger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if path == "/health" {
			return
		}

		latency := time.Since(start)
		statusCode := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		requestLogger := logger
		if correlationID := GetCorrelationID(c); correlationID != "" {
			requestLogger = logger.With("correlation_id", correlationID)
		}

		requestLogger.Info("HTTP request",
			"method", c.Request.Method,
			"path", path,
			"status", statusCode,
			"latency", latency,
			"client_ip", c.ClientIP(),
			"user_agent", c.Request.UserAgent(),
		)
	}
}
