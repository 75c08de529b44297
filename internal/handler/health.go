package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/persona-api/internal/middleware"
	"github.com/deppfellow/persona-api/internal/server"
	"github.com/labstack/echo/v4"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves /status for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
	db Pinger
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	h := &HealthHandler{Handler: NewHandler(s)}
	if s.DB != nil {
		h.db = s.DB.Pool
	}
	return h
}

// CheckHealth returns 200 when every enabled check passes and 503
// otherwise. Checks are configured under observability.health_checks.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	cfg := h.server.Config.Observability

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := map[string]any{}
	response := map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	isHealthy := true

	if cfg.HasCheck("database") {
		ctx, cancel := context.WithTimeout(c.Request().Context(), cfg.HealthChecks.Timeout)
		defer cancel()

		dbStart := time.Now()
		err := h.pingDatabase(ctx)
		elapsed := time.Since(dbStart)

		if err != nil {
			isHealthy = false
			checks["database"] = map[string]any{
				"status":        "unhealthy",
				"response_time": elapsed.String(),
				"error":         err.Error(),
			}

			logger.Error().Err(err).Dur("response_time", elapsed).Msg("database health check failed")
			h.recordHealthError("database", map[string]any{
				"error_type":       "database_unhealthy",
				"response_time_ms": elapsed.Milliseconds(),
				"error_message":    err.Error(),
			})
		} else {
			checks["database"] = map[string]any{
				"status":        "healthy",
				"response_time": elapsed.String(),
			}
			logger.Debug().Dur("response_time", elapsed).Msg("database health check passed")
		}
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
		h.recordHealthError("overall", map[string]any{
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

func (h *HealthHandler) pingDatabase(ctx context.Context) error {
	if h.db == nil {
		return fmt.Errorf("database not configured")
	}
	return h.db.Ping(ctx)
}

// recordHealthError sends a HealthCheckError custom event when New Relic
// is running.
func (h *HealthHandler) recordHealthError(checkType string, attrs map[string]any) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}

	attrs["check_type"] = checkType
	attrs["operation"] = "health_check"
	app.RecordCustomEvent("HealthCheckError", attrs)
}
