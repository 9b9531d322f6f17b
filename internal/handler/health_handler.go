package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"c2panel/internal/db"
	apperrors "c2panel/internal/errors"
	"c2panel/internal/logging"
)

const healthTimeout = 3 * time.Second

// HealthHandler reports database health.
type HealthHandler struct {
	db  *gorm.DB
	log logging.Logger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(gormDB *gorm.DB, log logging.Logger) *HealthHandler {
	return &HealthHandler{db: gormDB, log: log}
}

// Check godoc
// @Summary Health check
// @Description Pings the database and checks that the required tables exist.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} errors.ErrorResponse
// @Router /healthz [get]
func (h *HealthHandler) Check(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
	defer cancel()

	if err := db.CheckHealth(ctx, h.db); err != nil {
		h.log.Error(ctx, "database health check failed", "error", err)
		return echo.NewHTTPError(http.StatusServiceUnavailable, apperrors.ErrorResponse{
			Error: "database unavailable",
			Code:  "DB_UNHEALTHY",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
