package handler

import (
	"net/http"

	"userapi/internal/delivery/api/response"
	"userapi/internal/usecase"

	"github.com/labstack/echo/v4"
)

// HealthHandler serves liveness and the service banner.
type HealthHandler struct {
	healthUC usecase.HealthUsecase
}

// NewHealthHandler is the constructor for HealthHandler
func NewHealthHandler(healthUC usecase.HealthUsecase) *HealthHandler {
	return &HealthHandler{healthUC: healthUC}
}

// Welcome handles GET /
func (h *HealthHandler) Welcome(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{
		"message": "User management API is running",
	})
}

// HealthCheck handles GET /health. A store that cannot be pinged yields 503.
func (h *HealthHandler) HealthCheck(c echo.Context) error {
	if err := h.healthUC.Check(c.Request().Context()); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, map[string]string{
		"status": "ok",
	})
}
