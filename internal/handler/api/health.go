package api

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	xlogger "github.com/Rut304/polybot-sub000/pkg/logger"
)

// HealthCheck probes one dependency.
type HealthCheck struct {
	Name  string
	Probe func(context.Context) error
}

// HealthHandler reports dependency health for load balancers and alerts.
type HealthHandler struct {
	logger *xlogger.Logger
	checks []HealthCheck
}

func NewHealthHandler(logger *xlogger.Logger, checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{logger: logger, checks: checks}
}

func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)
	e.GET("/ready", h.Health)
}

type healthStatus struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
}

func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	status := healthStatus{Status: "ok", Components: map[string]string{}}
	for _, check := range h.checks {
		if err := check.Probe(ctx); err != nil {
			status.Status = "degraded"
			status.Components[check.Name] = err.Error()
			h.logger.Warn("health check failed",
				xlogger.String("component", check.Name),
				xlogger.Error(err))
			continue
		}
		status.Components[check.Name] = "ok"
	}

	code := http.StatusOK
	if status.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, status)
}
