package api

import (
	"github.com/labstack/echo/v4"

	"github.com/Rut304/polybot-sub000/internal/domain/models"
	"github.com/Rut304/polybot-sub000/internal/usecase"
	xhttp "github.com/Rut304/polybot-sub000/pkg/http"
	xlogger "github.com/Rut304/polybot-sub000/pkg/logger"
)

// SettingsHandler serves the bot configuration endpoints.
type SettingsHandler struct {
	logger *xlogger.Logger
	svc    *usecase.SettingsService
}

func NewSettingsHandler(logger *xlogger.Logger, svc *usecase.SettingsService) *SettingsHandler {
	return &SettingsHandler{logger: logger, svc: svc}
}

func (h *SettingsHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/settings", h.Get)
	g.PUT("/settings", h.Put)
}

func (h *SettingsHandler) Get(c echo.Context) error {
	settings, err := h.svc.Load(c.Request().Context())
	if err != nil {
		h.logger.Error("load settings error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, settings)
}

// Put stores the settings document verbatim. No defaults are applied on
// this path: a client turning a default-on switch off sends false, and
// filling defaults after binding would flip it back on.
func (h *SettingsHandler) Put(c echo.Context) error {
	req := &models.BotSettings{}
	if verr := xhttp.BindAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if err := h.svc.Save(c.Request().Context(), req); err != nil {
		h.logger.Error("save settings error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, req)
}
