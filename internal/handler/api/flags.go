package api

import (
	"github.com/labstack/echo/v4"

	"github.com/Rut304/polybot-sub000/internal/domain/models"
	"github.com/Rut304/polybot-sub000/internal/usecase"
	xhttp "github.com/Rut304/polybot-sub000/pkg/http"
	xlogger "github.com/Rut304/polybot-sub000/pkg/logger"
)

// FlagsHandler serves the feature flag endpoints.
type FlagsHandler struct {
	logger *xlogger.Logger
	svc    *usecase.FlagService
}

func NewFlagsHandler(logger *xlogger.Logger, svc *usecase.FlagService) *FlagsHandler {
	return &FlagsHandler{logger: logger, svc: svc}
}

func (h *FlagsHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/flags", h.Resolve)
	g.GET("/flags/definitions", h.List)
	g.PUT("/flags", h.Upsert)
}

// Resolve returns the evaluated flag set for the requesting user.
func (h *FlagsHandler) Resolve(c echo.Context) error {
	req := &models.FlagsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	resolved, err := h.svc.Resolve(c.Request().Context(), req.UserID)
	if err != nil {
		h.logger.Error("resolve flags error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, resolved)
}

// List returns the raw flag definitions for the admin view.
func (h *FlagsHandler) List(c echo.Context) error {
	flags, err := h.svc.List(c.Request().Context())
	if err != nil {
		h.logger.Error("list flags error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, flags, int64(len(flags)))
}

// Upsert creates or updates one flag definition.
func (h *FlagsHandler) Upsert(c echo.Context) error {
	req := &models.FeatureFlag{}
	if err := c.Bind(req); err != nil {
		return xhttp.BadRequestResponse(c, err.Error())
	}

	if err := h.svc.Upsert(c.Request().Context(), *req); err != nil {
		h.logger.Error("upsert flag error", xlogger.Error(err))
		return xhttp.BadRequestResponse(c, err.Error())
	}
	return xhttp.SuccessResponse(c, req)
}
