package api

import (
	"github.com/labstack/echo/v4"

	"github.com/Rut304/polybot-sub000/internal/analytics"
	"github.com/Rut304/polybot-sub000/internal/domain/models"
	"github.com/Rut304/polybot-sub000/internal/usecase"
	xhttp "github.com/Rut304/polybot-sub000/pkg/http"
	xlogger "github.com/Rut304/polybot-sub000/pkg/logger"
)

// DashboardHandler serves the analytics and trade-log endpoints.
type DashboardHandler struct {
	logger *xlogger.Logger
	svc    *usecase.DashboardService
}

func NewDashboardHandler(logger *xlogger.Logger, svc *usecase.DashboardService) *DashboardHandler {
	return &DashboardHandler{logger: logger, svc: svc}
}

func (h *DashboardHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/analytics", h.Analytics)
	g.GET("/analytics/performance", h.series(func(r *analytics.Result) interface{} { return r.Performance }))
	g.GET("/analytics/daily", h.series(func(r *analytics.Result) interface{} { return r.Daily }))
	g.GET("/analytics/cumulative", h.series(func(r *analytics.Result) interface{} { return r.Cumulative }))
	g.GET("/analytics/strategies", h.series(func(r *analytics.Result) interface{} { return r.Strategies }))
	g.GET("/analytics/platforms", h.series(func(r *analytics.Result) interface{} { return r.Platforms }))
	g.GET("/trades", h.Trades)
}

// series adapts one field of the aggregation result into its own endpoint
// so chart widgets can fetch only what they render.
func (h *DashboardHandler) series(pick func(*analytics.Result) interface{}) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := &models.AnalyticsRequest{}
		if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
			return xhttp.BadRequestResponse(c, verr)
		}

		res, err := h.svc.Analytics(c.Request().Context(), *req)
		if err != nil {
			h.logger.Error("analytics usecase error", xlogger.Error(err))
			return xhttp.AppErrorResponse(c, err)
		}
		if res == nil {
			return xhttp.SuccessResponse(c, nil)
		}
		return xhttp.SuccessResponse(c, pick(res))
	}
}

// Analytics returns the aggregated dashboard metrics for one window. Data
// is null when the window holds no trades and no summaries exist; the
// frontend renders that as an empty state.
func (h *DashboardHandler) Analytics(c echo.Context) error {
	req := &models.AnalyticsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.svc.Analytics(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("analytics usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

// Trades returns the raw trade window for the trade log table.
func (h *DashboardHandler) Trades(c echo.Context) error {
	req := &models.TradesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	trades, err := h.svc.Trades(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("trades usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, trades, int64(len(trades)))
}
