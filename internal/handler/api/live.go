package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/Rut304/polybot-sub000/internal/domain/models"
	"github.com/Rut304/polybot-sub000/internal/usecase"
	xhttp "github.com/Rut304/polybot-sub000/pkg/http"
	xlogger "github.com/Rut304/polybot-sub000/pkg/logger"
)

// LiveHandler pushes dashboard snapshots over a websocket so open tabs
// track the bot without polling.
type LiveHandler struct {
	logger   *xlogger.Logger
	svc      *usecase.DashboardService
	upgrader websocket.Upgrader
}

func NewLiveHandler(logger *xlogger.Logger, svc *usecase.DashboardService) *LiveHandler {
	return &LiveHandler{
		logger: logger,
		svc:    svc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// The dashboard frontend is served from a different origin in
			// development.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (h *LiveHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/live", h.Live)
}

// liveFrame is one websocket push.
type liveFrame struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

func (h *LiveHandler) Live(c echo.Context) error {
	req := &models.LiveRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", xlogger.Error(err))
		return err
	}
	defer conn.Close()

	ctx := c.Request().Context()
	interval := time.Duration(req.Interval) * time.Second

	// Reader goroutine drains control frames and signals disconnect.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if err := h.push(c, conn, *req); err != nil {
		return nil
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-done:
			return nil
		case <-ticker.C:
			if err := h.push(c, conn, *req); err != nil {
				return nil
			}
		}
	}
}

func (h *LiveHandler) push(c echo.Context, conn *websocket.Conn, req models.LiveRequest) error {
	res, err := h.svc.Analytics(c.Request().Context(), models.AnalyticsRequest{
		Mode:          req.Mode,
		LookbackHours: 24,
		Days:          1,
	})
	if err != nil {
		h.logger.Error("live analytics error", xlogger.Error(err))
		// Keep the socket open; the next tick may succeed.
		return nil
	}

	conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if err := conn.WriteJSON(liveFrame{
		Type:      "stats",
		Timestamp: time.Now().UTC(),
		Data:      res,
	}); err != nil {
		h.logger.Debug("live client gone", xlogger.Error(err))
		return err
	}
	return nil
}
