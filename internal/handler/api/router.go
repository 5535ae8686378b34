package api

import (
	"github.com/labstack/echo/v4"

	xhttp "github.com/Rut304/polybot-sub000/pkg/http"
)

// Router composes all API handlers into one xhttp.Handler.
type Router struct {
	handlers []xhttp.Handler
}

func NewRouter(handlers ...xhttp.Handler) *Router {
	return &Router{handlers: handlers}
}

func (r *Router) RegisterRoutes(e *echo.Echo) {
	for _, h := range r.handlers {
		h.RegisterRoutes(e)
	}
}
