package reminders

import (
	"time"

	"github.com/labstack/echo/v4"

	"remindcal/internal/middleware"
)

// RegisterRoutes sets up the reminder REST routes. Reads are open;
// mutations are token-guarded and rate limited.
func RegisterRoutes(e *echo.Echo, h *Handler, tokenHash string) {
	g := e.Group("/api/reminders")

	g.GET("", h.List)
	g.GET("/:id", h.Get)

	mutate := g.Group("",
		middleware.RequireToken(tokenHash),
		middleware.RateLimit(60, time.Minute),
	)
	mutate.POST("", h.Create)
	mutate.PUT("/:id", h.Update)
	mutate.DELETE("/:id", h.Delete)
}
