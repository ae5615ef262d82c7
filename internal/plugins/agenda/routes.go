package agenda

import "github.com/labstack/echo/v4"

// RegisterRoutes sets up the agenda routes. All agenda views are reads
// over the index snapshot, so no auth or rate limiting is applied.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	g := e.Group("/api/agenda")

	g.GET("/:year/:month", h.Month)
	g.GET("/day/:date", h.Day)
	g.GET("/day/:date/draft/:hour", h.Draft)
	g.GET("/export.ics", h.Export)
}
