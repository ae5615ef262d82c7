package holidays

import "github.com/labstack/echo/v4"

// RegisterRoutes sets up the holiday routes. Holidays are public read-only
// data, so no auth is applied.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/api/holidays/:year", h.List)
}
