package holidays

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"remindcal/internal/apperror"
	"remindcal/internal/calendar"
)

// Handler processes HTTP requests for the holidays plugin.
type Handler struct {
	svc     HolidayService
	country string
}

// NewHandler creates a new holidays Handler bound to the configured country.
func NewHandler(svc HolidayService, countryCode string) *Handler {
	return &Handler{svc: svc, country: countryCode}
}

// List returns the public holidays for one year.
// GET /api/holidays/:year
func (h *Handler) List(c echo.Context) error {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1900 || year > 3000 {
		return apperror.NewBadRequest("invalid year")
	}

	holidays, err := h.svc.List(c.Request().Context(), year, h.country)
	if err != nil {
		return apperror.NewBackend("fetching holidays failed", err)
	}
	if holidays == nil {
		holidays = []calendar.Holiday{}
	}
	return c.JSON(http.StatusOK, holidays)
}
