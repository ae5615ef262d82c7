package agenda

import (
	"fmt"
	"net/http"

	ical "github.com/arran4/golang-ical"
	"github.com/labstack/echo/v4"

	"remindcal/internal/calendar"
)

// Export serves every reminder as an iCalendar feed, so the calendar can
// be subscribed to from external clients. Holidays are not included; they
// come from the subscriber's own holiday calendars.
// GET /api/agenda/export.ics
func (h *Handler) Export(c echo.Context) error {
	ix := h.sync.Index()

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//remindcal//reminders//EN")

	for _, rem := range ix.All() {
		if !rem.Persisted() {
			continue
		}
		start, err := calendar.ParseTimestamp(rem.StartTime)
		if err != nil {
			continue
		}
		end, err := calendar.ParseTimestamp(rem.EndTime)
		if err != nil {
			continue
		}

		ev := cal.AddEvent(fmt.Sprintf("reminder-%d@remindcal", rem.ID))
		ev.SetStartAt(start)
		ev.SetEndAt(end)
		ev.SetSummary(rem.Title)
		ev.SetDescription(rem.Description)
		if rem.CreatedDate != nil {
			if created, err := calendar.ParseTimestamp(*rem.CreatedDate); err == nil {
				ev.SetCreatedTime(created)
			}
		}
		if rem.UpdatedDate != nil {
			if updated, err := calendar.ParseTimestamp(*rem.UpdatedDate); err == nil {
				ev.SetModifiedAt(updated)
			}
		}
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/calendar; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="reminders.ics"`)
	return c.String(http.StatusOK, cal.Serialize())
}
