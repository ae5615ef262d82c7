// Package agenda is the read surface over the calendar core: the month
// grid the UI renders, the per-day hour schedule, hour-slot drafts, and
// the iCalendar export. Mutations go through the reminders plugin.
package agenda

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"remindcal/internal/apperror"
	"remindcal/internal/calendar"
)

// Handler processes HTTP requests for the agenda plugin. All views are
// computed against the current index snapshot and a browsing window
// derived from today's date at request time.
type Handler struct {
	sync        *calendar.Syncer
	windowYears int

	// now is swappable in tests.
	now func() calendar.Date
}

// NewHandler creates a new agenda Handler.
func NewHandler(sync *calendar.Syncer, windowYears int) *Handler {
	return &Handler{sync: sync, windowYears: windowYears, now: calendar.Today}
}

// DayView is one cell of the month grid.
type DayView struct {
	Date      string              `json:"date"`
	Status    string              `json:"status"`
	Editable  bool                `json:"editable"`
	Holiday   *calendar.Holiday   `json:"holiday,omitempty"`
	Reminders []calendar.Reminder `json:"reminders"`
}

// MonthView is the month grid response.
type MonthView struct {
	Year  int       `json:"year"`
	Month int       `json:"month"`
	Today string    `json:"today"`
	Days  []DayView `json:"days"`
}

// ScheduleView is the per-day hour schedule response.
type ScheduleView struct {
	Date     string                `json:"date"`
	Status   string                `json:"status"`
	Editable bool                  `json:"editable"`
	Holiday  *calendar.Holiday     `json:"holiday,omitempty"`
	Buckets  []calendar.HourBucket `json:"buckets"`
}

// Month returns the classified month grid.
// GET /api/agenda/:year/:month
func (h *Handler) Month(c echo.Context) error {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1 {
		return apperror.NewBadRequest("invalid year")
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		return apperror.NewBadRequest("invalid month")
	}

	today := h.now()
	w := calendar.WindowFrom(today, h.windowYears)
	ix := h.sync.Index()

	view := MonthView{Year: year, Month: month, Today: today.String()}
	first := calendar.NewDate(year, time.Month(month), 1)
	for d := first; d.Month == first.Month && d.Year == first.Year; d = d.AddDays(1) {
		view.Days = append(view.Days, dayView(d, today, w, ix))
	}
	return c.JSON(http.StatusOK, view)
}

// Day returns the 24-bucket hour schedule for one date. When the date is
// a holiday, a synthetic read-only marker occupies the first slot.
// GET /api/agenda/day/:date
func (h *Handler) Day(c echo.Context) error {
	d, err := calendar.ParseDate(c.Param("date"))
	if err != nil {
		return apperror.NewBadRequest("invalid date")
	}

	today := h.now()
	w := calendar.WindowFrom(today, h.windowYears)
	ix := h.sync.Index()
	status := calendar.Classify(d, today, w, ix)

	buckets := calendar.BucketDay(d, ix.Reminders(d))

	view := ScheduleView{
		Date:     d.String(),
		Status:   status.String(),
		Editable: status.Editable(),
		Buckets:  buckets,
	}
	if hol, ok := ix.Holiday(d); ok {
		view.Holiday = &hol
		marker := holidayMarker(d, hol)
		buckets[0].Reminders = append([]calendar.Reminder{marker}, buckets[0].Reminders...)
	}
	return c.JSON(http.StatusOK, view)
}

// Draft returns a one-hour reminder draft for an hour slot, pre-filled
// with canonical timestamps for the form.
// GET /api/agenda/day/:date/draft/:hour
func (h *Handler) Draft(c echo.Context) error {
	d, err := calendar.ParseDate(c.Param("date"))
	if err != nil {
		return apperror.NewBadRequest("invalid date")
	}
	hour, err := strconv.Atoi(c.Param("hour"))
	if err != nil {
		return apperror.NewBadRequest("invalid hour")
	}

	today := h.now()
	w := calendar.WindowFrom(today, h.windowYears)

	draft, err := calendar.DraftAt(d, hour, today, w)
	if err != nil {
		return apperror.NewValidation("", err.Error())
	}
	return c.JSON(http.StatusOK, draft)
}

// dayView builds one month grid cell.
func dayView(d, today calendar.Date, w calendar.Window, ix *calendar.Index) DayView {
	status := calendar.Classify(d, today, w, ix)
	view := DayView{
		Date:      d.String(),
		Status:    status.String(),
		Editable:  status.Editable(),
		Reminders: ix.Reminders(d),
	}
	if hol, ok := ix.Holiday(d); ok {
		view.Holiday = &hol
	}
	return view
}

// holidayMarker builds the synthetic all-day reminder the schedule shows
// for a holiday. It carries no id and is never editable.
func holidayMarker(d calendar.Date, hol calendar.Holiday) calendar.Reminder {
	return calendar.Reminder{
		Title:       hol.Label(),
		Description: hol.Name,
		StartTime:   calendar.FormatTimestamp(d.At(0, 0, 0)),
		EndTime:     calendar.FormatTimestamp(d.At(23, 59, 59)),
	}
}
