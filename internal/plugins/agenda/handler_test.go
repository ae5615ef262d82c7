package agenda

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"remindcal/internal/calendar"
)

type stubReminderBackend struct {
	reminders []calendar.Reminder
}

func (s *stubReminderBackend) List(ctx context.Context) ([]calendar.Reminder, error) {
	return s.reminders, nil
}

func (s *stubReminderBackend) Create(ctx context.Context, r calendar.Reminder) (calendar.Reminder, error) {
	r.ID = int64(len(s.reminders) + 1)
	s.reminders = append(s.reminders, r)
	return r, nil
}

func (s *stubReminderBackend) Update(ctx context.Context, id int64, r calendar.Reminder) error {
	return nil
}

func (s *stubReminderBackend) Delete(ctx context.Context, id int64) error {
	return nil
}

type stubHolidayBackend struct {
	holidays []calendar.Holiday
}

func (s *stubHolidayBackend) List(ctx context.Context, year int, countryCode string) ([]calendar.Holiday, error) {
	return s.holidays, nil
}

// testHandler wires a Handler over stub backends with a fixed "today" of
// 2025-06-15 and a one-year window.
func testHandler(t *testing.T, reminders []calendar.Reminder, holidays []calendar.Holiday) *Handler {
	t.Helper()
	sync := calendar.NewSyncer(
		&stubReminderBackend{reminders: reminders},
		&stubHolidayBackend{holidays: holidays},
		"LT",
	)
	if err := sync.RefreshHolidays(context.Background(), 2025); err != nil {
		t.Fatalf("seeding syncer: %v", err)
	}

	h := NewHandler(sync, 1)
	h.now = func() calendar.Date { return calendar.NewDate(2025, time.June, 15) }
	return h
}

// request runs one GET through a fresh Echo with the given path params.
func request(h echo.HandlerFunc, path string, names, values []string) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return rec, h(c)
}

func TestMonth_ClassifiesEveryDay(t *testing.T) {
	h := testHandler(t,
		[]calendar.Reminder{{ID: 1, Title: "standup", Description: "d",
			StartTime: "2025-06-20 09:00:00", EndTime: "2025-06-20 09:15:00"}},
		[]calendar.Holiday{{Date: "2025-06-24", LocalName: "Joninės", Name: "St. John's Day"}},
	)

	rec, err := request(h.Month, "/api/agenda/2025/6", []string{"year", "month"}, []string{"2025", "6"})
	if err != nil {
		t.Fatalf("Month returned error: %v", err)
	}

	var view MonthView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(view.Days) != 30 {
		t.Fatalf("June has %d days in the response, want 30", len(view.Days))
	}

	byDate := make(map[string]DayView)
	for _, d := range view.Days {
		byDate[d.Date] = d
	}

	if got := byDate["2025-06-15"].Status; got != "today" {
		t.Errorf("2025-06-15 status %q, want today", got)
	}
	if got := byDate["2025-06-14"].Status; got != "disabledPast" {
		t.Errorf("2025-06-14 status %q, want disabledPast", got)
	}
	if got := byDate["2025-06-20"].Status; got != "hasEvent" {
		t.Errorf("2025-06-20 status %q, want hasEvent", got)
	}
	if got := byDate["2025-06-24"]; got.Status != "hasEvent" || got.Holiday == nil {
		t.Errorf("2025-06-24 = %+v, want a holiday hasEvent cell", got)
	}
	if byDate["2025-06-14"].Editable {
		t.Error("a disabled day must not be editable")
	}
	if byDate["2025-06-20"].Reminders[0].ID != 1 {
		t.Error("the reminder chip must appear on its start date")
	}
}

func TestDay_InjectsHolidayMarker(t *testing.T) {
	h := testHandler(t,
		[]calendar.Reminder{{ID: 1, Title: "dentist", Description: "d",
			StartTime: "2025-06-24 09:00:00", EndTime: "2025-06-24 10:00:00"}},
		[]calendar.Holiday{{Date: "2025-06-24", LocalName: "Joninės", Name: "St. John's Day"}},
	)

	rec, err := request(h.Day, "/api/agenda/day/2025-06-24", []string{"date"}, []string{"2025-06-24"})
	if err != nil {
		t.Fatalf("Day returned error: %v", err)
	}

	var view ScheduleView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(view.Buckets) != calendar.HoursPerDay {
		t.Fatalf("got %d buckets, want %d", len(view.Buckets), calendar.HoursPerDay)
	}
	if view.Holiday == nil || view.Holiday.LocalName != "Joninės" {
		t.Fatalf("holiday = %+v, want Joninės", view.Holiday)
	}

	slot0 := view.Buckets[0].Reminders
	if len(slot0) != 1 || slot0[0].Title != "Joninės" || slot0[0].ID != 0 {
		t.Errorf("slot 0 = %+v, want the synthetic holiday marker", slot0)
	}
	if len(view.Buckets[9].Reminders) != 1 || view.Buckets[9].Reminders[0].ID != 1 {
		t.Errorf("slot 9 must still hold the real reminder")
	}
}

func TestDay_NoMarkerWithoutHoliday(t *testing.T) {
	h := testHandler(t, nil, nil)

	rec, err := request(h.Day, "/api/agenda/day/2025-06-20", []string{"date"}, []string{"2025-06-20"})
	if err != nil {
		t.Fatalf("Day returned error: %v", err)
	}

	var view ScheduleView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if view.Holiday != nil {
		t.Error("no holiday expected")
	}
	for _, b := range view.Buckets {
		if len(b.Reminders) != 0 {
			t.Fatalf("slot %d not empty on an empty day", b.Hour)
		}
	}
}

func TestDraft_ReturnsCanonicalTimestamps(t *testing.T) {
	h := testHandler(t, nil, nil)

	rec, err := request(h.Draft, "/api/agenda/day/2025-06-20/draft/9",
		[]string{"date", "hour"}, []string{"2025-06-20", "9"})
	if err != nil {
		t.Fatalf("Draft returned error: %v", err)
	}

	var draft calendar.Reminder
	if err := json.Unmarshal(rec.Body.Bytes(), &draft); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if draft.StartTime != "2025-06-20 09:00:00" || draft.EndTime != "2025-06-20 10:00:00" {
		t.Errorf("draft = %q..%q, want the one-hour slot", draft.StartTime, draft.EndTime)
	}
}

func TestDraft_RejectsPastDate(t *testing.T) {
	h := testHandler(t, nil, nil)

	_, err := request(h.Draft, "/api/agenda/day/2025-06-01/draft/9",
		[]string{"date", "hour"}, []string{"2025-06-01", "9"})
	if err == nil {
		t.Fatal("expected an error for a past date")
	}
}

func TestExport_ProducesICSFeed(t *testing.T) {
	h := testHandler(t,
		[]calendar.Reminder{{ID: 3, Title: "Team sync", Description: "weekly",
			StartTime: "2025-06-20 09:00:00", EndTime: "2025-06-20 09:30:00"}},
		nil,
	)
	if err := h.sync.Refresh(context.Background()); err != nil {
		t.Fatalf("refreshing syncer: %v", err)
	}

	rec, err := request(h.Export, "/api/agenda/export.ics", nil, nil)
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "BEGIN:VCALENDAR") || !strings.Contains(body, "END:VCALENDAR") {
		t.Fatal("response is not an iCalendar document")
	}
	if !strings.Contains(body, "SUMMARY:Team sync") {
		t.Error("feed must carry the reminder summary")
	}
	if !strings.Contains(body, "reminder-3@remindcal") {
		t.Error("feed must carry a stable per-reminder UID")
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.Contains(ct, "text/calendar") {
		t.Errorf("content type %q, want text/calendar", ct)
	}
}
