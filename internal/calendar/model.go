// Package calendar is the scheduling core of remindcal: a pure,
// transport-agnostic logic layer that classifies calendar dates against a
// browsing window, buckets a day's reminders into hour slots, normalizes
// reminder form input, and keeps an in-memory index in sync with the
// backend of record. Nothing in this package touches HTTP or SQL; those
// live in internal/plugins and are injected through the Backend interfaces
// in sync.go.
package calendar

// Reminder is a user-owned calendar event. Start and end timestamps are
// carried in the canonical "YYYY-MM-DD HH:mm:ss" textual form used on the
// wire and in the database; both must fall on the same calendar day.
//
// Recurrence and RecurrenceEndTime are forward-compatible schema only:
// they are stored and round-tripped but never expanded.
type Reminder struct {
	ID                int64   `json:"id,omitempty"`
	Title             string  `json:"title"`
	Description       string  `json:"description"`
	StartTime         string  `json:"startTime"`
	EndTime           string  `json:"endTime"`
	Recurrence        *string `json:"recurrence,omitempty"`
	RecurrenceEndTime *string `json:"recurrenceEndTime,omitempty"`

	// CreatedDate and UpdatedDate are set by the backend of record and are
	// read-only to this package.
	CreatedDate *string `json:"createdDate,omitempty"`
	UpdatedDate *string `json:"updatedDate,omitempty"`
}

// Persisted returns true once the backend of record has assigned an ID.
func (r Reminder) Persisted() bool {
	return r.ID != 0
}

// StartDay returns the calendar date of the reminder's start timestamp.
// ok is false when StartTime is not in canonical form.
func (r Reminder) StartDay() (Date, bool) {
	t, err := ParseTimestamp(r.StartTime)
	if err != nil {
		return Date{}, false
	}
	return DateOf(t), true
}

// StartHour returns the hour slot (0-23) of the reminder's start timestamp,
// or -1 when StartTime is not in canonical form.
func (r Reminder) StartHour() int {
	t, err := ParseTimestamp(r.StartTime)
	if err != nil {
		return -1
	}
	return t.Hour()
}

// Holiday is a read-only public holiday entry for a single calendar date,
// in the shape returned by the Nager.Date API.
type Holiday struct {
	Date        string `json:"date"` // "YYYY-MM-DD"
	LocalName   string `json:"localName"`
	Name        string `json:"name"`
	CountryCode string `json:"countryCode,omitempty"`
	Global      bool   `json:"global,omitempty"`
}

// Label returns the display label: LocalName when set, Name otherwise.
func (h Holiday) Label() string {
	if h.LocalName != "" {
		return h.LocalName
	}
	return h.Name
}

// Day returns the holiday's calendar date. ok is false when the Date field
// is not a valid "YYYY-MM-DD" string.
func (h Holiday) Day() (Date, bool) {
	d, err := ParseDate(h.Date)
	if err != nil {
		return Date{}, false
	}
	return d, true
}
