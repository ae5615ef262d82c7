package calendar

import (
	"fmt"
	"strings"
	"time"
)

// MinDuration is the shortest reminder the form accepts.
const MinDuration = 15 * time.Minute

// ValidationCode identifies which rule a form submission broke.
type ValidationCode string

const (
	CodeMissingTitle       ValidationCode = "missing_title"
	CodeMissingDescription ValidationCode = "missing_description"
	CodeInvalidDate        ValidationCode = "invalid_date"
	CodeInvalidTime        ValidationCode = "invalid_time"
	CodeEndBeforeStart     ValidationCode = "end_before_start"
)

// ValidationError is a recoverable, user-facing form error. Exactly one is
// returned per failed Normalize call, in a fixed rule order.
type ValidationError struct {
	Code    ValidationCode
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// FormMode distinguishes creating a new reminder from editing a persisted
// one.
type FormMode int

const (
	ModeCreate FormMode = iota
	ModeEdit
)

// FormInput is a raw form submission. Date is "YYYY-MM-DD"; Start and End
// are free-form times of day. Existing is consulted only in ModeEdit.
type FormInput struct {
	Mode     FormMode
	Existing Reminder

	Title       string
	Description string
	Date        string
	Start       string
	End         string
}

var timeOfDayLayouts = []string{"15:04:05", "15:04"}

func parseTimeOfDay(d Date, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeOfDayLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return d.At(t.Hour(), t.Minute(), t.Second()), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time of day %q", s)
}

// Normalize validates a form submission and produces a canonical Reminder.
// Validation stops at the first broken rule, checked in a fixed order:
// title, description, date, start time, end time, minimum duration. On
// success both timestamps are canonical and share the submitted date; in
// edit mode the existing reminder's identity and audit fields carry over.
func Normalize(in FormInput) (Reminder, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Reminder{}, &ValidationError{
			Code: CodeMissingTitle, Field: "title",
			Message: "title is required",
		}
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return Reminder{}, &ValidationError{
			Code: CodeMissingDescription, Field: "description",
			Message: "description is required",
		}
	}
	d, err := ParseDate(strings.TrimSpace(in.Date))
	if err != nil {
		return Reminder{}, &ValidationError{
			Code: CodeInvalidDate, Field: "date",
			Message: "date must be a valid YYYY-MM-DD calendar date",
		}
	}
	start, err := parseTimeOfDay(d, in.Start)
	if err != nil {
		return Reminder{}, &ValidationError{
			Code: CodeInvalidTime, Field: "start",
			Message: "start time must be a valid time of day",
		}
	}
	end, err := parseTimeOfDay(d, in.End)
	if err != nil {
		return Reminder{}, &ValidationError{
			Code: CodeInvalidTime, Field: "end",
			Message: "end time must be a valid time of day",
		}
	}
	if end.Sub(start) < MinDuration {
		return Reminder{}, &ValidationError{
			Code: CodeEndBeforeStart, Field: "end",
			Message: fmt.Sprintf("end time must be at least %d minutes after start", int(MinDuration.Minutes())),
		}
	}

	r := Reminder{
		Title:       title,
		Description: description,
		StartTime:   FormatTimestamp(start),
		EndTime:     FormatTimestamp(end),
	}
	if in.Mode == ModeEdit {
		r.ID = in.Existing.ID
		r.Recurrence = in.Existing.Recurrence
		r.RecurrenceEndTime = in.Existing.RecurrenceEndTime
		r.CreatedDate = in.Existing.CreatedDate
		r.UpdatedDate = in.Existing.UpdatedDate
	}
	return r, nil
}
