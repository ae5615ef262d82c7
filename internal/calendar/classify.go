package calendar

// DayStatus is the visual/behavioral classification of a calendar cell.
type DayStatus int

const (
	// StatusToday marks the current date. It outranks everything else.
	StatusToday DayStatus = iota
	// StatusDisabledPast marks dates before the browsing window.
	StatusDisabledPast
	// StatusDisabledFuture marks dates beyond the browsing window.
	StatusDisabledFuture
	// StatusHasEvent marks in-window dates carrying a holiday or reminder.
	StatusHasEvent
	// StatusPlain marks in-window dates with nothing on them.
	StatusPlain
)

// String renders the status in the wire form the UI consumes.
func (s DayStatus) String() string {
	switch s {
	case StatusToday:
		return "today"
	case StatusDisabledPast:
		return "disabledPast"
	case StatusDisabledFuture:
		return "disabledFuture"
	case StatusHasEvent:
		return "hasEvent"
	default:
		return "plain"
	}
}

// Editable reports whether reminders may be created or edited on a date
// with this status. Only the disabled pair is read-only.
func (s DayStatus) Editable() bool {
	return s != StatusDisabledPast && s != StatusDisabledFuture
}

// Classify assigns exactly one status to a date. Priority order: today,
// then out-of-window (past before future), then event presence, then plain.
// A nil index is treated as empty, so classification is total.
func Classify(d, today Date, w Window, ix *Index) DayStatus {
	if d == today {
		return StatusToday
	}
	if d.Before(w.Start) {
		return StatusDisabledPast
	}
	if d.After(w.End) {
		return StatusDisabledFuture
	}
	if ix != nil && ix.HasEvents(d) {
		return StatusHasEvent
	}
	return StatusPlain
}
