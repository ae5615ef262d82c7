package calendar

import "fmt"

// HoursPerDay is the number of hour slots a day schedule is split into.
const HoursPerDay = 24

// HourBucket is one hour slot of a day schedule, holding the reminders
// that start within it.
type HourBucket struct {
	Hour      int        `json:"hour"`
	Reminders []Reminder `json:"reminders"`
}

// BucketDay partitions a day's reminders into exactly 24 hour buckets by
// start hour. Every bucket is present even when empty, with a non-nil
// reminder slice. Reminders whose start timestamp is unparseable or falls
// on a different date are dropped; a reminder spanning several hours
// appears only in its start slot. Relative order within a bucket follows
// the input order.
func BucketDay(d Date, reminders []Reminder) []HourBucket {
	buckets := make([]HourBucket, HoursPerDay)
	for h := range buckets {
		buckets[h] = HourBucket{Hour: h, Reminders: []Reminder{}}
	}
	for _, r := range reminders {
		day, ok := r.StartDay()
		if !ok || day != d {
			continue
		}
		h := r.StartHour()
		buckets[h].Reminders = append(buckets[h].Reminders, r)
	}
	return buckets
}

// DraftAt produces an unpersisted one-hour reminder draft for the given
// hour slot, or an error when the slot cannot accept a new reminder. The
// draft for hour 23 ends at 23:59:59 so both timestamps stay on the same
// calendar day.
func DraftAt(d Date, hour int, today Date, w Window) (Reminder, error) {
	if hour < 0 || hour >= HoursPerDay {
		return Reminder{}, fmt.Errorf("hour %d out of range", hour)
	}
	switch Classify(d, today, w, nil) {
	case StatusDisabledPast:
		return Reminder{}, fmt.Errorf("date %s is in the past", d)
	case StatusDisabledFuture:
		return Reminder{}, fmt.Errorf("date %s is beyond the browsing window", d)
	}
	start := d.At(hour, 0, 0)
	end := d.At(hour+1, 0, 0)
	if hour == HoursPerDay-1 {
		end = d.At(23, 59, 59)
	}
	return Reminder{
		StartTime: FormatTimestamp(start),
		EndTime:   FormatTimestamp(end),
	}, nil
}

// IsHolidayMarker reports whether the reminder is the synthetic marker the
// schedule view injects for a holiday: it sits on a holiday date and its
// title matches the holiday's display label. Markers are read-only.
func IsHolidayMarker(r Reminder, ix *Index) bool {
	if ix == nil {
		return false
	}
	d, ok := r.StartDay()
	if !ok {
		return false
	}
	h, ok := ix.Holiday(d)
	if !ok {
		return false
	}
	return r.Title == h.Label()
}

// CanEdit reports whether edit intent on the reminder should open a form.
// Holiday markers silently refuse.
func CanEdit(r Reminder, ix *Index) bool {
	return !IsHolidayMarker(r, ix)
}
