package calendar

import "sort"

// Index is the derived, rebuildable date-keyed lookup over holidays and
// reminders. It is a pure function of its inputs: rebuild it whenever the
// source lists change and swap the old one out. An Index is never mutated
// after BuildIndex returns, so a snapshot stays valid for in-flight reads
// while a replacement is being installed.
type Index struct {
	holidays  map[Date]Holiday
	reminders map[Date][]Reminder
	byID      map[int64]Reminder
}

// BuildIndex constructs an Index in O(holidays + reminders).
//
// Holidays are keyed by date, first-wins on duplicates (deterministic by
// source order). Reminders are grouped by the calendar date of their start
// timestamp and ordered by start time, with insertion order breaking ties.
// Entries whose timestamps fail to parse are skipped.
func BuildIndex(holidays []Holiday, reminders []Reminder) *Index {
	ix := &Index{
		holidays:  make(map[Date]Holiday, len(holidays)),
		reminders: make(map[Date][]Reminder),
		byID:      make(map[int64]Reminder, len(reminders)),
	}

	for _, h := range holidays {
		d, ok := h.Day()
		if !ok {
			continue
		}
		if _, exists := ix.holidays[d]; exists {
			continue
		}
		ix.holidays[d] = h
	}

	type keyed struct {
		rem  Reminder
		sort int64
	}
	grouped := make(map[Date][]keyed)
	for _, r := range reminders {
		t, err := ParseTimestamp(r.StartTime)
		if err != nil {
			continue
		}
		d := DateOf(t)
		grouped[d] = append(grouped[d], keyed{rem: r, sort: t.Unix()})
		if r.ID != 0 {
			ix.byID[r.ID] = r
		}
	}
	for d, ks := range grouped {
		sort.SliceStable(ks, func(i, j int) bool { return ks[i].sort < ks[j].sort })
		day := make([]Reminder, len(ks))
		for i, k := range ks {
			day[i] = k.rem
		}
		ix.reminders[d] = day
	}

	return ix
}

// Holiday returns the holiday on the given date, if any.
func (ix *Index) Holiday(d Date) (Holiday, bool) {
	h, ok := ix.holidays[d]
	return h, ok
}

// Reminders returns the ordered reminders starting on the given date.
// The result is an empty slice, never nil, when the date has none.
func (ix *Index) Reminders(d Date) []Reminder {
	rems, ok := ix.reminders[d]
	if !ok {
		return []Reminder{}
	}
	return rems
}

// All returns every indexed reminder, ordered by start date and then by
// start time within the day.
func (ix *Index) All() []Reminder {
	dates := make([]Date, 0, len(ix.reminders))
	for d := range ix.reminders {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	var all []Reminder
	for _, d := range dates {
		all = append(all, ix.reminders[d]...)
	}
	return all
}

// ReminderByID returns a persisted reminder by its backend-assigned ID.
func (ix *Index) ReminderByID(id int64) (Reminder, bool) {
	r, ok := ix.byID[id]
	return r, ok
}

// HasEvents reports whether the date carries a holiday or any reminder.
func (ix *Index) HasEvents(d Date) bool {
	if _, ok := ix.holidays[d]; ok {
		return true
	}
	return len(ix.reminders[d]) > 0
}
