package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// ReminderBackend is the backend of record for reminders. Implementations
// live outside this package (MariaDB in production, mocks in tests).
type ReminderBackend interface {
	List(ctx context.Context) ([]Reminder, error)
	Create(ctx context.Context, r Reminder) (Reminder, error)
	Update(ctx context.Context, id int64, r Reminder) error
	Delete(ctx context.Context, id int64) error
}

// HolidayBackend supplies the public holidays for one year and country.
type HolidayBackend interface {
	List(ctx context.Context, year int, countryCode string) ([]Holiday, error)
}

// Syncer keeps an in-memory Index consistent with the backend of record.
// Reads take a lock-free snapshot via Index(); each mutation runs as a
// unit (mutate, then refresh) serialized by a mutex. A failed mutation
// aborts the unit before the refresh; a failed refresh after a successful
// mutation keeps the previous snapshot installed and is logged, not
// returned, because the mutation itself landed.
type Syncer struct {
	backend  ReminderBackend
	holidays HolidayBackend
	country  string

	mu   sync.Mutex
	idx  atomic.Pointer[Index]
	hols atomic.Pointer[[]Holiday]
}

// NewSyncer builds a Syncer with an empty index installed, so reads are
// valid before the first refresh.
func NewSyncer(backend ReminderBackend, holidays HolidayBackend, countryCode string) *Syncer {
	s := &Syncer{backend: backend, holidays: holidays, country: countryCode}
	s.idx.Store(BuildIndex(nil, nil))
	empty := []Holiday{}
	s.hols.Store(&empty)
	return s
}

// Index returns the current snapshot. The returned Index is immutable and
// stays valid even after later refreshes swap in a replacement.
func (s *Syncer) Index() *Index {
	return s.idx.Load()
}

// RefreshHolidays fetches the holiday set for the given years, replaces
// the stored set, and rebuilds the index. On any fetch failure the
// previous set and index stay installed.
func (s *Syncer) RefreshHolidays(ctx context.Context, years ...int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var all []Holiday
	for _, year := range years {
		hs, err := s.holidays.List(ctx, year, s.country)
		if err != nil {
			return fmt.Errorf("fetching holidays for %d: %w", year, err)
		}
		all = append(all, hs...)
	}
	s.hols.Store(&all)
	return s.refreshLocked(ctx)
}

// Refresh rebuilds the index from the backend of record.
func (s *Syncer) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshLocked(ctx)
}

func (s *Syncer) refreshLocked(ctx context.Context) error {
	rems, err := s.backend.List(ctx)
	if err != nil {
		return fmt.Errorf("listing reminders: %w", err)
	}
	s.idx.Store(BuildIndex(*s.hols.Load(), rems))
	return nil
}

// Create persists a new reminder and refreshes the index.
func (s *Syncer) Create(ctx context.Context, r Reminder) (Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	created, err := s.backend.Create(ctx, r)
	if err != nil {
		return Reminder{}, fmt.Errorf("creating reminder: %w", err)
	}
	s.logRefresh(ctx, "create")
	return created, nil
}

// Update persists changes to an existing reminder and refreshes the index.
func (s *Syncer) Update(ctx context.Context, id int64, r Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Update(ctx, id, r); err != nil {
		return fmt.Errorf("updating reminder %d: %w", id, err)
	}
	s.logRefresh(ctx, "update")
	return nil
}

// Delete removes a reminder and refreshes the index.
func (s *Syncer) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting reminder %d: %w", id, err)
	}
	s.logRefresh(ctx, "delete")
	return nil
}

func (s *Syncer) logRefresh(ctx context.Context, op string) {
	if err := s.refreshLocked(ctx); err != nil {
		slog.Warn("index refresh failed after mutation, serving previous snapshot",
			slog.String("op", op),
			slog.Any("error", err),
		)
	}
}
