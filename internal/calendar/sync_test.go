package calendar

import (
	"context"
	"errors"
	"testing"
	"time"
)

type mockReminderBackend struct {
	listFn   func(ctx context.Context) ([]Reminder, error)
	createFn func(ctx context.Context, r Reminder) (Reminder, error)
	updateFn func(ctx context.Context, id int64, r Reminder) error
	deleteFn func(ctx context.Context, id int64) error
}

func (m *mockReminderBackend) List(ctx context.Context) ([]Reminder, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockReminderBackend) Create(ctx context.Context, r Reminder) (Reminder, error) {
	if m.createFn != nil {
		return m.createFn(ctx, r)
	}
	r.ID = 1
	return r, nil
}

func (m *mockReminderBackend) Update(ctx context.Context, id int64, r Reminder) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, r)
	}
	return nil
}

func (m *mockReminderBackend) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockHolidayBackend struct {
	listFn func(ctx context.Context, year int, countryCode string) ([]Holiday, error)
}

func (m *mockHolidayBackend) List(ctx context.Context, year int, countryCode string) ([]Holiday, error) {
	if m.listFn != nil {
		return m.listFn(ctx, year, countryCode)
	}
	return nil, nil
}

func TestSyncer_StartsWithEmptyIndex(t *testing.T) {
	s := NewSyncer(&mockReminderBackend{}, &mockHolidayBackend{}, "LT")

	ix := s.Index()
	if ix == nil {
		t.Fatal("Index() returned nil before first refresh")
	}
	if ix.HasEvents(NewDate(2025, time.June, 10)) {
		t.Error("a fresh index must be empty")
	}
}

func TestSyncer_CreateRefreshesFromBackend(t *testing.T) {
	var stored []Reminder
	backend := &mockReminderBackend{
		listFn: func(ctx context.Context) ([]Reminder, error) {
			return stored, nil
		},
		createFn: func(ctx context.Context, r Reminder) (Reminder, error) {
			r.ID = 7
			now := "2025-06-01 12:00:00"
			r.CreatedDate = &now
			stored = append(stored, r)
			return r, nil
		},
	}
	s := NewSyncer(backend, &mockHolidayBackend{}, "LT")

	created, err := s.Create(context.Background(), rem(0, "standup", "2025-06-10 09:00:00", "2025-06-10 09:15:00"))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID != 7 {
		t.Errorf("created id = %d, want the server-assigned 7", created.ID)
	}
	if created.CreatedDate == nil {
		t.Error("created reminder must carry the server-assigned audit timestamp")
	}

	if got, ok := s.Index().ReminderByID(7); !ok || got.Title != "standup" {
		t.Error("index must contain the created reminder after the refresh")
	}
}

func TestSyncer_FailedCreateSkipsRefresh(t *testing.T) {
	listCalls := 0
	backend := &mockReminderBackend{
		listFn: func(ctx context.Context) ([]Reminder, error) {
			listCalls++
			return nil, nil
		},
		createFn: func(ctx context.Context, r Reminder) (Reminder, error) {
			return Reminder{}, errors.New("backend down")
		},
	}
	s := NewSyncer(backend, &mockHolidayBackend{}, "LT")

	_, err := s.Create(context.Background(), rem(0, "standup", "2025-06-10 09:00:00", "2025-06-10 09:15:00"))
	if err == nil {
		t.Fatal("Create must surface the backend failure")
	}
	if listCalls != 0 {
		t.Errorf("refresh ran %d times after a failed mutation, want 0", listCalls)
	}
}

func TestSyncer_RefreshFailureKeepsPreviousIndex(t *testing.T) {
	healthy := true
	backend := &mockReminderBackend{
		listFn: func(ctx context.Context) ([]Reminder, error) {
			if !healthy {
				return nil, errors.New("backend down")
			}
			return []Reminder{rem(1, "standup", "2025-06-10 09:00:00", "2025-06-10 09:15:00")}, nil
		},
	}
	s := NewSyncer(backend, &mockHolidayBackend{}, "LT")

	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("initial refresh failed: %v", err)
	}
	before := s.Index()

	healthy = false
	if err := s.Refresh(context.Background()); err == nil {
		t.Fatal("refresh must surface the backend failure")
	}
	if s.Index() != before {
		t.Error("a failed refresh must leave the previous index installed")
	}
	if _, ok := s.Index().ReminderByID(1); !ok {
		t.Error("previous index content must still be served")
	}
}

func TestSyncer_CreateSucceedsThenRefreshFails(t *testing.T) {
	healthy := true
	backend := &mockReminderBackend{
		listFn: func(ctx context.Context) ([]Reminder, error) {
			if !healthy {
				return nil, errors.New("backend down")
			}
			return nil, nil
		},
		createFn: func(ctx context.Context, r Reminder) (Reminder, error) {
			r.ID = 2
			healthy = false
			return r, nil
		},
	}
	s := NewSyncer(backend, &mockHolidayBackend{}, "LT")
	before := s.Index()

	created, err := s.Create(context.Background(), rem(0, "standup", "2025-06-10 09:00:00", "2025-06-10 09:15:00"))
	if err != nil {
		t.Fatalf("the mutation landed, Create must not return an error: %v", err)
	}
	if created.ID != 2 {
		t.Errorf("created id = %d, want 2", created.ID)
	}
	if s.Index() != before {
		t.Error("a failed refresh after a successful mutation must keep the previous index")
	}
}

func TestSyncer_DeleteFailureAbortsUnit(t *testing.T) {
	listCalls := 0
	backend := &mockReminderBackend{
		listFn: func(ctx context.Context) ([]Reminder, error) {
			listCalls++
			return nil, nil
		},
		deleteFn: func(ctx context.Context, id int64) error {
			return errors.New("backend down")
		},
	}
	s := NewSyncer(backend, &mockHolidayBackend{}, "LT")

	if err := s.Delete(context.Background(), 5); err == nil {
		t.Fatal("Delete must surface the backend failure")
	}
	if listCalls != 0 {
		t.Errorf("refresh ran %d times after a failed delete, want 0", listCalls)
	}
}

func TestSyncer_UpdateRefreshes(t *testing.T) {
	listCalls := 0
	var updatedID int64
	backend := &mockReminderBackend{
		listFn: func(ctx context.Context) ([]Reminder, error) {
			listCalls++
			return nil, nil
		},
		updateFn: func(ctx context.Context, id int64, r Reminder) error {
			updatedID = id
			return nil
		},
	}
	s := NewSyncer(backend, &mockHolidayBackend{}, "LT")

	if err := s.Update(context.Background(), 9, rem(9, "standup", "2025-06-10 09:00:00", "2025-06-10 09:15:00")); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updatedID != 9 {
		t.Errorf("backend updated id %d, want 9", updatedID)
	}
	if listCalls != 1 {
		t.Errorf("refresh ran %d times, want exactly 1", listCalls)
	}
}

func TestSyncer_RefreshHolidaysCoversMultipleYears(t *testing.T) {
	var years []int
	holidays := &mockHolidayBackend{
		listFn: func(ctx context.Context, year int, countryCode string) ([]Holiday, error) {
			years = append(years, year)
			return []Holiday{{
				Date: NewDate(year, time.January, 1).String(),
				Name: "New Year's Day",
			}}, nil
		},
	}
	s := NewSyncer(&mockReminderBackend{}, holidays, "LT")

	if err := s.RefreshHolidays(context.Background(), 2025, 2026); err != nil {
		t.Fatalf("RefreshHolidays returned error: %v", err)
	}
	if len(years) != 2 || years[0] != 2025 || years[1] != 2026 {
		t.Errorf("fetched years %v, want [2025 2026]", years)
	}
	for _, year := range []int{2025, 2026} {
		if _, ok := s.Index().Holiday(NewDate(year, time.January, 1)); !ok {
			t.Errorf("index missing the %d holiday", year)
		}
	}
}

func TestSyncer_RefreshHolidaysFailureKeepsPreviousSet(t *testing.T) {
	healthy := true
	holidays := &mockHolidayBackend{
		listFn: func(ctx context.Context, year int, countryCode string) ([]Holiday, error) {
			if !healthy {
				return nil, errors.New("holiday api down")
			}
			return []Holiday{{Date: "2025-01-01", Name: "New Year's Day"}}, nil
		},
	}
	s := NewSyncer(&mockReminderBackend{}, holidays, "LT")

	if err := s.RefreshHolidays(context.Background(), 2025); err != nil {
		t.Fatalf("initial holiday refresh failed: %v", err)
	}
	before := s.Index()

	healthy = false
	if err := s.RefreshHolidays(context.Background(), 2025); err == nil {
		t.Fatal("RefreshHolidays must surface the fetch failure")
	}
	if s.Index() != before {
		t.Error("a failed holiday refresh must keep the previous index")
	}
	if _, ok := s.Index().Holiday(NewDate(2025, time.January, 1)); !ok {
		t.Error("previous holiday set must still be served")
	}
}
