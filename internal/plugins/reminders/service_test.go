package reminders

import (
	"context"
	"errors"
	"testing"

	"remindcal/internal/calendar"
)

// mockRepository implements ReminderRepository with function fields so each
// test overrides only what it needs.
type mockRepository struct {
	listFn     func(ctx context.Context) ([]calendar.Reminder, error)
	findByIDFn func(ctx context.Context, id int64) (calendar.Reminder, error)
	createFn   func(ctx context.Context, r calendar.Reminder) (calendar.Reminder, error)
	updateFn   func(ctx context.Context, id int64, r calendar.Reminder) error
	deleteFn   func(ctx context.Context, id int64) error
}

func (m *mockRepository) List(ctx context.Context) ([]calendar.Reminder, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockRepository) FindByID(ctx context.Context, id int64) (calendar.Reminder, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return calendar.Reminder{}, nil
}

func (m *mockRepository) Create(ctx context.Context, r calendar.Reminder) (calendar.Reminder, error) {
	if m.createFn != nil {
		return m.createFn(ctx, r)
	}
	r.ID = 1
	return r, nil
}

func (m *mockRepository) Update(ctx context.Context, id int64, r calendar.Reminder) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, r)
	}
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func TestService_CreateSanitizesText(t *testing.T) {
	var stored calendar.Reminder
	repo := &mockRepository{
		createFn: func(ctx context.Context, r calendar.Reminder) (calendar.Reminder, error) {
			stored = r
			r.ID = 1
			return r, nil
		},
	}
	svc := NewReminderService(repo)

	_, err := svc.Create(context.Background(), calendar.Reminder{
		Title:       `<script>alert("x")</script>Standup`,
		Description: "<b>daily</b> sync",
		StartTime:   "2025-06-10 09:00:00",
		EndTime:     "2025-06-10 09:15:00",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if stored.Title != "Standup" {
		t.Errorf("stored title %q, want markup stripped", stored.Title)
	}
	if stored.Description != "daily sync" {
		t.Errorf("stored description %q, want markup stripped", stored.Description)
	}
}

func TestService_UpdateSanitizesText(t *testing.T) {
	var stored calendar.Reminder
	repo := &mockRepository{
		updateFn: func(ctx context.Context, id int64, r calendar.Reminder) error {
			stored = r
			return nil
		},
	}
	svc := NewReminderService(repo)

	err := svc.Update(context.Background(), 4, calendar.Reminder{
		ID:          4,
		Title:       "Dentist <img src=x onerror=alert(1)>",
		Description: "checkup",
		StartTime:   "2025-06-10 09:00:00",
		EndTime:     "2025-06-10 10:00:00",
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if stored.Title != "Dentist" {
		t.Errorf("stored title %q, want markup stripped", stored.Title)
	}
}

func TestService_CreatePropagatesRepositoryError(t *testing.T) {
	repo := &mockRepository{
		createFn: func(ctx context.Context, r calendar.Reminder) (calendar.Reminder, error) {
			return calendar.Reminder{}, errors.New("db down")
		},
	}
	svc := NewReminderService(repo)

	if _, err := svc.Create(context.Background(), calendar.Reminder{Title: "x"}); err == nil {
		t.Fatal("expected the repository error to propagate")
	}
}

func TestService_ListPassesThrough(t *testing.T) {
	repo := &mockRepository{
		listFn: func(ctx context.Context) ([]calendar.Reminder, error) {
			return []calendar.Reminder{{ID: 1, Title: "standup"}}, nil
		},
	}
	svc := NewReminderService(repo)

	got, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("List = %v, want the repository result", got)
	}
}
