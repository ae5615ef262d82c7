package reminders

import (
	"context"

	"remindcal/internal/calendar"
	"remindcal/internal/sanitize"
)

// ReminderService is the business logic layer over the repository. It
// satisfies calendar.ReminderBackend, so the calendar Syncer can drive it.
type ReminderService interface {
	calendar.ReminderBackend
	FindByID(ctx context.Context, id int64) (calendar.Reminder, error)
}

// reminderService is the default ReminderService implementation.
type reminderService struct {
	repo ReminderRepository
}

// NewReminderService creates a new reminder service.
func NewReminderService(repo ReminderRepository) ReminderService {
	return &reminderService{repo: repo}
}

// List returns every stored reminder.
func (s *reminderService) List(ctx context.Context) ([]calendar.Reminder, error) {
	return s.repo.List(ctx)
}

// FindByID returns a single reminder by id.
func (s *reminderService) FindByID(ctx context.Context, id int64) (calendar.Reminder, error) {
	return s.repo.FindByID(ctx, id)
}

// Create stores a new reminder. User-provided text is sanitized before it
// reaches the database.
func (s *reminderService) Create(ctx context.Context, r calendar.Reminder) (calendar.Reminder, error) {
	r.Title = sanitize.Text(r.Title)
	r.Description = sanitize.Text(r.Description)
	return s.repo.Create(ctx, r)
}

// Update saves changes to an existing reminder.
func (s *reminderService) Update(ctx context.Context, id int64, r calendar.Reminder) error {
	r.Title = sanitize.Text(r.Title)
	r.Description = sanitize.Text(r.Description)
	return s.repo.Update(ctx, id, r)
}

// Delete removes a reminder.
func (s *reminderService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
