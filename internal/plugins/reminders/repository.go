// Package reminders is the backend of record for calendar reminders.
// The repository owns MariaDB access, the service layers sanitization and
// the calendar.ReminderBackend contract on top, and the handler exposes
// the REST surface the calendar UI consumes.
package reminders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"remindcal/internal/apperror"
	"remindcal/internal/calendar"
)

// ReminderRepository defines the data access contract for reminder operations.
type ReminderRepository interface {
	List(ctx context.Context) ([]calendar.Reminder, error)
	FindByID(ctx context.Context, id int64) (calendar.Reminder, error)
	Create(ctx context.Context, r calendar.Reminder) (calendar.Reminder, error)
	Update(ctx context.Context, id int64, r calendar.Reminder) error
	Delete(ctx context.Context, id int64) error
}

// reminderRepository is the MariaDB implementation of ReminderRepository.
type reminderRepository struct {
	db *sql.DB
}

// NewReminderRepository creates a new MariaDB-backed reminder repository.
func NewReminderRepository(db *sql.DB) ReminderRepository {
	return &reminderRepository{db: db}
}

// reminderColumns is the SELECT column list for reminder queries.
const reminderColumns = `id, title, description, start_time, end_time,
	recurrence, recurrence_end_time, created_date, updated_date`

// List returns every reminder, ordered by start time.
func (r *reminderRepository) List(ctx context.Context) ([]calendar.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders ORDER BY start_time`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying reminders: %w", err)
	}
	defer rows.Close()

	var reminders []calendar.Reminder
	for rows.Next() {
		rem, err := scanReminder(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning reminder row: %w", err)
		}
		reminders = append(reminders, rem)
	}
	return reminders, rows.Err()
}

// FindByID retrieves a reminder by its ID.
func (r *reminderRepository) FindByID(ctx context.Context, id int64) (calendar.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders WHERE id = ?`

	rem, err := scanReminder(r.db.QueryRowContext(ctx, query, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return calendar.Reminder{}, apperror.NewNotFound("reminder not found")
	}
	if err != nil {
		return calendar.Reminder{}, fmt.Errorf("scanning reminder: %w", err)
	}
	return rem, nil
}

// Create inserts a new reminder and returns it with the server-assigned id
// and audit timestamps.
func (r *reminderRepository) Create(ctx context.Context, rem calendar.Reminder) (calendar.Reminder, error) {
	start, err := calendar.ParseTimestamp(rem.StartTime)
	if err != nil {
		return calendar.Reminder{}, fmt.Errorf("parsing start time: %w", err)
	}
	end, err := calendar.ParseTimestamp(rem.EndTime)
	if err != nil {
		return calendar.Reminder{}, fmt.Errorf("parsing end time: %w", err)
	}

	query := `INSERT INTO reminders
		(title, description, start_time, end_time, recurrence, recurrence_end_time)
		VALUES (?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		rem.Title, rem.Description, start, end,
		rem.Recurrence, nullableTimestamp(rem.RecurrenceEndTime),
	)
	if err != nil {
		return calendar.Reminder{}, fmt.Errorf("inserting reminder: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return calendar.Reminder{}, fmt.Errorf("reading inserted reminder id: %w", err)
	}
	return r.FindByID(ctx, id)
}

// Update saves changes to an existing reminder.
func (r *reminderRepository) Update(ctx context.Context, id int64, rem calendar.Reminder) error {
	start, err := calendar.ParseTimestamp(rem.StartTime)
	if err != nil {
		return fmt.Errorf("parsing start time: %w", err)
	}
	end, err := calendar.ParseTimestamp(rem.EndTime)
	if err != nil {
		return fmt.Errorf("parsing end time: %w", err)
	}

	query := `UPDATE reminders
		SET title = ?, description = ?, start_time = ?, end_time = ?,
		    recurrence = ?, recurrence_end_time = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		rem.Title, rem.Description, start, end,
		rem.Recurrence, nullableTimestamp(rem.RecurrenceEndTime),
		id,
	)
	if err != nil {
		return fmt.Errorf("updating reminder: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		// RowsAffected is also 0 when the update is a no-op, so confirm the
		// row actually is missing before reporting not found.
		if _, findErr := r.FindByID(ctx, id); findErr != nil {
			return findErr
		}
	}
	return nil
}

// Delete removes a reminder from the database.
func (r *reminderRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reminders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting reminder: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperror.NewNotFound("reminder not found")
	}
	return nil
}

// scanReminder maps one row onto a Reminder, converting DATETIME columns to
// the canonical timestamp strings the calendar core works with.
func scanReminder(scan func(dest ...any) error) (calendar.Reminder, error) {
	var (
		rem              calendar.Reminder
		start, end       time.Time
		recEnd           sql.NullTime
		created, updated time.Time
	)
	if err := scan(
		&rem.ID, &rem.Title, &rem.Description, &start, &end,
		&rem.Recurrence, &recEnd, &created, &updated,
	); err != nil {
		return calendar.Reminder{}, err
	}

	rem.StartTime = calendar.FormatTimestamp(start)
	rem.EndTime = calendar.FormatTimestamp(end)
	if recEnd.Valid {
		s := calendar.FormatTimestamp(recEnd.Time)
		rem.RecurrenceEndTime = &s
	}
	createdStr := calendar.FormatTimestamp(created)
	updatedStr := calendar.FormatTimestamp(updated)
	rem.CreatedDate = &createdStr
	rem.UpdatedDate = &updatedStr
	return rem, nil
}

// nullableTimestamp converts an optional canonical timestamp string to a
// driver value, mapping unset or unparseable input to NULL.
func nullableTimestamp(s *string) any {
	if s == nil {
		return nil
	}
	t, err := calendar.ParseTimestamp(*s)
	if err != nil {
		return nil
	}
	return t
}
