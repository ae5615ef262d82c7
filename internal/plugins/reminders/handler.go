package reminders

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"remindcal/internal/apperror"
	"remindcal/internal/calendar"
)

// Handler processes HTTP requests for the reminders plugin. Reads are
// served straight from the service; mutations go through the Syncer so the
// in-memory index is refreshed as part of the same unit.
type Handler struct {
	svc  ReminderService
	sync *calendar.Syncer
}

// NewHandler creates a new reminders Handler.
func NewHandler(svc ReminderService, sync *calendar.Syncer) *Handler {
	return &Handler{svc: svc, sync: sync}
}

// reminderForm is the JSON body of create and update requests. The split
// date/start/end fields match the calendar form; the core normalizes them
// into canonical timestamps.
type reminderForm struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Start       string `json:"start"`
	End         string `json:"end"`
}

// List returns all reminders.
// GET /api/reminders
func (h *Handler) List(c echo.Context) error {
	reminders, err := h.svc.List(c.Request().Context())
	if err != nil {
		return apperror.NewBackend("listing reminders failed", err)
	}
	if reminders == nil {
		reminders = []calendar.Reminder{}
	}
	return c.JSON(http.StatusOK, reminders)
}

// Get returns a single reminder by id.
// GET /api/reminders/:id
func (h *Handler) Get(c echo.Context) error {
	id, err := reminderID(c)
	if err != nil {
		return err
	}
	rem, err := h.svc.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rem)
}

// Create validates a submission and stores a new reminder.
// POST /api/reminders
func (h *Handler) Create(c echo.Context) error {
	var form reminderForm
	if err := c.Bind(&form); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	rem, err := calendar.Normalize(calendar.FormInput{
		Mode:        calendar.ModeCreate,
		Title:       form.Title,
		Description: form.Description,
		Date:        form.Date,
		Start:       form.Start,
		End:         form.End,
	})
	if err != nil {
		return validationError(err)
	}

	created, err := h.sync.Create(c.Request().Context(), rem)
	if err != nil {
		return apperror.NewBackend("creating reminder failed", err)
	}
	return c.JSON(http.StatusCreated, created)
}

// Update validates a submission and saves changes to an existing reminder.
// Edit intent on a synthetic holiday marker is a silent no-op.
// PUT /api/reminders/:id
func (h *Handler) Update(c echo.Context) error {
	id, err := reminderID(c)
	if err != nil {
		return err
	}
	existing, err := h.svc.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !calendar.CanEdit(existing, h.sync.Index()) {
		return c.JSON(http.StatusOK, existing)
	}

	var form reminderForm
	if err := c.Bind(&form); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	rem, err := calendar.Normalize(calendar.FormInput{
		Mode:        calendar.ModeEdit,
		Existing:    existing,
		Title:       form.Title,
		Description: form.Description,
		Date:        form.Date,
		Start:       form.Start,
		End:         form.End,
	})
	if err != nil {
		return validationError(err)
	}

	if err := h.sync.Update(c.Request().Context(), id, rem); err != nil {
		return apperror.NewBackend("updating reminder failed", err)
	}
	return c.JSON(http.StatusOK, rem)
}

// Delete removes a reminder.
// DELETE /api/reminders/:id
func (h *Handler) Delete(c echo.Context) error {
	id, err := reminderID(c)
	if err != nil {
		return err
	}
	if err := h.sync.Delete(c.Request().Context(), id); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperror.NewBackend("deleting reminder failed", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// reminderID parses the :id route parameter.
func reminderID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.NewBadRequest("invalid reminder id")
	}
	return id, nil
}

// validationError maps a core ValidationError onto the HTTP error taxonomy.
func validationError(err error) error {
	var verr *calendar.ValidationError
	if errors.As(err, &verr) {
		return apperror.NewValidation(verr.Field, verr.Message)
	}
	return apperror.NewBadRequest(err.Error())
}
