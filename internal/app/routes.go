package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/robfig/cron/v3"

	"remindcal/internal/calendar"
	"remindcal/internal/plugins/agenda"
	"remindcal/internal/plugins/holidays"
	"remindcal/internal/plugins/reminders"
)

// setupRoutes builds the plugin graph and registers all routes. This is the
// single place where all routes are aggregated.
func (a *App) setupRoutes() {
	e := a.Echo

	// Health check endpoint for container health monitoring.
	e.GET("/healthz", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := a.DB.PingContext(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "db unreachable"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// --- Plugin graph ---

	// Holidays: Nager.Date client behind a Redis cache.
	holidayClient := holidays.NewClient(a.Config.Holidays.BaseURL)
	holidayCache := holidays.NewCache(a.Redis, a.Config.Holidays.CacheTTL)
	holidaySvc := holidays.NewHolidayService(holidayClient, holidayCache)

	// Reminders: MariaDB backend of record.
	reminderRepo := reminders.NewReminderRepository(a.DB)
	reminderSvc := reminders.NewReminderService(reminderRepo)

	// The Syncer ties both backends to the in-memory index.
	a.Sync = calendar.NewSyncer(reminderSvc, holidaySvc, a.Config.Holidays.CountryCode)

	// --- Plugin routes ---

	reminders.RegisterRoutes(e, reminders.NewHandler(reminderSvc, a.Sync), a.Config.Auth.TokenHash)
	holidays.RegisterRoutes(e, holidays.NewHandler(holidaySvc, a.Config.Holidays.CountryCode))
	agenda.RegisterRoutes(e, agenda.NewHandler(a.Sync, a.Config.Calendar.WindowYears))
}

// WarmIndex performs the initial holiday fetch and index build. A failure
// is logged, not fatal: the server starts with an empty index and the cron
// refresh retries later.
func (a *App) WarmIndex(ctx context.Context) {
	if err := a.Sync.RefreshHolidays(ctx, refreshYears(a.Config.Calendar.WindowYears)...); err != nil {
		slog.Warn("initial index warmup failed, starting with an empty calendar",
			slog.Any("error", err),
		)
	}
}

// StartScheduler launches the daily refresh: holidays are refetched and the
// index rebuilt shortly after midnight, so the browsing window and holiday
// set track the current date on a long-running server. The returned cron
// can be stopped on shutdown.
func (a *App) StartScheduler() *cron.Cron {
	c := cron.New()

	// 00:05 local time, daily.
	_, err := c.AddFunc("5 0 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := a.Sync.RefreshHolidays(ctx, refreshYears(a.Config.Calendar.WindowYears)...); err != nil {
			slog.Warn("scheduled holiday refresh failed, serving previous snapshot",
				slog.Any("error", err),
			)
		} else {
			slog.Info("scheduled holiday refresh completed")
		}
	})
	if err != nil {
		// The schedule is a constant, so this cannot fail at runtime.
		slog.Error("registering refresh schedule failed", slog.Any("error", err))
	}

	c.Start()
	return c
}

// refreshYears returns the calendar years the browsing window can touch.
func refreshYears(windowYears int) []int {
	start := calendar.Today()
	end := start.AddYears(windowYears)

	var years []int
	for y := start.Year; y <= end.Year; y++ {
		years = append(years, y)
	}
	return years
}
