package holidays

import (
	"context"
	"log/slog"

	"remindcal/internal/calendar"
)

// Fetcher retrieves holidays from the upstream API. Satisfied by *Client;
// tests substitute a function-field mock.
type Fetcher interface {
	Fetch(ctx context.Context, year int, countryCode string) ([]calendar.Holiday, error)
}

// HolidayService is the cache-through holiday source. It satisfies
// calendar.HolidayBackend.
type HolidayService interface {
	calendar.HolidayBackend
}

// holidayService is the default HolidayService implementation.
type holidayService struct {
	client Fetcher
	cache  *Cache
}

// NewHolidayService creates a holiday service over the given API client
// and cache. A nil cache disables caching.
func NewHolidayService(client Fetcher, cache *Cache) HolidayService {
	return &holidayService{client: client, cache: cache}
}

// List returns the public holidays for one year and country, from cache
// when possible. On an upstream failure a stale cache entry is served
// instead, so a flaky holiday API never blanks the calendar.
func (s *holidayService) List(ctx context.Context, year int, countryCode string) ([]calendar.Holiday, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, year, countryCode); ok {
			return cached, nil
		}
	}

	holidays, err := s.client.Fetch(ctx, year, countryCode)
	if err != nil {
		if s.cache != nil {
			if stale, ok := s.cache.GetStale(ctx, year, countryCode); ok {
				slog.Warn("holiday fetch failed, serving stale cache",
					slog.Int("year", year),
					slog.String("country", countryCode),
					slog.Any("error", err),
				)
				return stale, nil
			}
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, year, countryCode, holidays); err != nil {
			slog.Warn("caching holidays failed",
				slog.Int("year", year),
				slog.String("country", countryCode),
				slog.Any("error", err),
			)
		}
	}
	return holidays, nil
}
