// Package holidays supplies public holidays to the calendar core. Data
// comes from the Nager.Date API and is cached in Redis per year and
// country; holidays change rarely, so a stale cache entry is preferred
// over an error when the API is unreachable.
package holidays

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"remindcal/internal/calendar"
)

// Client fetches public holidays from the Nager.Date API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Nager.Date API client rooted at the given base URL
// (e.g. "https://date.nager.at").
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Fetch retrieves the public holidays for one year and country.
func (c *Client) Fetch(ctx context.Context, year int, countryCode string) ([]calendar.Holiday, error) {
	url := fmt.Sprintf("%s/api/v3/PublicHolidays/%d/%s", c.baseURL, year, countryCode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building holiday request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching holidays: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("holiday API returned status %d for %d/%s", resp.StatusCode, year, countryCode)
	}

	var holidays []calendar.Holiday
	if err := json.NewDecoder(resp.Body).Decode(&holidays); err != nil {
		return nil, fmt.Errorf("decoding holiday response: %w", err)
	}
	return holidays, nil
}
