package statsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/preston-bernstein/mlb-gameday-service/internal/domain"
	"github.com/preston-bernstein/mlb-gameday-service/internal/domain/feed"
)

// Config controls how the statsapi client reaches the upstream API.
type Config struct {
	BaseURL     string
	FeedBaseURL string
	HTTPClient  *http.Client
	Timezone    string
}

// Client fetches schedule and live feed data from the MLB Stats API and maps
// them to domain models.
type Client struct {
	baseURL     string
	feedBaseURL string
	httpClient  httpDoer
	now         func() time.Time
	loc         *time.Location
}

// NewClient constructs a statsapi client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:     normalizeBaseURL(cfg.BaseURL, defaultBaseURL),
		feedBaseURL: normalizeBaseURL(cfg.FeedBaseURL, defaultFeedBaseURL),
		httpClient:  resolveHTTPClient(cfg.HTTPClient),
		now:         time.Now,
		loc:         resolveLocation(cfg.Timezone),
	}
}

// FetchSchedule retrieves the schedule for the given date (YYYY-MM-DD, empty
// means today in the configured timezone).
func (c *Client) FetchSchedule(ctx context.Context, date string) ([]domain.Game, error) {
	req, err := c.buildScheduleRequest(ctx, date)
	if err != nil {
		return nil, err
	}

	var payload scheduleResponse
	if err := c.doJSON(req, &payload); err != nil {
		return nil, err
	}

	games := make([]domain.Game, 0, payload.TotalGames)
	for _, d := range payload.Dates {
		for _, g := range d.Games {
			games = append(games, mapGame(g))
		}
	}
	return games, nil
}

// FetchFeed retrieves the live feed document for one game.
func (c *Client) FetchFeed(ctx context.Context, gameID string) (*feed.Document, error) {
	if strings.TrimSpace(gameID) == "" {
		return nil, fmt.Errorf("statsapi: game id required")
	}
	url := fmt.Sprintf("%s/game/%s/feed/live", c.feedBaseURL, gameID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	var doc feed.Document
	if err := c.doJSON(req, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *Client) doJSON(req *http.Request, payload any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errorFromResponse(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(payload); err != nil {
		return fmt.Errorf("statsapi: decode %s: %w", req.URL.Path, err)
	}
	return nil
}

func (c *Client) buildScheduleRequest(ctx context.Context, date string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/schedule", nil)
	if err != nil {
		return nil, err
	}

	resolved := c.resolveDate(date)
	q := req.URL.Query()
	q.Set("sportId", sportIDMLB)
	q.Set("startDate", resolved)
	q.Set("endDate", resolved)
	q.Set("hydrate", scheduleHydrate)
	req.URL.RawQuery = q.Encode()

	return req, nil
}

func (c *Client) resolveDate(date string) string {
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err == nil {
			return date
		}
	}
	return c.now().In(c.loc).Format("2006-01-02")
}

func errorFromResponse(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return newStatusError(resp, strings.TrimSpace(string(body)))
}
