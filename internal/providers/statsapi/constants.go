package statsapi

import "time"

const (
	defaultBaseURL     = "https://statsapi.mlb.com/api/v1"
	defaultFeedBaseURL = "https://statsapi.mlb.com/api/v1.1"
	defaultHTTPTimeout = 10 * time.Second
	defaultTimezone    = "America/New_York"
	sportIDMLB         = "1"
	scheduleHydrate    = "team,lineups"
)
