package config

import "time"

const (
	defaultStatsBaseURL = "https://statsapi.mlb.com/api/v1"
	// The live feed lives on a separate API version than the schedule.
	defaultStatsFeedBaseURL = "https://statsapi.mlb.com/api/v1.1"
	defaultStatsTimeout     = 10 * time.Second
	defaultStatsTimezone    = "America/New_York"
)

// StatsAPIConfig controls how we talk to the MLB Stats API.
type StatsAPIConfig struct {
	BaseURL     string
	FeedBaseURL string
	Timeout     time.Duration
	Timezone    string
}

func loadStatsAPI() StatsAPIConfig {
	return StatsAPIConfig{
		BaseURL:     envOrDefault(envStatsBaseURL, defaultStatsBaseURL),
		FeedBaseURL: envOrDefault(envStatsFeedURL, defaultStatsFeedBaseURL),
		Timeout:     durationEnvOrDefault(envStatsTimeout, defaultStatsTimeout),
		Timezone:    envOrDefault(envStatsTimezone, defaultStatsTimezone),
	}
}
