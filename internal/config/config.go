package config

import "github.com/joho/godotenv"

// Config holds runtime configuration for the server.
type Config struct {
	Port            string
	PollInterval    Duration
	FeedMaxAge      Duration
	FeedTickMaxAge  Duration
	RefreshInterval Duration
	Provider        string
	StatsAPI        StatsAPIConfig
	Metrics         MetricsConfig
	Snapshots       SnapshotsConfig
}

// Load reads configuration from environment variables with sensible
// defaults. A .env file in the working directory, when present, is loaded
// first without overriding already-set variables.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:            envOrDefault(envPort, defaultPort),
		PollInterval:    durationEnvOrDefault(envPollInterval, defaultPollInterval),
		FeedMaxAge:      durationEnvOrDefault(envFeedMaxAge, defaultFeedMaxAge),
		FeedTickMaxAge:  durationEnvOrDefault(envFeedTickMaxAge, defaultFeedTickMaxAge),
		RefreshInterval: durationEnvOrDefault(envRefreshInterval, defaultRefreshInterval),
		Provider:        envOrDefault(envProvider, defaultProvider),
		StatsAPI:        loadStatsAPI(),
		Metrics:         loadMetrics(),
		Snapshots:       loadSnapshots(),
	}
}
