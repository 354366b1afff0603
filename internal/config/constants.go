package config

import "time"

const (
	envPort            = "PORT"
	envPollInterval    = "POLL_INTERVAL"
	envProvider        = "PROVIDER"
	envFeedMaxAge      = "FEED_MAX_AGE"
	envFeedTickMaxAge  = "FEED_TICK_MAX_AGE"
	envRefreshInterval = "REFRESH_INTERVAL"
	envMetricsPort     = "METRICS_PORT"
	envMetricsOn       = "METRICS_ENABLED"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"
	envAdminToken      = "ADMIN_TOKEN"
	envSnapshotDir     = "SNAPSHOT_DIR"
	envSnapshotDays    = "SNAPSHOT_RETENTION_DAYS"
	envSyncEnabled     = "SNAPSHOT_SYNC_ENABLED"
	envSyncDays        = "SNAPSHOT_SYNC_DAYS"
	envSyncFutureDays  = "SNAPSHOT_SYNC_FUTURE_DAYS"
	envSyncInterval    = "SNAPSHOT_SYNC_INTERVAL"
	envSyncDailyHour   = "SNAPSHOT_SYNC_DAILY_HOUR_UTC"
	envStatsBaseURL    = "STATSAPI_BASE_URL"
	envStatsFeedURL    = "STATSAPI_FEED_BASE_URL"
	envStatsTimeout    = "STATSAPI_TIMEOUT"
	envStatsTimezone   = "STATSAPI_TIMEZONE"

	defaultPort     = "4000"
	defaultProvider = "statsapi"
	// Schedule refresh cadence; statsapi has no hard quota but polite spacing
	// keeps the service a good citizen.
	defaultPollInterval = 60 * Duration(time.Second)
	// Default staleness window for foreground feed reads.
	defaultFeedMaxAge = 15 * Duration(time.Second)
	// Background ticks use a tighter window so each tick lands near-fresh
	// data instead of replaying the foreground cache.
	defaultFeedTickMaxAge = 5 * Duration(time.Second)
	// Per-game background refresh cadence for live/upcoming games.
	defaultRefreshInterval = 15 * Duration(time.Second)
	defaultMetricsPort     = "9090"
	defaultSnapshotDir     = "data/snapshots"
	defaultSnapshotDays    = 14
	defaultSyncDays        = 7
	defaultSyncFutureDays  = 1
	defaultSyncInterval    = 5 * Duration(time.Second)
	defaultSyncDailyHour   = 9 // ~4am ET, after west-coast night games finish
)
