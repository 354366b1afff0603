package config

// SnapshotsConfig controls on-disk schedule/feed archival.
type SnapshotsConfig struct {
	BasePath      string
	RetentionDays int
	AdminToken    string // reused for admin refresh/clear endpoint auth
	Sync          SyncConfig
}

// SyncConfig controls the background schedule-snapshot backfill.
type SyncConfig struct {
	Enabled      bool
	Days         int
	FutureDays   int
	Interval     Duration
	DailyHourUTC int
}

func loadSnapshots() SnapshotsConfig {
	return SnapshotsConfig{
		BasePath:      envOrDefault(envSnapshotDir, defaultSnapshotDir),
		RetentionDays: intEnvOrDefault(envSnapshotDays, defaultSnapshotDays),
		AdminToken:    envOrDefault(envAdminToken, ""),
		Sync: SyncConfig{
			Enabled:      boolEnvOrDefault(envSyncEnabled, false),
			Days:         intEnvOrDefault(envSyncDays, defaultSyncDays),
			FutureDays:   intEnvOrDefault(envSyncFutureDays, defaultSyncFutureDays),
			Interval:     durationEnvOrDefault(envSyncInterval, defaultSyncInterval),
			DailyHourUTC: intEnvOrDefault(envSyncDailyHour, defaultSyncDailyHour),
		},
	}
}
