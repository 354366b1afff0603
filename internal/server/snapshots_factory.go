package server

import (
	"log/slog"
	"time"

	"github.com/preston-bernstein/mlb-gameday-service/internal/config"
	"github.com/preston-bernstein/mlb-gameday-service/internal/providers"
	"github.com/preston-bernstein/mlb-gameday-service/internal/snapshots"
)

// syncRateLimit spaces out backfill schedule fetches so a deep window does
// not hammer the upstream on boot.
const syncRateLimit = 5 * time.Second

type snapshotComponents struct {
	store  snapshots.Store
	writer *snapshots.Writer
	syncer *snapshots.Syncer
	// limited is the rate-limited schedule provider feeding the syncer;
	// kept so shutdown can stop its ticker.
	limited providers.ScheduleProvider
}

func buildSnapshots(cfg config.Config, provider providers.ScheduleProvider, logger *slog.Logger) snapshotComponents {
	writer := snapshots.NewWriter(cfg.Snapshots.BasePath, cfg.Snapshots.RetentionDays)
	store := snapshots.NewFSStore(cfg.Snapshots.BasePath)

	limited := providers.NewRateLimitedScheduleProvider(provider, syncRateLimit, logger)
	syncer := snapshots.NewSyncer(limited, writer, snapshots.SyncConfig{
		Enabled:      cfg.Snapshots.Sync.Enabled,
		Days:         cfg.Snapshots.Sync.Days,
		FutureDays:   cfg.Snapshots.Sync.FutureDays,
		Interval:     cfg.Snapshots.Sync.Interval,
		DailyHourUTC: cfg.Snapshots.Sync.DailyHourUTC,
	}, logger)

	return snapshotComponents{
		store:   store,
		writer:  writer,
		syncer:  syncer,
		limited: limited,
	}
}
