package server

import (
	"context"
	"testing"

	"github.com/preston-bernstein/mlb-gameday-service/internal/config"
	"github.com/preston-bernstein/mlb-gameday-service/internal/providers/fixture"
)

func TestBuildSnapshotsRespectsConfig(t *testing.T) {
	cfg := config.Config{}
	cfg.Snapshots.BasePath = t.TempDir()
	cfg.Snapshots.RetentionDays = 1
	cfg.Snapshots.Sync.Enabled = false

	components := buildSnapshots(cfg, fixture.New(), nil)
	if components.store == nil || components.writer == nil || components.syncer == nil {
		t.Fatalf("expected snapshots components to be initialized")
	}
	if components.limited == nil {
		t.Fatalf("expected rate-limited sync provider")
	}

	// A disabled syncer returns promptly.
	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		components.syncer.Run(runCtx)
		close(done)
	}()
	cancel()
	<-done

	if closer, ok := components.limited.(interface{ Close() }); ok {
		closer.Close()
	} else {
		t.Fatalf("expected sync provider to expose Close")
	}
}
