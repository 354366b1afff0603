package snapshots

import (
	"context"
	"testing"
	"time"

	"github.com/preston-bernstein/mlb-gameday-service/internal/domain"
)

type fakeScheduleProvider struct {
	dates []string
}

func (p *fakeScheduleProvider) FetchSchedule(ctx context.Context, date string) ([]domain.Game, error) {
	p.dates = append(p.dates, date)
	return []domain.Game{
		{ID: date + "-1", Provider: "stub"},
	}, nil
}

func TestSyncerBackfillsPastAndFuture(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	writer := NewWriter(t.TempDir(), 10000)
	now := time.Date(2024, 7, 10, 12, 0, 0, 0, time.UTC)
	provider := &fakeScheduleProvider{}
	cfg := SyncConfig{
		Enabled:    true,
		Days:       3,
		FutureDays: 2,
		Interval:   time.Nanosecond,
	}

	// Seed snapshots: yesterday (still refreshes), 2 days back (skipped),
	// and future +2 (skipped).
	writeSimpleSnapshot(t, writer, "2024-07-09")
	writeSimpleSnapshot(t, writer, "2024-07-08")
	writeSimpleSnapshot(t, writer, "2024-07-12")

	syncer := NewSyncer(provider, writer, cfg, nil)
	syncer.now = func() time.Time { return now }

	syncer.Run(ctx)
	cancel()

	expected := []string{"2024-07-10", "2024-07-09", "2024-07-11"}

	assertDatesEqual(t, provider.dates, expected)
	for _, date := range expected {
		requireSnapshotExists(t, writer, date)
	}
	// Previously existing snapshots remain.
	requireSnapshotExists(t, writer, "2024-07-08")
	requireSnapshotExists(t, writer, "2024-07-12")
}

func TestSyncerSkipsWhenDisabledOrNil(t *testing.T) {
	s := NewSyncer(nil, nil, SyncConfig{Enabled: false}, nil)
	s.Run(context.Background())

	s = NewSyncer(&fakeScheduleProvider{}, nil, SyncConfig{Enabled: true}, nil)
	s.Run(context.Background())
}

func TestSyncerSleepRespectsContext(t *testing.T) {
	s := NewSyncer(nil, nil, SyncConfig{Enabled: true}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	s.sleep(ctx, time.Second)
	if time.Since(start) > 50*time.Millisecond {
		t.Fatalf("expected sleep to return quickly when context canceled")
	}
}

func TestHasSnapshotNilWriter(t *testing.T) {
	s := NewSyncer(nil, nil, SyncConfig{}, nil)
	if s.hasSnapshot("2024-07-04") {
		t.Fatalf("expected hasSnapshot to be false with nil writer")
	}
}

func TestBuildDatesSkipsExistingSnapshots(t *testing.T) {
	w := NewWriter(t.TempDir(), 10000)
	writeSimpleSnapshot(t, w, "2024-07-03") // past (beyond yesterday)
	writeSimpleSnapshot(t, w, "2024-07-06") // future

	s := NewSyncer(nil, w, SyncConfig{Enabled: true, Days: 5, FutureDays: 2}, nil)
	now := time.Date(2024, 7, 5, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	dates := s.buildDates(s.now())

	want := map[string]bool{
		"2024-07-05": true, // today
		"2024-07-04": true, // yesterday
	}
	for _, d := range dates {
		if want[d] {
			delete(want, d)
		}
		if d == "2024-07-03" || d == "2024-07-06" {
			t.Fatalf("expected existing snapshots to be skipped, got %s", d)
		}
	}
	if len(want) != 0 {
		t.Fatalf("expected today and yesterday to be present, missing %v", want)
	}
}
