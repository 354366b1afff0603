package snapshots

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/preston-bernstein/mlb-gameday-service/internal/domain"
	"github.com/preston-bernstein/mlb-gameday-service/internal/domain/feed"
	"github.com/preston-bernstein/mlb-gameday-service/internal/timeutil"
)

type snapshotKind string

const (
	kindSchedule snapshotKind = "schedule"
	kindFeeds    snapshotKind = "feeds"
)

// Writer persists snapshots and manifest with pruning.
type Writer struct {
	basePath      string
	retentionDays int
	now           func() time.Time
}

// NewWriter constructs a writer rooted at basePath with a rolling window retention.
func NewWriter(basePath string, retentionDays int) *Writer {
	if retentionDays <= 0 {
		retentionDays = 14
	}
	return &Writer{
		basePath:      basePath,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

// BasePath exposes the writer root path (primarily for testing).
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// WriteScheduleSnapshot writes the schedule snapshot for the given date
// (YYYY-MM-DD) and prunes snapshots past the retention window.
func (w *Writer) WriteScheduleSnapshot(date string, snapshot domain.ScheduleResponse) error {
	if w == nil {
		return fmt.Errorf("snapshot writer not configured")
	}
	if date == "" {
		return fmt.Errorf("date required")
	}
	if snapshot.Date == "" {
		snapshot.Date = date
	}
	sort.Slice(snapshot.Games, func(i, j int) bool {
		return snapshot.Games[i].ID < snapshot.Games[j].ID
	})

	if err := w.writePayload(ScheduleSnapshotPath(w.basePath, date), snapshot); err != nil {
		return err
	}
	return w.updateManifest(func(m *Manifest) error {
		dates, err := w.listScheduleDates()
		if err != nil {
			return err
		}
		if !containsString(dates, date) {
			dates = append(dates, date)
		}
		pruned, err := w.pruneSchedules(dates)
		if err != nil {
			return err
		}
		m.Schedule.Dates = pruned
		m.Schedule.LastRefreshed = w.now().UTC()
		return nil
	})
}

// WriteFeedSnapshot archives the final feed document for a game and
// prunes archives past the retention window.
func (w *Writer) WriteFeedSnapshot(gameID string, doc *feed.Document) error {
	if w == nil {
		return fmt.Errorf("snapshot writer not configured")
	}
	if gameID == "" {
		return fmt.Errorf("game id required")
	}
	if doc == nil {
		return fmt.Errorf("feed document required")
	}

	if err := w.writePayload(FeedSnapshotPath(w.basePath, gameID), doc); err != nil {
		return err
	}
	return w.updateManifest(func(m *Manifest) error {
		now := w.now().UTC()
		m.Feeds.ArchivedAt[gameID] = now
		m.Feeds.LastArchived = now
		w.pruneFeeds(m)
		return nil
	})
}

// writePayload writes JSON atomically via tmp+rename, skipping the write
// when the payload is byte-identical to what is already on disk.
func (w *Writer) writePayload(target string, payload any) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}

	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data) {
		return nil
	}

	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, target)
}

func (w *Writer) updateManifest(apply func(m *Manifest) error) error {
	manifestPath := filepath.Join(w.basePath, "manifest.json")
	m, _ := readManifest(manifestPath, w.retentionDays)
	m.Retention.Days = w.retentionDays
	if err := apply(&m); err != nil {
		return err
	}
	return writeManifest(w.basePath, m)
}

func containsString(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

func (w *Writer) listScheduleDates() ([]string, error) {
	dir := filepath.Join(w.basePath, string(kindSchedule))
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	var (
		dates []string
		seen  = make(map[string]struct{})
	)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if filepath.Ext(name) != ".json" {
			continue
		}
		base := name[:len(name)-len(".json")]
		if _, ok := seen[base]; ok {
			continue
		}
		seen[base] = struct{}{}
		dates = append(dates, base)
	}
	sort.Strings(dates)
	return dates, nil
}

func (w *Writer) pruneSchedules(dates []string) ([]string, error) {
	cutoff := w.retentionCutoff()
	var keep []string
	for _, d := range dates {
		parsed, err := timeutil.ParseDate(d)
		if err != nil {
			keep = append(keep, d)
			continue
		}
		if parsed.Before(cutoff) {
			_ = os.Remove(ScheduleSnapshotPath(w.basePath, d))
			continue
		}
		keep = append(keep, d)
	}
	sort.Strings(keep)
	return keep, nil
}

func (w *Writer) pruneFeeds(m *Manifest) {
	cutoff := w.retentionCutoff()
	for gameID, archivedAt := range m.Feeds.ArchivedAt {
		if archivedAt.Before(cutoff) {
			_ = os.Remove(FeedSnapshotPath(w.basePath, gameID))
			delete(m.Feeds.ArchivedAt, gameID)
		}
	}
}

func (w *Writer) retentionCutoff() time.Time {
	now := w.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -w.retentionDays)
}
