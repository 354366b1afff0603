package snapshots

import (
	"fmt"
	"path/filepath"
)

// ScheduleSnapshotPath builds the path to a schedule snapshot for a date.
func ScheduleSnapshotPath(basePath, date string) string {
	return filepath.Join(basePath, "schedule", fmt.Sprintf("%s.json", date))
}

// FeedSnapshotPath builds the path to an archived feed for a game.
func FeedSnapshotPath(basePath, gameID string) string {
	return filepath.Join(basePath, "feeds", fmt.Sprintf("%s.json", gameID))
}
