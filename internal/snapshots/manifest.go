package snapshots

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Manifest tracks snapshot metadata.
type Manifest struct {
	Version     int          `json:"version"`
	GeneratedAt time.Time    `json:"generatedAt"`
	Retention   Retention    `json:"retention"`
	Schedule    ScheduleMeta `json:"schedule"`
	Feeds       FeedsMeta    `json:"feeds"`
}

type Retention struct {
	Days int `json:"days"`
}

type ScheduleMeta struct {
	Dates         []string  `json:"dates"`
	LastRefreshed time.Time `json:"lastRefreshed"`
}

type FeedsMeta struct {
	// ArchivedAt maps game IDs to when their final feed was written.
	ArchivedAt   map[string]time.Time `json:"archivedAt"`
	LastArchived time.Time            `json:"lastArchived"`
}

func defaultManifest(retentionDays int) Manifest {
	return Manifest{
		Version: 1,
		Retention: Retention{
			Days: retentionDays,
		},
		Schedule: ScheduleMeta{
			Dates: []string{},
		},
		Feeds: FeedsMeta{
			ArchivedAt: map[string]time.Time{},
		},
	}
}

func readManifest(path string, retentionDays int) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return defaultManifest(retentionDays), err
	}
	defer f.Close()
	var m Manifest
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return defaultManifest(retentionDays), err
	}
	if m.Feeds.ArchivedAt == nil {
		m.Feeds.ArchivedAt = map[string]time.Time{}
	}
	return m, nil
}

func writeManifest(basePath string, m Manifest) error {
	m.GeneratedAt = time.Now().UTC()
	path := filepath.Join(basePath, "manifest.json")
	tmp := path + ".tmp"
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
