package snapshots

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/preston-bernstein/mlb-gameday-service/internal/domain"
	"github.com/preston-bernstein/mlb-gameday-service/internal/domain/feed"
)

// Store defines how snapshots are loaded.
type Store interface {
	LoadSchedule(date string) (domain.ScheduleResponse, error)
	LoadFeed(gameID string) (*feed.Document, error)
}

// FSStore loads snapshots from the filesystem.
type FSStore struct {
	basePath string
}

// NewFSStore constructs an FS-backed snapshot store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// LoadSchedule reads a schedule snapshot for the given date (YYYY-MM-DD)
// from {basePath}/schedule/{date}.json.
func (s *FSStore) LoadSchedule(date string) (domain.ScheduleResponse, error) {
	if s == nil {
		return domain.ScheduleResponse{}, errors.New("snapshot store not configured")
	}
	if date == "" {
		return domain.ScheduleResponse{}, errors.New("snapshot date required")
	}
	var payload domain.ScheduleResponse
	if err := s.decodeFile(ScheduleSnapshotPath(s.basePath, date), &payload); err != nil {
		return domain.ScheduleResponse{}, err
	}
	if payload.Date == "" {
		payload.Date = date
	}
	return payload, nil
}

// LoadFeed reads an archived feed for a finished game from
// {basePath}/feeds/{gameID}.json.
func (s *FSStore) LoadFeed(gameID string) (*feed.Document, error) {
	if s == nil {
		return nil, errors.New("snapshot store not configured")
	}
	if gameID == "" {
		return nil, errors.New("game id required")
	}
	var payload feed.Document
	if err := s.decodeFile(FeedSnapshotPath(s.basePath, gameID), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (s *FSStore) decodeFile(path string, payload any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(payload)
}
