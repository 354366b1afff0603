// Package teststubs holds shared test doubles for the provider, snapshot,
// and reconciler seams.
package teststubs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/preston-bernstein/mlb-gameday-service/internal/domain"
	"github.com/preston-bernstein/mlb-gameday-service/internal/domain/feed"
)

// StubScheduleProvider is a test double for providers.ScheduleProvider.
type StubScheduleProvider struct {
	Games  []domain.Game
	Err    error
	Calls  atomic.Int32
	Notify chan struct{}
}

// FetchSchedule returns the configured games and error while tracking calls.
func (s *StubScheduleProvider) FetchSchedule(ctx context.Context, date string) ([]domain.Game, error) {
	_ = ctx
	_ = date
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)
	return s.Games, s.Err
}

// StubFeedProvider is a test double for providers.FeedProvider.
type StubFeedProvider struct {
	Doc   *feed.Document
	Err   error
	Calls atomic.Int32
}

// FetchFeed returns the configured document and error while tracking calls.
func (s *StubFeedProvider) FetchFeed(ctx context.Context, gameID string) (*feed.Document, error) {
	_ = ctx
	_ = gameID
	s.Calls.Add(1)
	return s.Doc, s.Err
}

// StubSnapshotStore is a test double for the snapshot read side.
type StubSnapshotStore struct {
	Schedules map[string]domain.ScheduleResponse // keyed by date
	Feeds     map[string]*feed.Document          // keyed by game ID
	LoadErr   error
}

// LoadSchedule returns the schedule for a date if present.
func (s *StubSnapshotStore) LoadSchedule(date string) (domain.ScheduleResponse, error) {
	if s.LoadErr != nil {
		return domain.ScheduleResponse{}, s.LoadErr
	}
	resp, ok := s.Schedules[date]
	if !ok {
		return domain.ScheduleResponse{}, errors.New("snapshot not found")
	}
	return resp, nil
}

// LoadFeed returns the archived feed for a game if present.
func (s *StubSnapshotStore) LoadFeed(gameID string) (*feed.Document, error) {
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	doc, ok := s.Feeds[gameID]
	if !ok {
		return nil, errors.New("snapshot not found")
	}
	return doc, nil
}

// StubSnapshotWriter is a test double for the snapshot write side.
type StubSnapshotWriter struct {
	mu        sync.Mutex
	Schedules map[string]domain.ScheduleResponse // keyed by date
	Feeds     map[string]*feed.Document          // keyed by game ID
	Err       error
}

// WriteScheduleSnapshot records the schedule snapshot for verification.
func (w *StubSnapshotWriter) WriteScheduleSnapshot(date string, snapshot domain.ScheduleResponse) error {
	if w.Err != nil {
		return w.Err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.Schedules == nil {
		w.Schedules = make(map[string]domain.ScheduleResponse)
	}
	w.Schedules[date] = snapshot
	return nil
}

// WriteFeedSnapshot records the archived feed for verification.
func (w *StubSnapshotWriter) WriteFeedSnapshot(gameID string, doc *feed.Document) error {
	if w.Err != nil {
		return w.Err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.Feeds == nil {
		w.Feeds = make(map[string]*feed.Document)
	}
	w.Feeds[gameID] = doc
	return nil
}

// WrittenSchedule returns the recorded schedule for a date, if any.
func (w *StubSnapshotWriter) WrittenSchedule(date string) (domain.ScheduleResponse, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	resp, ok := w.Schedules[date]
	return resp, ok
}

// StubReconciler records reconcile calls for verification.
type StubReconciler struct {
	mu       sync.Mutex
	Calls    int
	LastGame []domain.Game
	LastDate time.Time
}

// Reconcile records its arguments.
func (r *StubReconciler) Reconcile(ctx context.Context, games []domain.Game, selectedDate time.Time) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls++
	r.LastGame = games
	r.LastDate = selectedDate
}

// CallCount returns how many times Reconcile ran.
func (r *StubReconciler) CallCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Calls
}
