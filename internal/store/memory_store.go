package store

import (
	"sort"
	"sync"
	"time"

	"github.com/preston-bernstein/mlb-gameday-service/internal/domain"
)

// MemoryStore keeps a thread-safe snapshot of one date's schedule in
// memory. The poller replaces the whole snapshot each cycle.
type MemoryStore struct {
	mu    sync.RWMutex
	date  time.Time
	games map[string]domain.Game
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		games: make(map[string]domain.Game),
	}
}

// SetSchedule replaces the stored snapshot with a new date and game set.
func (s *MemoryStore) SetSchedule(date time.Time, games []domain.Game) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.date = date
	s.games = make(map[string]domain.Game, len(games))
	for _, g := range games {
		s.games[g.ID] = g
	}
}

// Date returns the date of the stored schedule. Zero until the first
// SetSchedule.
func (s *MemoryStore) Date() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.date
}

// ListGames returns a copy of the current games ordered by start time,
// with the game ID as a tiebreaker.
func (s *MemoryStore) ListGames() []domain.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Game, 0, len(s.games))
	for _, g := range s.games {
		result = append(result, g)
	}
	// RFC3339 start times in a common offset sort lexicographically.
	sort.Slice(result, func(i, j int) bool {
		if result[i].StartTime == result[j].StartTime {
			return result[i].ID < result[j].ID
		}
		return result[i].StartTime < result[j].StartTime
	})
	return result
}

// GetGame retrieves a game by ID.
func (s *MemoryStore) GetGame(id string) (domain.Game, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[id]
	return g, ok
}
