package providers

import (
	"context"

	"github.com/preston-bernstein/mlb-gameday-service/internal/domain"
	"github.com/preston-bernstein/mlb-gameday-service/internal/domain/feed"
)

// ScheduleProvider defines how upstream schedule data is fetched and normalized.
// The date parameter, when provided, should be a YYYY-MM-DD string indicating
// which day's games to fetch. Providers should interpret an empty date as
// "today" in their configured timezone.
type ScheduleProvider interface {
	FetchSchedule(ctx context.Context, date string) ([]domain.Game, error)
}

// FeedProvider fetches the live feed document for one game.
type FeedProvider interface {
	FetchFeed(ctx context.Context, gameID string) (*feed.Document, error)
}

// DataProvider combines all provider capabilities.
type DataProvider interface {
	ScheduleProvider
	FeedProvider
}
