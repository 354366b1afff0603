// Package refresh drives background refresh loops for games that are
// live or about to start on the selected date. Each loop ticks the feed
// cache so HTTP reads stay warm without every request paying an
// upstream round trip.
package refresh

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/mlb-gameday-service/internal/domain"
	"github.com/preston-bernstein/mlb-gameday-service/internal/domain/feed"
	"github.com/preston-bernstein/mlb-gameday-service/internal/feedcache"
	"github.com/preston-bernstein/mlb-gameday-service/internal/logging"
	"github.com/preston-bernstein/mlb-gameday-service/internal/metrics"
	"github.com/preston-bernstein/mlb-gameday-service/internal/timeutil"
)

const (
	// DefaultInterval is how often a running loop refreshes its feed.
	DefaultInterval = 15 * time.Second
	// DefaultTickMaxAge keeps tick reads tighter than the cache default so
	// a loop actually refreshes instead of rereading its own prior write.
	DefaultTickMaxAge = 5 * time.Second
)

// CancelFunc stops a refresh loop. Safe to call more than once; calling
// it does not abort a fetch the cache already has in flight.
type CancelFunc func()

// FeedCache is the slice of the cache a refresh loop needs.
type FeedCache interface {
	Get(ctx context.Context, key string, opts ...feedcache.Option) (*feed.Document, error)
}

// ShouldPoll reports whether a game warrants a background refresh loop:
// the selected date must be today and the game must be upcoming or in
// progress. Finished, cancelled, postponed, and unrecognized states
// never poll, and neither does any date other than today.
func ShouldPoll(game domain.Game, selectedDate, now time.Time) bool {
	if !timeutil.SameDay(selectedDate, now) {
		return false
	}
	state := game.State
	if state == "" {
		state = domain.Classify(game.RawStatus)
	}
	return domain.IsPregameLike(state) || domain.IsLiveLike(state)
}

// Coordinator starts and runs per-game refresh loops against the cache.
type Coordinator struct {
	cache      FeedCache
	logger     *slog.Logger
	metrics    *metrics.Recorder
	interval   time.Duration
	tickMaxAge time.Duration

	// OnFinished, when set, is invoked once with the final document when a
	// loop observes its game reaching a finished state.
	OnFinished func(game domain.Game, doc *feed.Document)
}

func NewCoordinator(cache FeedCache, logger *slog.Logger, recorder *metrics.Recorder, interval, tickMaxAge time.Duration) *Coordinator {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if tickMaxAge <= 0 {
		tickMaxAge = DefaultTickMaxAge
	}
	return &Coordinator{
		cache:      cache,
		logger:     logger,
		metrics:    recorder,
		interval:   interval,
		tickMaxAge: tickMaxAge,
	}
}

// Start launches a refresh loop for one game and returns its cancel
// handle. The loop ticks at the coordinator's interval, logs and
// swallows tick failures, and stops on its own when a fetched feed
// classifies as finished.
func (c *Coordinator) Start(ctx context.Context, game domain.Game) CancelFunc {
	loopCtx, cancel := context.WithCancel(ctx)
	go c.run(loopCtx, game)

	var once sync.Once
	return func() {
		once.Do(cancel)
	}
}

func (c *Coordinator) run(ctx context.Context, game domain.Game) {
	logging.Info(c.logger, "refresh loop started",
		slog.String(logging.FieldGame, game.ID),
		slog.String("state", string(game.State)),
	)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Info(c.logger, "refresh loop cancelled",
				slog.String(logging.FieldGame, game.ID),
			)
			return
		case <-ticker.C:
			if c.tick(ctx, game) {
				return
			}
		}
	}
}

// tick refreshes the game's feed once and reports whether the loop
// should stop because the game is over.
func (c *Coordinator) tick(ctx context.Context, game domain.Game) bool {
	start := time.Now()
	doc, err := c.cache.Get(ctx, game.ID, feedcache.WithMaxAge(c.tickMaxAge))
	c.metrics.RecordRefreshTick(time.Since(start), err)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		logging.Warn(c.logger, "refresh tick failed",
			slog.String(logging.FieldGame, game.ID),
			"error", err,
		)
		return false
	}

	state := domain.Classify(doc.DetailedState())
	if !domain.IsFinishedLike(state) {
		return false
	}

	logging.Info(c.logger, "game finished, stopping refresh loop",
		slog.String(logging.FieldGame, game.ID),
		slog.String("state", string(state)),
	)
	if c.OnFinished != nil {
		c.OnFinished(game, doc)
	}
	return true
}
