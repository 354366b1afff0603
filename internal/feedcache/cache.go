// Package feedcache is the single source of truth for the rate-limited
// upstream live feed fetch. Every consumer of game detail data goes through
// Get so that N simultaneous readers of the same game produce at most one
// upstream call.
package feedcache

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/mlb-gameday-service/internal/domain/feed"
	"github.com/preston-bernstein/mlb-gameday-service/internal/logging"
	"github.com/preston-bernstein/mlb-gameday-service/internal/metrics"
)

// DefaultMaxAge is the staleness threshold applied when Get is called
// without an explicit max age.
const DefaultMaxAge = 15 * time.Second

// Fetcher performs the upstream live feed call.
type Fetcher interface {
	FetchFeed(ctx context.Context, gameID string) (*feed.Document, error)
}

// Cache memoizes live feed documents per game with TTL freshness, in-flight
// collapsing, and stale-on-error semantics: a failed refresh never discards
// previously cached data.
type Cache struct {
	fetcher       Fetcher
	logger        *slog.Logger
	metrics       *metrics.Recorder
	defaultMaxAge time.Duration
	now           func() time.Time

	mu      sync.Mutex
	entries map[string]*entry
}

// entry is the cached state for one game. fetchedAt only advances on fetch
// success; data survives failed refreshes untouched. At most one inflight
// handle exists per entry at any instant.
type entry struct {
	data      *feed.Document
	fetchedAt time.Time
	inflight  *inflight
}

// inflight is the shared handle all colliding callers wait on.
type inflight struct {
	done chan struct{}
	doc  *feed.Document
	err  error
}

// New constructs a Cache. A defaultMaxAge <= 0 falls back to DefaultMaxAge.
func New(fetcher Fetcher, logger *slog.Logger, recorder *metrics.Recorder, defaultMaxAge time.Duration) *Cache {
	if defaultMaxAge <= 0 {
		defaultMaxAge = DefaultMaxAge
	}
	return &Cache{
		fetcher:       fetcher,
		logger:        logger,
		metrics:       recorder,
		defaultMaxAge: defaultMaxAge,
		now:           time.Now,
		entries:       make(map[string]*entry),
	}
}

// Get returns the live feed document for key. Fresh cached data is returned
// without a network call; a stale or missing entry triggers a single
// upstream fetch shared by every concurrent caller of the same key. On
// fetch failure the error is returned and any previously cached document is
// left intact for later stale reads.
func (c *Cache) Get(ctx context.Context, key string, opts ...Option) (*feed.Document, error) {
	if key == "" {
		return nil, errors.New("feedcache: key required")
	}
	o := getOptions{maxAge: c.defaultMaxAge}
	for _, opt := range opts {
		opt(&o)
	}

	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}

	if !o.forceRefresh && e.data != nil && c.now().Sub(e.fetchedAt) < o.maxAge {
		doc := e.data
		c.mu.Unlock()
		c.metrics.RecordCacheHit()
		return doc, nil
	}

	// Join an in-flight fetch even under force refresh: one upstream call
	// per key at a time.
	if fl := e.inflight; fl != nil {
		c.mu.Unlock()
		c.metrics.RecordCacheCoalesced()
		return wait(ctx, fl)
	}

	fl := &inflight{done: make(chan struct{})}
	e.inflight = fl
	c.mu.Unlock()

	c.metrics.RecordCacheMiss()
	go c.fetch(key, fl)
	return wait(ctx, fl)
}

// Clear removes the cached entry for one key. A completing in-flight fetch
// for that key still resolves its waiters but no longer writes the cache.
// No-op if the key is absent.
func (c *Cache) Clear(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// ClearAll empties the entire cache.
func (c *Cache) ClearAll() {
	c.mu.Lock()
	c.entries = make(map[string]*entry)
	c.mu.Unlock()
}

// fetch performs the upstream call outside the lock and publishes the result
// to every waiter. The call deliberately runs on a background context:
// cancelling one waiter (or a poll loop) must not abort the shared fetch.
func (c *Cache) fetch(key string, fl *inflight) {
	start := time.Now()
	doc, err := c.fetcher.FetchFeed(context.Background(), key)
	c.metrics.RecordCacheFetch(time.Since(start), err)

	c.mu.Lock()
	if e, ok := c.entries[key]; ok && e.inflight == fl {
		e.inflight = nil
		if err == nil {
			e.data = doc
			e.fetchedAt = c.now()
		}
	}
	c.mu.Unlock()

	fl.doc = doc
	fl.err = err
	close(fl.done)

	if err != nil {
		logging.Warn(c.logger, "feed fetch failed",
			slog.String(logging.FieldGame, key),
			"error", err,
		)
	}
}

// wait blocks until the shared fetch resolves or the caller's own context
// is done. A cancelled waiter does not disturb the fetch or its other
// waiters.
func wait(ctx context.Context, fl *inflight) (*feed.Document, error) {
	select {
	case <-fl.done:
		return fl.doc, fl.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
