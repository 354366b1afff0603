package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type cacheStats struct {
	hits        int
	misses      int
	coalesced   int
	fetchErrors int
}

// Recorder captures lightweight, in-memory metrics about provider calls,
// the feed cache, and refresh loops. It is intentionally simple so it can
// be swapped for a real backend later.
type Recorder struct {
	mu      sync.Mutex
	stats   map[string]*providerStats
	cache   cacheStats
	refresh struct {
		ticks      int
		tickErrors int
	}
	otel *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*providerStats),
		otel:  otel,
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	stats := r.ensureStats(provider)
	r.mu.Lock()
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordRateLimit tracks that a provider response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	stats := r.ensureStats(provider)
	r.mu.Lock()
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordRateLimit(provider, retryAfter)
	}
}

// RecordCacheHit tracks a feed served from fresh cached data.
func (r *Recorder) RecordCacheHit() {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.cache.hits++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordCacheRequest(cacheResultHit)
	}
}

// RecordCacheMiss tracks a feed request that started an upstream fetch.
func (r *Recorder) RecordCacheMiss() {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.cache.misses++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordCacheRequest(cacheResultMiss)
	}
}

// RecordCacheCoalesced tracks a request that joined an in-flight fetch.
func (r *Recorder) RecordCacheCoalesced() {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.cache.coalesced++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordCacheRequest(cacheResultCoalesced)
	}
}

// RecordCacheFetch tracks a completed upstream feed fetch.
func (r *Recorder) RecordCacheFetch(duration time.Duration, err error) {
	if r == nil {
		return
	}
	if err != nil {
		r.mu.Lock()
		r.cache.fetchErrors++
		r.mu.Unlock()
	}
	if r.otel != nil {
		r.otel.recordCacheFetch(duration, err)
	}
}

// RecordRefreshTick tracks one background refresh tick.
func (r *Recorder) RecordRefreshTick(duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.refresh.ticks++
	if err != nil {
		r.refresh.tickErrors++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordRefreshTick(duration, err)
	}
}

// CacheHits returns the number of fresh-cache hits recorded.
func (r *Recorder) CacheHits() int { return r.cacheSnapshot().hits }

// CacheMisses returns the number of cache misses recorded.
func (r *Recorder) CacheMisses() int { return r.cacheSnapshot().misses }

// CacheCoalesced returns the number of coalesced waits recorded.
func (r *Recorder) CacheCoalesced() int { return r.cacheSnapshot().coalesced }

// CacheFetchErrors returns the number of failed feed fetches recorded.
func (r *Recorder) CacheFetchErrors() int { return r.cacheSnapshot().fetchErrors }

// RefreshTicks returns the number of background ticks recorded.
func (r *Recorder) RefreshTicks() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.refresh.ticks
}

// RefreshTickErrors returns the number of failed background ticks recorded.
func (r *Recorder) RefreshTickErrors() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.refresh.tickErrors
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// RateLimitHits returns the number of rate limit events seen for a provider.
func (r *Recorder) RateLimitHits(provider string) int {
	return r.Snapshot(provider).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for a provider.
func (r *Recorder) LastRetryAfter(provider string) time.Duration {
	return r.Snapshot(provider).LastRetryAfter
}

// Snapshot is a copy of the current stats for a provider.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stats, ok := r.stats[provider]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordPollerCycle tracks schedule poller cycles and errors.
func (r *Recorder) RecordPollerCycle(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordPoller(duration, err)
}

func (r *Recorder) ensureStats(provider string) *providerStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}

func (r *Recorder) cacheSnapshot() cacheStats {
	if r == nil {
		return cacheStats{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cache
}
