package metrics

import (
	"errors"
	"testing"
	"time"
)

func TestRecorderProviderCounters(t *testing.T) {
	r := NewRecorder()

	r.RecordProviderAttempt("statsapi", 25*time.Millisecond, nil)
	r.RecordProviderAttempt("statsapi", 40*time.Millisecond, errors.New("boom"))

	if got := r.ProviderCalls("statsapi"); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
	if got := r.ProviderErrors("statsapi"); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}
	if got := r.Snapshot("statsapi").LastCallLatency; got != 40*time.Millisecond {
		t.Fatalf("expected last latency 40ms, got %s", got)
	}
}

func TestRecorderRateLimit(t *testing.T) {
	r := NewRecorder()

	r.RecordRateLimit("statsapi", 30*time.Second)

	if got := r.RateLimitHits("statsapi"); got != 1 {
		t.Fatalf("expected 1 rate limit hit, got %d", got)
	}
	if got := r.LastRetryAfter("statsapi"); got != 30*time.Second {
		t.Fatalf("expected retry-after 30s, got %s", got)
	}
}

func TestRecorderCacheCounters(t *testing.T) {
	r := NewRecorder()

	r.RecordCacheHit()
	r.RecordCacheHit()
	r.RecordCacheMiss()
	r.RecordCacheCoalesced()
	r.RecordCacheFetch(10*time.Millisecond, nil)
	r.RecordCacheFetch(10*time.Millisecond, errors.New("down"))

	if got := r.CacheHits(); got != 2 {
		t.Fatalf("expected 2 hits, got %d", got)
	}
	if got := r.CacheMisses(); got != 1 {
		t.Fatalf("expected 1 miss, got %d", got)
	}
	if got := r.CacheCoalesced(); got != 1 {
		t.Fatalf("expected 1 coalesced, got %d", got)
	}
	if got := r.CacheFetchErrors(); got != 1 {
		t.Fatalf("expected 1 fetch error, got %d", got)
	}
}

func TestRecorderRefreshCounters(t *testing.T) {
	r := NewRecorder()

	r.RecordRefreshTick(5*time.Millisecond, nil)
	r.RecordRefreshTick(5*time.Millisecond, errors.New("tick failed"))

	if got := r.RefreshTicks(); got != 2 {
		t.Fatalf("expected 2 ticks, got %d", got)
	}
	if got := r.RefreshTickErrors(); got != 1 {
		t.Fatalf("expected 1 tick error, got %d", got)
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var r *Recorder

	r.RecordProviderAttempt("statsapi", time.Millisecond, nil)
	r.RecordCacheHit()
	r.RecordCacheMiss()
	r.RecordCacheCoalesced()
	r.RecordCacheFetch(time.Millisecond, nil)
	r.RecordRefreshTick(time.Millisecond, nil)
	r.RecordPollerCycle(time.Millisecond, nil)
	r.RecordHTTPRequest("GET", "/health", 200, time.Millisecond)

	if got := r.ProviderCalls("statsapi"); got != 0 {
		t.Fatalf("expected 0 for nil recorder, got %d", got)
	}
	if got := r.CacheHits(); got != 0 {
		t.Fatalf("expected 0 for nil recorder, got %d", got)
	}
}

func TestSetupDisabledReturnsRecorder(t *testing.T) {
	rec, handler, shutdown, err := Setup(nil, TelemetryConfig{Enabled: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec == nil {
		t.Fatal("expected recorder")
	}
	if handler != nil {
		t.Fatal("expected no handler when disabled")
	}
	if err := shutdown(nil); err != nil {
		t.Fatalf("shutdown returned error: %v", err)
	}
}
