package feedcache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/preston-bernstein/mlb-gameday-service/internal/domain/feed"
	"github.com/preston-bernstein/mlb-gameday-service/internal/metrics"
)

type stubFetcher struct {
	mu    sync.Mutex
	calls atomic.Int32
	err   error
	block chan struct{}
}

func (s *stubFetcher) FetchFeed(ctx context.Context, gameID string) (*feed.Document, error) {
	s.calls.Add(1)

	s.mu.Lock()
	block := s.block
	err := s.err
	s.mu.Unlock()

	if block != nil {
		<-block
	}
	if err != nil {
		return nil, err
	}
	return &feed.Document{
		GamePk:   7715,
		GameData: feed.GameData{Status: feed.Status{DetailedState: "In Progress"}},
	}, nil
}

func (s *stubFetcher) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func newTestCache(fetcher *stubFetcher) (*Cache, *time.Time) {
	at := time.Date(2024, 7, 4, 18, 0, 0, 0, time.UTC)
	c := New(fetcher, nil, metrics.NewRecorder(), DefaultMaxAge)
	c.now = func() time.Time { return at }
	return c, &at
}

func TestGetCachesWithinFreshnessWindow(t *testing.T) {
	fetcher := &stubFetcher{}
	c, now := newTestCache(fetcher)

	first, err := c.Get(context.Background(), "7715", WithMaxAge(15*time.Second))
	if err != nil {
		t.Fatalf("first get returned error: %v", err)
	}

	*now = now.Add(5 * time.Second)

	second, err := c.Get(context.Background(), "7715", WithMaxAge(15*time.Second))
	if err != nil {
		t.Fatalf("second get returned error: %v", err)
	}

	if fetcher.calls.Load() != 1 {
		t.Fatalf("expected exactly one fetch, got %d", fetcher.calls.Load())
	}
	if first != second {
		t.Fatal("expected the identical cached document for a fresh read")
	}
}

func TestGetRefetchesAfterExpiry(t *testing.T) {
	fetcher := &stubFetcher{}
	c, now := newTestCache(fetcher)

	if _, err := c.Get(context.Background(), "7715", WithMaxAge(15*time.Second)); err != nil {
		t.Fatalf("initial get returned error: %v", err)
	}

	*now = now.Add(16 * time.Second)

	if _, err := c.Get(context.Background(), "7715", WithMaxAge(15*time.Second)); err != nil {
		t.Fatalf("expired get returned error: %v", err)
	}

	if fetcher.calls.Load() != 2 {
		t.Fatalf("expected a second fetch after expiry, got %d", fetcher.calls.Load())
	}
}

func TestConcurrentGetsCollapseToOneFetch(t *testing.T) {
	fetcher := &stubFetcher{block: make(chan struct{})}
	c, _ := newTestCache(fetcher)

	const callers = 3
	results := make([]*feed.Document, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = c.Get(context.Background(), "7715")
		}(i)
	}

	// Let every caller reach the cache before the fetch resolves.
	waitFor(t, func() bool { return fetcher.calls.Load() >= 1 })
	time.Sleep(20 * time.Millisecond)
	close(fetcher.block)
	wg.Wait()

	if fetcher.calls.Load() != 1 {
		t.Fatalf("expected one collapsed fetch, got %d", fetcher.calls.Load())
	}
	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d returned error: %v", i, errs[i])
		}
		if results[i] != results[0] {
			t.Fatalf("caller %d observed a different document", i)
		}
	}
}

func TestFailedRefreshPreservesStaleData(t *testing.T) {
	fetcher := &stubFetcher{}
	c, now := newTestCache(fetcher)

	stale, err := c.Get(context.Background(), "7715")
	if err != nil {
		t.Fatalf("seed get returned error: %v", err)
	}

	*now = now.Add(10 * time.Second)
	fetcher.setErr(errors.New("network down"))

	if _, err := c.Get(context.Background(), "7715", WithForceRefresh()); err == nil {
		t.Fatal("expected forced refresh to surface the fetch error")
	}

	fresh, err := c.Get(context.Background(), "7715", WithMaxAge(60*time.Second))
	if err != nil {
		t.Fatalf("stale read returned error: %v", err)
	}
	if fresh != stale {
		t.Fatal("expected the prior document to survive the failed refresh")
	}
	if fetcher.calls.Load() != 2 {
		t.Fatalf("expected no fetch for the stale read, got %d calls", fetcher.calls.Load())
	}
}

func TestAllWaitersObserveTheSameError(t *testing.T) {
	fetcher := &stubFetcher{block: make(chan struct{})}
	fetcher.setErr(errors.New("boom"))
	c, _ := newTestCache(fetcher)

	const callers = 3
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.Get(context.Background(), "7715")
		}(i)
	}

	waitFor(t, func() bool { return fetcher.calls.Load() >= 1 })
	time.Sleep(20 * time.Millisecond)
	close(fetcher.block)
	wg.Wait()

	if fetcher.calls.Load() != 1 {
		t.Fatalf("expected one fetch, got %d", fetcher.calls.Load())
	}
	for i := 0; i < callers; i++ {
		if errs[i] == nil || errs[i].Error() != "boom" {
			t.Fatalf("caller %d expected shared error, got %v", i, errs[i])
		}
	}
}

func TestForceRefreshBypassesFreshness(t *testing.T) {
	fetcher := &stubFetcher{}
	c, _ := newTestCache(fetcher)

	if _, err := c.Get(context.Background(), "7715"); err != nil {
		t.Fatalf("seed get returned error: %v", err)
	}
	if _, err := c.Get(context.Background(), "7715", WithForceRefresh()); err != nil {
		t.Fatalf("forced get returned error: %v", err)
	}

	if fetcher.calls.Load() != 2 {
		t.Fatalf("expected force refresh to fetch again, got %d calls", fetcher.calls.Load())
	}
}

func TestWaiterContextCancellation(t *testing.T) {
	fetcher := &stubFetcher{block: make(chan struct{})}
	c, _ := newTestCache(fetcher)

	done := make(chan error, 1)
	go func() {
		_, err := c.Get(context.Background(), "7715")
		done <- err
	}()
	waitFor(t, func() bool { return fetcher.calls.Load() >= 1 })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Get(ctx, "7715"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled for cancelled waiter, got %v", err)
	}

	// The original fetch is unaffected by the cancelled joiner.
	close(fetcher.block)
	if err := <-done; err != nil {
		t.Fatalf("first caller returned error: %v", err)
	}
	if fetcher.calls.Load() != 1 {
		t.Fatalf("expected the shared fetch to survive, got %d calls", fetcher.calls.Load())
	}
}

func TestClearForcesNextGetToFetch(t *testing.T) {
	fetcher := &stubFetcher{}
	c, _ := newTestCache(fetcher)

	if _, err := c.Get(context.Background(), "7715"); err != nil {
		t.Fatalf("seed get returned error: %v", err)
	}

	c.Clear("7715")
	c.Clear("missing") // no-op

	if _, err := c.Get(context.Background(), "7715"); err != nil {
		t.Fatalf("post-clear get returned error: %v", err)
	}
	if fetcher.calls.Load() != 2 {
		t.Fatalf("expected refetch after clear, got %d calls", fetcher.calls.Load())
	}
}

func TestClearAllEmptiesEveryKey(t *testing.T) {
	fetcher := &stubFetcher{}
	c, _ := newTestCache(fetcher)

	if _, err := c.Get(context.Background(), "1"); err != nil {
		t.Fatalf("get returned error: %v", err)
	}
	if _, err := c.Get(context.Background(), "2"); err != nil {
		t.Fatalf("get returned error: %v", err)
	}

	c.ClearAll()

	if _, err := c.Get(context.Background(), "1"); err != nil {
		t.Fatalf("get returned error: %v", err)
	}
	if _, err := c.Get(context.Background(), "2"); err != nil {
		t.Fatalf("get returned error: %v", err)
	}
	if fetcher.calls.Load() != 4 {
		t.Fatalf("expected refetch for both keys after clear all, got %d calls", fetcher.calls.Load())
	}
}

func TestClearDuringInFlightStillResolvesWaiters(t *testing.T) {
	fetcher := &stubFetcher{block: make(chan struct{})}
	c, _ := newTestCache(fetcher)

	done := make(chan error, 1)
	go func() {
		_, err := c.Get(context.Background(), "7715")
		done <- err
	}()
	waitFor(t, func() bool { return fetcher.calls.Load() >= 1 })

	c.Clear("7715")
	close(fetcher.block)

	if err := <-done; err != nil {
		t.Fatalf("waiter returned error: %v", err)
	}

	// The completed fetch must not have resurrected the cleared entry.
	if _, err := c.Get(context.Background(), "7715"); err != nil {
		t.Fatalf("post-clear get returned error: %v", err)
	}
	if fetcher.calls.Load() != 2 {
		t.Fatalf("expected a fresh fetch after clear, got %d calls", fetcher.calls.Load())
	}
}

func TestGetRequiresKey(t *testing.T) {
	c, _ := newTestCache(&stubFetcher{})
	if _, err := c.Get(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty key")
	}
}

func TestCacheMetrics(t *testing.T) {
	fetcher := &stubFetcher{}
	rec := metrics.NewRecorder()
	c := New(fetcher, nil, rec, DefaultMaxAge)
	at := time.Date(2024, 7, 4, 18, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return at }

	if _, err := c.Get(context.Background(), "7715"); err != nil {
		t.Fatalf("get returned error: %v", err)
	}
	if _, err := c.Get(context.Background(), "7715"); err != nil {
		t.Fatalf("get returned error: %v", err)
	}

	if rec.CacheMisses() != 1 {
		t.Fatalf("expected 1 miss, got %d", rec.CacheMisses())
	}
	if rec.CacheHits() != 1 {
		t.Fatalf("expected 1 hit, got %d", rec.CacheHits())
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("timed out waiting for condition")
}
