package providers

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/mlb-gameday-service/internal/domain"
	"github.com/preston-bernstein/mlb-gameday-service/internal/domain/feed"
	"github.com/preston-bernstein/mlb-gameday-service/internal/metrics"
)

type flakeyProvider struct {
	failures int
	calls    int
	feedErr  error
}

func (f *flakeyProvider) FetchSchedule(ctx context.Context, date string) ([]domain.Game, error) {
	_ = ctx
	_ = date
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("boom")
	}
	return []domain.Game{{ID: "745804"}}, nil
}

func (f *flakeyProvider) FetchFeed(ctx context.Context, gameID string) (*feed.Document, error) {
	_ = ctx
	_ = gameID
	f.calls++
	if f.feedErr != nil {
		return nil, f.feedErr
	}
	if f.calls <= f.failures {
		return nil, errors.New("boom")
	}
	return &feed.Document{GamePk: 745804}, nil
}

func TestRetryingProviderRetriesAndSucceeds(t *testing.T) {
	fp := &flakeyProvider{failures: 2}
	rp := NewRetryingProvider(fp, slog.Default(), metrics.NewRecorder(), "flakey", 3, time.Millisecond)

	games, err := rp.FetchSchedule(context.Background(), "")
	if err != nil {
		t.Fatalf("expected success, got error %v", err)
	}
	if len(games) != 1 || games[0].ID != "745804" {
		t.Fatalf("unexpected games %+v", games)
	}
	if fp.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", fp.calls)
	}
}

func TestRetryingProviderStopsAfterMaxAttempts(t *testing.T) {
	fp := &flakeyProvider{failures: 5}
	rp := NewRetryingProvider(fp, nil, metrics.NewRecorder(), "flakey", 2, time.Millisecond)

	_, err := rp.FetchSchedule(context.Background(), "")
	if err == nil {
		t.Fatal("expected error after retries")
	}
	if fp.calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", fp.calls)
	}
}

func TestRetryingProviderRespectsContextCancel(t *testing.T) {
	fp := &flakeyProvider{failures: 5}
	rp := NewRetryingProvider(fp, nil, metrics.NewRecorder(), "flakey", 3, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := rp.FetchSchedule(ctx, "")
	if err == nil {
		t.Fatal("expected context error")
	}
}

func TestRetryingProviderFetchesFeed(t *testing.T) {
	fp := &flakeyProvider{failures: 1}
	rp := NewRetryingProvider(fp, nil, metrics.NewRecorder(), "flakey", 3, time.Millisecond)

	doc, err := rp.FetchFeed(context.Background(), "745804")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if doc.GamePk != 745804 {
		t.Fatalf("unexpected document %+v", doc)
	}
	if fp.calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", fp.calls)
	}
}

func TestRetryingProviderRecordsAttemptMetrics(t *testing.T) {
	rec := metrics.NewRecorder()
	fp := &flakeyProvider{failures: 1}
	rp := NewRetryingProvider(fp, nil, rec, "flakey", 3, time.Millisecond)

	if _, err := rp.FetchSchedule(context.Background(), ""); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if got := rec.ProviderCalls("flakey"); got != 2 {
		t.Fatalf("expected 2 provider calls, got %d", got)
	}
	if got := rec.ProviderErrors("flakey"); got != 1 {
		t.Fatalf("expected 1 provider error, got %d", got)
	}
}

func TestRetryingProviderRecordsRateLimitMetrics(t *testing.T) {
	rec := metrics.NewRecorder()
	rp := NewRetryingProvider(&rateLimitThenSuccessProvider{retryAfter: 5 * time.Millisecond}, nil, rec, "rl", 2, time.Millisecond)

	games, err := rp.FetchSchedule(context.Background(), "")
	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if len(games) != 1 || games[0].ID != "745804" {
		t.Fatalf("unexpected games %+v", games)
	}

	if got := rec.RateLimitHits("rl"); got != 1 {
		t.Fatalf("expected 1 rate limit hit, got %d", got)
	}
	if got := rec.LastRetryAfter("rl"); got != 5*time.Millisecond {
		t.Fatalf("expected retry-after hint recorded, got %s", got)
	}
}

func TestRateLimitFloorBackOffRaisesDelay(t *testing.T) {
	bo := &rateLimitFloorBackOff{BackOff: backoff.NewConstantBackOff(time.Millisecond)}

	bo.floor = 30 * time.Millisecond
	if d := bo.NextBackOff(); d != 30*time.Millisecond {
		t.Fatalf("expected retry-after floor to win, got %s", d)
	}
	// The hint is consumed: the next delay returns to the inner curve.
	if d := bo.NextBackOff(); d != time.Millisecond {
		t.Fatalf("expected inner backoff after floor consumed, got %s", d)
	}

	// A floor below the inner delay changes nothing.
	bo.floor = time.Microsecond
	if d := bo.NextBackOff(); d != time.Millisecond {
		t.Fatalf("expected inner backoff to win over smaller floor, got %s", d)
	}
}

func TestRetryingProviderHonorsRetryAfter(t *testing.T) {
	rp := NewRetryingProvider(&rateLimitThenSuccessProvider{retryAfter: 25 * time.Millisecond}, nil, nil, "rl", 2, time.Millisecond)

	start := time.Now()
	if _, err := rp.FetchSchedule(context.Background(), ""); err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if elapsed := time.Since(start); elapsed < 25*time.Millisecond {
		t.Fatalf("expected retry to wait out Retry-After, elapsed %s", elapsed)
	}
}

func TestNewRetryingProviderDefaults(t *testing.T) {
	rp := NewRetryingProvider(&flakeyProvider{}, nil, nil, "flakey", 0, 0).(*retryingProvider)
	if rp.maxAttempts != defaultRetryAttempts {
		t.Fatalf("expected default attempts, got %d", rp.maxAttempts)
	}
	if rp.initial != defaultBackoff {
		t.Fatalf("expected default backoff, got %s", rp.initial)
	}
}

type rateLimitThenSuccessProvider struct {
	calls      int
	retryAfter time.Duration
}

func (f *rateLimitThenSuccessProvider) FetchSchedule(ctx context.Context, date string) ([]domain.Game, error) {
	_ = ctx
	_ = date
	f.calls++
	if f.calls == 1 {
		return nil, &RateLimitError{
			Provider:   "test",
			StatusCode: 429,
			RetryAfter: f.retryAfter,
		}
	}
	return []domain.Game{{ID: "745804"}}, nil
}

func (f *rateLimitThenSuccessProvider) FetchFeed(ctx context.Context, gameID string) (*feed.Document, error) {
	_ = ctx
	_ = gameID
	return &feed.Document{}, nil
}
