package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/mlb-gameday-service/internal/domain"
	"github.com/preston-bernstein/mlb-gameday-service/internal/domain/feed"
	"github.com/preston-bernstein/mlb-gameday-service/internal/logging"
	"github.com/preston-bernstein/mlb-gameday-service/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
)

// retryingProvider wraps a DataProvider with exponential backoff retries.
type retryingProvider struct {
	inner       DataProvider
	logger      *slog.Logger
	metrics     *metrics.Recorder
	name        string
	maxAttempts int
	initial     time.Duration
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts
// or initialBackoff are <= 0, defaults are used.
func NewRetryingProvider(inner DataProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, maxAttempts int, initialBackoff time.Duration) DataProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initialBackoff <= 0 {
		initialBackoff = defaultBackoff
	}
	return &retryingProvider{
		inner:       inner,
		logger:      logger,
		metrics:     recorder,
		name:        name,
		maxAttempts: maxAttempts,
		initial:     initialBackoff,
	}
}

func (r *retryingProvider) FetchSchedule(ctx context.Context, date string) ([]domain.Game, error) {
	var games []domain.Game
	err := r.retry(ctx, "schedule", func() error {
		start := time.Now()
		fetched, err := r.inner.FetchSchedule(ctx, date)
		r.record(time.Since(start), err)
		if err != nil {
			return err
		}
		games = fetched
		return nil
	})
	if err != nil {
		return nil, err
	}
	return games, nil
}

func (r *retryingProvider) FetchFeed(ctx context.Context, gameID string) (*feed.Document, error) {
	var doc *feed.Document
	err := r.retry(ctx, "feed", func() error {
		start := time.Now()
		fetched, err := r.inner.FetchFeed(ctx, gameID)
		r.record(time.Since(start), err)
		if err != nil {
			return err
		}
		doc = fetched
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (r *retryingProvider) record(duration time.Duration, err error) {
	if r.metrics == nil {
		return
	}
	r.metrics.RecordProviderAttempt(r.name, duration, err)
	if rl, ok := AsRateLimitError(err); ok {
		r.metrics.RecordRateLimit(r.name, rl.RetryAfter)
	}
}

// rateLimitFloorBackOff raises the next delay to the upstream's
// Retry-After hint when the last attempt was rate limited. The floor is
// consumed on use so later attempts fall back to the exponential curve.
type rateLimitFloorBackOff struct {
	backoff.BackOff
	floor time.Duration
}

func (b *rateLimitFloorBackOff) NextBackOff() time.Duration {
	d := b.BackOff.NextBackOff()
	if d == backoff.Stop {
		return d
	}
	if b.floor > d {
		d = b.floor
	}
	b.floor = 0
	return d
}

func (r *retryingProvider) retry(ctx context.Context, op string, fn func() error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = r.initial
	floored := &rateLimitFloorBackOff{BackOff: bo}
	policy := backoff.WithContext(backoff.WithMaxRetries(floored, uint64(r.maxAttempts-1)), ctx)

	attempt := 0
	hinted := func() error {
		err := fn()
		if rl, ok := AsRateLimitError(err); ok {
			floored.floor = rl.RetryAfter
		}
		return err
	}
	return backoff.RetryNotify(hinted, policy, func(err error, next time.Duration) {
		attempt++
		r.logWarn(ctx, "provider fetch retry",
			"op", op,
			"attempt", attempt,
			"max_attempts", r.maxAttempts,
			"next_backoff", next.String(),
			"err", err,
		)
	})
}

func (r *retryingProvider) logWarn(ctx context.Context, msg string, args ...any) {
	logger := logging.FromContext(ctx, r.logger)
	if logger != nil {
		logger.Warn(msg, append(args, slog.String(logging.FieldProvider, r.name))...)
	}
}
