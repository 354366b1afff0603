package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/mlb-gameday-service/internal/domain"
)

// rateLimitedScheduleProvider wraps a ScheduleProvider and enforces a minimum
// interval between calls. Schedule backfill is the only bulk consumer of the
// upstream, so only the schedule side is gated.
type rateLimitedScheduleProvider struct {
	next     ScheduleProvider
	interval time.Duration
	ticker   *time.Ticker
	logger   *slog.Logger
}

// NewRateLimitedScheduleProvider returns a ScheduleProvider that limits calls
// to the given interval. Calls block until the interval elapses to avoid
// hammering the upstream.
func NewRateLimitedScheduleProvider(next ScheduleProvider, interval time.Duration, logger *slog.Logger) ScheduleProvider {
	if interval <= 0 {
		interval = time.Minute
	}
	return &rateLimitedScheduleProvider{
		next:     next,
		interval: interval,
		ticker:   time.NewTicker(interval),
		logger:   logger,
	}
}

func (p *rateLimitedScheduleProvider) FetchSchedule(ctx context.Context, date string) ([]domain.Game, error) {
	if p == nil || p.next == nil {
		if p != nil && p.logger != nil {
			p.logger.Warn("provider unavailable", slog.String("provider", "rate-limited"))
		}
		return nil, ErrProviderUnavailable
	}
	select {
	case <-ctx.Done():
		if p.logger != nil {
			p.logger.Warn("rate-limited fetch canceled", slog.String("provider", "rate-limited"))
		}
		return nil, ctx.Err()
	case <-p.ticker.C:
	}
	if p.logger != nil {
		p.logger.Info("rate-limited schedule fetch", slog.String("provider", "rate-limited"), slog.String("date", date))
	}
	return p.next.FetchSchedule(ctx, date)
}

// Close stops the interval ticker.
func (p *rateLimitedScheduleProvider) Close() {
	if p != nil && p.ticker != nil {
		p.ticker.Stop()
	}
}
