package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/mlb-gameday-service/internal/domain"
	"github.com/preston-bernstein/mlb-gameday-service/internal/logging"
	"github.com/preston-bernstein/mlb-gameday-service/internal/metrics"
	"github.com/preston-bernstein/mlb-gameday-service/internal/providers"
	"github.com/preston-bernstein/mlb-gameday-service/internal/store"
	"github.com/preston-bernstein/mlb-gameday-service/internal/timeutil"
)

const defaultInterval = 60 * time.Second

// SnapshotWriter persists schedule snapshots to disk.
type SnapshotWriter interface {
	WriteScheduleSnapshot(date string, snapshot domain.ScheduleResponse) error
}

// Reconciler adjusts background refresh loops to match the schedule.
type Reconciler interface {
	Reconcile(ctx context.Context, games []domain.Game, selectedDate time.Time)
}

// Poller fetches the day's schedule on an interval, replaces the store
// snapshot, reconciles refresh loops, and archives the schedule to disk.
type Poller struct {
	provider   providers.ScheduleProvider
	store      *store.MemoryStore
	reconciler Reconciler
	writer     SnapshotWriter
	logger     *slog.Logger
	metrics    *metrics.Recorder
	interval   time.Duration
	loc        *time.Location
	now        func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller with sane defaults.
func New(provider providers.ScheduleProvider, st *store.MemoryStore, reconciler Reconciler, writer SnapshotWriter, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration, loc *time.Location) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Poller{
		provider:   provider,
		store:      st,
		reconciler: reconciler,
		writer:     writer,
		logger:     logger,
		metrics:    recorder,
		interval:   interval,
		loc:        loc,
		now:        time.Now,
		done:       make(chan struct{}),
	}
}

// Start begins polling until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	p.ticker = time.NewTicker(p.interval)

	go func() {
		p.logInfo("schedule poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
		// Initial fetch to warm data on boot.
		p.fetchOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				p.logInfo("schedule poller stopped")
				return
			case <-p.done:
				p.stopTicker()
				p.logInfo("schedule poller stopped")
				return
			case <-p.ticker.C:
				p.fetchOnce(ctx)
			}
		}
	}()
}

// Stop halts the polling loop.
func (p *Poller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
	return nil
}

func (p *Poller) fetchOnce(ctx context.Context) {
	start := time.Now()
	p.recordAttempt(start)

	now := p.now().In(p.loc)
	today := timeutil.FormatDate(now)
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, p.loc)

	games, err := p.provider.FetchSchedule(ctx, today)
	p.metrics.RecordPollerCycle(time.Since(start), err)
	if err != nil {
		p.logError("schedule fetch failed", err, slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()))
		p.recordFailure(err, start)
		return
	}

	if p.store != nil {
		p.store.SetSchedule(day, games)
	}
	if p.reconciler != nil {
		p.reconciler.Reconcile(ctx, games, day)
	}
	if p.writer != nil {
		snap := domain.NewScheduleResponse(today, games)
		if writeErr := p.writer.WriteScheduleSnapshot(today, snap); writeErr != nil {
			p.logError("schedule snapshot write failed", writeErr)
		}
	}

	p.recordSuccess(start)
	p.logInfo("schedule refreshed",
		logging.FieldCount, len(games),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
}

func (p *Poller) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) logInfo(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Poller) logError(msg string, err error, attrs ...any) {
	if p.logger != nil {
		p.logger.Error(msg, append(attrs, "error", err)...)
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}

// Provider exposes the underlying provider (primarily for cleanup in callers).
func (p *Poller) Provider() providers.ScheduleProvider {
	return p.provider
}
