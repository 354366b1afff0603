package refresh

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/mlb-gameday-service/internal/domain"
	"github.com/preston-bernstein/mlb-gameday-service/internal/logging"
)

// Manager reconciles the set of running refresh loops against the
// current schedule: it starts loops for games that should poll and
// cancels loops for games that no longer should.
type Manager struct {
	coord  *Coordinator
	logger *slog.Logger
	now    func() time.Time

	mu    sync.Mutex
	loops map[string]CancelFunc
}

func NewManager(coord *Coordinator, logger *slog.Logger) *Manager {
	return &Manager{
		coord:  coord,
		logger: logger,
		now:    time.Now,
		loops:  make(map[string]CancelFunc),
	}
}

// Reconcile brings the running loops in line with the given schedule.
// Loops for games that dropped out of the pollable set are cancelled;
// pollable games without a loop get one started under ctx.
func (m *Manager) Reconcile(ctx context.Context, games []domain.Game, selectedDate time.Time) {
	now := m.now()

	want := make(map[string]domain.Game, len(games))
	for _, g := range games {
		if ShouldPoll(g, selectedDate, now) {
			want[g.ID] = g
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for id, cancel := range m.loops {
		if _, ok := want[id]; ok {
			continue
		}
		cancel()
		delete(m.loops, id)
		logging.Info(m.logger, "refresh loop reconciled away",
			slog.String(logging.FieldGame, id),
		)
	}

	for id, g := range want {
		if _, ok := m.loops[id]; ok {
			continue
		}
		m.loops[id] = m.coord.Start(ctx, g)
	}
}

// StopAll cancels every running loop. Used on shutdown.
func (m *Manager) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, cancel := range m.loops {
		cancel()
		delete(m.loops, id)
	}
}

// Running returns the number of loops the manager believes are active.
// Loops that stopped themselves still count until the next reconcile.
func (m *Manager) Running() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.loops)
}
