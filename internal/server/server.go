package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/mlb-gameday-service/internal/app/games"
	"github.com/preston-bernstein/mlb-gameday-service/internal/config"
	"github.com/preston-bernstein/mlb-gameday-service/internal/domain"
	"github.com/preston-bernstein/mlb-gameday-service/internal/domain/feed"
	"github.com/preston-bernstein/mlb-gameday-service/internal/feedcache"
	httpserver "github.com/preston-bernstein/mlb-gameday-service/internal/http"
	"github.com/preston-bernstein/mlb-gameday-service/internal/http/handlers"
	"github.com/preston-bernstein/mlb-gameday-service/internal/http/middleware"
	"github.com/preston-bernstein/mlb-gameday-service/internal/logging"
	"github.com/preston-bernstein/mlb-gameday-service/internal/metrics"
	"github.com/preston-bernstein/mlb-gameday-service/internal/poller"
	"github.com/preston-bernstein/mlb-gameday-service/internal/providers"
	"github.com/preston-bernstein/mlb-gameday-service/internal/refresh"
	"github.com/preston-bernstein/mlb-gameday-service/internal/snapshots"
	"github.com/preston-bernstein/mlb-gameday-service/internal/store"
)

var metricsSetup = metrics.Setup

// Server owns the wired components and their lifecycle: the schedule
// poller, the per-game refresh loops, the snapshot syncer, and the HTTP
// and metrics listeners.
type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	store         *store.MemoryStore
	feedCache     *feedcache.Cache
	gamesService  *games.Service
	refreshLoops  *refresh.Manager
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	syncer        *snapshots.Syncer
	syncProvider  providers.ScheduleProvider
	metricsStop   func(context.Context) error
}

// New constructs a server with default provider and poller wiring.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithMetrics(cfg, logger, nil, nil)
}

func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.DataProvider) *Server {
	return newServerWithMetrics(cfg, logger, provider, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, provider providers.DataProvider, recorder *metrics.Recorder) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	if provider == nil {
		provider = newProviderFactory(logger, recorder).build(cfg)
	} else {
		provider = providers.NewRetryingProvider(provider, logger, recorder, normalizeProviderName(cfg.Provider, provider), 0, 0)
	}

	memoryStore := store.NewMemoryStore()
	cache := feedcache.New(provider, logger, recorder, cfg.FeedMaxAge)
	gameSvc := games.NewService(cache)

	snaps := buildSnapshots(cfg, provider, logger)

	coord := refresh.NewCoordinator(cache, logger, recorder, cfg.RefreshInterval, cfg.FeedTickMaxAge)
	coord.OnFinished = archiveFinishedFeed(snaps.writer, logger)
	manager := refresh.NewManager(coord, logger)

	loc := providers.ResolveTimezone(cfg.StatsAPI.Timezone)
	plr := poller.New(provider, memoryStore, manager, snaps.writer, logger, recorder, cfg.PollInterval, loc)

	httpSrv := buildHTTPServer(cfg, memoryStore, gameSvc, cache, snaps, logger, provider, recorder, plr)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		store:         memoryStore,
		feedCache:     cache,
		gamesService:  gameSvc,
		refreshLoops:  manager,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		poller:        plr,
		syncer:        snaps.syncer,
		syncProvider:  snaps.limited,
		metricsStop:   metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, gameSvc *games.Service, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:          cfg,
		logger:       logger,
		gamesService: gameSvc,
		httpServer:   httpSrv,
		poller:       plr,
	}
}

// archiveFinishedFeed writes the final feed document to the snapshot
// archive when a refresh loop sees its game finish.
func archiveFinishedFeed(writer *snapshots.Writer, logger *slog.Logger) func(domain.Game, *feed.Document) {
	return func(game domain.Game, doc *feed.Document) {
		if writer == nil {
			return
		}
		if err := writer.WriteFeedSnapshot(game.ID, doc); err != nil {
			logging.Warn(logger, "feed archive failed",
				slog.String(logging.FieldGame, game.ID),
				"error", err,
			)
		}
	}
}

func buildHTTPServer(cfg config.Config, memoryStore *store.MemoryStore, gameSvc *games.Service, cache *feedcache.Cache, snaps snapshotComponents, logger *slog.Logger, provider providers.ScheduleProvider, recorder *metrics.Recorder, plr Poller) httpServer {
	var statusFn func() poller.Status
	if plr != nil {
		statusFn = plr.Status
	}

	handler := handlers.NewHandler(gameSvc, memoryStore, snaps.store, logger, statusFn)
	admin := handlers.NewAdminHandler(cache, snaps.writer, provider, cfg.Snapshots.AdminToken, logger)
	router := httpserver.NewRouter(handler, admin)
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the poller, the snapshot syncer, and the HTTP server, then
// waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	if s.syncer != nil {
		go s.syncer.Run(ctx)
	}
	s.poller.Start(ctx)

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting", slog.String("addr", s.httpServer.Addr()))
	}
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	if s.logger != nil {
		s.logger.Info("metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if err := s.poller.Stop(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("failed to stop poller", "error", err)
	}

	if s.refreshLoops != nil {
		s.refreshLoops.StopAll()
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	// Stop the rate-limited backfill provider's ticker when present.
	if rl, ok := s.syncProvider.(interface{ Close() }); ok {
		rl.Close()
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:    ":" + recCfg.Port,
				Handler: handler,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
