package server

import (
	"log/slog"

	"github.com/preston-bernstein/mlb-gameday-service/internal/config"
	"github.com/preston-bernstein/mlb-gameday-service/internal/metrics"
	"github.com/preston-bernstein/mlb-gameday-service/internal/providers"
)

// providerFactory assembles the upstream provider with the shared retry
// wrapper. Rate limiting is applied separately, on the schedule side only,
// by the snapshot syncer wiring.
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) providers.DataProvider {
	base := selectProvider(cfg, f.logger)
	return providers.NewRetryingProvider(base, f.logger, f.metrics, normalizeProviderName(cfg.Provider, base), 0, 0)
}
