package server

import (
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/mlb-gameday-service/internal/config"
	"github.com/preston-bernstein/mlb-gameday-service/internal/providers"
	"github.com/preston-bernstein/mlb-gameday-service/internal/providers/fixture"
	"github.com/preston-bernstein/mlb-gameday-service/internal/providers/statsapi"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.DataProvider {
	switch cfg.Provider {
	case "fixture", "":
		return fixture.New()
	case "statsapi":
		return statsapi.NewClient(statsapi.Config{
			BaseURL:     cfg.StatsAPI.BaseURL,
			FeedBaseURL: cfg.StatsAPI.FeedBaseURL,
			HTTPClient:  &http.Client{Timeout: cfg.StatsAPI.Timeout},
			Timezone:    cfg.StatsAPI.Timezone,
		})
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New()
	}
}
