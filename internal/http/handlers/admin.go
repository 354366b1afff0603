package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/preston-bernstein/mlb-gameday-service/internal/domain"
	"github.com/preston-bernstein/mlb-gameday-service/internal/http/requestutil"
	"github.com/preston-bernstein/mlb-gameday-service/internal/logging"
	"github.com/preston-bernstein/mlb-gameday-service/internal/providers"
	"github.com/preston-bernstein/mlb-gameday-service/internal/snapshots"
	"github.com/preston-bernstein/mlb-gameday-service/internal/timeutil"
)

// FeedCacheAdmin is the slice of the cache the admin surface controls.
type FeedCacheAdmin interface {
	Clear(key string)
	ClearAll()
}

// AdminHandler exposes token-guarded operational endpoints.
type AdminHandler struct {
	cache    FeedCacheAdmin
	writer   *snapshots.Writer
	provider providers.ScheduleProvider
	token    string
	logger   *slog.Logger
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(cache FeedCacheAdmin, writer *snapshots.Writer, provider providers.ScheduleProvider, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		cache:    cache,
		writer:   writer,
		provider: provider,
		token:    token,
		logger:   logger,
	}
}

// ClearCache drops cached feed data: one game with ?game={id}, or the
// whole cache without it. Guarded by ADMIN_TOKEN; 401 when missing/invalid.
func (h *AdminHandler) ClearCache(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return
	}
	if !h.authorize(r) {
		h.warnUnauthorized(r)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	if h.cache == nil {
		writeError(w, r, http.StatusServiceUnavailable, "cache not configured", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	game := strings.TrimSpace(r.URL.Query().Get("game"))
	if game != "" {
		h.cache.Clear(game)
		logging.Info(logger, "admin cleared cached feed", slog.String(logging.FieldGame, game))
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "cleared": game}, logger)
		return
	}

	h.cache.ClearAll()
	logging.Info(logger, "admin cleared feed cache")
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "cleared": "all"}, logger)
}

// RefreshSnapshots writes a schedule snapshot for the requested date
// (defaults to today). Guarded by ADMIN_TOKEN; 401 when missing/invalid.
func (h *AdminHandler) RefreshSnapshots(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return
	}
	if !h.authorize(r) {
		h.warnUnauthorized(r)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	if h.provider == nil || h.writer == nil {
		writeError(w, r, http.StatusServiceUnavailable, "snapshot writer not configured", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		date = timeutil.FormatDate(time.Now())
	}
	if _, err := timeutil.ParseDate(date); err != nil {
		logging.Warn(logger, "admin snapshot invalid date", slog.String(logging.FieldDate, date))
		writeError(w, r, http.StatusBadRequest, "invalid date format", logger)
		return
	}

	games, err := h.provider.FetchSchedule(r.Context(), date)
	if err != nil {
		logging.Warn(logger, "admin snapshot fetch failed",
			slog.String(logging.FieldDate, date),
			slog.Any("err", err),
		)
		writeError(w, r, http.StatusBadGateway, "failed to fetch schedule", logger)
		return
	}
	if len(games) == 0 {
		logging.Warn(logger, "admin snapshot no games", slog.String(logging.FieldDate, date))
		writeError(w, r, http.StatusBadRequest, "no games to snapshot", logger)
		return
	}

	if err := h.writer.WriteScheduleSnapshot(date, domain.NewScheduleResponse(date, games)); err != nil {
		logging.Warn(logger, "admin snapshot write failed",
			slog.String(logging.FieldDate, date),
			slog.Int(logging.FieldCount, len(games)),
			slog.Any("err", err),
		)
		writeError(w, r, http.StatusInternalServerError, "failed to write snapshot", logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"date":      date,
		"snapshots": len(games),
		"status":    "ok",
	}, logger)
	logging.Info(logger, "admin snapshot written",
		slog.String(logging.FieldDate, date),
		slog.Int(logging.FieldCount, len(games)),
	)
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	return r.Header.Get("Authorization") == "Bearer "+h.token
}

func (h *AdminHandler) warnUnauthorized(r *http.Request) {
	logging.Warn(h.logger, "admin unauthorized",
		slog.String(logging.FieldPath, r.URL.Path),
		slog.String("client_ip", requestutil.ClientIP(r)),
	)
}
