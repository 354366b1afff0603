// Package handlers wires HTTP routes to the schedule store, the feed
// projections, and the snapshot archive.
package handlers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/preston-bernstein/mlb-gameday-service/internal/app/games"
	"github.com/preston-bernstein/mlb-gameday-service/internal/domain"
	"github.com/preston-bernstein/mlb-gameday-service/internal/feedcache"
	"github.com/preston-bernstein/mlb-gameday-service/internal/logging"
	"github.com/preston-bernstein/mlb-gameday-service/internal/poller"
	"github.com/preston-bernstein/mlb-gameday-service/internal/snapshots"
	"github.com/preston-bernstein/mlb-gameday-service/internal/timeutil"
)

type nowFunc func() time.Time

// ScheduleStore is the slice of the memory store the handlers read.
type ScheduleStore interface {
	ListGames() []domain.Game
	GetGame(id string) (domain.Game, bool)
	Date() time.Time
}

// Handler wires HTTP routes to the domain services.
type Handler struct {
	svc      *games.Service
	store    ScheduleStore
	snaps    snapshots.Store
	logger   *slog.Logger
	now      nowFunc
	statusFn func() poller.Status
}

// NewHandler constructs a Handler with defaults.
func NewHandler(svc *games.Service, store ScheduleStore, snaps snapshots.Store, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		svc:      svc,
		store:    store,
		snaps:    snaps,
		logger:   logger,
		now:      time.Now,
		statusFn: statusFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic based on schedule poller health.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	if h.statusFn == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	if h.statusFn().IsReady() {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := h.statusFn().LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, http.StatusServiceUnavailable, msg, h.logger)
}

// Schedule serves the day's games: the in-memory store for the current
// date, disk snapshots for any other explicitly requested date.
func (h *Handler) Schedule(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)

	dateParam := strings.TrimSpace(r.URL.Query().Get("date"))
	if dateParam != "" {
		if _, err := timeutil.ParseDate(dateParam); err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid date format (expected YYYY-MM-DD)", h.logger)
			return
		}
	}

	storeDate := ""
	if h.store != nil && !h.store.Date().IsZero() {
		storeDate = timeutil.FormatDate(h.store.Date())
	}

	// No explicit date, or the store already holds that day: serve memory.
	if h.store != nil && (dateParam == "" || dateParam == storeDate) {
		list := h.store.ListGames()
		date := storeDate
		if date == "" {
			date = timeutil.FormatDate(h.now())
		}
		if len(list) > 0 || dateParam == "" {
			logging.Info(logger, "served schedule",
				slog.String(logging.FieldDate, date),
				slog.String(logging.FieldProvider, "store"),
				slog.Int(logging.FieldCount, len(list)),
			)
			writeJSON(w, http.StatusOK, domain.NewScheduleResponse(date, list), h.logger)
			return
		}
	}

	// Other dates come from the snapshot archive.
	if h.snaps == nil || dateParam == "" {
		writeError(w, r, http.StatusBadGateway, "schedule unavailable", h.logger)
		return
	}
	snap, err := h.snaps.LoadSchedule(dateParam)
	if err != nil {
		writeError(w, r, http.StatusNotFound, "no schedule for date", h.logger)
		return
	}
	logging.Info(logger, "served schedule",
		slog.String(logging.FieldDate, snap.Date),
		slog.String(logging.FieldProvider, "snapshot"),
		slog.Int(logging.FieldCount, len(snap.Games)),
	)
	writeJSON(w, http.StatusOK, snap, h.logger)
}

// GameRoutes dispatches /games/{id} and /games/{id}/{projection}.
func (h *Handler) GameRoutes(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}

	id, sub, ok := splitGamePath(r.URL.Path)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid game id", h.logger)
		return
	}

	switch sub {
	case "":
		h.gameByID(w, r, id)
	case "feed":
		h.feed(w, r, id)
	case "linescore":
		h.project(w, r, id, func(opts []feedcache.Option) (any, error) {
			return h.svc.Linescore(r.Context(), id, opts...)
		})
	case "boxscore":
		h.project(w, r, id, func(opts []feedcache.Option) (any, error) {
			return h.svc.BoxScore(r.Context(), id, opts...)
		})
	case "decisions":
		h.project(w, r, id, func(opts []feedcache.Option) (any, error) {
			return h.svc.Decisions(r.Context(), id, opts...)
		})
	case "pitches":
		h.project(w, r, id, func(opts []feedcache.Option) (any, error) {
			return h.svc.PitchData(r.Context(), id, opts...)
		})
	case "hits":
		h.project(w, r, id, func(opts []feedcache.Option) (any, error) {
			return h.svc.HitData(r.Context(), id, opts...)
		})
	case "performers":
		h.project(w, r, id, func(opts []feedcache.Option) (any, error) {
			return h.svc.TopPerformers(r.Context(), id, opts...)
		})
	case "lob":
		h.project(w, r, id, func(opts []feedcache.Option) (any, error) {
			return h.svc.LeftOnBase(r.Context(), id, opts...)
		})
	case "preview":
		h.project(w, r, id, func(opts []feedcache.Option) (any, error) {
			return h.svc.Preview(r.Context(), id, opts...)
		})
	default:
		writeError(w, r, http.StatusNotFound, "not found", h.logger)
	}
}

func (h *Handler) gameByID(w http.ResponseWriter, r *http.Request, id string) {
	if h.store == nil {
		writeError(w, r, http.StatusServiceUnavailable, "store not configured", h.logger)
		return
	}
	game, ok := h.store.GetGame(id)
	if !ok {
		writeError(w, r, http.StatusNotFound, "game not found", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, game, h.logger)
}

// feed serves the full live document, falling back to the archived
// snapshot for finished games the cache can no longer fetch.
func (h *Handler) feed(w http.ResponseWriter, r *http.Request, id string) {
	logger := loggerFromContext(r, h.logger)
	doc, err := h.svc.Feed(r.Context(), id, refreshOpts(r)...)
	if err != nil {
		if h.snaps != nil {
			if archived, archiveErr := h.snaps.LoadFeed(id); archiveErr == nil {
				logging.Info(logger, "served archived feed",
					slog.String(logging.FieldGame, id),
					slog.String(logging.FieldProvider, "snapshot"),
				)
				writeJSON(w, http.StatusOK, archived, h.logger)
				return
			}
		}
		logging.Warn(logger, "feed unavailable",
			slog.String(logging.FieldGame, id),
			"error", err,
		)
		writeError(w, r, http.StatusBadGateway, "feed unavailable", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, doc, h.logger)
}

func (h *Handler) project(w http.ResponseWriter, r *http.Request, id string, load func(opts []feedcache.Option) (any, error)) {
	payload, err := load(refreshOpts(r))
	if err != nil {
		logging.Warn(loggerFromContext(r, h.logger), "projection unavailable",
			slog.String(logging.FieldGame, id),
			slog.String(logging.FieldPath, r.URL.Path),
			"error", err,
		)
		writeError(w, r, http.StatusBadGateway, "feed unavailable", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, payload, h.logger)
}

// refreshOpts maps ?refresh=true onto a forced cache refresh.
func refreshOpts(r *http.Request) []feedcache.Option {
	if strings.EqualFold(r.URL.Query().Get("refresh"), "true") {
		return []feedcache.Option{feedcache.WithForceRefresh()}
	}
	return nil
}

// splitGamePath parses /games/{id} and /games/{id}/{sub}.
func splitGamePath(path string) (id, sub string, ok bool) {
	rest := strings.TrimPrefix(path, "/games")
	rest = strings.TrimPrefix(rest, "/")
	if rest == "" {
		return "", "", false
	}
	parts := strings.SplitN(rest, "/", 2)
	id, err := url.PathUnescape(parts[0])
	if err != nil || id == "" || strings.ContainsAny(id, " \t/") {
		return "", "", false
	}
	if len(parts) == 2 {
		sub = strings.TrimSuffix(parts[1], "/")
		if strings.Contains(sub, "/") {
			return "", "", false
		}
	}
	return id, sub, true
}
