// Package http assembles the service's HTTP surface.
package http

import (
	nethttp "net/http"

	"github.com/preston-bernstein/mlb-gameday-service/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux.
func NewRouter(handler *handlers.Handler, admin *handlers.AdminHandler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/schedule", handler.Schedule)
	mux.HandleFunc("/games/", handler.GameRoutes)
	if admin != nil {
		mux.HandleFunc("/admin/cache/clear", admin.ClearCache)
		mux.HandleFunc("/admin/snapshots/refresh", admin.RefreshSnapshots)
	}
	return mux
}
