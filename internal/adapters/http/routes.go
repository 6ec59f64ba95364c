package web

import (
	"net/http"

	"coachdash/internal/adapters/http/middleware"
)

// registerRoutes maps URL paths to handlers. The /api tree answers JSON
// errors; the page routes answer with the gate's redirects.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", s.handleHealthz)
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics.Handler())
	}

	// Auth surface
	mux.HandleFunc("/api/login", s.handleLogin)
	mux.HandleFunc("/api/logout", s.handleLogout)
	mux.HandleFunc("/api/session", s.handleSession)

	// Dashboard and feeds
	mux.HandleFunc("/api/dashboard", s.handleDashboard)
	mux.HandleFunc("/api/activity", s.handleActivity)
	mux.HandleFunc("/api/observations", s.handleObservations)

	// Player roster and per-player resources
	mux.HandleFunc("/api/players", s.handlePlayers)
	mux.HandleFunc("/api/players/", s.handlePlayerSubtree)

	// Coach registry (admin only)
	mux.HandleFunc("/api/coaches", s.handleCoaches)

	// Browser entry points: the gate redirects rather than erroring.
	mux.HandleFunc("/login", s.handleLoginPage)
	mux.Handle("/admin", middleware.RequireAdmin(http.HandlerFunc(s.handleAdminHome)))
	mux.Handle("/", middleware.RequireAuth(http.HandlerFunc(s.handleHome)))
}
