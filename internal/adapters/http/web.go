package web

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"coachdash/internal/adapters/email"
	"coachdash/internal/adapters/http/middleware"
	activityStore "coachdash/internal/adapters/storage/activity"
	coachStore "coachdash/internal/adapters/storage/coach"
	observationStore "coachdash/internal/adapters/storage/observation"
	pdpStore "coachdash/internal/adapters/storage/pdp"
	playerStore "coachdash/internal/adapters/storage/player"
	"coachdash/internal/application/orchestrators"
	"coachdash/internal/domain/activity"
	"coachdash/internal/metrics"
)

// Stores holds all storage dependencies.
type Stores struct {
	CoachStore       coachStore.Store
	PlayerStore      playerStore.Store
	ObservationStore observationStore.Store
	PlanStore        pdpStore.Store
	ActivityStore    activityStore.Store
}

// Server wires handlers to their dependencies. The session store is an
// explicit field, not package state: invalidation hooks are method calls
// on it and every handler reaches it through the server.
type Server struct {
	stores    *Stores
	sessions  *middleware.SessionStore
	metrics   *metrics.Collector
	sender    email.Sender
	emailFrom string
}

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Options carries optional NewMux configuration.
type Options struct {
	Metrics   *metrics.Collector
	Sender    email.Sender
	EmailFrom string
}

// loadCSRFKey reads the CSRF secret from COACHDASH_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("COACHDASH_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("COACHDASH_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("COACHDASH_ENV") == "production" {
		log.Fatal("COACHDASH_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set COACHDASH_CSRF_KEY for production.")
	return key
}

// NewMux wires HTTP handlers for the app.
func NewMux(s *Stores, opts Options) http.Handler {
	middleware.SecureCookies = os.Getenv("COACHDASH_ENV") == "production"

	srv := &Server{
		stores:    s,
		sessions:  middleware.NewSessionStore(),
		metrics:   opts.Metrics,
		sender:    opts.Sender,
		emailFrom: opts.EmailFrom,
	}

	mux := http.NewServeMux()
	srv.registerRoutes(mux)

	csrfKey := loadCSRFKey()
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Outermost first: Metrics -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> Mux
	mws := []func(http.Handler) http.Handler{
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(srv.sessions),
		middleware.RateLimit(limiter),
	}
	if opts.Metrics != nil {
		mws = append(mws, middleware.Metrics(opts.Metrics))
	}
	return middleware.Chain(mux, mws...)
}

// Sessions exposes the session store for wiring and tests.
func (s *Server) Sessions() *middleware.SessionStore {
	return s.sessions
}

// loginMetrics returns the collector as a LoginMetrics, or a nil
// interface when metrics are disabled.
func (s *Server) loginMetrics() orchestrators.LoginMetrics {
	if s.metrics == nil {
		return nil
	}
	return s.metrics
}

func (s *Server) planMetrics() orchestrators.PlanMetrics {
	if s.metrics == nil {
		return nil
	}
	return s.metrics
}

// recordActivity appends to the activity feed, best effort: a feed write
// failure never fails the request that triggered it.
func (s *Server) recordActivity(ctx context.Context, e activity.Entry) {
	if s.stores.ActivityStore == nil {
		return
	}
	if err := s.stores.ActivityStore.Insert(ctx, e); err != nil {
		slog.Warn("activity_event", "event", "record_failed", "action", e.Action, "error", err.Error())
	}
}
