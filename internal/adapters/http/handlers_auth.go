package web

import (
	"errors"
	"log/slog"
	"net/http"

	"coachdash/internal/adapters/http/middleware"
	"coachdash/internal/application/orchestrators"
	"coachdash/internal/domain/activity"
)

// handleLogin handles POST /api/login. On success the coach's role is
// resolved once, cached in a fresh server-side session, and returned to
// the client alongside the session cookie.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()

	var input struct {
		Email    string `json:"Email"`
		Password string `json:"Password"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	result, err := orchestrators.ExecuteLogin(ctx, orchestrators.LoginInput{
		Email:    input.Email,
		Password: input.Password,
	}, orchestrators.LoginDeps{
		CoachStore: s.stores.CoachStore,
		Metrics:    s.loginMetrics(),
	})
	if err != nil {
		if errors.Is(err, orchestrators.ErrAccountLocked) {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}
		// Wrong password and unknown email answer identically.
		http.Error(w, "invalid email or password", http.StatusUnauthorized)
		return
	}

	// Any prior session for this coach is replaced, not accumulated.
	s.sessions.DeleteByCoachID(result.CoachID)

	token, err := s.sessions.Create(result.CoachID, result.Email, result.Name, result.Role)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)

	s.recordActivity(ctx, activity.Entry{
		ID:           generateID(),
		CoachID:      result.CoachID,
		Action:       activity.ActionLogin,
		ResourceType: activity.ResourceCoach,
		ResourceID:   result.CoachID,
		Summary:      result.Name + " signed in",
		CreatedAt:    timeNow(),
	})

	writeJSON(w, http.StatusOK, map[string]string{
		"CoachID": result.CoachID,
		"Email":   result.Email,
		"Name":    result.Name,
		"Role":    result.Role,
	})
}

// handleLogout handles POST /api/logout. Session deletion is the
// synchronous invalidation of the cached role: the gate sees the change
// on the very next request.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	sess, ok := middleware.GetSessionFromContext(r.Context())
	if token := middleware.SessionToken(r); token != "" {
		s.sessions.Delete(token)
	}
	middleware.ClearSessionCookie(w)

	if ok {
		slog.Info("auth_event", "event", "logout", "coach_id", sess.CoachID)
		s.recordActivity(r.Context(), activity.Entry{
			ID:           generateID(),
			CoachID:      sess.CoachID,
			Action:       activity.ActionLogout,
			ResourceType: activity.ResourceCoach,
			ResourceID:   sess.CoachID,
			Summary:      sess.Name + " signed out",
			CreatedAt:    timeNow(),
		})
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}

// handleSession handles GET /api/session: who am I, per the server-side
// session. The role comes from the session cache, never re-derived here.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"CoachID": sess.CoachID,
		"Email":   sess.Email,
		"Name":    sess.Name,
		"Role":    sess.Role,
	})
}
